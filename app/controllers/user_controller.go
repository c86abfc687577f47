package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/acreworks/landfolio/app/models"
	"github.com/acreworks/landfolio/app/repository"
	"github.com/acreworks/landfolio/internal/pkg/financing"
	"github.com/acreworks/landfolio/internal/pkg/usercontext"
)

// HandleGetMe returns the logged-in user's profile.
func HandleGetMe(c *fiber.Ctx) error {
	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(usercontext.GetUserID(c))
	if err != nil {
		return notFound(c, "User not found")
	}
	return c.JSON(fiber.Map{
		"id":           user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"phone":        user.Phone,
		"address_line": user.AddressLine,
		"city":         user.City,
		"state":        user.State,
		"zip":          user.Zip,
		"is_admin":     user.IsAdmin(),
	})
}

type updateMeRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
}

// HandleUpdateMe updates the profile fields a customer may edit themselves.
func HandleUpdateMe(c *fiber.Ctx) error {
	var req updateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(usercontext.GetUserID(c))
	if err != nil {
		return notFound(c, "User not found")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	user.Phone = req.Phone
	user.AddressLine = req.AddressLine
	user.City = req.City
	user.State = req.State
	user.Zip = req.Zip
	if err := repo.Update(user); err != nil {
		return internalError(c, "Failed to update profile")
	}

	return c.JSON(fiber.Map{"message": "Profile updated"})
}

// HandleMyLoans lists the logged-in user's loans with their live balances.
func HandleMyLoans(c *fiber.Ctx) error {
	factory := repository.GetGlobalFactory()
	loans, err := factory.GetLoanRepository().GetByUserID(usercontext.GetUserID(c))
	if err != nil {
		return internalError(c, "Failed to load loans")
	}

	out := make([]fiber.Map, 0, len(loans))
	for i := range loans {
		loan := &loans[i]
		payments, err := factory.GetPaymentRepository().GetByLoanID(loan.ID)
		if err != nil {
			return internalError(c, "Failed to load payments")
		}
		balance, err := financing.CurrentBalance(loan.Terms(), models.SplitsOf(payments))
		if err != nil {
			return internalError(c, "Failed to compute balance")
		}
		out = append(out, fiber.Map{
			"loan":           loan,
			"balance":        balance,
			"payments_made":  len(payments),
		})
	}

	return c.JSON(fiber.Map{"loans": out})
}

// HandleMyLoan returns one loan with its full payment history and balance.
// Customers can only see their own loans.
func HandleMyLoan(c *fiber.Ctx) error {
	loanID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid loan id")
	}

	loan, err := repository.GetGlobalFactory().GetLoanRepository().GetWithPayments(loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Loan not found")
		}
		return internalError(c, "Failed to load loan")
	}
	if loan.UserID != usercontext.GetUserID(c) {
		return notFound(c, "Loan not found")
	}

	balance, err := financing.CurrentBalance(loan.Terms(), models.SplitsOf(loan.Payments))
	if err != nil {
		return internalError(c, "Failed to compute balance")
	}

	return c.JSON(fiber.Map{
		"loan":    loan,
		"balance": balance,
	})
}
