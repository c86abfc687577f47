package controllers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/acreworks/landfolio/app/models"
	"github.com/acreworks/landfolio/app/repository"
	"github.com/acreworks/landfolio/internal/pkg/financing"
	"github.com/acreworks/landfolio/internal/pkg/gateway"
	"github.com/acreworks/landfolio/internal/pkg/mailer"
	"github.com/acreworks/landfolio/internal/pkg/statistics"
	"github.com/acreworks/landfolio/internal/pkg/usercontext"
)

// charger is the payment gateway the purchase and installment handlers use.
// It is injected once at startup so tests can swap in the stub.
var charger gateway.Charger = gateway.NewStub()

// InitializeGateway wires the payment gateway into the controllers.
func InitializeGateway(g gateway.Charger) {
	charger = g
}

type purchaseRequest struct {
	PropertyID uint   `json:"property_id"`
	Selector   int    `json:"selector"`
	TermMonths int    `json:"term_months"`
	CardToken  string `json:"card_token"`
}

// HandleCreatePurchase starts an owner-financing contract: it recomputes the
// plan server side from the catalog price (the client's preview numbers are
// never trusted), charges the down payment plus processing fee, and opens the
// loan.
func HandleCreatePurchase(c *fiber.Ctx) error {
	if !models.GetAppSettings().SalesEnabled {
		return jsonError(c, fiber.StatusServiceUnavailable, "sales_disabled", "Online sales are temporarily disabled")
	}

	var req purchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	factory := repository.GetGlobalFactory()
	property, err := factory.GetPropertyRepository().GetByID(req.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Property not found")
		}
		return internalError(c, "Failed to load property")
	}
	if !property.IsAvailable() {
		return jsonError(c, fiber.StatusConflict, "conflict", "Property is no longer available")
	}

	term := req.TermMonths
	if term <= 0 {
		term = models.GetAppSettings().DefaultTermMonths
	}

	plan, err := financing.Calculate(property.Price, req.Selector, term)
	if err != nil {
		if errors.Is(err, financing.ErrInvalidInput) {
			return badRequest(c, err.Error())
		}
		return internalError(c, "Failed to compute payment plan")
	}

	// The buyer pays the down payment and the processing fee up front.
	upfront := plan.DownPayment.Add(plan.ProcessingFee)
	result, err := charger.Charge(c.Context(), gateway.ChargeRequest{
		Token:       req.CardToken,
		Amount:      upfront,
		Description: fmt.Sprintf("Down payment for %s", property.Title),
	})
	if err != nil {
		if errors.Is(err, gateway.ErrChargeDeclined) {
			return jsonError(c, fiber.StatusPaymentRequired, "charge_declined", "The card was declined")
		}
		return internalError(c, "Payment processing failed")
	}

	loan := models.NewLoanFromPlan(usercontext.GetUserID(c), property.ID, plan, time.Now())
	if err := factory.GetLoanRepository().Create(loan); err != nil {
		// Money moved but the loan did not open; this needs a human.
		log.Printf("CRITICAL: charge %s succeeded but loan creation failed: %v", result.Reference, err)
		return internalError(c, "Failed to open the loan, our team has been notified")
	}

	if err := factory.GetPropertyRepository().UpdateStatus(property.ID, models.PROPERTY_PENDING); err != nil {
		log.Printf("Failed to mark property %d pending: %v", property.ID, err)
	}
	statistics.InvalidateDashboardCache()

	if user, err := factory.GetUserRepository().GetByID(loan.UserID); err == nil {
		if err := mailer.SendPaymentReceipt(user.Email, user.Name, upfront.StringFixed(2), loan.Principal.StringFixed(2)); err != nil {
			log.Printf("Failed to send purchase receipt for loan %d: %v", loan.ID, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"loan":      loan,
		"reference": result.Reference,
	})
}

type installmentRequest struct {
	CardToken string `json:"card_token"`
}

// HandlePayInstallment collects one monthly installment on the caller's loan.
// The principal/interest split is recomputed from the full payment history at
// the moment of payment, never read from a stored schedule.
func HandlePayInstallment(c *fiber.Ctx) error {
	loanID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid loan id")
	}

	var req installmentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	factory := repository.GetGlobalFactory()
	loan, err := factory.GetLoanRepository().GetByID(loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Loan not found")
		}
		return internalError(c, "Failed to load loan")
	}
	if loan.UserID != usercontext.GetUserID(c) {
		return notFound(c, "Loan not found")
	}
	if loan.Status != models.LOAN_ACTIVE {
		return jsonError(c, fiber.StatusConflict, "conflict", "Loan is not active")
	}

	payments, err := factory.GetPaymentRepository().GetByLoanID(loan.ID)
	if err != nil {
		return internalError(c, "Failed to load payments")
	}
	splits := models.SplitsOf(payments)

	balance, err := financing.CurrentBalance(loan.Terms(), splits)
	if err != nil {
		return internalError(c, "Failed to compute balance")
	}

	// The final installment collects only what is left.
	amount := loan.MonthlyPayment
	if balance.LessThan(amount) {
		amount = balance
	}
	split, err := financing.SplitPayment(loan.Terms(), splits, amount)
	if err != nil {
		if errors.Is(err, financing.ErrInvalidInput) {
			return jsonError(c, fiber.StatusConflict, "conflict", "Loan is already paid off")
		}
		return internalError(c, "Failed to compute payment split")
	}

	result, err := charger.Charge(c.Context(), gateway.ChargeRequest{
		Token:       req.CardToken,
		Amount:      amount,
		Description: fmt.Sprintf("Installment on loan %d", loan.ID),
	})
	if err != nil {
		if errors.Is(err, gateway.ErrChargeDeclined) {
			return jsonError(c, fiber.StatusPaymentRequired, "charge_declined", "The card was declined")
		}
		return internalError(c, "Payment processing failed")
	}

	payment := &models.Payment{
		LoanID:             loan.ID,
		PaidAt:             result.ChargedAt,
		Amount:             amount,
		PrincipalComponent: split.Principal,
		InterestComponent:  split.Interest,
		Method:             models.PAYMENT_METHOD_CARD,
		Status:             models.PAYMENT_COMPLETED,
		Reference:          result.Reference,
	}
	if err := factory.GetPaymentRepository().Create(payment); err != nil {
		log.Printf("CRITICAL: charge %s succeeded but payment row failed: %v", result.Reference, err)
		return internalError(c, "Failed to record the payment, our team has been notified")
	}

	newBalance := balance.Sub(split.Principal)
	if newBalance.IsZero() || newBalance.IsNegative() {
		loan.Status = models.LOAN_PAID_OFF
		if err := factory.GetLoanRepository().Update(loan); err != nil {
			log.Printf("Failed to mark loan %d paid off: %v", loan.ID, err)
		}
		if err := factory.GetPropertyRepository().UpdateStatus(loan.PropertyID, models.PROPERTY_SOLD); err != nil {
			log.Printf("Failed to mark property %d sold: %v", loan.PropertyID, err)
		}
	}
	statistics.InvalidateDashboardCache()

	if user, err := factory.GetUserRepository().GetByID(loan.UserID); err == nil {
		if err := mailer.SendPaymentReceipt(user.Email, user.Name, amount.StringFixed(2), newBalance.StringFixed(2)); err != nil {
			log.Printf("Failed to send receipt for payment %d: %v", payment.ID, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"payment": payment,
		"balance": newBalance,
	})
}
