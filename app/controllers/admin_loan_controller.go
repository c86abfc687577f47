package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/acreworks/landfolio/app/models"
	"github.com/acreworks/landfolio/app/repository"
	"github.com/acreworks/landfolio/internal/pkg/financing"
	"github.com/acreworks/landfolio/internal/pkg/statistics"
)

// HandleAdminListLoans lists all loans with their borrowers and parcels.
func HandleAdminListLoans(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	loans, err := repository.GetGlobalFactory().GetLoanRepository().List(offset, limit)
	if err != nil {
		return internalError(c, "Failed to load loans")
	}
	return c.JSON(fiber.Map{"loans": loans})
}

// HandleAdminGetLoan returns one loan with payments and its live balance.
func HandleAdminGetLoan(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid loan id")
	}

	loan, err := repository.GetGlobalFactory().GetLoanRepository().GetWithPayments(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Loan not found")
		}
		return internalError(c, "Failed to load loan")
	}

	balance, err := financing.CurrentBalance(loan.Terms(), models.SplitsOf(loan.Payments))
	if err != nil {
		return internalError(c, "Failed to compute balance")
	}
	return c.JSON(fiber.Map{"loan": loan, "balance": balance})
}

type adminUpdateLoanRequest struct {
	Status string `json:"status"`
}

// HandleAdminUpdateLoan changes a loan's status (default, cancel, reinstate).
func HandleAdminUpdateLoan(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid loan id")
	}

	var req adminUpdateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	repo := repository.GetGlobalFactory().GetLoanRepository()
	loan, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Loan not found")
		}
		return internalError(c, "Failed to load loan")
	}

	loan.Status = req.Status
	if err := loan.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repo.Update(loan); err != nil {
		return internalError(c, "Failed to update loan")
	}
	statistics.InvalidateDashboardCache()
	return c.JSON(loan)
}

type manualPaymentRequest struct {
	PaidAt  time.Time       `json:"paid_at"`
	Amount  decimal.Decimal `json:"amount"`
	Tax     decimal.Decimal `json:"tax"`
	HOA     decimal.Decimal `json:"hoa"`
	LateFee decimal.Decimal `json:"late_fee"`
	Method  string          `json:"method"`
}

// HandleAdminRecordPayment records an offline payment (check, cash) against a
// loan. The principal/interest split is computed exactly like a card payment.
func HandleAdminRecordPayment(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid loan id")
	}

	var req manualPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Method == "" {
		req.Method = models.PAYMENT_METHOD_CHECK
	}
	if req.PaidAt.IsZero() {
		req.PaidAt = time.Now()
	}

	factory := repository.GetGlobalFactory()
	loan, err := factory.GetLoanRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Loan not found")
		}
		return internalError(c, "Failed to load loan")
	}

	payments, err := factory.GetPaymentRepository().GetByLoanID(loan.ID)
	if err != nil {
		return internalError(c, "Failed to load payments")
	}

	split, err := financing.SplitPayment(loan.Terms(), models.SplitsOf(payments), req.Amount)
	if err != nil {
		return financingError(c, err)
	}

	payment := &models.Payment{
		LoanID:             loan.ID,
		PaidAt:             req.PaidAt,
		Amount:             req.Amount,
		PrincipalComponent: split.Principal,
		InterestComponent:  split.Interest,
		TaxComponent:       req.Tax,
		HOAComponent:       req.HOA,
		LateFeeComponent:   req.LateFee,
		Method:             req.Method,
		Status:             models.PAYMENT_COMPLETED,
	}
	if err := factory.GetPaymentRepository().Create(payment); err != nil {
		return internalError(c, "Failed to record payment")
	}
	statistics.InvalidateDashboardCache()
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// importPaymentRow is one payment row in an import-wizard request. Principal
// and interest may be pre-filled from the legacy system; recalculation
// overwrites them.
type importPaymentRow struct {
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Tax       decimal.Decimal `json:"tax"`
	HOA       decimal.Decimal `json:"hoa"`
}

type importTerms struct {
	Principal  decimal.Decimal `json:"principal"`
	AnnualRate decimal.Decimal `json:"annual_rate"`
}

func (t importTerms) terms() financing.LoanTerms {
	return financing.LoanTerms{Principal: t.Principal, AnnualRate: t.AnnualRate}
}

type recalculateRequest struct {
	Terms    importTerms        `json:"terms"`
	Payments []importPaymentRow `json:"payments"`
}

// HandleImportRecalculate recomputes the principal/interest split of every
// payment row against the declining balance, in date order. The wizard calls
// this whenever the operator edits the loan terms or a payment amount.
func HandleImportRecalculate(c *fiber.Ctx) error {
	var req recalculateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	terms := req.Terms.terms()
	splits := make([]financing.PaymentSplit, 0, len(req.Payments))
	out := make([]financing.ImportedPayment, 0, len(req.Payments))
	for _, row := range req.Payments {
		split, err := financing.SplitPayment(terms, splits, row.Amount)
		if err != nil {
			return financingError(c, err)
		}
		splits = append(splits, split)
		out = append(out, financing.ImportedPayment{
			Date:      row.Date,
			Amount:    row.Amount,
			Principal: split.Principal,
			Interest:  split.Interest,
			Tax:       row.Tax,
			HOA:       row.HOA,
		})
	}

	balance, err := financing.CurrentBalance(terms, splits)
	if err != nil {
		return financingError(c, err)
	}

	return c.JSON(fiber.Map{
		"payments": out,
		"balance":  balance,
	})
}

type generateRequest struct {
	Terms    importTerms        `json:"terms"`
	Existing []importPaymentRow `json:"existing"`
	Start    time.Time          `json:"start"`
	Count    int                `json:"count"`
	Amount   decimal.Decimal    `json:"amount"`
	Tax      decimal.Decimal    `json:"tax"`
	HOA      decimal.Decimal    `json:"hoa"`
}

// HandleImportGenerate synthesizes a run of monthly payments on top of the
// rows already entered, one month apart starting at the given date.
func HandleImportGenerate(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	prior := make([]financing.PaymentSplit, 0, len(req.Existing))
	for _, row := range req.Existing {
		prior = append(prior, financing.PaymentSplit{Principal: row.Principal, Interest: row.Interest})
	}

	generated, err := financing.GenerateSchedule(req.Terms.terms(), prior, req.Start, req.Count, req.Amount, req.Tax, req.HOA)
	if err != nil {
		return financingError(c, err)
	}
	return c.JSON(fiber.Map{"payments": generated})
}

type commitRequest struct {
	UserID         uint               `json:"user_id"`
	PropertyID     uint               `json:"property_id"`
	Terms          importTerms        `json:"terms"`
	DownPayment    decimal.Decimal    `json:"down_payment"`
	ProcessingFee  decimal.Decimal    `json:"processing_fee"`
	TermMonths     int                `json:"term_months"`
	MonthlyPayment decimal.Decimal    `json:"monthly_payment"`
	StartDate      time.Time          `json:"start_date"`
	Payments       []importPaymentRow `json:"payments"`
}

// HandleImportCommit persists an imported loan and its reconstructed payment
// history in one transaction. The splits are recomputed server side one last
// time so a stale wizard screen can never commit inconsistent rows.
func HandleImportCommit(c *fiber.Ctx) error {
	var req commitRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.UserID == 0 || req.PropertyID == 0 {
		return badRequest(c, "user_id and property_id are required")
	}
	if req.TermMonths <= 0 {
		return badRequest(c, "term_months must be positive")
	}

	factory := repository.GetGlobalFactory()
	if _, err := factory.GetUserRepository().GetByID(req.UserID); err != nil {
		return badRequest(c, "user not found")
	}
	if _, err := factory.GetPropertyRepository().GetByID(req.PropertyID); err != nil {
		return badRequest(c, "property not found")
	}

	terms := req.Terms.terms()
	splits := make([]financing.PaymentSplit, 0, len(req.Payments))
	payments := make([]models.Payment, 0, len(req.Payments))
	for _, row := range req.Payments {
		split, err := financing.SplitPayment(terms, splits, row.Amount)
		if err != nil {
			return financingError(c, err)
		}
		splits = append(splits, split)
		payments = append(payments, models.Payment{
			PaidAt:             row.Date,
			Amount:             row.Amount,
			PrincipalComponent: split.Principal,
			InterestComponent:  split.Interest,
			TaxComponent:       row.Tax,
			HOAComponent:       row.HOA,
			Method:             models.PAYMENT_METHOD_IMPORT,
			Status:             models.PAYMENT_COMPLETED,
			Imported:           true,
		})
	}

	balance, err := financing.CurrentBalance(terms, splits)
	if err != nil {
		return financingError(c, err)
	}

	loan := &models.Loan{
		UserID:         req.UserID,
		PropertyID:     req.PropertyID,
		DownPayment:    req.DownPayment,
		ProcessingFee:  req.ProcessingFee,
		Principal:      req.Terms.Principal,
		AnnualRate:     req.Terms.AnnualRate,
		TermMonths:     req.TermMonths,
		MonthlyPayment: req.MonthlyPayment,
		Status:         models.LOAN_ACTIVE,
		StartDate:      req.StartDate,
		Imported:       true,
	}
	if balance.LessThanOrEqual(decimal.Zero) {
		loan.Status = models.LOAN_PAID_OFF
	}
	if loan.StartDate.IsZero() && len(req.Payments) > 0 {
		loan.StartDate = req.Payments[0].Date
	}

	if err := factory.GetLoanRepository().CreateWithPayments(loan, payments); err != nil {
		return internalError(c, "Failed to save imported loan")
	}

	status := models.PROPERTY_PENDING
	if loan.Status == models.LOAN_PAID_OFF {
		status = models.PROPERTY_SOLD
	}
	if err := factory.GetPropertyRepository().UpdateStatus(req.PropertyID, status); err != nil {
		return internalError(c, "Failed to update property status")
	}
	statistics.InvalidateDashboardCache()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"loan":    loan,
		"balance": balance,
	})
}

// financingError maps calculator and reconciler errors onto the API envelope:
// missing loan context is a 422 the wizard shows inline, bad input is a 400.
func financingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, financing.ErrMissingLoanContext):
		return jsonError(c, fiber.StatusUnprocessableEntity, "missing_loan_context", err.Error())
	case errors.Is(err, financing.ErrInvalidInput):
		return badRequest(c, err.Error())
	default:
		return internalError(c, "Calculation failed")
	}
}
