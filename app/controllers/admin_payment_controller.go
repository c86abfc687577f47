package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/acreworks/landfolio/app/models"
	"github.com/acreworks/landfolio/app/repository"
	"github.com/acreworks/landfolio/internal/pkg/statistics"
)

// HandleAdminListPayments lists recent payments across all loans.
func HandleAdminListPayments(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	payments, err := repository.GetGlobalFactory().GetPaymentRepository().List(offset, limit)
	if err != nil {
		return internalError(c, "Failed to load payments")
	}
	return c.JSON(fiber.Map{"payments": payments})
}

// HandleAdminRefundPayment marks a payment refunded. The row stays in the
// history; later reconciliations are expected to re-enter a corrected one.
func HandleAdminRefundPayment(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid payment id")
	}

	repo := repository.GetGlobalFactory().GetPaymentRepository()
	payment, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Payment not found")
		}
		return internalError(c, "Failed to load payment")
	}

	payment.Status = models.PAYMENT_REFUNDED
	if err := repo.Update(payment); err != nil {
		return internalError(c, "Failed to update payment")
	}
	statistics.InvalidateDashboardCache()
	return c.JSON(payment)
}

// HandleAdminDeletePayment removes a mis-entered payment row. Balances and
// splits of later payments are recomputed from history on demand, so removing
// a row is safe as long as the operator re-runs the import recalculation.
func HandleAdminDeletePayment(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid payment id")
	}
	if err := repository.GetGlobalFactory().GetPaymentRepository().Delete(id); err != nil {
		return internalError(c, "Failed to delete payment")
	}
	statistics.InvalidateDashboardCache()
	return c.JSON(fiber.Map{"message": "Payment deleted"})
}
