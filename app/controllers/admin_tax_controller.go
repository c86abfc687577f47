package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/acreworks/landfolio/app/models"
	"github.com/acreworks/landfolio/app/repository"
)

// HandleAdminListTaxRecords lists the tax years tracked for one parcel.
func HandleAdminListTaxRecords(c *fiber.Ctx) error {
	propertyID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid property id")
	}
	records, err := repository.GetGlobalFactory().GetTaxRepository().GetByPropertyID(propertyID)
	if err != nil {
		return internalError(c, "Failed to load tax records")
	}
	return c.JSON(fiber.Map{"tax_records": records})
}

// HandleAdminCreateTaxRecord opens a tax year for a parcel.
func HandleAdminCreateTaxRecord(c *fiber.Ctx) error {
	propertyID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid property id")
	}

	var record models.TaxRecord
	if err := c.BodyParser(&record); err != nil {
		return badRequest(c, "invalid request body")
	}
	record.ID = 0
	record.PropertyID = propertyID
	if record.Year <= 0 {
		return badRequest(c, "year is required")
	}

	if err := repository.GetGlobalFactory().GetTaxRepository().Create(&record); err != nil {
		return jsonError(c, fiber.StatusConflict, "conflict", "Tax year already exists for this property")
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

type payTaxRequest struct {
	AmountPaid decimal.Decimal `json:"amount_paid"`
	PaidAt     time.Time       `json:"paid_at"`
}

// HandleAdminPayTaxRecord marks a tax year settled.
func HandleAdminPayTaxRecord(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "recordId")
	if err != nil {
		return badRequest(c, "invalid tax record id")
	}

	var req payTaxRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	repo := repository.GetGlobalFactory().GetTaxRepository()
	record, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Tax record not found")
		}
		return internalError(c, "Failed to load tax record")
	}

	if req.PaidAt.IsZero() {
		req.PaidAt = time.Now()
	}
	if req.AmountPaid.IsZero() {
		req.AmountPaid = record.AmountDue
	}
	record.AmountPaid = req.AmountPaid
	record.PaidAt = &req.PaidAt

	if err := repo.Update(record); err != nil {
		return internalError(c, "Failed to update tax record")
	}
	return c.JSON(record)
}

// HandleAdminDeleteTaxRecord removes a tax year.
func HandleAdminDeleteTaxRecord(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "recordId")
	if err != nil {
		return badRequest(c, "invalid tax record id")
	}
	if err := repository.GetGlobalFactory().GetTaxRepository().Delete(id); err != nil {
		return internalError(c, "Failed to delete tax record")
	}
	return c.JSON(fiber.Map{"message": "Tax record deleted"})
}
