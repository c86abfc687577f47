package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/acreworks/landfolio/app/models"
	"github.com/acreworks/landfolio/app/repository"
	"github.com/acreworks/landfolio/internal/pkg/financing"
)

// HandleListProperties serves the public catalog. Hidden parcels never appear
// here regardless of the filter.
func HandleListProperties(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)

	filter := repository.PropertyFilter{
		State:  c.Query("state", ""),
		County: c.Query("county", ""),
		Status: c.Query("status", ""),
	}
	if filter.Status == models.PROPERTY_HIDDEN {
		filter.Status = ""
	}
	if min, ok := parseDecimalQuery(c, "min_price"); ok {
		filter.MinPrice = min
	}
	if max, ok := parseDecimalQuery(c, "max_price"); ok {
		filter.MaxPrice = max
	}
	if raw := c.Query("featured", ""); raw != "" {
		featured := raw == "true" || raw == "1"
		filter.Featured = &featured
	}

	properties, total, err := repository.GetGlobalFactory().GetPropertyRepository().List(filter, offset, limit)
	if err != nil {
		return internalError(c, "Failed to load properties")
	}

	visible := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if p.Status != models.PROPERTY_HIDDEN {
			visible = append(visible, p)
		}
	}

	return c.JSON(fiber.Map{
		"properties": visible,
		"total":      total,
	})
}

// HandleFeaturedProperties serves the home-page strip of featured parcels.
func HandleFeaturedProperties(c *fiber.Ctx) error {
	properties, err := repository.GetGlobalFactory().GetPropertyRepository().GetFeatured(6)
	if err != nil {
		return internalError(c, "Failed to load properties")
	}
	return c.JSON(fiber.Map{"properties": properties})
}

// HandleGetProperty serves a single parcel by slug or numeric id.
func HandleGetProperty(c *fiber.Ctx) error {
	property, err := findProperty(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Property not found")
		}
		return internalError(c, "Failed to load property")
	}
	if property.Status == models.PROPERTY_HIDDEN {
		return notFound(c, "Property not found")
	}
	return c.JSON(property)
}

// HandlePaymentPlans returns the financing table for a parcel: one plan per
// down-payment tier at the requested term.
func HandlePaymentPlans(c *fiber.Ctx) error {
	property, err := findProperty(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Property not found")
		}
		return internalError(c, "Failed to load property")
	}

	term := queryTerm(c)
	plans, err := financing.AllPlans(property.Price, term)
	if err != nil {
		if errors.Is(err, financing.ErrInvalidInput) {
			return badRequest(c, err.Error())
		}
		return internalError(c, "Failed to compute payment plans")
	}

	return c.JSON(fiber.Map{
		"property_id": property.ID,
		"price":       property.Price,
		"term_months": term,
		"plans":       plans,
	})
}

// HandleClosestPlan guides a buyer from a desired monthly payment to the
// nearest tier.
func HandleClosestPlan(c *fiber.Ctx) error {
	property, err := findProperty(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Property not found")
		}
		return internalError(c, "Failed to load property")
	}

	desired, ok := parseDecimalQuery(c, "monthly")
	if !ok {
		return badRequest(c, "monthly query parameter is required")
	}

	plan, err := financing.ClosestPlan(property.Price, queryTerm(c), desired)
	if err != nil {
		if errors.Is(err, financing.ErrInvalidInput) {
			return badRequest(c, err.Error())
		}
		return internalError(c, "Failed to compute payment plan")
	}

	return c.JSON(plan)
}

func findProperty(c *fiber.Ctx) (*models.Property, error) {
	repo := repository.GetGlobalFactory().GetPropertyRepository()
	key := c.Params("slug")
	if id, err := strconv.ParseUint(key, 10, 32); err == nil {
		return repo.GetByID(uint(id))
	}
	return repo.GetBySlug(key)
}

func queryTerm(c *fiber.Ctx) int {
	term, err := strconv.Atoi(c.Query("term", ""))
	if err != nil || term <= 0 {
		return models.GetAppSettings().DefaultTermMonths
	}
	return term
}
