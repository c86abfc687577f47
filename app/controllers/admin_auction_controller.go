package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/acreworks/landfolio/app/models"
	"github.com/acreworks/landfolio/app/repository"
)

// HandleAdminListAuctions lists the acquisition pipeline, optionally filtered
// by status.
func HandleAdminListAuctions(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	auctions, err := repository.GetGlobalFactory().GetAuctionRepository().List(c.Query("status", ""), offset, limit)
	if err != nil {
		return internalError(c, "Failed to load auctions")
	}
	return c.JSON(fiber.Map{"auctions": auctions})
}

// HandleAdminCreateAuction adds a tax-sale parcel to the watch list.
func HandleAdminCreateAuction(c *fiber.Ctx) error {
	var auction models.Auction
	if err := c.BodyParser(&auction); err != nil {
		return badRequest(c, "invalid request body")
	}
	auction.ID = 0
	if auction.Status == "" {
		auction.Status = models.AUCTION_WATCHING
	}
	if err := auction.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repository.GetGlobalFactory().GetAuctionRepository().Create(&auction); err != nil {
		return internalError(c, "Failed to create auction")
	}
	return c.Status(fiber.StatusCreated).JSON(auction)
}

// HandleAdminUpdateAuction edits an auction entry (bids, status, notes, the
// link to the catalog property once the deed is recorded).
func HandleAdminUpdateAuction(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid auction id")
	}

	repo := repository.GetGlobalFactory().GetAuctionRepository()
	auction, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Auction not found")
		}
		return internalError(c, "Failed to load auction")
	}

	if err := c.BodyParser(auction); err != nil {
		return badRequest(c, "invalid request body")
	}
	auction.ID = id
	if err := auction.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repo.Update(auction); err != nil {
		return internalError(c, "Failed to update auction")
	}
	return c.JSON(auction)
}

// HandleAdminDeleteAuction removes an auction entry.
func HandleAdminDeleteAuction(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid auction id")
	}
	if err := repository.GetGlobalFactory().GetAuctionRepository().Delete(id); err != nil {
		return internalError(c, "Failed to delete auction")
	}
	return c.JSON(fiber.Map{"message": "Auction deleted"})
}
