package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/acreworks/landfolio/app/models"
	"github.com/acreworks/landfolio/app/repository"
)

// HandleAdminListPages lists every informational page, inactive included.
func HandleAdminListPages(c *fiber.Ctx) error {
	pages, err := repository.GetGlobalFactory().GetPageRepository().GetAll()
	if err != nil {
		return internalError(c, "Failed to load pages")
	}
	return c.JSON(fiber.Map{"pages": pages})
}

// HandleAdminCreatePage creates an informational page.
func HandleAdminCreatePage(c *fiber.Ctx) error {
	var page models.Page
	if err := c.BodyParser(&page); err != nil {
		return badRequest(c, "invalid request body")
	}
	page.ID = 0
	if page.Slug == "" {
		page.Slug = models.Slugify(page.Title)
	}
	if err := page.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	repo := repository.GetGlobalFactory().GetPageRepository()
	exists, err := repo.SlugExists(page.Slug)
	if err != nil {
		return internalError(c, "Failed to check slug")
	}
	if exists {
		return jsonError(c, fiber.StatusConflict, "conflict", "A page with this slug already exists")
	}
	if err := repo.Create(&page); err != nil {
		return internalError(c, "Failed to create page")
	}
	return c.Status(fiber.StatusCreated).JSON(page)
}

// HandleAdminUpdatePage edits an informational page.
func HandleAdminUpdatePage(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid page id")
	}

	repo := repository.GetGlobalFactory().GetPageRepository()
	page, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Page not found")
		}
		return internalError(c, "Failed to load page")
	}

	if err := c.BodyParser(page); err != nil {
		return badRequest(c, "invalid request body")
	}
	page.ID = id
	if err := page.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repo.Update(page); err != nil {
		return internalError(c, "Failed to update page")
	}
	return c.JSON(page)
}

// HandleAdminDeletePage removes an informational page.
func HandleAdminDeletePage(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid page id")
	}
	if err := repository.GetGlobalFactory().GetPageRepository().Delete(id); err != nil {
		return internalError(c, "Failed to delete page")
	}
	return c.JSON(fiber.Map{"message": "Page deleted"})
}
