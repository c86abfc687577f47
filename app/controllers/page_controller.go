package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/acreworks/landfolio/app/repository"
)

// HandleListPages returns the active informational pages for the site footer.
func HandleListPages(c *fiber.Ctx) error {
	pages, err := repository.GetGlobalFactory().GetPageRepository().GetActive()
	if err != nil {
		return internalError(c, "Failed to load pages")
	}
	return c.JSON(fiber.Map{"pages": pages})
}

// HandleGetPage serves one informational page by slug.
func HandleGetPage(c *fiber.Ctx) error {
	page, err := repository.GetGlobalFactory().GetPageRepository().GetBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Page not found")
		}
		return internalError(c, "Failed to load page")
	}
	if !page.IsActive {
		return notFound(c, "Page not found")
	}
	return c.JSON(page)
}
