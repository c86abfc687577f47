package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/acreworks/landfolio/app/models"
	"github.com/acreworks/landfolio/app/repository"
	"github.com/acreworks/landfolio/internal/pkg/financing"
	"github.com/acreworks/landfolio/internal/pkg/imagestore"
	"github.com/acreworks/landfolio/internal/pkg/listing"
	"github.com/acreworks/landfolio/internal/pkg/statistics"
)

// images is the object-storage client for property photos. It stays nil when
// storage is not configured; upload endpoints then return 503.
var images *imagestore.Client

// InitializeImageStore wires the object-storage client into the controllers.
func InitializeImageStore(client *imagestore.Client) {
	images = client
}

// HandleAdminListProperties lists the full catalog, hidden parcels included.
func HandleAdminListProperties(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	filter := repository.PropertyFilter{
		State:  c.Query("state", ""),
		County: c.Query("county", ""),
		Status: c.Query("status", ""),
	}
	properties, total, err := repository.GetGlobalFactory().GetPropertyRepository().List(filter, offset, limit)
	if err != nil {
		return internalError(c, "Failed to load properties")
	}
	return c.JSON(fiber.Map{"properties": properties, "total": total})
}

// HandleAdminCreateProperty adds a parcel to the catalog.
func HandleAdminCreateProperty(c *fiber.Ctx) error {
	var property models.Property
	if err := c.BodyParser(&property); err != nil {
		return badRequest(c, "invalid request body")
	}
	property.ID = 0
	if property.Status == "" {
		property.Status = models.PROPERTY_AVAILABLE
	}
	if property.Slug == "" {
		property.Slug = models.Slugify(property.County + " " + property.State + " " + property.Title)
	}
	if err := property.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repository.GetGlobalFactory().GetPropertyRepository().Create(&property); err != nil {
		return internalError(c, "Failed to create property")
	}
	statistics.InvalidateDashboardCache()
	return c.Status(fiber.StatusCreated).JSON(property)
}

// HandleAdminUpdateProperty edits a parcel.
func HandleAdminUpdateProperty(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid property id")
	}

	repo := repository.GetGlobalFactory().GetPropertyRepository()
	property, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Property not found")
		}
		return internalError(c, "Failed to load property")
	}

	if err := c.BodyParser(property); err != nil {
		return badRequest(c, "invalid request body")
	}
	property.ID = id
	if err := property.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repo.Update(property); err != nil {
		return internalError(c, "Failed to update property")
	}
	statistics.InvalidateDashboardCache()
	return c.JSON(property)
}

// HandleAdminDeleteProperty removes a parcel and its stored photos.
func HandleAdminDeleteProperty(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid property id")
	}

	factory := repository.GetGlobalFactory()
	// Parcels with loans against them stay in the catalog.
	if loans, err := factory.GetLoanRepository().GetByPropertyID(id); err == nil && len(loans) > 0 {
		return jsonError(c, fiber.StatusConflict, "conflict", "Property has loans and cannot be deleted")
	}

	repo := factory.GetPropertyRepository()
	if imgs, err := repo.GetImages(id); err == nil && images != nil {
		for _, img := range imgs {
			if err := images.Delete(c.Context(), img.ObjectKey); err != nil {
				log.Printf("Failed to delete image %s: %v", img.ObjectKey, err)
			}
		}
	}
	if err := repo.Delete(id); err != nil {
		return internalError(c, "Failed to delete property")
	}
	statistics.InvalidateDashboardCache()
	return c.JSON(fiber.Map{"message": "Property deleted"})
}

// HandleAdminUploadImage stores a photo in object storage and attaches it to
// the parcel.
func HandleAdminUploadImage(c *fiber.Ctx) error {
	if images == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "storage_disabled", "Image storage is not configured")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid property id")
	}

	repo := repository.GetGlobalFactory().GetPropertyRepository()
	if _, err := repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Property not found")
		}
		return internalError(c, "Failed to load property")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "image file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return internalError(c, "Failed to read upload")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	key, url, err := images.Upload(c.Context(), id, fileHeader.Filename, file, contentType)
	if err != nil {
		return internalError(c, "Failed to store image")
	}

	image := &models.PropertyImage{
		PropertyID: id,
		ObjectKey:  key,
		PublicURL:  url,
		FileName:   fileHeader.Filename,
		IsPrimary:  c.FormValue("is_primary") == "true",
	}
	if err := repo.AddImage(image); err != nil {
		return internalError(c, "Failed to save image record")
	}

	return c.Status(fiber.StatusCreated).JSON(image)
}

// HandleAdminDeleteImage removes one photo.
func HandleAdminDeleteImage(c *fiber.Ctx) error {
	propertyID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid property id")
	}
	imageID, err := parseUintParam(c, "imageId")
	if err != nil {
		return badRequest(c, "invalid image id")
	}

	repo := repository.GetGlobalFactory().GetPropertyRepository()
	imgs, err := repo.GetImages(propertyID)
	if err != nil {
		return internalError(c, "Failed to load images")
	}
	for _, img := range imgs {
		if img.ID != imageID {
			continue
		}
		if images != nil {
			if err := images.Delete(c.Context(), img.ObjectKey); err != nil {
				log.Printf("Failed to delete image %s: %v", img.ObjectKey, err)
			}
		}
		if err := repo.DeleteImage(imageID); err != nil {
			return internalError(c, "Failed to delete image record")
		}
		return c.JSON(fiber.Map{"message": "Image deleted"})
	}
	return notFound(c, "Image not found")
}

// HandleAdminListingHTML renders the marketplace listing HTML for a parcel.
func HandleAdminListingHTML(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid property id")
	}

	property, err := repository.GetGlobalFactory().GetPropertyRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Property not found")
		}
		return internalError(c, "Failed to load property")
	}

	settings := models.GetAppSettings()
	html, err := listing.Generate(property, queryTerm(c), settings.ListingFooter)
	if err != nil {
		if errors.Is(err, financing.ErrInvalidInput) {
			return badRequest(c, err.Error())
		}
		return internalError(c, "Failed to render listing")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}
