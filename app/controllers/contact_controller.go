package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/acreworks/landfolio/app/models"
	"github.com/acreworks/landfolio/app/repository"
	"github.com/acreworks/landfolio/internal/pkg/env"
	"github.com/acreworks/landfolio/internal/pkg/hcaptcha"
	"github.com/acreworks/landfolio/internal/pkg/mailer"
)

type contactRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Subject      string `json:"subject"`
	Body         string `json:"body"`
	PropertyID   *uint  `json:"property_id"`
	CaptchaToken string `json:"captcha_token"`
}

// HandleContact stores a contact-form message and relays it to the sales
// inbox. Captcha verification is skipped when no secret is configured.
func HandleContact(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Email == "" || req.Body == "" {
		return badRequest(c, "email and message are required")
	}

	if env.GetEnv("HCAPTCHA_SECRET", "") != "" {
		ok, err := hcaptcha.Verify(req.CaptchaToken)
		if err != nil || !ok {
			return jsonError(c, fiber.StatusUnprocessableEntity, "captcha_failed", "Captcha verification failed")
		}
	}

	message := &models.ContactMessage{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Subject:    req.Subject,
		Body:       req.Body,
		PropertyID: req.PropertyID,
	}
	if err := message.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repository.GetGlobalFactory().GetContactRepository().Create(message); err != nil {
		return internalError(c, "Failed to save message")
	}

	settings := models.GetAppSettings()
	if settings.ContactEmail != "" {
		body := "<p>From: " + req.Name + " &lt;" + req.Email + "&gt;</p><p>" + req.Body + "</p>"
		if err := mailer.SendMail(settings.ContactEmail, "Contact form: "+req.Subject, body); err != nil {
			log.Printf("Failed to relay contact message %d: %v", message.ID, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Thanks, we will get back to you."})
}
