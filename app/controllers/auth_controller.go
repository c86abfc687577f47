package controllers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/acreworks/landfolio/app/models"
	"github.com/acreworks/landfolio/app/repository"
	"github.com/acreworks/landfolio/internal/pkg/cache"
	"github.com/acreworks/landfolio/internal/pkg/jwt"
	"github.com/acreworks/landfolio/internal/pkg/mailer"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates an inactive account and mails the activation link.
func HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	if _, err := repo.GetByEmail(req.Email); err == nil {
		return jsonError(c, fiber.StatusConflict, "conflict", "An account with this email already exists")
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := user.GenerateActivationToken(); err != nil {
		return internalError(c, "Failed to create account")
	}
	if err := repo.Create(user); err != nil {
		return internalError(c, "Failed to create account")
	}

	// Activation mail failures are logged, not fatal; the token can be resent.
	if err := mailer.SendActivationMail(user.Email, user.Name, user.ActivationToken); err != nil {
		log.Printf("Failed to send activation mail to %s: %v", user.Email, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created. Please check your email to activate it.",
	})
}

// HandleActivate flips an account to active when the token matches.
func HandleActivate(c *fiber.Ctx) error {
	token := c.Query("token", "")
	if token == "" {
		return badRequest(c, "missing activation token")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByActivationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Invalid activation token")
		}
		return internalError(c, "Failed to activate account")
	}

	user.Status = models.STATUS_ACTIVE
	user.ActivationToken = ""
	if err := repo.Update(user); err != nil {
		return internalError(c, "Failed to activate account")
	}

	return c.JSON(fiber.Map{"message": "Account activated. You can now log in."})
}

// HandleLogin verifies credentials and issues a JWT.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByEmail(req.Email)
	// Do not leak whether the email or the password was wrong.
	if err != nil || !models.CheckPasswordHash(req.Password, user.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Invalid email or password")
	}
	if !user.IsActive() {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Account is not active")
	}

	token, err := jwt.GenerateToken(user.ID, user.Name, user.IsAdmin())
	if err != nil {
		return internalError(c, "Failed to issue token")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := repo.Update(user); err != nil {
		log.Printf("Failed to record last login for user %d: %v", user.ID, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"is_admin": user.IsAdmin(),
		},
	})
}

// HandleLogout blacklists the presented token until it would have expired.
func HandleLogout(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return badRequest(c, "missing token")
	}

	if err := cache.Set("blacklist:"+token, "1", 24*time.Hour); err != nil {
		log.Printf("Failed to blacklist token: %v", err)
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}
