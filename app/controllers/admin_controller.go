package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/acreworks/landfolio/app/models"
	"github.com/acreworks/landfolio/app/repository"
	"github.com/acreworks/landfolio/internal/pkg/statistics"
	"github.com/acreworks/landfolio/internal/pkg/usercontext"
)

// HandleAdminDashboard serves the back-office aggregates.
func HandleAdminDashboard(c *fiber.Ctx) error {
	stats, err := statistics.GetDashboardStats(repository.GetGlobalFactory().GetRepositories())
	if err != nil {
		return internalError(c, "Failed to compute dashboard stats")
	}
	return c.JSON(stats)
}

// HandleAdminListUsers lists or searches user accounts.
func HandleAdminListUsers(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetUserRepository()

	if query := c.Query("q", ""); query != "" {
		users, err := repo.Search(query)
		if err != nil {
			return internalError(c, "Failed to search users")
		}
		return c.JSON(fiber.Map{"users": users})
	}

	offset, limit := parsePagination(c)
	users, err := repo.List(offset, limit)
	if err != nil {
		return internalError(c, "Failed to load users")
	}
	total, err := repo.Count()
	if err != nil {
		return internalError(c, "Failed to count users")
	}
	return c.JSON(fiber.Map{"users": users, "total": total})
}

type adminUpdateUserRequest struct {
	Role   string `json:"role"`
	Status string `json:"status"`
}

// HandleAdminUpdateUser changes a user's role or status.
func HandleAdminUpdateUser(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	var req adminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "User not found")
		}
		return internalError(c, "Failed to load user")
	}

	// An admin cannot demote or disable themselves.
	if user.ID == usercontext.GetUserID(c) {
		return jsonError(c, fiber.StatusConflict, "conflict", "You cannot modify your own account here")
	}

	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Status != "" {
		user.Status = req.Status
	}
	if err := user.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repo.Update(user); err != nil {
		return internalError(c, "Failed to update user")
	}
	return c.JSON(user)
}

// HandleAdminDeleteUser soft-deletes an account.
func HandleAdminDeleteUser(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid user id")
	}
	if userID == usercontext.GetUserID(c) {
		return jsonError(c, fiber.StatusConflict, "conflict", "You cannot delete your own account")
	}
	if err := repository.GetGlobalFactory().GetUserRepository().Delete(userID); err != nil {
		return internalError(c, "Failed to delete user")
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

// HandleAdminGetSettings returns the editable application settings.
func HandleAdminGetSettings(c *fiber.Ctx) error {
	settings, err := repository.GetGlobalFactory().GetSettingRepository().Get()
	if err != nil {
		return internalError(c, "Failed to load settings")
	}
	return c.JSON(settings)
}

// HandleAdminSaveSettings validates and persists the application settings.
func HandleAdminSaveSettings(c *fiber.Ctx) error {
	var settings models.AppSettings
	if err := c.BodyParser(&settings); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := repository.GetGlobalFactory().GetSettingRepository().Save(&settings); err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Settings saved"})
}

// HandleAdminListMessages lists contact-form submissions.
func HandleAdminListMessages(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	messages, err := repository.GetGlobalFactory().GetContactRepository().List(offset, limit)
	if err != nil {
		return internalError(c, "Failed to load messages")
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// HandleAdminGetMessage returns one contact message.
func HandleAdminGetMessage(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid message id")
	}
	message, err := repository.GetGlobalFactory().GetContactRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Message not found")
		}
		return internalError(c, "Failed to load message")
	}
	return c.JSON(message)
}

// HandleAdminMarkReplied stamps a contact message as answered.
func HandleAdminMarkReplied(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid message id")
	}
	if err := repository.GetGlobalFactory().GetContactRepository().MarkReplied(id); err != nil {
		return internalError(c, "Failed to update message")
	}
	return c.JSON(fiber.Map{"message": "Marked as replied"})
}

// HandleAdminDeleteMessage removes a contact message.
func HandleAdminDeleteMessage(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid message id")
	}
	if err := repository.GetGlobalFactory().GetContactRepository().Delete(id); err != nil {
		return internalError(c, "Failed to delete message")
	}
	return c.JSON(fiber.Map{"message": "Message deleted"})
}
