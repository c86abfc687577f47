package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/acreworks/landfolio/internal/pkg/cache"
	"github.com/acreworks/landfolio/internal/pkg/jwt"
	"github.com/acreworks/landfolio/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the Authorization header into a user context
// on every request. Routes that allow anonymous access still get a context,
// just an anonymous one.
func UserContextMiddleware(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		usercontext.SetUserContext(c, usercontext.UserContext{})
		return c.Next()
	}
	token := strings.TrimPrefix(header, "Bearer ")

	// Logged-out tokens sit in a Redis blacklist until they expire.
	if revoked, err := cache.Exists("blacklist:" + token); err == nil && revoked {
		usercontext.SetUserContext(c, usercontext.UserContext{})
		return c.Next()
	}

	claims, err := jwt.ParseToken(token)
	if err != nil {
		usercontext.SetUserContext(c, usercontext.UserContext{})
		return c.Next()
	}

	usercontext.SetUserContext(c, usercontext.UserContext{
		UserID:     claims.UserID,
		Username:   claims.Name,
		IsLoggedIn: true,
		IsAdmin:    claims.IsAdmin,
	})
	return c.Next()
}

// RequireAuth ensures an authenticated user and returns JSON 401 otherwise.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	return c.Next()
}

// RequireAdmin ensures an authenticated admin.
func RequireAdmin(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	if !usercontext.IsAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "admin access required",
		})
	}
	return c.Next()
}
