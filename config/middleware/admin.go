package middleware

import (
	"github.com/gofiber/fiber/v2"

	"parlour-api/models"
)

func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "Access token required", Code: "unauthenticated"})
		}
		if !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse{Error: "Admin access required", Code: "forbidden"})
		}
		return c.Next()
	}
}

func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "Access token required", Code: "unauthenticated"})
		}
		if user.Role != models.RoleSuperAdmin {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse{Error: "Super admin access required", Code: "forbidden"})
		}
		return c.Next()
	}
}
