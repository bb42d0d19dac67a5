package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parlour-api/models"
	"parlour-api/pkg/logger"
)

// LocalUser is the fiber.Ctx Locals key holding the authenticated *models.User.
const LocalUser = "user"

type TokenValidator interface {
	ValidateToken(token string) (*models.Claims, error)
}

type UserFinder interface {
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *fiber.Ctx) (string, bool) {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// AuthMiddleware validates the bearer token and loads the user it names.
// Tokens for users that no longer exist are rejected.
func AuthMiddleware(tokens TokenValidator, users UserFinder) fiber.Handler {
	log := logger.Named("auth")
	return func(c *fiber.Ctx) error {
		token, ok := BearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "Access token required", Code: "unauthenticated"})
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "Invalid token", Code: "unauthenticated"})
		}

		user, err := users.FindUserByID(c.UserContext(), claims.UserID)
		if err != nil {
			log.Error(c.UserContext(), "failed to load token user", logger.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Internal server error", Code: "internal"})
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "Invalid token", Code: "unauthenticated"})
		}

		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(LocalUser).(*models.User)
	return user, ok && user != nil
}
