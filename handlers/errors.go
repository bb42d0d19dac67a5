package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parlour-api/models"
	"parlour-api/pkg/logger"
	util "parlour-api/pkg/utils"
	"parlour-api/repository"
	"parlour-api/services"
)

const defaultRequestTimeout = 10 * time.Second

// respondError maps an error kind to its HTTP status. Storage and unknown errors are logged and hidden.
func respondError(c *fiber.Ctx, log logger.Logger, err error) error {
	switch {
	case errors.Is(err, services.ErrAlreadyCheckedIn):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Employee is already checked in", Code: "already_checked_in"})
	case errors.Is(err, services.ErrNotCheckedIn):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Employee must be checked in before checking out", Code: "not_checked_in"})
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: err.Error(), Code: "validation_failed"})
	case errors.Is(err, services.ErrEmployeeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "Employee not found", Code: "not_found"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "Not found", Code: "not_found"})
	case errors.Is(err, services.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "Invalid credentials", Code: "unauthenticated"})
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse{Error: "Access denied", Code: "forbidden"})
	case errors.Is(err, repository.ErrDuplicateEmail):
		return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse{Error: "Email already exists", Code: "duplicate_email"})
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn(c.UserContext(), "request timed out", logger.String("path", c.Path()), logger.Error(err))
		return c.Status(fiber.StatusGatewayTimeout).JSON(models.ErrorResponse{Error: "Request timed out", Code: "timeout"})
	default:
		log.Error(c.UserContext(), "request failed", logger.String("path", c.Path()), logger.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Internal server error", Code: "internal"})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: msg, Code: "validation_failed"})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: msg, Code: "not_found"})
}

// parseBody decodes and validates the request body into payload. It writes the 400 itself and
// reports false when the handler should stop.
func parseBody(c *fiber.Ctx, payload interface{}) (bool, error) {
	if err := c.BodyParser(payload); err != nil {
		return false, badRequest(c, "Invalid request body")
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse{
			Error:  "Validation failed",
			Code:   "validation_failed",
			Errors: errs,
		})
	}
	return true, nil
}

func parseObjectID(c *fiber.Ctx, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Params(param))
	return id, err == nil
}

func requestContext(c *fiber.Ctx, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return context.WithTimeout(c.UserContext(), timeout)
}
