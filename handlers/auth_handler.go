package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"parlour-api/config/middleware"
	"parlour-api/models"
	"parlour-api/pkg/logger"
	"parlour-api/pkg/password"
	"parlour-api/services"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type TokenIssuer interface {
	GenerateToken(user *models.User) (string, error)
}

type AuthHandler struct {
	users   UserStore
	tokens  TokenIssuer
	timeout time.Duration
	log     logger.Logger
}

func NewAuthHandler(users UserStore, tokens TokenIssuer, timeout time.Duration) *AuthHandler {
	return &AuthHandler{
		users:   users,
		tokens:  tokens,
		timeout: timeout,
		log:     logger.Named("auth"),
	}
}

// Login godoc
// @Summary Login
// @Description Verifies email and password and returns a PASETO token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.UserLoginPayload true "Credentials"
// @Success 200 {object} models.LoginSuccessResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 401 {object} models.ErrorResponse "Invalid credentials"
// @Failure 500 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload models.UserLoginPayload
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	user, err := h.users.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(payload.Email)))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if user == nil || !password.CheckPasswordHash(payload.Password, user.Password) {
		return respondError(c, h.log, services.ErrUnauthenticated)
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		return respondError(c, h.log, err)
	}

	h.log.Info(ctx, "user logged in", logger.String("user", user.ID.Hex()), logger.String("role", user.Role))
	return c.JSON(models.LoginSuccessResponse{
		Message: "Login successful",
		Token:   token,
		User:    *user,
	})
}

// Register godoc
// @Summary Register a dashboard user
// @Description Creates an admin or super admin account (super admin only)
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body models.UserRegisterPayload true "New user"
// @Success 201 {object} models.UserResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Email already exists"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var payload models.UserRegisterPayload
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	hashedPassword, err := password.HashPassword(payload.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(payload.Name),
		Email:    strings.ToLower(strings.TrimSpace(payload.Email)),
		Password: hashedPassword,
		Role:     payload.Role,
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.users.CreateUser(ctx, user); err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.UserResponse{
		Message: "User created successfully",
		User:    *user,
	})
}

// Profile godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return respondError(c, h.log, services.ErrUnauthenticated)
	}
	return c.JSON(models.UserResponse{User: *user})
}
