package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parlour-api/models"
	"parlour-api/pkg/logger"
)

const (
	defaultBadgeSize = 256
	minBadgeSize     = 128
	maxBadgeSize     = 1024
)

type EmployeeStore interface {
	CreateEmployee(ctx context.Context, employee *models.Employee) error
	FindEmployeeByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
	FindEmployees(ctx context.Context, active *bool) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*models.Employee, error)
	DeactivateEmployee(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
}

type EmployeeHandler struct {
	employees EmployeeStore
	timeout   time.Duration
	log       logger.Logger
}

func NewEmployeeHandler(employees EmployeeStore, timeout time.Duration) *EmployeeHandler {
	return &EmployeeHandler{
		employees: employees,
		timeout:   timeout,
		log:       logger.Named("employees"),
	}
}

// GetEmployees godoc
// @Summary List employees
// @Description Active employees newest first. includeInactive=true lists everyone.
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param includeInactive query bool false "Include deactivated employees"
// @Success 200 {object} models.EmployeeListResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /employees [get]
func (h *EmployeeHandler) GetEmployees(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	var active *bool
	if !c.QueryBool("includeInactive", false) {
		t := true
		active = &t
	}

	employees, err := h.employees.FindEmployees(ctx, active)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.EmployeeListResponse{Employees: employees})
}

// GetEmployee godoc
// @Summary Get an employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} models.EmployeeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return badRequest(c, "Invalid employee ID")
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	employee, err := h.employees.FindEmployeeByID(ctx, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if employee == nil {
		return notFound(c, "Employee not found")
	}
	return c.JSON(models.EmployeeResponse{Employee: *employee})
}

// CreateEmployee godoc
// @Summary Create an employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employee body models.EmployeeCreatePayload true "Employee"
// @Success 201 {object} models.EmployeeResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 409 {object} models.ErrorResponse "Email already exists"
// @Router /employees [post]
func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var payload models.EmployeeCreatePayload
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}
	joinDate, err := time.Parse("2006-01-02", payload.JoinDate)
	if err != nil {
		return badRequest(c, "Invalid joinDate")
	}

	employee := &models.Employee{
		Name:       strings.TrimSpace(payload.Name),
		Email:      strings.ToLower(strings.TrimSpace(payload.Email)),
		Phone:      strings.TrimSpace(payload.Phone),
		Position:   strings.TrimSpace(payload.Position),
		Department: strings.TrimSpace(payload.Department),
		JoinDate:   joinDate,
		IsActive:   true,
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.employees.CreateEmployee(ctx, employee); err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.EmployeeResponse{
		Message:  "Employee created successfully",
		Employee: *employee,
	})
}

// UpdateEmployee godoc
// @Summary Update an employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param employee body models.EmployeeUpdatePayload true "Fields to change"
// @Success 200 {object} models.EmployeeResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return badRequest(c, "Invalid employee ID")
	}
	var payload models.EmployeeUpdatePayload
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	update := bson.M{}
	setIf := func(key, value string) {
		if v := strings.TrimSpace(value); v != "" {
			update[key] = v
		}
	}
	setIf("name", payload.Name)
	setIf("email", strings.ToLower(payload.Email))
	setIf("phone", payload.Phone)
	setIf("position", payload.Position)
	setIf("department", payload.Department)
	if payload.JoinDate != "" {
		joinDate, err := time.Parse("2006-01-02", payload.JoinDate)
		if err != nil {
			return badRequest(c, "Invalid joinDate")
		}
		update["join_date"] = joinDate
	}
	if payload.IsActive != nil {
		update["is_active"] = *payload.IsActive
	}
	if len(update) == 0 {
		return badRequest(c, "No fields to update")
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	employee, err := h.employees.UpdateEmployee(ctx, id, update)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if employee == nil {
		return notFound(c, "Employee not found")
	}
	return c.JSON(models.EmployeeResponse{
		Message:  "Employee updated successfully",
		Employee: *employee,
	})
}

// DeleteEmployee godoc
// @Summary Deactivate an employee
// @Description Employees are never removed so their attendance history stays intact
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return badRequest(c, "Invalid employee ID")
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	employee, err := h.employees.DeactivateEmployee(ctx, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if employee == nil {
		return notFound(c, "Employee not found")
	}
	return c.JSON(models.MessageResponse{Message: "Employee deactivated successfully"})
}

// GetEmployeeBadge godoc
// @Summary Employee QR badge
// @Description PNG QR code carrying the employee ID, scanned by the punch terminal
// @Tags Employees
// @Produce png
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param size query int false "Image size in pixels (128-1024)"
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /employees/{id}/badge [get]
func (h *EmployeeHandler) GetEmployeeBadge(c *fiber.Ctx) error {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return badRequest(c, "Invalid employee ID")
	}
	size := c.QueryInt("size", defaultBadgeSize)
	if size < minBadgeSize || size > maxBadgeSize {
		return badRequest(c, "size must be between 128 and 1024")
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	employee, err := h.employees.FindEmployeeByID(ctx, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if employee == nil || !employee.IsActive {
		return notFound(c, "Employee not found")
	}

	png, err := qrcode.Encode(employee.ID.Hex(), qrcode.Medium, size)
	if err != nil {
		return respondError(c, h.log, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
