package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parlour-api/models"
	"parlour-api/pkg/export"
	"parlour-api/pkg/logger"
	"parlour-api/services"
)

// AttendanceService is what the attendance endpoints need from the service layer.
type AttendanceService interface {
	RecordPunch(ctx context.Context, req services.PunchRequest) (*services.PunchResult, error)
	ListEmployeeStatuses(ctx context.Context) ([]models.EmployeeStatus, error)
	QueryEvents(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceWithEmployee, error)
	TodayEvents(ctx context.Context) ([]models.AttendanceWithEmployee, error)
	Location() *time.Location
}

type AttendanceHandler struct {
	service AttendanceService
	timeout time.Duration
	log     logger.Logger
}

func NewAttendanceHandler(service AttendanceService, timeout time.Duration) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		timeout: timeout,
		log:     logger.Named("attendance"),
	}
}

// Punch godoc
// @Summary Punch in or out
// @Description Records a punch for an employee. The action must follow the employee's current state.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param punch body models.PunchPayload true "Punch"
// @Success 201 {object} models.PunchSuccessResponse
// @Failure 400 {object} models.ErrorResponse "Validation failed or illegal transition"
// @Failure 404 {object} models.ErrorResponse "Employee not found"
// @Failure 500 {object} models.ErrorResponse
// @Router /attendance/punch [post]
func (h *AttendanceHandler) Punch(c *fiber.Ctx) error {
	var payload models.PunchPayload
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}
	employeeID, err := primitive.ObjectIDFromHex(payload.EmployeeID)
	if err != nil {
		return badRequest(c, "Invalid employee ID")
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	result, err := h.service.RecordPunch(ctx, services.PunchRequest{
		EmployeeID: employeeID,
		Action:     models.AttendanceAction(payload.Action),
		Timestamp:  payload.Timestamp,
		Location:   strings.TrimSpace(payload.Location),
		Notes:      strings.TrimSpace(payload.Notes),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.PunchSuccessResponse{
		Message:    "Successfully " + strings.ReplaceAll(payload.Action, "_", " "),
		Attendance: result.Attendance,
		Status:     result.Status,
	})
}

// EmployeeStatus godoc
// @Summary Current check-in status of every active employee
// @Tags Attendance
// @Produce json
// @Success 200 {object} models.EmployeeStatusResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /attendance/employee-status [get]
func (h *AttendanceHandler) EmployeeStatus(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	statuses, err := h.service.ListEmployeeStatuses(ctx)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.EmployeeStatusResponse{Employees: statuses})
}

// GetAttendance godoc
// @Summary Query the attendance ledger
// @Description Dates accept RFC3339 or YYYY-MM-DD. A date-only endDate covers that whole day.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Start of range (inclusive)"
// @Param endDate query string false "End of range (inclusive)"
// @Param employeeId query string false "Employee ID"
// @Success 200 {object} models.AttendanceListResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /attendance [get]
func (h *AttendanceHandler) GetAttendance(c *fiber.Ctx) error {
	filter, err := h.parseFilter(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	events, err := h.service.QueryEvents(ctx, filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.AttendanceListResponse{Attendance: events})
}

// GetTodayAttendance godoc
// @Summary Today's ledger entries
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AttendanceListResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /attendance/today [get]
func (h *AttendanceHandler) GetTodayAttendance(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	events, err := h.service.TodayEvents(ctx)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.AttendanceListResponse{Attendance: events})
}

// ExportAttendance godoc
// @Summary Export the attendance ledger as XLSX
// @Tags Attendance
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param startDate query string false "Start of range (inclusive)"
// @Param endDate query string false "End of range (inclusive)"
// @Param employeeId query string false "Employee ID"
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse
// @Router /attendance/export [get]
func (h *AttendanceHandler) ExportAttendance(c *fiber.Ctx) error {
	filter, err := h.parseFilter(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	events, err := h.service.QueryEvents(ctx, filter)
	if err != nil {
		return respondError(c, h.log, err)
	}

	data, err := export.AttendanceWorkbook(events, h.service.Location())
	if err != nil {
		return respondError(c, h.log, err)
	}

	c.Attachment(export.AttendanceFilename(time.Now().In(h.service.Location())))
	c.Set(fiber.HeaderContentType, export.XLSXContentType)
	return c.Send(data)
}

func (h *AttendanceHandler) parseFilter(c *fiber.Ctx) (models.AttendanceFilter, error) {
	var filter models.AttendanceFilter
	loc := h.service.Location()

	if raw := c.Query("employeeId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return filter, errors.New("invalid employeeId")
		}
		filter.EmployeeID = id
	}
	if raw := c.Query("startDate"); raw != "" {
		start, err := parseDateParam(raw, false, loc)
		if err != nil {
			return filter, errors.New("invalid startDate")
		}
		filter.StartTime = &start
	}
	if raw := c.Query("endDate"); raw != "" {
		end, err := parseDateParam(raw, true, loc)
		if err != nil {
			return filter, errors.New("invalid endDate")
		}
		filter.EndTime = &end
	}
	return filter, nil
}

// parseDateParam accepts RFC3339 or a bare date. A bare date used as an upper bound means the last
// instant of that day in loc.
func parseDateParam(raw string, endOfDay bool, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	day, err := time.ParseInLocation("2006-01-02", raw, loc)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		return day.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return day, nil
}
