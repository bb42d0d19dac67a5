package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parlour-api/config/middleware"
	"parlour-api/models"
	"parlour-api/pkg/logger"
	"parlour-api/services"
)

type TaskStore interface {
	CreateTask(ctx context.Context, task *models.Task) error
	FindTaskByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	FindTasks(ctx context.Context, filter bson.M) ([]models.TaskWithPeople, error)
	FindTaskWithPeople(ctx context.Context, id primitive.ObjectID) (*models.TaskWithPeople, error)
	UpdateTask(ctx context.Context, id primitive.ObjectID, updateData bson.M) (bool, error)
	DeleteTask(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// EmployeeFinder checks that a task assignee exists.
type EmployeeFinder interface {
	FindEmployeeByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
}

type TaskHandler struct {
	tasks     TaskStore
	employees EmployeeFinder
	timeout   time.Duration
	log       logger.Logger
}

func NewTaskHandler(tasks TaskStore, employees EmployeeFinder, timeout time.Duration) *TaskHandler {
	return &TaskHandler{
		tasks:     tasks,
		employees: employees,
		timeout:   timeout,
		log:       logger.Named("tasks"),
	}
}

// GetTasks godoc
// @Summary List tasks
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param assignedTo query string false "Filter by assignee employee ID"
// @Success 200 {object} models.TaskListResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) GetTasks(c *fiber.Ctx) error {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		if !validTaskStatus(status) {
			return badRequest(c, "Invalid status")
		}
		filter["status"] = status
	}
	if raw := c.Query("assignedTo"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return badRequest(c, "Invalid assignedTo")
		}
		filter["assigned_to"] = id
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	tasks, err := h.tasks.FindTasks(ctx, filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.TaskListResponse{Tasks: tasks})
}

// GetTask godoc
// @Summary Get a task
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} models.TaskResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return badRequest(c, "Invalid task ID")
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	task, err := h.tasks.FindTaskWithPeople(ctx, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if task == nil {
		return notFound(c, "Task not found")
	}
	return c.JSON(models.TaskResponse{Task: *task})
}

// CreateTask godoc
// @Summary Create a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param task body models.TaskCreatePayload true "Task"
// @Success 201 {object} models.TaskResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 404 {object} models.ErrorResponse "Assignee not found"
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return respondError(c, h.log, services.ErrUnauthenticated)
	}
	var payload models.TaskCreatePayload
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}
	assignee, err := primitive.ObjectIDFromHex(payload.AssignedTo)
	if err != nil {
		return badRequest(c, "Invalid assignedTo")
	}
	dueDate, err := time.Parse("2006-01-02", payload.DueDate)
	if err != nil {
		return badRequest(c, "Invalid dueDate")
	}
	priority := payload.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if ok, err := h.assigneeExists(ctx, assignee); err != nil {
		return respondError(c, h.log, err)
	} else if !ok {
		return notFound(c, "Employee not found")
	}

	task := &models.Task{
		Title:          strings.TrimSpace(payload.Title),
		Description:    strings.TrimSpace(payload.Description),
		AssignedTo:     assignee,
		AssignedBy:     user.ID,
		Status:         models.TaskStatusPending,
		Priority:       priority,
		DueDate:        dueDate,
		RecurrenceRule: payload.RecurrenceRule,
	}
	if err := h.tasks.CreateTask(ctx, task); err != nil {
		return respondError(c, h.log, err)
	}

	created, err := h.tasks.FindTaskWithPeople(ctx, task.ID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if created == nil {
		return notFound(c, "Task not found")
	}
	return c.Status(fiber.StatusCreated).JSON(models.TaskResponse{
		Message: "Task created successfully",
		Task:    *created,
	})
}

// UpdateTask godoc
// @Summary Update a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param task body models.TaskUpdatePayload true "Fields to change"
// @Success 200 {object} models.TaskResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return badRequest(c, "Invalid task ID")
	}
	var payload models.TaskUpdatePayload
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	update := bson.M{}
	if v := strings.TrimSpace(payload.Title); v != "" {
		update["title"] = v
	}
	if v := strings.TrimSpace(payload.Description); v != "" {
		update["description"] = v
	}
	if payload.Status != "" {
		update["status"] = payload.Status
	}
	if payload.Priority != "" {
		update["priority"] = payload.Priority
	}
	if payload.RecurrenceRule != "" {
		update["recurrence_rule"] = payload.RecurrenceRule
	}
	if payload.DueDate != "" {
		dueDate, err := time.Parse("2006-01-02", payload.DueDate)
		if err != nil {
			return badRequest(c, "Invalid dueDate")
		}
		update["due_date"] = dueDate
	}
	if payload.AssignedTo != "" {
		assignee, err := primitive.ObjectIDFromHex(payload.AssignedTo)
		if err != nil {
			return badRequest(c, "Invalid assignedTo")
		}
		if ok, err := h.assigneeExists(ctx, assignee); err != nil {
			return respondError(c, h.log, err)
		} else if !ok {
			return notFound(c, "Employee not found")
		}
		update["assigned_to"] = assignee
	}
	if len(update) == 0 {
		return badRequest(c, "No fields to update")
	}

	matched, err := h.tasks.UpdateTask(ctx, id, update)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if !matched {
		return notFound(c, "Task not found")
	}

	task, err := h.tasks.FindTaskWithPeople(ctx, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if task == nil {
		return notFound(c, "Task not found")
	}
	return c.JSON(models.TaskResponse{
		Message: "Task updated successfully",
		Task:    *task,
	})
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return badRequest(c, "Invalid task ID")
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	deleted, err := h.tasks.DeleteTask(ctx, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if !deleted {
		return notFound(c, "Task not found")
	}
	return c.JSON(models.MessageResponse{Message: "Task deleted successfully"})
}

// GetTaskOccurrences godoc
// @Summary Expand a recurring task
// @Description Due dates between from and to (YYYY-MM-DD or RFC3339, inclusive). Defaults to the next 30 days.
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param from query string false "Window start"
// @Param to query string false "Window end"
// @Success 200 {object} models.TaskOccurrencesResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /tasks/{id}/occurrences [get]
func (h *TaskHandler) GetTaskOccurrences(c *fiber.Ctx) error {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return badRequest(c, "Invalid task ID")
	}

	from := time.Now().UTC().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 30).Add(-time.Nanosecond)
	if raw := c.Query("from"); raw != "" {
		t, err := parseDateParam(raw, false, time.UTC)
		if err != nil {
			return badRequest(c, "Invalid from")
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := parseDateParam(raw, true, time.UTC)
		if err != nil {
			return badRequest(c, "Invalid to")
		}
		to = t
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	task, err := h.tasks.FindTaskByID(ctx, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if task == nil {
		return notFound(c, "Task not found")
	}

	occurrences, err := services.TaskOccurrences(*task, from, to)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.TaskOccurrencesResponse{TaskID: task.ID.Hex(), Occurrences: occurrences})
}

func (h *TaskHandler) assigneeExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	employee, err := h.employees.FindEmployeeByID(ctx, id)
	if err != nil {
		return false, err
	}
	return employee != nil && employee.IsActive, nil
}

func validTaskStatus(s string) bool {
	switch s {
	case models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusCompleted, models.TaskStatusCancelled:
		return true
	}
	return false
}
