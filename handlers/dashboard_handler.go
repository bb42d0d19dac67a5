package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"parlour-api/models"
	"parlour-api/pkg/logger"
)

type EmployeeStats interface {
	CountActiveEmployees(ctx context.Context) (int64, error)
	DepartmentDistribution(ctx context.Context) ([]models.DepartmentCount, error)
}

type TaskStats interface {
	CountByStatus(ctx context.Context) ([]models.TaskStatusCount, error)
}

type StatusLister interface {
	ListEmployeeStatuses(ctx context.Context) ([]models.EmployeeStatus, error)
}

type DashboardHandler struct {
	employees EmployeeStats
	tasks     TaskStats
	statuses  StatusLister
	timeout   time.Duration
	log       logger.Logger
}

func NewDashboardHandler(employees EmployeeStats, tasks TaskStats, statuses StatusLister, timeout time.Duration) *DashboardHandler {
	return &DashboardHandler{
		employees: employees,
		tasks:     tasks,
		statuses:  statuses,
		timeout:   timeout,
		log:       logger.Named("dashboard"),
	}
}

// GetStats godoc
// @Summary Dashboard statistics
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DashboardStats
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	var stats models.DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.ActiveEmployees, err = h.employees.CountActiveEmployees(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.DepartmentDistribution, err = h.employees.DepartmentDistribution(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TasksByStatus, err = h.tasks.CountByStatus(gctx)
		return err
	})
	g.Go(func() error {
		statuses, err := h.statuses.ListEmployeeStatuses(gctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			if s.IsCheckedIn {
				stats.CheckedInEmployees++
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(stats)
}

// Health godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,time=string}
// @Router /health [get]
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "time": time.Now().UTC()})
}
