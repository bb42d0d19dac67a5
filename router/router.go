package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"

	"parlour-api/config/middleware"
	_ "parlour-api/docs"
	"parlour-api/handlers"
	"parlour-api/pkg/metrics"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Attendance *handlers.AttendanceHandler
	Employee   *handlers.EmployeeHandler
	Task       *handlers.TaskHandler
	Dashboard  *handlers.DashboardHandler
	Socket     *handlers.SocketHandler
}

type Security struct {
	Tokens middleware.TokenValidator
	Users  middleware.UserFinder
}

// SetupRoutes registers every endpoint. Guards are attached per route so public attendance
// endpoints can share a prefix with admin ones.
func SetupRoutes(app *fiber.App, h Handlers, sec Security, m *metrics.Manager) {
	auth := middleware.AuthMiddleware(sec.Tokens, sec.Users)
	admin := middleware.RequireAdmin()
	superAdmin := middleware.RequireSuperAdmin()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Parlour API",
			"status":  "running",
			"docs":    "/docs/index.html",
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)
	if m != nil {
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}
	app.Get("/ws", h.Socket.Upgrade, h.Socket.Serve())

	api := app.Group("/api")
	api.Get("/health", handlers.Health)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/register", auth, superAdmin, h.Auth.Register)
	authGroup.Get("/profile", auth, h.Auth.Profile)

	attendance := api.Group("/attendance")
	attendance.Post("/punch", h.Attendance.Punch)
	attendance.Get("/employee-status", h.Attendance.EmployeeStatus)
	attendance.Get("/today", auth, admin, h.Attendance.GetTodayAttendance)
	attendance.Get("/export", auth, admin, h.Attendance.ExportAttendance)
	attendance.Get("/", auth, admin, h.Attendance.GetAttendance)

	employees := api.Group("/employees")
	employees.Get("/", auth, admin, h.Employee.GetEmployees)
	employees.Get("/:id", auth, admin, h.Employee.GetEmployee)
	employees.Get("/:id/badge", auth, admin, h.Employee.GetEmployeeBadge)
	employees.Post("/", auth, superAdmin, h.Employee.CreateEmployee)
	employees.Put("/:id", auth, superAdmin, h.Employee.UpdateEmployee)
	employees.Delete("/:id", auth, superAdmin, h.Employee.DeleteEmployee)

	tasks := api.Group("/tasks")
	tasks.Get("/", auth, admin, h.Task.GetTasks)
	tasks.Get("/:id", auth, admin, h.Task.GetTask)
	tasks.Get("/:id/occurrences", auth, admin, h.Task.GetTaskOccurrences)
	tasks.Post("/", auth, superAdmin, h.Task.CreateTask)
	tasks.Put("/:id", auth, superAdmin, h.Task.UpdateTask)
	tasks.Delete("/:id", auth, superAdmin, h.Task.DeleteTask)

	api.Get("/dashboard/stats", auth, admin, h.Dashboard.GetStats)
}
