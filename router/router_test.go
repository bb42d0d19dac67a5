package router

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parlour-api/handlers"
	"parlour-api/models"
	"parlour-api/pkg/metrics"
	"parlour-api/pkg/realtime"
)

type stubTokens map[string]*models.Claims

func (s stubTokens) ValidateToken(token string) (*models.Claims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, errors.New("bad token")
}

type stubUsers map[primitive.ObjectID]*models.User

func (s stubUsers) FindUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return s[id], nil
}

func TestSetupRoutes(t *testing.T) {
	Convey("Given the full route table", t, func() {
		admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
		tokens := stubTokens{"admin": {UserID: admin.ID, Role: admin.Role}}
		users := stubUsers{admin.ID: admin}

		app := fiber.New()
		SetupRoutes(app, Handlers{
			Auth:       handlers.NewAuthHandler(nil, nil, time.Second),
			Attendance: handlers.NewAttendanceHandler(nil, time.Second),
			Employee:   handlers.NewEmployeeHandler(nil, time.Second),
			Task:       handlers.NewTaskHandler(nil, nil, time.Second),
			Dashboard:  handlers.NewDashboardHandler(nil, nil, nil, time.Second),
			Socket:     handlers.NewSocketHandler(realtime.NewHub(), tokens, users, false, time.Minute),
		}, Security{Tokens: tokens, Users: users}, metrics.NewManager())

		call := func(method, path, token, body string) int {
			req := httptest.NewRequest(method, path, strings.NewReader(body))
			if body != "" {
				req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			}
			if token != "" {
				req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
			}
			resp, err := app.Test(req, -1)
			So(err, ShouldBeNil)
			return resp.StatusCode
		}

		Convey("Punching needs no token", func() {
			So(call(fiber.MethodPost, "/api/attendance/punch", "", `{"action":"punch_in"}`), ShouldEqual, fiber.StatusBadRequest)
		})

		Convey("Ledger and management routes need a token", func() {
			for _, path := range []string{"/api/attendance", "/api/attendance/today", "/api/attendance/export", "/api/employees", "/api/tasks", "/api/dashboard/stats", "/api/auth/profile"} {
				So(call(fiber.MethodGet, path, "", ""), ShouldEqual, fiber.StatusUnauthorized)
			}
		})

		Convey("Writes need a super admin", func() {
			So(call(fiber.MethodPost, "/api/employees", "admin", `{}`), ShouldEqual, fiber.StatusForbidden)
			So(call(fiber.MethodDelete, "/api/tasks/"+primitive.NewObjectID().Hex(), "admin", ""), ShouldEqual, fiber.StatusForbidden)
			So(call(fiber.MethodPost, "/api/auth/register", "admin", `{}`), ShouldEqual, fiber.StatusForbidden)
		})

		Convey("Operational endpoints are mounted", func() {
			So(call(fiber.MethodGet, "/api/health", "", ""), ShouldEqual, fiber.StatusOK)
			So(call(fiber.MethodGet, "/metrics", "", ""), ShouldEqual, fiber.StatusOK)
			So(call(fiber.MethodGet, "/ws", "", ""), ShouldEqual, fiber.StatusUpgradeRequired)
		})
	})
}
