package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gofiber/fiber/v2"
	. "github.com/smartystreets/goconvey/convey"

	"parlour-api/config/middleware"
	"parlour-api/models"
)

// doJSON sends body (when non-nil) as JSON and returns the response status and raw body.
func doJSON(app *fiber.App, method, path string, body interface{}) (int, []byte) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		So(err, ShouldBeNil)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	So(err, ShouldBeNil)
	return resp.StatusCode, readBody(resp)
}

func readBody(resp *http.Response) []byte {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	So(err, ShouldBeNil)
	return data
}

func decodeError(body []byte) models.ErrorResponse {
	var out models.ErrorResponse
	So(json.Unmarshal(body, &out), ShouldBeNil)
	return out
}

// asUser stands in for AuthMiddleware in handler tests.
func asUser(user *models.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalUser, user)
		return c.Next()
	}
}
