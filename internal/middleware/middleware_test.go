package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestAdminOnly(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", AdminOnly("secret"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", fiber.StatusUnauthorized},
		{"wrong", "nope", fiber.StatusUnauthorized},
		{"plain", "secret", fiber.StatusOK},
		{"bearer", "Bearer secret", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("X-API-Key", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAdminOnlyWithoutKeyLocksRoutes(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", AdminOnly(""), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("X-API-Key", "anything")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

type pageQuery struct {
	Page int    `query:"page" validate:"omitempty,min=1"`
	Kind string `query:"type" validate:"omitempty,oneof=all video"`
}

func TestValidateQuery(t *testing.T) {
	app := fiber.New()
	app.Get("/", ValidateQuery[pageQuery](), func(c *fiber.Ctx) error {
		q := Query[pageQuery](c)
		return c.JSON(fiber.Map{"page": q.Page, "type": q.Kind})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?page=2&type=video", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, 2.0, body["page"])
	assert.Equal(t, "video", body["type"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/?type=podcast", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body = decode(t, resp)
	assert.Equal(t, map[string]interface{}{"Kind": "oneof"}, body["fields"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/?page=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return assert.AnError
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not Found", decode(t, resp)["error"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestRequestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(NewLogger(LoggerConfig{Logger: &log, Fields: []string{"status", "path"}}))
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusTeapot)
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil))
	require.NoError(t, err)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, 418.0, line["status"])
	assert.Equal(t, "/teapot", line["path"])
}
