package middleware

import (
	"errors"
	"net/http"

	"github.com/bilgisen/lawgate/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// QueryLocalsKey is where ValidateQuery stores the parsed query struct
const QueryLocalsKey = "queryParams"

// ValidateQuery parses query parameters into a fresh T per request,
// validates it and stores a *T under QueryLocalsKey.
func ValidateQuery[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := new(T)
		if err := c.QueryParser(params); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid query parameters",
				"msg":   err.Error(),
			})
		}

		if err := validate.Struct(params); err != nil {
			fields := make(map[string]string)
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					fields[fe.Field()] = fe.Tag()
				}
			}

			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "Invalid query parameters",
				"fields": fields,
			})
		}

		c.Locals(QueryLocalsKey, params)
		return c.Next()
	}
}

// Query returns the struct stored by ValidateQuery
func Query[T any](c *fiber.Ctx) *T {
	if p, ok := c.Locals(QueryLocalsKey).(*T); ok {
		return p
	}
	return new(T)
}

// ErrorHandler is the fiber error handler: it logs the error and answers
// with the status text as JSON
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	event := logger.Get().Warn()
	if code >= fiber.StatusInternalServerError {
		event = logger.Get().Error()
	}
	event.
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("HTTP error")

	return c.Status(code).JSON(fiber.Map{
		"error": http.StatusText(code),
	})
}
