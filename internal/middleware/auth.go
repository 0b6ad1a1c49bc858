package middleware

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/bilgisen/lawgate/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// AuthConfig defines the config for the auth middleware
type AuthConfig struct {
	// Skip defines a function to skip middleware.
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Validator is a function to validate the API key.
	// Required.
	Validator func(key string) (bool, error)

	// ErrorHandler defines a function which is executed for an invalid API key.
	// Optional. Default: 401 Invalid or missing API Key
	ErrorHandler fiber.ErrorHandler

	// Header is the header key where to get the API key from.
	// Optional. Default: "X-API-Key"
	Header string
}

// ConfigDefault is the default config
var ConfigDefault = AuthConfig{
	ErrorHandler: func(c *fiber.Ctx, err error) error {
		logger.Get().Warn().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Err(err).
			Msg("Authentication failed")

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or missing API Key",
		})
	},
	Header: "X-API-Key",
}

// NewAuth creates a new API key middleware handler
func NewAuth(config AuthConfig) fiber.Handler {
	cfg := config
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = ConfigDefault.ErrorHandler
	}
	if cfg.Header == "" {
		cfg.Header = ConfigDefault.Header
	}

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		key := strings.TrimPrefix(c.Get(cfg.Header), "Bearer ")
		if key == "" {
			return cfg.ErrorHandler(c, errors.New("missing API key"))
		}

		valid, err := cfg.Validator(key)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}
		if !valid {
			return cfg.ErrorHandler(c, errors.New("invalid API key"))
		}

		return c.Next()
	}
}

// AdminOnly guards admin routes with a static key. An empty adminKey
// locks the routes entirely.
func AdminOnly(adminKey string) fiber.Handler {
	return NewAuth(AuthConfig{
		Validator: func(key string) (bool, error) {
			if adminKey == "" {
				return false, errors.New("admin API key not configured")
			}
			return subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) == 1, nil
		},
	})
}
