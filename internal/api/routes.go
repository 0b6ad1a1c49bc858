package api

import (
	"os"
	"strings"
	"time"

	"github.com/bilgisen/lawgate/internal/config"
	"github.com/bilgisen/lawgate/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp creates the fiber app with the global middleware and all routes
func NewApp(cfg *config.Config, h *Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "lawgate",
		ReadTimeout:           cfg.HTTPTimeout,
		WriteTimeout:          cfg.HTTPTimeout,
		IdleTimeout:           120 * time.Second,
		BodyLimit:             cfg.BodyLimit,
		ErrorHandler:          middleware.ErrorHandler,
		DisableStartupMessage: cfg.IsProduction(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	SetupRoutes(app, h, cfg)
	return app
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, h *Handlers, cfg *config.Config) {
	if h.metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(h.metrics.Handler()))
	}

	// API group with versioning
	api := app.Group("/api/v1", cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-API-Key,Authorization",
	}))

	api.Get("/health", h.HealthCheck)

	content := api.Group("/content")
	{
		content.Get("", middleware.ValidateQuery[contentQuery](), h.ListContent)
		content.Get("/:id", h.GetContent)
	}

	articles := api.Group("/articles")
	{
		articles.Get("", h.ListArticles)
		articles.Get("/popular", middleware.ValidateQuery[limitQuery](), h.PopularArticles)
		articles.Get("/:id", h.GetArticle)
	}

	posts := api.Group("/posts")
	{
		posts.Get("", middleware.ValidateQuery[postsQuery](), h.ListPosts)
		posts.Get("/tags", h.PostTags)
	}

	api.Get("/carousel", h.Carousel)

	videos := api.Group("/videos", middleware.ValidateQuery[videoQuery]())
	{
		videos.Get("/thumbnail", h.Thumbnail)
		videos.Get("/thumbnail/next", h.NextThumbnail)
		videos.Get("/embed", h.Embed)
	}

	api.Post("/contact", h.SubmitContact)

	// Admin endpoints, locked unless ADMIN_API_KEY is set
	admin := api.Group("/admin", middleware.AdminOnly(cfg.AdminAPIKey))
	{
		admin.Get("/submissions", middleware.ValidateQuery[pageQuery](), h.ListSubmissions)
		admin.Get("/submissions/:id", h.GetSubmission)
		admin.Delete("/submissions/:id", h.DeleteSubmission)
		admin.Delete("/dedupe", h.ClearDedupe)
	}

	// Built frontend
	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		app.Static("/", cfg.StaticDir, fiber.Static{
			Compress:      true,
			Index:         "index.html",
			CacheDuration: 10 * time.Second,
		})
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Endpoint not found",
			})
		}
		return fiber.ErrNotFound
	})
}
