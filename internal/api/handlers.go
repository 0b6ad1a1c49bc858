package api

import (
	"errors"
	"time"

	"github.com/bilgisen/lawgate/internal/cache"
	"github.com/bilgisen/lawgate/internal/catalog"
	"github.com/bilgisen/lawgate/internal/config"
	"github.com/bilgisen/lawgate/internal/contact"
	"github.com/bilgisen/lawgate/internal/logger"
	"github.com/bilgisen/lawgate/internal/metrics"
	"github.com/bilgisen/lawgate/internal/middleware"
	"github.com/bilgisen/lawgate/internal/models"
	"github.com/bilgisen/lawgate/internal/storage"
	"github.com/bilgisen/lawgate/internal/youtube"
	"github.com/gofiber/fiber/v2"
)

const version = "1.0.0"

type contentQuery struct {
	Type string `query:"type" validate:"omitempty,oneof=all video article opinion"`
}

type limitQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=50"`
}

type postsQuery struct {
	Tag   string `query:"tag" validate:"max=100"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=50"`
}

type videoQuery struct {
	URL     string `query:"url" validate:"required,max=2048"`
	Attempt int    `query:"attempt"`
	Quality string `query:"quality" validate:"omitempty,oneof=maxresdefault hqdefault mqdefault sddefault"`
}

type pageQuery struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1"`
}

type Handlers struct {
	config  *config.Config
	catalog *catalog.Catalog
	contact *contact.Service
	archive storage.Archive
	seen    cache.Store
	metrics *metrics.Metrics
	started time.Time
}

func NewHandlers(cfg *config.Config, cat *catalog.Catalog, svc *contact.Service, archive storage.Archive, seen cache.Store, m *metrics.Metrics) *Handlers {
	return &Handlers{
		config:  cfg,
		catalog: cat,
		contact: svc,
		archive: archive,
		seen:    seen,
		metrics: m,
		started: time.Now(),
	}
}

// HealthCheck handles the /health endpoint
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
		"entries": h.catalog.Len(),
		"uptime":  time.Since(h.started).Round(time.Second).String(),
		"time":    time.Now().Format(time.RFC3339),
	})
}

// ListContent handles GET /api/v1/content
func (h *Handlers) ListContent(c *fiber.Ctx) error {
	q := middleware.Query[contentQuery](c)
	kind, ok := models.ParseKind(q.Type)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid content type",
		})
	}

	if h.metrics != nil {
		h.metrics.ContentListed.WithLabelValues(string(kind)).Inc()
	}

	items := h.catalog.List(kind)
	return c.JSON(fiber.Map{
		"type":  kind,
		"total": len(items),
		"items": items,
	})
}

// GetContent handles GET /api/v1/content/:id
func (h *Handlers) GetContent(c *fiber.Ctx) error {
	entry, ok := h.catalog.Lookup(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Content not found",
		})
	}
	return c.JSON(entry)
}

// ListArticles handles GET /api/v1/articles
func (h *Handlers) ListArticles(c *fiber.Ctx) error {
	items := h.catalog.List(models.KindArticle)
	return c.JSON(fiber.Map{
		"total": len(items),
		"items": items,
	})
}

// PopularArticles handles GET /api/v1/articles/popular
func (h *Handlers) PopularArticles(c *fiber.Ctx) error {
	q := middleware.Query[limitQuery](c)
	return c.JSON(fiber.Map{
		"items": h.catalog.Popular(q.Limit),
	})
}

// GetArticle handles GET /api/v1/articles/:id. The sidebar lists come
// along so the article page needs a single request.
func (h *Handlers) GetArticle(c *fiber.Ctx) error {
	id := c.Params("id")
	article, ok := h.catalog.Article(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Article not found",
		})
	}

	return c.JSON(fiber.Map{
		"article": article,
		"popular": h.catalog.Popular(catalog.DefaultPopularLimit),
		"related": h.catalog.Related(id, catalog.DefaultRelatedLimit),
	})
}

// ListPosts handles GET /api/v1/posts
func (h *Handlers) ListPosts(c *fiber.Ctx) error {
	q := middleware.Query[postsQuery](c)

	var posts []models.Post
	if q.Tag != "" {
		posts = h.catalog.PostsByTag(q.Tag)
		if q.Limit > 0 && q.Limit < len(posts) {
			posts = posts[:q.Limit]
		}
	} else {
		posts = h.catalog.Posts(q.Limit)
	}

	return c.JSON(fiber.Map{
		"total": len(posts),
		"items": posts,
	})
}

// PostTags handles GET /api/v1/posts/tags
func (h *Handlers) PostTags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tags": h.catalog.Tags(),
	})
}

// Carousel handles GET /api/v1/carousel
func (h *Handlers) Carousel(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"hero":   h.catalog.Hero(),
		"latest": h.catalog.Latest(0),
	})
}

// Thumbnail handles GET /api/v1/videos/thumbnail. quality swaps the
// primary rendition; the fallback chain stays the same.
func (h *Handlers) Thumbnail(c *fiber.Ctx) error {
	q := middleware.Query[videoQuery](c)
	id, _ := youtube.ExtractVideoID(q.URL)

	thumb := youtube.ResolveThumbnail(q.URL)
	if q.Quality != "" {
		thumb.Primary = youtube.ThumbnailURL(q.URL, youtube.Quality(q.Quality))
	}

	return c.JSON(fiber.Map{
		"video_id":  id,
		"thumbnail": thumb,
	})
}

// NextThumbnail handles GET /api/v1/videos/thumbnail/next. attempt is the
// number of images that already failed to load.
func (h *Handlers) NextThumbnail(c *fiber.Ctx) error {
	q := middleware.Query[videoQuery](c)
	src := youtube.AdvanceOnLoadFailure(q.Attempt, q.URL)

	exhausted := src == youtube.NoImagePlaceholder
	if h.metrics != nil {
		result := "fallback"
		if exhausted {
			result = "placeholder"
		}
		h.metrics.ThumbnailFallbacks.WithLabelValues(result).Inc()
	}

	return c.JSON(fiber.Map{
		"attempt":   q.Attempt,
		"src":       src,
		"exhausted": exhausted,
	})
}

// Embed handles GET /api/v1/videos/embed
func (h *Handlers) Embed(c *fiber.Ctx) error {
	q := middleware.Query[videoQuery](c)
	return c.JSON(fiber.Map{
		"embed_url": youtube.BuildEmbedURL(q.URL),
	})
}

// SubmitContact handles POST /api/v1/contact
func (h *Handlers) SubmitContact(c *fiber.Ctx) error {
	var req models.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn().Err(err).Str("ip", c.IP()).Msg("Invalid contact request body")
		return c.Status(fiber.StatusBadRequest).JSON(models.ContactResponse{
			Success: false,
			Message: "Invalid request format",
		})
	}

	resp, err := h.contact.Submit(c.UserContext(), req, c.IP())
	if err != nil {
		status, failure := contact.Failure(err)
		return c.Status(status).JSON(failure)
	}
	return c.JSON(resp)
}

// ListSubmissions handles GET /api/v1/admin/submissions
func (h *Handlers) ListSubmissions(c *fiber.Ctx) error {
	q := middleware.Query[pageQuery](c)

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	switch {
	case pageSize > 100:
		pageSize = 100
	case pageSize <= 0:
		pageSize = 20
	}

	items, total, err := h.archive.List(c.UserContext(), page, pageSize)
	if err != nil {
		logger.Get().Error().Err(err).Msg("Error listing submissions")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list submissions",
		})
	}

	return c.JSON(fiber.Map{
		"page":      page,
		"page_size": pageSize,
		"total":     total,
		"items":     items,
	})
}

// GetSubmission handles GET /api/v1/admin/submissions/:id
func (h *Handlers) GetSubmission(c *fiber.Ctx) error {
	id := c.Params("id")
	sub, err := h.archive.Get(c.UserContext(), id)
	if err != nil {
		return h.archiveError(c, err, id)
	}
	return c.JSON(sub)
}

// DeleteSubmission handles DELETE /api/v1/admin/submissions/:id
func (h *Handlers) DeleteSubmission(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.archive.Delete(c.UserContext(), id); err != nil {
		return h.archiveError(c, err, id)
	}

	logger.Get().Info().Str("id", id).Str("ip", c.IP()).Msg("Submission deleted")
	return c.SendStatus(fiber.StatusNoContent)
}

// ClearDedupe handles DELETE /api/v1/admin/dedupe. It forgets recent
// contact fingerprints so identical messages are mailed again.
func (h *Handlers) ClearDedupe(c *fiber.Ctx) error {
	if err := h.seen.Clear(c.UserContext()); err != nil {
		logger.Get().Error().Err(err).Msg("Error clearing dedupe store")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear dedupe store",
		})
	}

	logger.Get().Info().Str("ip", c.IP()).Msg("Dedupe store cleared")
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) archiveError(c *fiber.Ctx, err error, id string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Submission not found",
		})
	}
	logger.Get().Error().Err(err).Str("id", id).Msg("Error reading submission archive")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to read submission",
	})
}
