// Package catalog holds the site's fixed set of videos, articles and
// opinion posts and produces filtered, date-ordered views over them.
//
// A Catalog is immutable once built and safe for concurrent use.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bilgisen/lawgate/internal/models"
	"github.com/bilgisen/lawgate/internal/youtube"
)

const (
	// DefaultPopularLimit is used by Popular when limit <= 0
	DefaultPopularLimit = 5
	// DefaultRelatedLimit is used by Related when limit <= 0
	DefaultRelatedLimit = 3
	// DefaultLatestLimit is used by Latest when limit <= 0
	DefaultLatestLimit = 6

	articlePathPrefix = "/latest-in-construction/article/"
	postTitleLength   = 80
	postDescLength    = 200
)

// ArticleDefaults fills article fields the seed leaves empty
type ArticleDefaults struct {
	Thumbnail      string `yaml:"thumbnail"`
	Author         string `yaml:"author"`
	AuthorLinkedIn string `yaml:"author_linkedin"`
}

// Seed is the raw catalog content before validation
type Seed struct {
	ArticleDefaults ArticleDefaults        `yaml:"article_defaults"`
	Videos          []models.Video         `yaml:"videos"`
	Articles        []models.Article       `yaml:"articles"`
	Posts           []models.Post          `yaml:"posts"`
	Hero            []models.CarouselSlide `yaml:"hero"`
}

// Catalog is the merged, validated content set
type Catalog struct {
	entries   []models.ContentEntry
	byID      map[string]int
	articles  []models.Article
	byArticle map[string]int
	posts     []models.Post
	hero      []models.CarouselSlide
}

// New merges the seed into a catalog. Videos come first, then articles,
// then posts; that insertion order breaks ties between equal dates.
func New(seed Seed) (*Catalog, error) {
	c := &Catalog{
		byID:      make(map[string]int),
		byArticle: make(map[string]int),
		hero:      append([]models.CarouselSlide(nil), seed.Hero...),
	}

	for _, v := range seed.Videos {
		published, err := parseDate(v.ID, v.Date)
		if err != nil {
			return nil, err
		}
		if err := c.add(models.ContentEntry{
			ID:           v.ID,
			Kind:         models.KindVideo,
			Title:        v.Title,
			Description:  v.Description,
			ThumbnailURL: youtube.ResolveThumbnail(v.URL).Primary,
			TargetURL:    v.URL,
			PublishedAt:  published,
		}); err != nil {
			return nil, err
		}
	}

	for _, a := range seed.Articles {
		published, err := parseDate(a.ID, a.Date)
		if err != nil {
			return nil, err
		}
		a = applyDefaults(a, seed.ArticleDefaults)
		a.PublishedAt = published
		if err := c.add(models.ContentEntry{
			ID:           a.ID,
			Kind:         models.KindArticle,
			Title:        a.Title,
			Description:  a.Excerpt,
			ThumbnailURL: a.Thumbnail,
			TargetURL:    articlePathPrefix + a.ID,
			PublishedAt:  published,
			ReadTime:     a.ReadTime,
			Tags:         a.Tags,
		}); err != nil {
			return nil, err
		}
		c.byArticle[a.ID] = len(c.articles)
		c.articles = append(c.articles, a)
	}

	for _, p := range seed.Posts {
		published, err := parseDate(p.ID, p.Date)
		if err != nil {
			return nil, err
		}
		p.PublishedAt = published
		thumb := p.ImageURL
		if thumb == "" {
			thumb = seed.ArticleDefaults.Thumbnail
		}
		if err := c.add(models.ContentEntry{
			ID:           p.ID,
			Kind:         models.KindOpinion,
			Title:        truncate(firstLine(p.Content), postTitleLength),
			Description:  truncate(strings.Join(strings.Fields(p.Content), " "), postDescLength),
			ThumbnailURL: thumb,
			TargetURL:    p.LinkedInURL,
			PublishedAt:  published,
			Tags:         p.Tags,
		}); err != nil {
			return nil, err
		}
		c.posts = append(c.posts, p)
	}

	return c, nil
}

func (c *Catalog) add(e models.ContentEntry) error {
	if e.ID == "" {
		return fmt.Errorf("catalog entry %q has an empty id", e.Title)
	}
	if !e.Kind.Valid() {
		return fmt.Errorf("catalog entry %s has unknown kind %q", e.ID, e.Kind)
	}
	if _, exists := c.byID[e.ID]; exists {
		return fmt.Errorf("duplicate catalog id: %s", e.ID)
	}
	c.byID[e.ID] = len(c.entries)
	c.entries = append(c.entries, e)
	return nil
}

// Len returns the number of entries in the catalog
func (c *Catalog) Len() int {
	return len(c.entries)
}

// List returns the entries of the given kind, newest first. KindAll or an
// empty kind returns every entry. The result is never nil.
func (c *Catalog) List(kind models.Kind) []models.ContentEntry {
	out := make([]models.ContentEntry, 0, len(c.entries))
	for _, e := range c.entries {
		if kind == "" || kind == models.KindAll || e.Kind == kind {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out
}

// Lookup returns the entry with the given id
func (c *Catalog) Lookup(id string) (models.ContentEntry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.ContentEntry{}, false
	}
	return c.entries[i], true
}

// Popular returns the most recent articles. Ranking is by date only until
// view counts are collected.
func (c *Catalog) Popular(limit int) []models.ContentEntry {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	return head(c.List(models.KindArticle), limit)
}

// Related returns the most recent articles other than id
func (c *Catalog) Related(id string, limit int) []models.ContentEntry {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	articles := c.List(models.KindArticle)
	out := make([]models.ContentEntry, 0, len(articles))
	for _, e := range articles {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return head(out, limit)
}

// Latest returns the most recent entries of any kind
func (c *Catalog) Latest(limit int) []models.ContentEntry {
	if limit <= 0 {
		limit = DefaultLatestLimit
	}
	return head(c.List(models.KindAll), limit)
}

// Article returns the full article with the given id
func (c *Catalog) Article(id string) (models.Article, bool) {
	i, ok := c.byArticle[id]
	if !ok {
		return models.Article{}, false
	}
	return c.articles[i], true
}

// Hero returns the home page slides in display order
func (c *Catalog) Hero() []models.CarouselSlide {
	return append([]models.CarouselSlide{}, c.hero...)
}

func sortEntries(entries []models.ContentEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PublishedAt.After(entries[j].PublishedAt)
	})
}

func head(entries []models.ContentEntry, n int) []models.ContentEntry {
	if n < len(entries) {
		return entries[:n]
	}
	return entries
}

func parseDate(id, date string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("catalog entry %s has invalid date %q: %w", id, date, err)
	}
	return t, nil
}

func applyDefaults(a models.Article, d ArticleDefaults) models.Article {
	if a.Thumbnail == "" {
		a.Thumbnail = d.Thumbnail
	}
	if a.Author == "" {
		a.Author = d.Author
	}
	if a.AuthorLinkedIn == "" {
		a.AuthorLinkedIn = d.AuthorLinkedIn
	}
	return a
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
