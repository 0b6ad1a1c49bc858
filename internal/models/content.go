package models

import (
	"encoding/json"
	"time"
)

// DateLayout is the calendar date format used by catalog entries
const DateLayout = "2006-01-02"

// Kind is the content type of a catalog entry
type Kind string

const (
	KindVideo   Kind = "video"
	KindArticle Kind = "article"
	KindOpinion Kind = "opinion"

	// KindAll is the filter value meaning no filtering
	KindAll Kind = "all"
)

// Valid reports whether k is one of the entry kinds
func (k Kind) Valid() bool {
	switch k {
	case KindVideo, KindArticle, KindOpinion:
		return true
	}
	return false
}

// ParseKind converts a filter string into a Kind. The empty string and
// "all" both map to KindAll.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	if s == "" || k == KindAll {
		return KindAll, true
	}
	return k, k.Valid()
}

// ContentEntry is one displayable unit of the content catalog
type ContentEntry struct {
	ID           string    `json:"id"`
	Kind         Kind      `json:"type"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail"`
	TargetURL    string    `json:"url"`
	PublishedAt  time.Time `json:"-"`
	ReadTime     string    `json:"readTime,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
}

// Date returns the publication date in DateLayout
func (e ContentEntry) Date() string {
	return e.PublishedAt.Format(DateLayout)
}

// Article is a long-form insight piece
type Article struct {
	ID             string    `json:"id" yaml:"id"`
	Title          string    `json:"title" yaml:"title"`
	Author         string    `json:"author" yaml:"author"`
	AuthorLinkedIn string    `json:"authorLinkedIn,omitempty" yaml:"author_linkedin"`
	Date           string    `json:"date" yaml:"date"`
	ReadTime       string    `json:"readTime" yaml:"read_time"`
	Excerpt        string    `json:"excerpt" yaml:"excerpt"`
	Thumbnail      string    `json:"thumbnail" yaml:"thumbnail"`
	Tags           []string  `json:"tags" yaml:"tags"`
	Content        string    `json:"content" yaml:"content"`
	PublishedAt    time.Time `json:"-" yaml:"-"`
}

// Video is a third-party hosted video in the catalog
type Video struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	Date        string `yaml:"date"`
}

// Post is a LinkedIn opinion post
type Post struct {
	ID          string    `json:"id" yaml:"id"`
	Date        string    `json:"date" yaml:"date"`
	Content     string    `json:"content" yaml:"content"`
	LinkedInURL string    `json:"linkedInUrl" yaml:"linkedin_url"`
	ImageURL    string    `json:"imageUrl,omitempty" yaml:"image_url"`
	Tags        []string  `json:"tags,omitempty" yaml:"tags"`
	PublishedAt time.Time `json:"-" yaml:"-"`
}

// CarouselSlide is a hero slide on the home page
type CarouselSlide struct {
	ID       string `json:"id" yaml:"id"`
	Image    string `json:"image" yaml:"image"`
	Title    string `json:"title,omitempty" yaml:"title"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle"`
	CTAText  string `json:"ctaText,omitempty" yaml:"cta_text"`
	CTALink  string `json:"ctaLink,omitempty" yaml:"cta_link"`
}

// Thumbnail is a resolved preview image with its degradation chain
type Thumbnail struct {
	Primary   string   `json:"src"`
	Fallbacks []string `json:"fallbacks"`
}

// MarshalJSON adds the publication date in DateLayout
func (e ContentEntry) MarshalJSON() ([]byte, error) {
	type entry ContentEntry
	return json.Marshal(struct {
		entry
		Date string `json:"date"`
	}{entry(e), e.Date()})
}
