package catalog

import (
	"sort"
	"strings"

	"github.com/bilgisen/lawgate/internal/models"
)

// Posts returns LinkedIn posts newest first. limit <= 0 returns all of them.
func (c *Catalog) Posts(limit int) []models.Post {
	out := append([]models.Post{}, c.posts...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// PostsByTag returns posts carrying tag, compared case-insensitively
func (c *Catalog) PostsByTag(tag string) []models.Post {
	out := []models.Post{}
	for _, p := range c.Posts(0) {
		for _, t := range p.Tags {
			if strings.EqualFold(t, tag) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Tags returns every distinct post tag, sorted. Tags differing only in
// case are one tag, spelled as in the newest post carrying it, matching
// PostsByTag.
func (c *Catalog) Tags() []string {
	seen := make(map[string]struct{})
	tags := []string{}
	for _, p := range c.Posts(0) {
		for _, t := range p.Tags {
			key := strings.ToLower(t)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Slice(tags, func(i, j int) bool {
		return strings.ToLower(tags[i]) < strings.ToLower(tags[j])
	})
	return tags
}
