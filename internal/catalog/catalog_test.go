package catalog

import (
	"testing"

	"github.com/bilgisen/lawgate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioSeed() Seed {
	return Seed{
		ArticleDefaults: ArticleDefaults{Thumbnail: "/assets/articles_thumbnail.png", Author: "Author"},
		Videos: []models.Video{
			{ID: "video-1", Title: "V1", URL: "https://www.youtube.com/watch?v=oO_LYayA8nk", Date: "2024-01-15"},
			{ID: "video-2", Title: "V2", URL: "https://www.youtube.com/watch?v=Pq3676lC1Nw", Date: "2023-07-22"},
			{ID: "video-3", Title: "V3", URL: "https://www.youtube.com/watch?v=sPV9b10X6eU", Date: "2023-07-22"},
		},
		Articles: []models.Article{
			{ID: "claim-management", Title: "A1", Date: "2024-01-15", ReadTime: "8 min read"},
			{ID: "contract-management", Title: "A2", Date: "2024-01-10"},
			{ID: "arbitration-process", Title: "A3", Date: "2024-01-05"},
			{ID: "delay-analysis", Title: "A4", Date: "2023-12-20"},
			{ID: "quantum-claims", Title: "A5", Date: "2023-12-10"},
		},
	}
}

func newScenario(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(scenarioSeed())
	require.NoError(t, err)
	return c
}

func ids(entries []models.ContentEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func assertNewestFirst(t *testing.T, entries []models.ContentEntry) {
	t.Helper()
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].PublishedAt.After(entries[i-1].PublishedAt),
			"%s is newer than %s", entries[i].ID, entries[i-1].ID)
	}
}

func TestListArticles(t *testing.T) {
	c := newScenario(t)

	got := c.List(models.KindArticle)
	assert.Equal(t, []string{
		"claim-management", "contract-management", "arbitration-process", "delay-analysis", "quantum-claims",
	}, ids(got))
	for _, e := range got {
		assert.Equal(t, models.KindArticle, e.Kind)
	}
}

func TestListFilters(t *testing.T) {
	c := newScenario(t)

	all := c.List(models.KindAll)
	assert.Len(t, all, c.Len())
	assert.Len(t, c.List(""), c.Len())
	assertNewestFirst(t, all)

	videos := c.List(models.KindVideo)
	require.Len(t, videos, 3)
	for _, e := range videos {
		assert.Equal(t, models.KindVideo, e.Kind)
	}
	assertNewestFirst(t, videos)

	opinions := c.List(models.KindOpinion)
	assert.NotNil(t, opinions)
	assert.Empty(t, opinions)

	assert.Empty(t, c.List(models.Kind("podcast")))
}

func TestListTiesKeepInsertionOrder(t *testing.T) {
	c := newScenario(t)

	all := c.List(models.KindAll)
	// video-1 and claim-management share 2024-01-15; videos were inserted first
	assert.Equal(t, []string{"video-1", "claim-management"}, ids(all[:2]))

	videos := c.List(models.KindVideo)
	assert.Equal(t, []string{"video-1", "video-2", "video-3"}, ids(videos))
}

func TestListReturnsCopy(t *testing.T) {
	c := newScenario(t)

	first := c.List(models.KindAll)
	first[0].Title = "mutated"

	again := c.List(models.KindAll)
	assert.NotEqual(t, "mutated", again[0].Title)
}

func TestPopular(t *testing.T) {
	c := newScenario(t)

	assert.Equal(t, []string{"claim-management", "contract-management"}, ids(c.Popular(2)))

	three := c.Popular(3)
	require.Len(t, three, 3)
	assert.Equal(t, []string{"claim-management", "contract-management", "arbitration-process"}, ids(three))

	assert.Len(t, c.Popular(0), DefaultPopularLimit)
	assert.Len(t, c.Popular(50), 5)
}

func TestRelated(t *testing.T) {
	c := newScenario(t)

	got := c.Related("claim-management", 0)
	assert.Equal(t, []string{"contract-management", "arbitration-process", "delay-analysis"}, ids(got))
}

func TestLatest(t *testing.T) {
	c := newScenario(t)

	got := c.Latest(0)
	assert.Len(t, got, DefaultLatestLimit)
	assertNewestFirst(t, got)
}

func TestLookup(t *testing.T) {
	c := newScenario(t)

	e, ok := c.Lookup("video-2")
	require.True(t, ok)
	assert.Equal(t, models.KindVideo, e.Kind)
	assert.Equal(t, "https://img.youtube.com/vi/Pq3676lC1Nw/hqdefault.jpg", e.ThumbnailURL)
	assert.Equal(t, "https://www.youtube.com/watch?v=Pq3676lC1Nw", e.TargetURL)

	a, ok := c.Lookup("delay-analysis")
	require.True(t, ok)
	assert.Equal(t, "/latest-in-construction/article/delay-analysis", a.TargetURL)
	assert.Equal(t, "/assets/articles_thumbnail.png", a.ThumbnailURL)
	assert.Equal(t, "2023-12-20", a.Date())

	_, ok = c.Lookup("missing")
	assert.False(t, ok)
}

func TestArticleDefaults(t *testing.T) {
	c := newScenario(t)

	a, ok := c.Article("claim-management")
	require.True(t, ok)
	assert.Equal(t, "Author", a.Author)
	assert.Equal(t, "8 min read", a.ReadTime)

	_, ok = c.Article("video-1")
	assert.False(t, ok)
}

func TestNewRejectsInvalidSeed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Seed)
	}{
		{"duplicate id across kinds", func(s *Seed) { s.Articles[0].ID = "video-1" }},
		{"unparsable date", func(s *Seed) { s.Videos[1].Date = "July 22" }},
		{"empty id", func(s *Seed) { s.Articles[2].ID = "" }},
		{"duplicate post id", func(s *Seed) {
			s.Posts = []models.Post{{ID: "quantum-claims", Date: "2024-10-20", Content: "x"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := scenarioSeed()
			tt.mutate(&seed)
			_, err := New(seed)
			assert.Error(t, err)
		})
	}
}
