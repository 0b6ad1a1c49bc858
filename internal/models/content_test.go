package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, in := range []string{"", "all"} {
		k, ok := ParseKind(in)
		assert.True(t, ok)
		assert.Equal(t, KindAll, k)
	}

	k, ok := ParseKind("opinion")
	assert.True(t, ok)
	assert.Equal(t, KindOpinion, k)

	_, ok = ParseKind("Video")
	assert.False(t, ok)
}

func TestContentEntryJSONCarriesDate(t *testing.T) {
	e := ContentEntry{
		ID:          "delay-analysis",
		Kind:        KindArticle,
		Title:       "Delay Analysis Methods in Construction Claims",
		PublishedAt: time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC),
		ReadTime:    "9 min read",
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "2023-12-20", out["date"])
	assert.Equal(t, "article", out["type"])
	assert.Equal(t, "9 min read", out["readTime"])
	assert.NotContains(t, out, "PublishedAt")
}

func TestCaptchaToken(t *testing.T) {
	assert.Equal(t, "a", ContactRequest{Captcha: "a", RecaptchaToken: "b"}.CaptchaToken())
	assert.Equal(t, "b", ContactRequest{RecaptchaToken: "b", RecaptchaResponse: "c"}.CaptchaToken())
	assert.Equal(t, "c", ContactRequest{RecaptchaResponse: "c"}.CaptchaToken())
	assert.Empty(t, ContactRequest{}.CaptchaToken())
}
