package contact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizerLine(t *testing.T) {
	s := NewSanitizer()

	assert.Equal(t, "Jane Doe", s.Line("  <b>Jane</b>\n  Doe "))
	assert.Equal(t, "", s.Line(`<script>alert("x")</script>`))
	assert.Equal(t, "Smith & Sons", s.Line("Smith &amp; Sons"))
}

func TestSanitizerTextKeepsLines(t *testing.T) {
	s := NewSanitizer()

	got := s.Text("First line  \r\n<i>second</i> line\n")
	assert.Equal(t, "First line\nsecond line", got)
}

func TestRenderEmailEscapes(t *testing.T) {
	req := validRequest()
	req.Message = "a < b & c"

	body, err := renderEmail(req)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(body, "a &lt; b &amp; c"))
}
