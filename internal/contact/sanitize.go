package contact

import (
	"html"
	"strings"

	"github.com/bilgisen/lawgate/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips markup from submitted fields
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Line strips tags and collapses all whitespace
func (s *Sanitizer) Line(input string) string {
	return strings.Join(strings.Fields(s.text(input)), " ")
}

// Text strips tags but keeps line breaks, trimming each line
func (s *Sanitizer) Text(input string) string {
	lines := strings.Split(strings.ReplaceAll(s.text(input), "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Request returns a copy of req with every field cleaned
func (s *Sanitizer) Request(req models.ContactRequest) models.ContactRequest {
	req.Name = s.Line(req.Name)
	req.Email = s.Line(req.Email)
	req.Phone = s.Line(req.Phone)
	req.Company = s.Line(req.Company)
	req.Subject = s.Line(req.Subject)
	req.Message = s.Text(req.Message)
	return req
}

// bluemonday escapes what it keeps; unescape so the mail template escapes once
func (s *Sanitizer) text(input string) string {
	return html.UnescapeString(s.policy.Sanitize(input))
}
