package contact

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/bilgisen/lawgate/internal/models"
)

var emailTemplate = template.Must(template.New("contact").Parse(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #1a365d; border-bottom: 3px solid #d4af37; padding-bottom: 10px;">New Contact Form Submission</h2>
    <div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px; margin: 20px 0;">
      <p><strong>Name:</strong> {{.Name}}</p>
      <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
      <p><strong>Phone:</strong> {{.Phone}}</p>
      <p><strong>Company:</strong> {{if .Company}}{{.Company}}{{else}}Not provided{{end}}</p>
      <p><strong>Subject:</strong> {{.Subject}}</p>
    </div>
    <div style="margin: 20px 0;">
      <h3 style="color: #1a365d;">Message:</h3>
      <p style="background-color: #fff; padding: 15px; border-left: 4px solid #d4af37; border-radius: 3px; white-space: pre-line;">{{.Message}}</p>
    </div>
    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd; font-size: 12px; color: #666;">
      <p>Submitted via Lawgate Website Contact Form</p>
    </div>
  </div>
</body>
</html>`))

func renderEmail(req models.ContactRequest) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("failed to render contact email: %w", err)
	}
	return buf.String(), nil
}
