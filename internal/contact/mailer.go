package contact

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultSendGridURL is the SendGrid v3 mail send endpoint
const DefaultSendGridURL = "https://api.sendgrid.com/v3/mail/send"

// ErrMailNotConfigured is returned when no mail API key is set
var ErrMailNotConfigured = errors.New("email service not configured")

// Message is an outgoing HTML mail
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Mailer delivers messages
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SendGridMailer sends mail through the SendGrid v3 API
type SendGridMailer struct {
	client    *resty.Client
	apiKey    string
	fromEmail string
	fromName  string
	endpoint  string
}

type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgPersonalization struct {
	To []sgAddress `json:"to"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sgMailPayload struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	ReplyTo          *sgAddress          `json:"reply_to,omitempty"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
}

type sgErrorResponse struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func NewSendGridMailer(apiKey, fromEmail, fromName string) *SendGridMailer {
	return &SendGridMailer{
		client:    resty.New().SetTimeout(15 * time.Second),
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		endpoint:  DefaultSendGridURL,
	}
}

// WithEndpoint points the mailer at another mail send URL
func (m *SendGridMailer) WithEndpoint(url string) *SendGridMailer {
	m.endpoint = url
	return m
}

func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	if m.apiKey == "" {
		return ErrMailNotConfigured
	}

	to := make([]sgAddress, 0, len(msg.To))
	for _, addr := range msg.To {
		to = append(to, sgAddress{Email: addr})
	}

	payload := sgMailPayload{
		Personalizations: []sgPersonalization{{To: to}},
		From:             sgAddress{Email: m.fromEmail, Name: m.fromName},
		Subject:          msg.Subject,
		Content:          []sgContent{{Type: "text/html", Value: msg.HTML}},
	}
	if msg.ReplyTo != "" {
		payload.ReplyTo = &sgAddress{Email: msg.ReplyTo}
	}

	var apiErr sgErrorResponse
	resp, err := m.client.R().
		SetContext(ctx).
		SetAuthToken(m.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetError(&apiErr).
		Post(m.endpoint)
	if err != nil {
		return fmt.Errorf("SendGrid request failed: %w", err)
	}

	if resp.StatusCode() >= http.StatusMultipleChoices {
		if len(apiErr.Errors) > 0 {
			return fmt.Errorf("SendGrid returned status %d: %s", resp.StatusCode(), apiErr.Errors[0].Message)
		}
		return fmt.Errorf("SendGrid returned status %d", resp.StatusCode())
	}
	return nil
}
