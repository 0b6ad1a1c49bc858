package models

import "time"

// ContactRequest is the payload posted by the contact form
type ContactRequest struct {
	Name    string `json:"name" form:"name" validate:"required,max=200"`
	Email   string `json:"email" form:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" form:"phone" validate:"max=50"`
	Company string `json:"company" form:"company" validate:"max=200"`
	Subject string `json:"subject" form:"subject" validate:"max=300"`
	Message string `json:"message" form:"message" validate:"required,max=10000"`

	// Clients disagree on the token field name
	Captcha           string `json:"captcha" form:"captcha"`
	RecaptchaToken    string `json:"recaptchaToken" form:"recaptchaToken"`
	RecaptchaResponse string `json:"g-recaptcha-response" form:"g-recaptcha-response"`
}

// CaptchaToken returns the first non-empty captcha token field
func (r ContactRequest) CaptchaToken() string {
	switch {
	case r.Captcha != "":
		return r.Captcha
	case r.RecaptchaToken != "":
		return r.RecaptchaToken
	default:
		return r.RecaptchaResponse
	}
}

// ContactResponse is returned to the contact form
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Submission is an archived contact form submission
type Submission struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Company    string    `json:"company,omitempty"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	IP         string    `json:"ip,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
	FilePath   string    `json:"file_path,omitempty"`
}
