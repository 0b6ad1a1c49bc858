package contact

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultVerifyURL is Google's reCAPTCHA verification endpoint
const DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Verifier checks a proof-of-humanity token
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

// RecaptchaVerifier verifies tokens against the reCAPTCHA siteverify API
type RecaptchaVerifier struct {
	client   *resty.Client
	secret   string
	endpoint string
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

func NewRecaptchaVerifier(secret string, timeout time.Duration) *RecaptchaVerifier {
	return &RecaptchaVerifier{
		client:   resty.New().SetTimeout(timeout),
		secret:   secret,
		endpoint: DefaultVerifyURL,
	}
}

// WithEndpoint points the verifier at another siteverify URL
func (v *RecaptchaVerifier) WithEndpoint(url string) *RecaptchaVerifier {
	v.endpoint = url
	return v
}

// Verify posts the token and reports Google's verdict
func (v *RecaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	form := map[string]string{
		"secret":   v.secret,
		"response": token,
	}
	if remoteIP != "" {
		form["remoteip"] = remoteIP
	}

	var result siteverifyResponse
	resp, err := v.client.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&result).
		Post(v.endpoint)
	if err != nil {
		return false, fmt.Errorf("reCAPTCHA verification request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return false, fmt.Errorf("unexpected status code %d from reCAPTCHA", resp.StatusCode())
	}

	return result.Success, nil
}
