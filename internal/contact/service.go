// Package contact handles contact form submissions: it validates and cleans
// the fields, checks the reCAPTCHA token, drops accidental resubmissions,
// archives the submission and mails it to the practice.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bilgisen/lawgate/internal/cache"
	"github.com/bilgisen/lawgate/internal/logger"
	"github.com/bilgisen/lawgate/internal/metrics"
	"github.com/bilgisen/lawgate/internal/models"
	"github.com/bilgisen/lawgate/internal/storage"
	"github.com/bilgisen/lawgate/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultSubject = "Contact Form"

var (
	ErrInvalid         = errors.New("invalid contact request")
	ErrCaptchaRequired = errors.New("reCAPTCHA token or secret missing")
	ErrCaptchaFailed   = errors.New("reCAPTCHA verification failed")
	ErrSendFailed      = errors.New("failed to send contact email")
)

// ValidationError lists the offending fields and the rule each one broke
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Options configures a Service
type Options struct {
	Recipients  []string
	SkipCaptcha bool
	DedupeTTL   time.Duration
}

// Service processes contact form submissions. Verifier may be nil when no
// reCAPTCHA secret is configured; Archive may be nil to disable archiving.
type Service struct {
	validate *validator.Validate
	clean    *Sanitizer
	verifier Verifier
	mailer   Mailer
	seen     cache.Store
	archive  storage.Archive
	metrics  *metrics.Metrics
	opts     Options
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(opts Options, verifier Verifier, mailer Mailer, seen cache.Store, archive storage.Archive, m *metrics.Metrics) *Service {
	return &Service{
		validate: validator.New(),
		clean:    NewSanitizer(),
		verifier: verifier,
		mailer:   mailer,
		seen:     seen,
		archive:  archive,
		metrics:  m,
		opts:     opts,
		log:      logger.Component("contact"),
		now:      time.Now,
	}
}

// Submit runs one submission through the whole pipeline. Mail is sent at
// most once per submit; there is no retry.
func (s *Service) Submit(ctx context.Context, req models.ContactRequest, remoteIP string) (models.ContactResponse, error) {
	req = s.clean.Request(req)
	if req.Subject == "" {
		req.Subject = defaultSubject
	}

	if err := s.validate.Struct(req); err != nil {
		s.count(metrics.OutcomeInvalid)
		return models.ContactResponse{}, toValidationError(err)
	}

	if err := s.checkCaptcha(ctx, req.CaptchaToken(), remoteIP); err != nil {
		s.count(metrics.OutcomeCaptchaFailed)
		return models.ContactResponse{}, err
	}

	key := utils.Fingerprint(req.Email, req.Subject, req.Message)
	claimed, err := s.seen.Claim(ctx, key, s.opts.DedupeTTL)
	if err != nil {
		s.log.Warn().Err(err).Msg("Dedupe claim failed, continuing")
	} else if !claimed {
		s.log.Info().Str("email", req.Email).Msg("Duplicate submission ignored")
		s.count(metrics.OutcomeDuplicate)
		return sentResponse(), nil
	}

	// A failed send gives the key back so the visitor can retry
	release := func() {
		if !claimed {
			return
		}
		if err := s.seen.Release(context.WithoutCancel(ctx), key); err != nil {
			s.log.Warn().Err(err).Msg("Error releasing dedupe claim")
		}
	}

	sub := &models.Submission{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Company:    req.Company,
		Subject:    req.Subject,
		Message:    req.Message,
		IP:         remoteIP,
		ReceivedAt: s.now().UTC(),
	}
	if s.archive != nil {
		if err := s.archive.Save(ctx, sub); err != nil {
			s.log.Error().Err(err).Str("id", sub.ID).Msg("Error archiving submission")
		}
	}

	body, err := renderEmail(req)
	if err != nil {
		release()
		s.count(metrics.OutcomeMailFailed)
		return models.ContactResponse{}, err
	}

	err = s.mailer.Send(ctx, Message{
		To:      s.opts.Recipients,
		ReplyTo: req.Email,
		Subject: "New Contact: " + req.Subject,
		HTML:    body,
	})
	if err != nil {
		release()
		s.count(metrics.OutcomeMailFailed)
		s.log.Error().Err(err).Str("id", sub.ID).Msg("Error sending contact email")
		if errors.Is(err, ErrMailNotConfigured) {
			return models.ContactResponse{}, err
		}
		return models.ContactResponse{}, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	s.count(metrics.OutcomeSent)
	s.log.Info().
		Str("id", sub.ID).
		Str("subject", req.Subject).
		Int("recipients", len(s.opts.Recipients)).
		Msg("Contact email sent")

	return sentResponse(), nil
}

func (s *Service) checkCaptcha(ctx context.Context, token, remoteIP string) error {
	if s.opts.SkipCaptcha {
		return nil
	}
	if s.verifier == nil || token == "" {
		return ErrCaptchaRequired
	}

	ok, err := s.verifier.Verify(ctx, token, remoteIP)
	if err != nil {
		s.log.Error().Err(err).Msg("reCAPTCHA verification error")
		return ErrCaptchaFailed
	}
	if !ok {
		return ErrCaptchaFailed
	}
	return nil
}

func (s *Service) count(outcome string) {
	if s.metrics != nil {
		s.metrics.ContactSubmissions.WithLabelValues(outcome).Inc()
	}
}

func sentResponse() models.ContactResponse {
	return models.ContactResponse{
		Success: true,
		Message: "Your message has been sent successfully!",
	}
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return &ValidationError{Fields: fields}
}

// Failure maps a Submit error to an HTTP status and the message shown to
// the visitor.
func Failure(err error) (int, models.ContactResponse) {
	fail := func(status int, msg string) (int, models.ContactResponse) {
		return status, models.ContactResponse{Success: false, Message: msg}
	}

	switch {
	case errors.Is(err, ErrInvalid):
		return fail(http.StatusBadRequest, invalidMessage(err))
	case errors.Is(err, ErrCaptchaRequired):
		return fail(http.StatusBadRequest, "Please complete the reCAPTCHA.")
	case errors.Is(err, ErrCaptchaFailed):
		return fail(http.StatusBadRequest, "reCAPTCHA verification failed. Please try again.")
	case errors.Is(err, ErrMailNotConfigured):
		return fail(http.StatusInternalServerError, "Email service not configured")
	case errors.Is(err, ErrSendFailed):
		return fail(http.StatusInternalServerError, "Failed to send email. Please try again later.")
	default:
		return fail(http.StatusInternalServerError, "An error occurred. Please try again later.")
	}
}

func invalidMessage(err error) string {
	const missing = "Missing required fields: name, email and message are required."

	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) == 0 {
		return missing
	}
	for _, tag := range verr.Fields {
		if tag == "required" {
			return missing
		}
	}
	if tag, ok := verr.Fields["Email"]; ok && tag == "email" {
		return "Please enter a valid email address."
	}
	return "One or more fields are too long. Please shorten your message and try again."
}
