// Package metrics exposes the site's Prometheus counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lawgate"

// Contact submission outcomes
const (
	OutcomeSent          = "sent"
	OutcomeDuplicate     = "duplicate"
	OutcomeInvalid       = "invalid"
	OutcomeCaptchaFailed = "captcha_failed"
	OutcomeMailFailed    = "mail_failed"
)

// Metrics holds the counters. Each instance owns its registry so tests
// can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	ContactSubmissions *prometheus.CounterVec
	ContentListed      *prometheus.CounterVec
	ThumbnailFallbacks *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ContactSubmissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions by outcome",
		}, []string{"outcome"}),
		ContentListed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_list_requests_total",
			Help:      "Catalog listing requests by content type filter",
		}, []string{"type"}),
		ThumbnailFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "thumbnail_fallbacks_total",
			Help:      "Thumbnail load failures reported by clients, by what was served next",
		}, []string{"result"}),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
