package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TranslationCollector bundles Prometheus metrics for frame lookups and the
// HTTP translation surface. It satisfies registry.Recorder.
type TranslationCollector struct {
	gatherer prometheus.Gatherer

	Lookups      *prometheus.CounterVec
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// NewTranslationCollector registers metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil. Collectors that are
// already registered are reused.
func NewTranslationCollector(reg prometheus.Registerer) (*TranslationCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	lookups, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solarwcs_lookups_total",
		Help: "Registry lookups, labeled by direction, matching translator, and outcome.",
	}, []string{"direction", "translator", "outcome"}), "solarwcs_lookups_total")
	if err != nil {
		return nil, err
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solarwcs_http_requests_total",
		Help: "Handled HTTP requests, labeled by route pattern and status code.",
	}, []string{"route", "code"}), "solarwcs_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solarwcs_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route"}), "solarwcs_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &TranslationCollector{
		gatherer:     gatherer,
		Lookups:      lookups,
		HTTPRequests: requests,
		HTTPDuration: durations,
	}, nil
}

// ObserveLookup counts one registry lookup.
func (c *TranslationCollector) ObserveLookup(direction, translator, outcome string) {
	if c == nil || c.Lookups == nil {
		return
	}
	if translator == "" {
		translator = "none"
	}
	c.Lookups.WithLabelValues(direction, translator, outcome).Inc()
}

// ObserveHTTP records one handled request.
func (c *TranslationCollector) ObserveHTTP(route string, code int, elapsed time.Duration) {
	if c == nil {
		return
	}
	if route == "" {
		route = "unknown"
	}
	if c.HTTPRequests != nil {
		c.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	}
	if c.HTTPDuration != nil {
		c.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *TranslationCollector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
