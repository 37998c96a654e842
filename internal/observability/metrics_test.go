package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/signalsfoundry/solarwcs/registry"
)

var _ registry.Recorder = (*TranslationCollector)(nil)

func TestObserveLookupLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewTranslationCollector(reg)
	if err != nil {
		t.Fatalf("NewTranslationCollector: %v", err)
	}

	collector.ObserveLookup(registry.DirectionHeaderToFrame, "solar", registry.OutcomeMatched)
	collector.ObserveLookup(registry.DirectionHeaderToFrame, "solar", registry.OutcomeMatched)
	collector.ObserveLookup(registry.DirectionFrameToHeader, "", registry.OutcomeNoMapping)

	if got := testutil.ToFloat64(collector.Lookups.WithLabelValues("header_to_frame", "solar", "matched")); got != 2 {
		t.Fatalf("matched lookups = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.Lookups.WithLabelValues("frame_to_header", "none", "no_mapping")); got != 1 {
		t.Fatalf("no_mapping lookups = %v, want 1", got)
	}
}

func TestObserveHTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewTranslationCollector(reg)
	if err != nil {
		t.Fatalf("NewTranslationCollector: %v", err)
	}

	collector.ObserveHTTP("/v1/frame", http.StatusNotFound, 3*time.Millisecond)

	if got := testutil.ToFloat64(collector.HTTPRequests.WithLabelValues("/v1/frame", "404")); got != 1 {
		t.Fatalf("solarwcs_http_requests_total = %v, want 1", got)
	}
	if count := histogramSampleCount(t, reg, "solarwcs_http_request_duration_seconds", map[string]string{
		"route": "/v1/frame",
	}); count != 1 {
		t.Fatalf("solarwcs_http_request_duration_seconds sample_count = %d, want 1", count)
	}
}

func TestCollectorReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewTranslationCollector(reg)
	if err != nil {
		t.Fatalf("first NewTranslationCollector: %v", err)
	}
	second, err := NewTranslationCollector(reg)
	if err != nil {
		t.Fatalf("second NewTranslationCollector: %v", err)
	}
	if first.Lookups != second.Lookups {
		t.Fatalf("expected the already-registered counter to be reused")
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *TranslationCollector
	c.ObserveLookup("a", "b", "c")
	c.ObserveHTTP("/", 200, time.Millisecond)
}

func TestMetricsHandlerExposesCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewTranslationCollector(reg)
	if err != nil {
		t.Fatalf("NewTranslationCollector: %v", err)
	}
	collector.ObserveLookup(registry.DirectionFrameToHeader, "solar", registry.OutcomeMatched)
	collector.ObserveHTTP("/v1/header", http.StatusOK, time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{
		"solarwcs_lookups_total",
		"solarwcs_http_requests_total",
		"solarwcs_http_request_duration_seconds",
	} {
		if !strings.Contains(body, metric) {
			t.Fatalf("expected %q in /metrics output", metric)
		}
	}
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	metrics, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if matchLabels(m.GetLabel(), labels) && m.GetHistogram() != nil {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(got []*dto.LabelPair, want map[string]string) bool {
	if len(got) < len(want) {
		return false
	}
	matched := 0
	for _, lp := range got {
		if val, ok := want[lp.GetName()]; ok && val == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
