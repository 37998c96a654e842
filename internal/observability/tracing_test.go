package observability

import (
	"context"
	"testing"
)

func TestTracingConfigFromEnv(t *testing.T) {
	t.Setenv("SOLARWCS_TRACING_ENABLED", "true")
	t.Setenv("SOLARWCS_TRACING_EXPORTER", "OTLP")
	t.Setenv("SOLARWCS_TRACING_SAMPLE_RATIO", "0.25")

	cfg := TracingConfigFromEnv()
	if !cfg.Enabled {
		t.Fatalf("Enabled = false, want true")
	}
	if cfg.Exporter != "otlp" {
		t.Fatalf("Exporter = %q, want otlp", cfg.Exporter)
	}
	if cfg.SampleRatio != 0.25 {
		t.Fatalf("SampleRatio = %v, want 0.25", cfg.SampleRatio)
	}
	if cfg.ServiceName != "solarwcs" {
		t.Fatalf("ServiceName = %q, want solarwcs", cfg.ServiceName)
	}
}

func TestTracingConfigRejectsBadRatio(t *testing.T) {
	t.Setenv("SOLARWCS_TRACING_SAMPLE_RATIO", "7")
	if got := TracingConfigFromEnv().SampleRatio; got != 1 {
		t.Fatalf("SampleRatio = %v, want fallback 1", got)
	}
}

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), TracingConfig{}, nil)
	if err != nil {
		t.Fatalf("InitTracing: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	ShutdownWithTimeout(context.Background(), shutdown, nil)
}

func TestInitTracingUnknownExporter(t *testing.T) {
	_, err := InitTracing(context.Background(), TracingConfig{Enabled: true, Exporter: "zipkin"}, nil)
	if err == nil {
		t.Fatalf("InitTracing accepted an unsupported exporter")
	}
}
