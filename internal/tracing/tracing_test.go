package tracing

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
)

var testLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{
		"STARNAV_TRACING_ENABLED", "STARNAV_TRACING_EXPORTER",
		"STARNAV_TRACING_SERVICE_NAME", "STARNAV_TRACING_SAMPLE_RATIO", "STARNAV_OTLP_ENDPOINT",
	} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig(testLogger)
	if cfg.Enabled {
		t.Error("tracing should be disabled by default")
	}
	if cfg.Exporter != "stdout" || cfg.ServiceName != "starnav" || cfg.SampleRatio != 1.0 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("STARNAV_TRACING_ENABLED", "true")
	t.Setenv("STARNAV_TRACING_EXPORTER", "OTLP")
	t.Setenv("STARNAV_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("STARNAV_TRACING_SAMPLE_RATIO", "0.25")

	cfg := LoadConfig(testLogger)
	if !cfg.Enabled || cfg.Exporter != "otlp" || cfg.Endpoint != "collector:4317" || cfg.SampleRatio != 0.25 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigInvalidRatio(t *testing.T) {
	t.Setenv("STARNAV_TRACING_SAMPLE_RATIO", "1.5")
	if got := LoadConfig(testLogger).SampleRatio; got != 1.0 {
		t.Errorf("SampleRatio = %v, want default 1.0", got)
	}
}

func TestInitDisabled(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{}, testLogger)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}

	_, span := otel.Tracer("test").Start(context.Background(), "noop")
	if span.SpanContext().IsValid() {
		t.Error("disabled tracing produced a valid span context")
	}
	span.End()
}

func TestInitStdout(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Init(context.Background(), Config{Enabled: true, Exporter: "stdout", ServiceName: "test", SampleRatio: 1, Writer: &buf}, testLogger)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { Init(context.Background(), Config{}, testLogger) })

	_, span := otel.Tracer("test").Start(context.Background(), "routeset.build")
	span.End()
	ShutdownWithTimeout(context.Background(), shutdown, testLogger)

	if !strings.Contains(buf.String(), "routeset.build") {
		t.Errorf("exported spans missing span name: %q", buf.String())
	}
}

func TestInitUnsupportedExporter(t *testing.T) {
	if _, err := Init(context.Background(), Config{Enabled: true, Exporter: "zipkin"}, testLogger); err == nil {
		t.Fatal("expected error for unsupported exporter")
	}
}
