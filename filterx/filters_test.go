// Package filterx provides tests for the built-in filters.
package filterx

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/limekit/lime/core/errors"
	"github.com/limekit/lime/core/log"
)

// recordLogger captures records by level and message. The testingx
// mocks cannot be used here: testingx builds on objectx, which imports
// this package.
type recordLogger struct {
	records []logRecord
}

type logRecord struct {
	level, msg string
}

func (l *recordLogger) With(kv ...any) log.Logger              { return l }
func (l *recordLogger) Debug(msg string, kv ...any)            { l.add("DEBUG", msg) }
func (l *recordLogger) Info(msg string, kv ...any)             { l.add("INFO", msg) }
func (l *recordLogger) Warn(msg string, kv ...any)             { l.add("WARN", msg) }
func (l *recordLogger) Error(err error, msg string, kv ...any) { l.add("ERROR", msg) }

func (l *recordLogger) add(level, msg string) {
	l.records = append(l.records, logRecord{level, msg})
}

func (l *recordLogger) logged(level, msg string) bool {
	for _, r := range l.records {
		if r.level == level && r.msg == msg {
			return true
		}
	}
	return false
}

func runOnce(t *testing.T, filter Filter, core Next) (any, error) {
	t.Helper()
	reg := NewRegistry()
	reg.Apply("adapter", "Fetch", filter)
	return reg.Run(context.Background(), "adapter", "Fetch", Params{}, core)
}

func TestLoggingFilter(t *testing.T) {
	logger := &recordLogger{}

	_, err := runOnce(t, Logging(logger), func(ctx context.Context, p Params) (any, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !logger.logged("INFO", "invocation completed") {
		t.Errorf("completion not logged, records = %v", logger.records)
	}
}

func TestLoggingFilterOnError(t *testing.T) {
	logger := &recordLogger{}

	runOnce(t, Logging(logger), func(ctx context.Context, p Params) (any, error) {
		return nil, errors.New(errors.CodeInternal, "boom")
	})
	if !logger.logged("ERROR", "invocation failed") {
		t.Errorf("failure not logged, records = %v", logger.records)
	}
}

func TestMetricsFilter(t *testing.T) {
	reg := prometheus.NewRegistry()
	filter := Metrics(MetricsOptions{Registerer: reg, Namespace: "test"})

	runOnce(t, filter, func(ctx context.Context, p Params) (any, error) {
		return nil, nil
	})
	runOnce(t, filter, func(ctx context.Context, p Params) (any, error) {
		return nil, errors.New(errors.CodeInternal, "boom")
	})

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	if !found["test_invocation_duration_seconds"] {
		t.Error("duration histogram not collected")
	}
	if !found["test_invocation_failures_total"] {
		t.Error("failure counter not collected")
	}
}

func TestTracingFilter(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := provider.Tracer("filterx_test")

	runOnce(t, Tracing(tracer), func(ctx context.Context, p Params) (any, error) {
		return nil, nil
	})

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	if got := spans[0].Name(); got != "adapter.Fetch" {
		t.Errorf("span name = %q, want adapter.Fetch", got)
	}
}

func TestBreakerFilterOpensAfterFailures(t *testing.T) {
	filter := Breaker(BreakerOptions{
		Name:      "test",
		Threshold: 2,
		Timeout:   time.Minute,
	})

	failing := func(ctx context.Context, p Params) (any, error) {
		return nil, errors.New(errors.CodeInternal, "down")
	}

	// Trip the breaker.
	runOnce(t, filter, failing)
	runOnce(t, filter, failing)

	_, err := runOnce(t, filter, func(ctx context.Context, p Params) (any, error) {
		t.Error("core ran while breaker open")
		return nil, nil
	})
	if errors.CodeOf(err) != errors.CodeUnavailable {
		t.Errorf("Run() error = %v, want UNAVAILABLE", err)
	}
}

// gobreaker sentinels are matched through the error chain, so an
// upstream error wrapping one still fails fast as UNAVAILABLE.
func TestBreakerFilterMapsWrappedSentinel(t *testing.T) {
	filter := Breaker(BreakerOptions{Name: "wrapped", Threshold: 5})

	_, err := runOnce(t, filter, func(ctx context.Context, p Params) (any, error) {
		return nil, fmt.Errorf("upstream: %w", gobreaker.ErrOpenState)
	})
	if errors.CodeOf(err) != errors.CodeUnavailable {
		t.Errorf("Run() error = %v, want UNAVAILABLE", err)
	}
}

func TestDefaultFiltersComposition(t *testing.T) {
	logger := &recordLogger{}

	tests := []struct {
		name string
		opts Options
		want int
	}{
		{"empty options", Options{}, 0},
		{"logger only", Options{Logger: logger}, 1},
		{"logger and breaker", Options{Logger: logger, Breaker: &BreakerOptions{}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(DefaultFilters(tt.opts)); got != tt.want {
				t.Errorf("DefaultFilters() returned %d filters, want %d", got, tt.want)
			}
		})
	}
}
