// Package filterx provides method interception as an explicit middleware chain.
package filterx

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/limekit/lime/core/errors"
	"github.com/limekit/lime/core/log"
)

// Options configures the default filter stack.
type Options struct {
	Logger  log.Logger      // Logger for the logging filter (nil disables it)
	Metrics *MetricsOptions // Metrics filter configuration (nil disables it)
	Tracer  trace.Tracer    // Tracer for the tracing filter (nil disables it)
	Breaker *BreakerOptions // Circuit breaker configuration (nil disables it)
}

// DefaultFilters composes the standard filter stack from the options,
// outermost first: logging, metrics, tracing, breaker.
func DefaultFilters(opts Options) []Filter {
	var filters []Filter
	if opts.Logger != nil {
		filters = append(filters, Logging(opts.Logger))
	}
	if opts.Metrics != nil {
		filters = append(filters, Metrics(*opts.Metrics))
	}
	if opts.Tracer != nil {
		filters = append(filters, Tracing(opts.Tracer))
	}
	if opts.Breaker != nil {
		filters = append(filters, Breaker(*opts.Breaker))
	}
	return filters
}

// Logging returns a filter that logs every invocation with its duration.
func Logging(logger log.Logger) Filter {
	return func(ctx context.Context, p Params, next Next) (any, error) {
		inv, _ := InvocationFrom(ctx)
		start := time.Now()

		logger.Debug("invocation started",
			log.Str("target", inv.Target),
			log.Str("method", inv.Method),
		)

		result, err := next(ctx, p)

		duration := time.Since(start)
		if err != nil {
			logger.Error(err, "invocation failed",
				log.Str("target", inv.Target),
				log.Str("method", inv.Method),
				log.Dur("duration", duration),
			)
		} else {
			logger.Info("invocation completed",
				log.Str("target", inv.Target),
				log.Str("method", inv.Method),
				log.Dur("duration", duration),
			)
		}

		return result, err
	}
}

// MetricsOptions configures the metrics filter.
type MetricsOptions struct {
	Registerer prometheus.Registerer // Metric registration target (default: prometheus.DefaultRegisterer)
	Namespace  string                // Metric namespace (default: "lime")
}

// Metrics returns a filter that records invocation durations and error
// counts, labeled by target and method.
func Metrics(opts MetricsOptions) Filter {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Namespace == "" {
		opts.Namespace = "lime"
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: opts.Namespace,
		Name:      "invocation_duration_seconds",
		Help:      "Duration of filtered invocations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"target", "method"})

	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: opts.Namespace,
		Name:      "invocation_failures_total",
		Help:      "Count of filtered invocations that returned an error.",
	}, []string{"target", "method"})

	opts.Registerer.MustRegister(durations, failures)

	return func(ctx context.Context, p Params, next Next) (any, error) {
		inv, _ := InvocationFrom(ctx)
		start := time.Now()

		result, err := next(ctx, p)

		durations.WithLabelValues(inv.Target, inv.Method).Observe(time.Since(start).Seconds())
		if err != nil {
			failures.WithLabelValues(inv.Target, inv.Method).Inc()
		}
		return result, err
	}
}

// Tracing returns a filter that wraps the invocation in a span named
// "target.method".
func Tracing(tracer trace.Tracer) Filter {
	return func(ctx context.Context, p Params, next Next) (any, error) {
		inv, _ := InvocationFrom(ctx)

		ctx, span := tracer.Start(ctx, inv.Target+"."+inv.Method,
			trace.WithAttributes(
				attribute.String("lime.target", inv.Target),
				attribute.String("lime.method", inv.Method),
			),
		)
		defer span.End()

		result, err := next(ctx, p)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
		}
		return result, err
	}
}

// BreakerOptions configures the circuit breaker filter.
type BreakerOptions struct {
	Name        string        // Breaker name (default: "lime")
	MaxRequests uint32        // Requests allowed while half-open (default: 1)
	Timeout     time.Duration // Open-state cool-down (default: 60s)
	Threshold   uint32        // Consecutive failures before opening (default: 5)
}

// Breaker returns a filter guarding the invocation with a circuit
// breaker. While the breaker is open calls fail fast with
// CodeUnavailable.
func Breaker(opts BreakerOptions) Filter {
	if opts.Name == "" {
		opts.Name = "lime"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.Threshold == 0 {
		opts.Threshold = 5
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        opts.Name,
		MaxRequests: opts.MaxRequests,
		Timeout:     opts.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.Threshold
		},
	})

	return func(ctx context.Context, p Params, next Next) (any, error) {
		result, err := cb.Execute(func() (any, error) {
			return next(ctx, p)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errors.Wrap(errors.CodeUnavailable, "filterx.Breaker", err)
		}
		return result, err
	}
}
