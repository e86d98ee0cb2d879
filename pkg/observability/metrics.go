package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/templates/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// OutcomeOK labels invocations that produced a result without an error.
const OutcomeOK = "ok"

// Metrics holds the component collectors.
type Metrics struct {
	Invocations    *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec
}

// NewMetrics creates unregistered collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		Invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "templates_invocations_total",
				Help: "Total number of invocations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		RenderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "templates_render_duration_seconds",
				Help:    "Duration of invocations by outcome",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"outcome"},
		),
	}
}

// Register adds the collectors to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.Invocations, m.RenderDuration} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Observe records one finished invocation.
func (m *Metrics) Observe(e *domain.InvocationEvent) {
	outcome := OutcomeOK
	if e.Outcome != "" {
		outcome = string(e.Outcome)
	}
	m.Invocations.WithLabelValues(e.Operation, outcome).Inc()
	m.RenderDuration.WithLabelValues(outcome).Observe(e.Duration.Seconds())
}

// Hooks returns lifecycle hooks that record metrics and, when logger is set,
// log every finished invocation at Debug level.
func (m *Metrics) Hooks(logger *slog.Logger) domain.LifecycleHooks {
	return ChainHooks(domain.LifecycleHooks{
		OnInvokeDone: func(_ context.Context, e *domain.InvocationEvent) {
			m.Observe(e)
		},
	}, LoggingHooks(logger))
}

// LoggingHooks logs invocation boundaries. A nil logger yields empty hooks.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	if logger == nil {
		return domain.LifecycleHooks{}
	}
	return domain.LifecycleHooks{
		OnInvokeDone: func(ctx context.Context, e *domain.InvocationEvent) {
			logger.DebugContext(ctx, "invoke_done",
				"invocation_id", e.InvocationID,
				"operation", e.Operation,
				"outcome", e.Outcome,
				"duration", e.Duration,
			)
		},
	}
}

// ChainHooks runs each set of hooks in order.
func ChainHooks(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnInvokeStart: func(ctx context.Context, e *domain.InvocationEvent) {
			for _, h := range all {
				if h.OnInvokeStart != nil {
					h.OnInvokeStart(ctx, e)
				}
			}
		},
		OnInvokeDone: func(ctx context.Context, e *domain.InvocationEvent) {
			for _, h := range all {
				if h.OnInvokeDone != nil {
					h.OnInvokeDone(ctx, e)
				}
			}
		},
	}
}
