package middleware

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	perrors "github.com/vango-dev/productpage/internal/errors"
	"github.com/vango-dev/productpage/pkg/dom"
	"github.com/vango-dev/productpage/pkg/notify"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "productpage").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for listener duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "productpage",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type metrics struct {
	eventsTotal   *prometheus.CounterVec
	eventDuration *prometheus.HistogramVec
	eventErrors   *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// metricsKey identifies one set of collectors. Prometheus and
// CountNotifications called with the same registry, namespace and
// subsystem share collectors; the first call's buckets and const labels
// win.
type metricsKey struct {
	registry  prometheus.Registerer
	namespace string
	subsystem string
}

var (
	globalMetrics   = make(map[metricsKey]*metrics)
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of listener invocations",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "target", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Listener duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"type"}),

		eventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_errors_total",
			Help:        "Total number of failed listener invocations",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "error_type"}),

		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notifications_total",
			Help:        "Total number of notifications shown",
			ConstLabels: config.ConstLabels,
		}, []string{"level"}),
	}
}

func metricsFor(opts []MetricsOption) *metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	key := metricsKey{registry: config.Registry, namespace: config.Namespace, subsystem: config.Subsystem}

	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	m, ok := globalMetrics[key]
	if !ok {
		m = initMetrics(config)
		globalMetrics[key] = m
	}
	return m
}

// Prometheus creates middleware that collects Prometheus metrics for every
// listener invocation.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	doc := dom.NewDocument(body, dom.WithMiddleware(
//	    middleware.Prometheus(middleware.WithRegistry(reg)),
//	))
func Prometheus(opts ...MetricsOption) dom.Middleware {
	m := metricsFor(opts)

	return func(ev *dom.Event, next func() error) error {
		start := time.Now()
		err := next()
		m.eventDuration.WithLabelValues(ev.Type).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			m.eventErrors.WithLabelValues(ev.Type, categorizeError(err)).Inc()
		}
		m.eventsTotal.WithLabelValues(ev.Type, target(ev), status).Inc()

		return err
	}
}

// CountNotifications wraps next so every notification is counted by level.
// It shares the metrics created by Prometheus.
func CountNotifications(next notify.Notifier, opts ...MetricsOption) notify.Notifier {
	m := metricsFor(opts)
	return notify.Func(func(ctx context.Context, n notify.Notification) {
		m.notifications.WithLabelValues(string(n.Level)).Inc()
		if next != nil {
			next.Notify(ctx, n)
		}
	})
}

// target names the element whose listener ran.
func target(ev *dom.Event) string {
	return ev.CurrentTarget.Selector()
}

// categorizeError returns a low-cardinality class for err: its error code
// when it carries one, a keyword class otherwise.
func categorizeError(err error) string {
	if code := perrors.Code(err); code != "" {
		return code
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "panic"):
		return "panic"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline"):
		return "timeout"
	case strings.Contains(msg, "not found"), strings.Contains(msg, "not inside"), strings.Contains(msg, "no title"):
		return "not_found"
	case strings.Contains(msg, "storage"):
		return "storage"
	default:
		return "internal"
	}
}
