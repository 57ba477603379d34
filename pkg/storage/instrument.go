package storage

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentConfig configures Instrument.
type InstrumentConfig struct {
	// Namespace is the metrics namespace (default: "productpage").
	Namespace string

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// Logger receives one debug record per failed operation.
	// Default: slog.Default()
	Logger *slog.Logger
}

// Instrumented wraps a Store, counting operations by result and logging
// failures at debug level.
type Instrumented struct {
	next   Store
	ops    *prometheus.CounterVec
	logger *slog.Logger
}

// Instrument wraps next with metrics and debug logging. The counter
// <namespace>_storage_operations_total{op,result} is registered on the
// configured registry.
func Instrument(next Store, cfg InstrumentConfig) *Instrumented {
	if cfg.Namespace == "" {
		cfg.Namespace = "productpage"
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: "storage",
		Name:      "operations_total",
		Help:      "Total number of key-value store operations by result",
	}, []string{"op", "result"})
	if err := cfg.Registry.Register(ops); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			ops = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			cfg.Logger.Warn("storage metrics not registered", "error", err)
		}
	}

	return &Instrumented{next: next, ops: ops, logger: cfg.Logger}
}

// Unwrap returns the wrapped store.
func (s *Instrumented) Unwrap() Store {
	return s.next
}

// Get implements Store.
func (s *Instrumented) Get(key string) (string, bool, error) {
	v, ok, err := s.next.Get(key)
	s.record("get", key, err)
	return v, ok, err
}

// Set implements Store.
func (s *Instrumented) Set(key, value string) error {
	err := s.next.Set(key, value)
	s.record("set", key, err)
	return err
}

func (s *Instrumented) record(op, key string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		s.logger.Debug("storage operation failed", "op", op, "key", key, "error", err)
	}
	s.ops.WithLabelValues(op, result).Inc()
}
