package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/productpage/internal/config"
	"github.com/vango-dev/productpage/pkg/dom"
	"github.com/vango-dev/productpage/pkg/middleware"
	"github.com/vango-dev/productpage/pkg/notify"
	"github.com/vango-dev/productpage/pkg/page"
	"github.com/vango-dev/productpage/pkg/storage"
)

const configFileHint = config.ConfigFileName

// tracerName names the tracer listener spans are recorded under.
const tracerName = "github.com/vango-dev/productpage"

// globalOptions are the persistent flags.
type globalOptions struct {
	config   string
	logLevel string
	noColor  bool
}

// loadCatalog loads the catalog named by --config, or ./product.yaml when
// it exists, or the built-in default.
func loadCatalog(opts *globalOptions) (*config.Catalog, error) {
	path := opts.config
	if path == "" {
		if _, err := os.Stat(config.ConfigFileName); err == nil {
			path = config.ConfigFileName
		}
	}
	cat, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cat.Log.Level = opts.logLevel
	}
	return cat, nil
}

// newLogger builds the slog logger described by cfg.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// pageEnv is everything a command needs to mount pages.
type pageEnv struct {
	catalog  *config.Catalog
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  []middleware.MetricsOption
	store    storage.Store
	closer   io.Closer
	notifier notify.Notifier
}

// newPageEnv opens the store described by the catalog and prepares the
// middleware stack. Callers must call close.
func newPageEnv(cat *config.Catalog, out io.Writer) (*pageEnv, error) {
	logger := newLogger(cat.Log, os.Stderr)
	registry := prometheus.NewRegistry()

	store, closer, err := storage.Open(storage.Config{
		Backend: cat.Storage.Backend,
		Path:    cat.Storage.Path,
	})
	if err != nil {
		return nil, err
	}
	instrumented := storage.Instrument(store, storage.InstrumentConfig{
		Namespace: cat.Metrics.Namespace,
		Registry:  registry,
		Logger:    logger,
	})

	metrics := []middleware.MetricsOption{
		middleware.WithRegistry(registry),
		middleware.WithNamespace(cat.Metrics.Namespace),
		middleware.WithSubsystem(cat.Metrics.Subsystem),
	}
	if len(cat.Metrics.Buckets) > 0 {
		metrics = append(metrics, middleware.WithBuckets(cat.Metrics.Buckets))
	}

	notifier := notify.Multi{
		notify.NewWriter(out),
		notify.NewLogger(logger),
	}

	return &pageEnv{
		catalog:  cat,
		logger:   logger,
		registry: registry,
		metrics:  metrics,
		store:    instrumented,
		closer:   closer,
		notifier: middleware.CountNotifications(notifier, metrics...),
	}, nil
}

// mount builds and mounts a fresh page.
func (e *pageEnv) mount() (*page.Page, error) {
	return page.New(e.catalog, page.Options{
		Store:    e.store,
		Notifier: e.notifier,
		Logger:   e.logger,
		Middleware: []dom.Middleware{
			middleware.Logging(e.logger),
			middleware.Prometheus(e.metrics...),
			middleware.OpenTelemetry(middleware.WithTracerName(tracerName)),
			middleware.Recover(e.logger),
		},
	})
}

func (e *pageEnv) close() error {
	if e.closer == nil {
		return nil
	}
	if err := e.closer.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}
