package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	perrors "github.com/vango-dev/productpage/internal/errors"
	"github.com/vango-dev/productpage/pkg/dom"
	"github.com/vango-dev/productpage/pkg/notify"
)

func resetGlobalMetricsForTest(t *testing.T) *prometheus.Registry {
	t.Helper()
	globalMetricsMu.Lock()
	globalMetrics = make(map[metricsKey]*metrics)
	globalMetricsMu.Unlock()
	t.Cleanup(func() {
		globalMetricsMu.Lock()
		globalMetrics = make(map[metricsKey]*metrics)
		globalMetricsMu.Unlock()
	})
	return prometheus.NewRegistry()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func TestPrometheusRecordsSuccessAndError(t *testing.T) {
	reg := resetGlobalMetricsForTest(t)

	btn := dom.Button(dom.ID("buy"))
	doc := dom.NewDocument(dom.Body(btn),
		dom.WithMiddleware(Prometheus(WithRegistry(reg), WithNamespace("test"))),
		dom.WithErrorHandler(func(*dom.Event, error) {}),
	)
	btn.AddEventListener(dom.EventClick, func(*dom.Event) error { return nil })
	btn.AddEventListener(dom.EventClick, func(*dom.Event) error {
		return perrors.New("P001")
	})

	doc.Click(context.Background(), btn)
	doc.Click(context.Background(), btn)

	m := metricsFor([]MetricsOption{WithRegistry(reg), WithNamespace("test")})
	if got := testutil.ToFloat64(m.eventsTotal.WithLabelValues("click", "#buy", "success")); got != 2 {
		t.Errorf("success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.eventsTotal.WithLabelValues("click", "#buy", "error")); got != 2 {
		t.Errorf("error count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.eventErrors.WithLabelValues("click", "P001")); got != 2 {
		t.Errorf("P001 errors = %v, want 2", got)
	}
	if got := metricHistogramCount(t, m.eventDuration.WithLabelValues("click")); got != 4 {
		t.Errorf("duration samples = %d, want 4", got)
	}

	n, err := testutil.GatherAndCount(reg, "test_events_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if n != 2 {
		t.Errorf("test_events_total series = %d, want 2", n)
	}
}

func TestPrometheusSharesMetrics(t *testing.T) {
	reg := resetGlobalMetricsForTest(t)
	first := metricsFor([]MetricsOption{WithRegistry(reg)})

	if metricsFor([]MetricsOption{WithRegistry(reg)}) != first {
		t.Error("same registry should reuse the metrics")
	}
	if metricsFor([]MetricsOption{WithRegistry(reg), WithNamespace("other")}) == first {
		t.Error("another namespace should get its own metrics")
	}
	if metricsFor([]MetricsOption{WithRegistry(prometheus.NewRegistry())}) == first {
		t.Error("another registry should get its own metrics")
	}
}

func TestPrometheusPerRegistry(t *testing.T) {
	resetGlobalMetricsForTest(t)

	for i := 0; i < 2; i++ {
		reg := prometheus.NewRegistry()
		btn := dom.Button(dom.ID("buy"))
		doc := dom.NewDocument(dom.Body(btn), dom.WithMiddleware(Prometheus(WithRegistry(reg))))
		btn.AddEventListener(dom.EventClick, func(*dom.Event) error { return nil })
		n := CountNotifications(nil, WithRegistry(reg))

		doc.Click(context.Background(), btn)
		notify.Info(context.Background(), n, "hi")

		for _, name := range []string{"productpage_events_total", "productpage_notifications_total"} {
			count, err := testutil.GatherAndCount(reg, name)
			if err != nil {
				t.Fatalf("run %d: GatherAndCount(%s): %v", i, name, err)
			}
			if count != 1 {
				t.Errorf("run %d: %s series = %d, want 1", i, name, count)
			}
		}
	}
}

func TestPrometheusOptions(t *testing.T) {
	reg := resetGlobalMetricsForTest(t)
	btn := dom.Button(dom.ID("buy"))
	doc := dom.NewDocument(dom.Body(btn), dom.WithMiddleware(Prometheus(
		WithRegistry(reg),
		WithNamespace("shop"),
		WithSubsystem("page"),
		WithConstLabels(prometheus.Labels{"env": "test"}),
		WithBuckets([]float64{0.5, 1}),
	)))
	btn.AddEventListener(dom.EventClick, func(*dom.Event) error { return nil })
	doc.Click(context.Background(), btn)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	byName := make(map[string]*dto.MetricFamily)
	for _, f := range families {
		byName[f.GetName()] = f
	}

	events := byName["shop_page_events_total"]
	if events == nil {
		t.Fatalf("shop_page_events_total not registered; have %d families", len(families))
	}
	var env string
	for _, lp := range events.GetMetric()[0].GetLabel() {
		if lp.GetName() == "env" {
			env = lp.GetValue()
		}
	}
	if env != "test" {
		t.Errorf("env label = %q, want test", env)
	}

	duration := byName["shop_page_event_duration_seconds"]
	if duration == nil {
		t.Fatal("shop_page_event_duration_seconds not registered")
	}
	if got := len(duration.GetMetric()[0].GetHistogram().GetBucket()); got != 2 {
		t.Errorf("histogram has %d buckets, want 2", got)
	}
}

func TestCountNotifications(t *testing.T) {
	reg := resetGlobalMetricsForTest(t)
	rec := &notify.Recorder{}
	n := CountNotifications(rec, WithRegistry(reg))
	m := metricsFor([]MetricsOption{WithRegistry(reg)})

	notify.Success(context.Background(), n, "a")
	notify.Success(context.Background(), n, "b")
	notify.Error(context.Background(), n, "c")

	if got := testutil.ToFloat64(m.notifications.WithLabelValues("success")); got != 2 {
		t.Errorf("success notifications = %v", got)
	}
	if got := testutil.ToFloat64(m.notifications.WithLabelValues("error")); got != 1 {
		t.Errorf("error notifications = %v", got)
	}
	if len(rec.All()) != 3 {
		t.Errorf("forwarded %d notifications, want 3", len(rec.All()))
	}

	// A nil downstream notifier only counts.
	CountNotifications(nil, WithRegistry(reg)).Notify(context.Background(), notify.Notification{Level: notify.LevelInfo})
	if got := testutil.ToFloat64(m.notifications.WithLabelValues("info")); got != 1 {
		t.Errorf("info notifications = %v", got)
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{perrors.New("P010"), "P010"},
		{perrors.New("P002").Wrap(errors.New("disk full")), "P002"},
		{&PanicError{Value: "boom"}, "panic"},
		{context.DeadlineExceeded, "timeout"},
		{errors.New("add card: button.card-add is not inside a .card"), "not_found"},
		{errors.New("something else"), "internal"},
	}
	for _, tt := range tests {
		if got := categorizeError(tt.err); got != tt.want {
			t.Errorf("categorizeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
