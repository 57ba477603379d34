package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/productpage/pkg/dom"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	btn := dom.Button(dom.ID("buy"))
	doc := dom.NewDocument(dom.Body(btn),
		dom.WithMiddleware(Logging(logger)),
		dom.WithErrorHandler(func(*dom.Event, error) {}),
	)
	btn.AddEventListener(dom.EventClick, func(*dom.Event) error { return nil })
	btn.AddEventListener(dom.EventClick, func(*dom.Event) error { return errors.New("out of stock") })

	doc.Click(context.Background(), btn)

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG msg=listener") {
		t.Errorf("missing debug line:\n%s", out)
	}
	if !strings.Contains(out, `level=WARN msg="listener failed"`) || !strings.Contains(out, `error="out of stock"`) {
		t.Errorf("missing warn line:\n%s", out)
	}
	if !strings.Contains(out, "target=#buy") {
		t.Errorf("missing target:\n%s", out)
	}
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	var errs []error
	btn := dom.Button(dom.ID("buy"))
	doc := dom.NewDocument(dom.Body(btn),
		dom.WithMiddleware(Recover(logger)),
		dom.WithErrorHandler(func(_ *dom.Event, err error) { errs = append(errs, err) }),
	)
	ran := false
	btn.AddEventListener(dom.EventClick, func(*dom.Event) error { panic("boom") })
	btn.AddEventListener(dom.EventClick, func(*dom.Event) error {
		ran = true
		return nil
	})

	doc.Click(context.Background(), btn)

	if !ran {
		t.Error("listener after the panic did not run")
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	var pe *PanicError
	if !errors.As(errs[0], &pe) || pe.Value != "boom" || len(pe.Stack) == 0 {
		t.Errorf("error = %#v, want *PanicError", errs[0])
	}
	if !strings.Contains(buf.String(), "listener panic") {
		t.Errorf("panic not logged:\n%s", buf.String())
	}
}
