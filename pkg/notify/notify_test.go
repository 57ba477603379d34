package notify

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestHelpersSetLevel(t *testing.T) {
	ctx := context.Background()
	rec := &Recorder{}

	Success(ctx, rec, "saved")
	Error(ctx, rec, "failed")
	Warning(ctx, rec, "careful")
	Info(ctx, rec, "fyi")
	WithTitle(ctx, rec, LevelInfo, "Cart", "Socks added to cart")

	want := []Notification{
		{Level: LevelSuccess, Message: "saved"},
		{Level: LevelError, Message: "failed"},
		{Level: LevelWarning, Message: "careful"},
		{Level: LevelInfo, Message: "fyi"},
		{Level: LevelInfo, Title: "Cart", Message: "Socks added to cart"},
	}
	got := rec.All()
	if len(got) != len(want) {
		t.Fatalf("expected %d notifications, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestNilNotifierIsNoop(t *testing.T) {
	Success(context.Background(), nil, "dropped")
	WithTitle(context.Background(), nil, LevelInfo, "t", "dropped")
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	if _, ok := rec.Last(); ok {
		t.Error("empty recorder has no last notification")
	}

	Success(context.Background(), rec, "one")
	Success(context.Background(), rec, "two")

	if last, _ := rec.Last(); last.Message != "two" {
		t.Errorf("Last() = %q, want two", last.Message)
	}
	if msgs := rec.Messages(); len(msgs) != 2 || msgs[0] != "one" {
		t.Errorf("Messages() = %v", msgs)
	}

	rec.Reset()
	if len(rec.All()) != 0 {
		t.Error("Reset should clear notifications")
	}
}

func TestNotificationString(t *testing.T) {
	if got := (Notification{Message: "m"}).String(); got != "m" {
		t.Errorf("String() = %q", got)
	}
	if got := (Notification{Title: "T", Message: "m"}).String(); got != "T: m" {
		t.Errorf("String() = %q", got)
	}
}

func TestMultiAndFunc(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	var seen string
	m := Multi{a, nil, b, Func(func(_ context.Context, n Notification) { seen = n.Message })}

	Info(context.Background(), m, "hello")

	if len(a.All()) != 1 || len(b.All()) != 1 || seen != "hello" {
		t.Errorf("Multi did not fan out: a=%v b=%v seen=%q", a.All(), b.All(), seen)
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	Success(context.Background(), w, "Bundle added. Total $75.00")

	if got := buf.String(); got != "[success] Bundle added. Total $75.00\n" {
		t.Errorf("Writer output = %q", got)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	Warning(context.Background(), l, "low stock")
	WithTitle(context.Background(), l, LevelError, "Cart", "failed")

	out := buf.String()
	for _, want := range []string{"level=WARN", "message=\"low stock\"", "level=ERROR", "title=Cart"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if NewLogger(nil).logger == nil {
		t.Error("NewLogger(nil) should fall back to the default logger")
	}
}
