package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// EventName identifies notifications in logs and traces.
const EventName = "productpage:notify"

// Level represents the notification type.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Notification is one acknowledgment shown to the user.
type Notification struct {
	Level   Level
	Title   string
	Message string
}

// String returns the notification as shown in a plain dialog.
func (n Notification) String() string {
	if n.Title != "" {
		return n.Title + ": " + n.Message
	}
	return n.Message
}

// Notifier delivers notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, n Notification)

// Notify implements Notifier.
func (f Func) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Show delivers a message at the given level. A nil notifier drops it.
func Show(ctx context.Context, to Notifier, level Level, message string) {
	if to == nil {
		return
	}
	to.Notify(ctx, Notification{Level: level, Message: message})
}

// Success shows a success notification.
//
//	notify.Success(ctx, n, "Added to cart: Red / M")
func Success(ctx context.Context, to Notifier, message string) {
	Show(ctx, to, LevelSuccess, message)
}

// Error shows an error notification.
func Error(ctx context.Context, to Notifier, message string) {
	Show(ctx, to, LevelError, message)
}

// Warning shows a warning notification.
func Warning(ctx context.Context, to Notifier, message string) {
	Show(ctx, to, LevelWarning, message)
}

// Info shows an info notification.
func Info(ctx context.Context, to Notifier, message string) {
	Show(ctx, to, LevelInfo, message)
}

// WithTitle shows a notification with a title and message.
func WithTitle(ctx context.Context, to Notifier, level Level, title, message string) {
	if to == nil {
		return
	}
	to.Notify(ctx, Notification{Level: level, Title: title, Message: message})
}

// Multi fans a notification out to every notifier in order.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, n Notification) {
	for _, to := range m {
		if to != nil {
			to.Notify(ctx, n)
		}
	}
}

// Recorder keeps every notification it receives. The zero value is ready
// to use and it is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Notify implements Notifier.
func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Messages returns the recorded messages in order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.items))
	for i, n := range r.items {
		out[i] = n.Message
	}
	return out
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Reset discards recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}

// Logger writes notifications as structured log records.
type Logger struct {
	logger *slog.Logger
}

// NewLogger returns a Logger. A nil logger uses slog.Default().
func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger}
}

// Notify implements Notifier.
func (l *Logger) Notify(ctx context.Context, n Notification) {
	level := slog.LevelInfo
	switch n.Level {
	case LevelError:
		level = slog.LevelError
	case LevelWarning:
		level = slog.LevelWarn
	}
	attrs := []any{"event", EventName, "level_name", string(n.Level), "message", n.Message}
	if n.Title != "" {
		attrs = append(attrs, "title", n.Title)
	}
	l.logger.Log(ctx, level, "notification", attrs...)
}

// Writer prints one line per notification, the way a blocking dialog
// would present it.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter returns a Writer printing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Notify implements Notifier.
func (w *Writer) Notify(_ context.Context, n Notification) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.w, "[%s] %s\n", n.Level, n)
}
