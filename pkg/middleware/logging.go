package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/vango-dev/productpage/pkg/dom"
)

// Logging logs every listener invocation at debug level, and failures at
// warn level. A nil logger uses slog.Default().
func Logging(logger *slog.Logger) dom.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ev *dom.Event, next func() error) error {
		start := time.Now()
		err := next()
		attrs := []any{
			"type", ev.Type,
			"target", ev.Target.Selector(),
			"listener", ev.CurrentTarget.Selector(),
			"duration", time.Since(start),
		}
		if ev.Key != "" {
			attrs = append(attrs, "key", ev.Key)
		}
		if err != nil {
			logger.Warn("listener failed", append(attrs, "error", err)...)
			return err
		}
		logger.Debug("listener", attrs...)
		return nil
	}
}

// PanicError is returned by Recover when a listener panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("listener panic: %v", e.Value)
}

// Recover turns a panicking listener into a *PanicError so the remaining
// listeners and queued events still run. A nil logger uses slog.Default().
func Recover(logger *slog.Logger) dom.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ev *dom.Event, next func() error) (err error) {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				logger.Error("listener panic",
					"panic", r,
					"type", ev.Type,
					"target", ev.Target.Selector(),
					"stack", string(stack))
				err = &PanicError{Value: r, Stack: stack}
			}
		}()
		return next()
	}
}
