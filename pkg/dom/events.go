package dom

import "context"

// Event types dispatched by the page.
const (
	EventClick   = "click"
	EventKeyDown = "keydown"
	EventChange  = "change"
)

// Keys reported by keyboard events.
const (
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
)

// Event is a user interaction delivered to listeners.
type Event struct {
	// Type is the event type ("click", "keydown", "change").
	Type string

	// Key is the key name for keyboard events.
	Key string

	// Value is the new control value for change events.
	Value string

	// Target is the element the event was dispatched to. It is nil for
	// events dispatched to the window.
	Target *Element

	// CurrentTarget is the element whose listener is running. It is nil
	// while window-level listeners run.
	CurrentTarget *Element

	ctx     context.Context
	stopped bool
}

// Context returns the context the event was dispatched with.
func (e *Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// WithContext replaces the event's context. Middleware uses it to attach
// spans and loggers for downstream listeners.
func (e *Event) WithContext(ctx context.Context) {
	e.ctx = ctx
}

// StopPropagation prevents the event from reaching further ancestors.
// Remaining listeners on the current element still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Listener handles an event. A returned error is reported to the
// document's error handler; it never stops other listeners.
type Listener func(ev *Event) error

// Middleware wraps every listener invocation.
type Middleware func(ev *Event, next func() error) error

// Click creates a click event.
func Click() *Event { return &Event{Type: EventClick} }

// KeyDown creates a keydown event for key.
func KeyDown(key string) *Event { return &Event{Type: EventKeyDown, Key: key} }

// Change creates a change event carrying the control's new value.
func Change(value string) *Event { return &Event{Type: EventChange, Value: value} }

// ScrollOptions mirrors the browser's scrollIntoView options.
type ScrollOptions struct {
	Behavior string // "auto" or "smooth"
	Block    string // "start", "center", "end" or "nearest"
}

// ScrollRequest records one scroll-into-view call.
type ScrollRequest struct {
	Element *Element
	Options ScrollOptions
}
