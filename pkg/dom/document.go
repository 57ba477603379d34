package dom

import (
	"context"
	"log/slog"
)

// Document owns an element tree and delivers events to it.
type Document struct {
	root       *Element
	window     []windowListener
	middleware []Middleware
	onError    func(ev *Event, err error)
	logger     *slog.Logger

	queue       []*Event
	dispatching bool
	scrolls     []ScrollRequest
}

type windowListener struct {
	typ string
	l   Listener
}

// DocumentOption configures a Document.
type DocumentOption func(*Document)

// WithLogger sets the logger used for listener errors.
func WithLogger(logger *slog.Logger) DocumentOption {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMiddleware appends middleware wrapping every listener invocation.
// The first middleware is the outermost.
func WithMiddleware(mw ...Middleware) DocumentOption {
	return func(d *Document) {
		d.middleware = append(d.middleware, mw...)
	}
}

// WithErrorHandler replaces the default error handler, which logs.
func WithErrorHandler(fn func(ev *Event, err error)) DocumentOption {
	return func(d *Document) {
		d.onError = fn
	}
}

// NewDocument creates a document rooted at body. A nil body creates an
// empty <body>.
func NewDocument(body *Element, opts ...DocumentOption) *Document {
	if body == nil {
		body = Body()
	}
	body.Remove()
	d := &Document{
		root:   body,
		logger: slog.Default(),
	}
	body.doc = d
	for _, opt := range opts {
		opt(d)
	}
	if d.onError == nil {
		d.onError = func(ev *Event, err error) {
			d.logger.Warn("listener failed",
				"type", ev.Type,
				"target", ev.Target.Selector(),
				"error", err,
			)
		}
	}
	return d
}

// Use appends middleware after construction.
func (d *Document) Use(mw ...Middleware) {
	d.middleware = append(d.middleware, mw...)
}

// Body returns the root element.
func (d *Document) Body() *Element {
	return d.root
}

// GetElementByID returns the element with the given id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	var found *Element
	d.root.walk(func(n *Element) bool {
		if n.Kind == KindElement && n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// QuerySelector returns the first element matching sel, including the root.
func (d *Document) QuerySelector(sel string) *Element {
	all := d.QuerySelectorAll(sel)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// QuerySelectorAll returns every element matching sel in document order,
// including the root.
func (d *Document) QuerySelectorAll(sel string) []*Element {
	s, err := Compile(sel)
	if err != nil {
		return nil
	}
	var out []*Element
	d.root.walk(func(n *Element) bool {
		if s.Match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// AddEventListener registers a window-level listener. Window listeners
// run after the event has bubbled through the target's ancestors.
func (d *Document) AddEventListener(typ string, l Listener) {
	if l == nil {
		return
	}
	d.window = append(d.window, windowListener{typ: typ, l: l})
}

// Dispatch delivers ev to target (nil for the window). If a dispatch is
// already running, ev is queued and delivered after it completes.
func (d *Document) Dispatch(ctx context.Context, target *Element, ev *Event) {
	if ev == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ev.Target = target
	ev.ctx = ctx
	d.queue = append(d.queue, ev)
	if d.dispatching {
		return
	}

	d.dispatching = true
	defer func() { d.dispatching = false }()
	for len(d.queue) > 0 {
		next := d.queue[0]
		d.queue = d.queue[1:]
		d.deliver(next)
	}
}

// Click dispatches a click to target.
func (d *Document) Click(ctx context.Context, target *Element) {
	d.Dispatch(ctx, target, Click())
}

// KeyDown dispatches a keydown for key to target (nil for the window).
func (d *Document) KeyDown(ctx context.Context, target *Element, key string) {
	d.Dispatch(ctx, target, KeyDown(key))
}

// Change sets target's value and dispatches a change event.
func (d *Document) Change(ctx context.Context, target *Element, value string) {
	if target != nil {
		target.SetValue(value)
	}
	d.Dispatch(ctx, target, Change(value))
}

// ScrollRequests returns the scroll-into-view calls made so far.
func (d *Document) ScrollRequests() []ScrollRequest {
	out := make([]ScrollRequest, len(d.scrolls))
	copy(out, d.scrolls)
	return out
}

func (d *Document) deliver(ev *Event) {
	for n := ev.Target; n != nil && !ev.stopped; n = n.parent {
		listeners := n.listeners[ev.Type]
		if len(listeners) == 0 {
			continue
		}
		// Listeners added during delivery wait for the next event.
		snapshot := make([]Listener, len(listeners))
		copy(snapshot, listeners)
		for _, l := range snapshot {
			ev.CurrentTarget = n
			d.invoke(ev, l)
		}
	}
	if ev.stopped {
		return
	}
	window := make([]windowListener, len(d.window))
	copy(window, d.window)
	for _, w := range window {
		if w.typ != ev.Type {
			continue
		}
		ev.CurrentTarget = nil
		d.invoke(ev, w.l)
	}
}

func (d *Document) invoke(ev *Event, l Listener) {
	call := func() error { return l(ev) }
	for i := len(d.middleware) - 1; i >= 0; i-- {
		mw := d.middleware[i]
		next := call
		call = func() error { return mw(ev, next) }
	}
	if err := call(); err != nil {
		d.onError(ev, err)
	}
}
