package vtest

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/productpage/internal/config"
	"github.com/vango-dev/productpage/pkg/dom"
	"github.com/vango-dev/productpage/pkg/notify"
	"github.com/vango-dev/productpage/pkg/page"
	"github.com/vango-dev/productpage/pkg/storage"
)

// Config configures a test page.
type Config struct {
	// Catalog defaults to config.Default().
	Catalog *config.Catalog

	// Store defaults to an empty storage.Memory.
	Store storage.Store

	// Middleware wraps every listener.
	Middleware []dom.Middleware

	// Logger defaults to a logger that discards everything.
	Logger *slog.Logger
}

// Option configures a test page.
type Option func(*Config)

// WithCatalog sets the catalog the page is built from.
func WithCatalog(cat *config.Catalog) Option {
	return func(c *Config) {
		c.Catalog = cat
	}
}

// WithStore sets the selection store.
func WithStore(store storage.Store) Option {
	return func(c *Config) {
		c.Store = store
	}
}

// WithMiddleware adds listener middleware.
func WithMiddleware(mw ...dom.Middleware) Option {
	return func(c *Config) {
		c.Middleware = append(c.Middleware, mw...)
	}
}

// WithLogger sets the page logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// Page is a mounted page under test.
type Page struct {
	*page.Page

	tb       testing.TB
	config   Config
	recorder *notify.Recorder
	ctx      context.Context
}

// New mounts a page for tb. Mount failures fail the test.
func New(tb testing.TB, opts ...Option) *Page {
	tb.Helper()
	cfg := Config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Catalog == nil {
		cfg.Catalog = config.Default()
	}
	if cfg.Store == nil {
		cfg.Store = storage.NewMemory(nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	p := &Page{
		tb:       tb,
		config:   cfg,
		recorder: &notify.Recorder{},
		ctx:      context.Background(),
	}
	p.mount()
	return p
}

func (p *Page) mount() {
	p.tb.Helper()
	mounted, err := page.New(p.config.Catalog, page.Options{
		Store:      p.config.Store,
		Notifier:   p.recorder,
		Logger:     p.config.Logger,
		Middleware: p.config.Middleware,
	})
	if err != nil {
		p.tb.Fatalf("mount page: %v", err)
	}
	p.Page = mounted
}

// SimulateReload discards the document and mounts a fresh page over the
// same store. Recorded notifications are kept.
func (p *Page) SimulateReload() {
	p.tb.Helper()
	p.mount()
}

// Store returns the selection store.
func (p *Page) Store() storage.Store {
	return p.config.Store
}

// Notifications returns the messages shown so far.
func (p *Page) Notifications() []string {
	return p.recorder.Messages()
}

// Recorder returns the notification recorder.
func (p *Page) Recorder() *notify.Recorder {
	return p.recorder
}

// Query returns the first element matching sel, failing the test if none
// does.
func (p *Page) Query(sel string) *dom.Element {
	p.tb.Helper()
	el := p.Document().QuerySelector(sel)
	if el == nil {
		p.tb.Fatalf("no element matches %q", sel)
	}
	return el
}

// QueryAll returns every element matching sel.
func (p *Page) QueryAll(sel string) []*dom.Element {
	return p.Document().QuerySelectorAll(sel)
}

// Text returns the text content of the first element matching sel.
func (p *Page) Text(sel string) string {
	p.tb.Helper()
	return p.Query(sel).TextContent()
}

// Click clicks the first element matching sel.
func (p *Page) Click(sel string) {
	p.tb.Helper()
	p.Document().Click(p.ctx, p.Query(sel))
}

// KeyDown presses key on the first element matching sel. An empty sel
// targets the window.
func (p *Page) KeyDown(sel, key string) {
	p.tb.Helper()
	var target *dom.Element
	if sel != "" {
		target = p.Query(sel)
	}
	p.Document().KeyDown(p.ctx, target, key)
}

// Escape presses Escape on the window.
func (p *Page) Escape() {
	p.KeyDown("", dom.KeyEscape)
}

// Change sets the value of the first element matching sel and dispatches
// a change event.
func (p *Page) Change(sel, value string) {
	p.tb.Helper()
	p.Document().Change(p.ctx, p.Query(sel), value)
}

// HTML renders the whole document.
func (p *Page) HTML() string {
	return p.Document().Body().OuterHTML()
}

// ExpectContains asserts that el's rendered HTML contains expected.
func ExpectContains(t testing.TB, el *dom.Element, expected string) {
	t.Helper()
	html := el.OuterHTML()
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that el's rendered HTML does not contain
// unexpected.
func ExpectNotContains(t testing.TB, el *dom.Element, unexpected string) {
	t.Helper()
	html := el.OuterHTML()
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectAttribute asserts that el carries attr with value.
func ExpectAttribute(t testing.TB, el *dom.Element, attr, value string) {
	t.Helper()
	got, ok := el.GetAttribute(attr)
	if !ok {
		t.Errorf("%s: attribute %s missing", el.Selector(), attr)
		return
	}
	if got != value {
		t.Errorf("%s: %s = %q, want %q", el.Selector(), attr, got, value)
	}
}

// ExpectClass asserts whether el carries class.
func ExpectClass(t testing.TB, el *dom.Element, class string, want bool) {
	t.Helper()
	if got := el.HasClass(class); got != want {
		t.Errorf("%s: has class %q = %v, want %v", el.Selector(), class, got, want)
	}
}

// ExpectText asserts the text content of the first element matching sel.
func ExpectText(t testing.TB, p *Page, sel, want string) {
	t.Helper()
	if got := p.Text(sel); got != want {
		t.Errorf("%s text = %q, want %q", sel, got, want)
	}
}

// ExpectCount asserts how many elements match sel.
func ExpectCount(t testing.TB, p *Page, sel string, want int) {
	t.Helper()
	if got := len(p.QueryAll(sel)); got != want {
		t.Errorf("%s matches %d elements, want %d", sel, got, want)
	}
}

// ExpectNotification asserts that the last notification is message.
func ExpectNotification(t testing.TB, p *Page, message string) {
	t.Helper()
	last, ok := p.recorder.Last()
	if !ok {
		t.Errorf("no notification, want %q", message)
		return
	}
	if last.Message != message {
		t.Errorf("last notification = %q, want %q", last.Message, message)
	}
}

// ExpectStored asserts the stored value of key.
func ExpectStored(t testing.TB, p *Page, key, want string) {
	t.Helper()
	got, ok, err := p.config.Store.Get(key)
	if err != nil {
		t.Errorf("store get %q: %v", key, err)
		return
	}
	if !ok {
		t.Errorf("%q not stored, want %q", key, want)
		return
	}
	if got != want {
		t.Errorf("stored %q = %q, want %q", key, got, want)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
