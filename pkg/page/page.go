package page

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/vango-dev/productpage/internal/config"
	"github.com/vango-dev/productpage/internal/errors"
	"github.com/vango-dev/productpage/pkg/dom"
	"github.com/vango-dev/productpage/pkg/notify"
	"github.com/vango-dev/productpage/pkg/storage"
)

// Options configures a mounted page.
type Options struct {
	// Store persists the selection. Nil keeps it for the session only.
	Store storage.Store

	// Notifier receives cart acknowledgments. Nil logs them.
	Notifier notify.Notifier

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// BundlePrices are summed into the bundle total. New fills them from
	// the catalog when empty.
	BundlePrices []float64

	// Middleware wraps every listener invocation of a document created
	// by New.
	Middleware []dom.Middleware
}

// Page is a mounted product page.
type Page struct {
	id     string
	doc    *dom.Document
	state  *State
	logger *slog.Logger

	Variant *Selector
	Gallery *Gallery
	Modals  *Controller
	Compare *Compare
	Tabs    *Tabs
	Cart    *Cart
}

// required lists the ids Mount binds to.
var required = []string{
	"mainImage",
	"sizeSelect",
	"selVariant",
	"sizeChartBtn",
	"sizeChartModal",
	"compareModal",
	"compareColorsBtn",
	"compareSwatches",
	"comparePreview",
	"addToCartBtn",
	"addBundleBtn",
	"bundleTotal",
}

// requiredClass names the class a required element must also carry.
var requiredClass = map[string]string{
	"sizeChartModal": "modal",
	"compareModal":   "modal",
}

// New builds the markup for cat into a fresh document and mounts it.
func New(cat *config.Catalog, opts Options) (*Page, error) {
	body, err := BuildMarkup(cat)
	if err != nil {
		return nil, err
	}
	if len(opts.BundlePrices) == 0 {
		opts.BundlePrices = cat.Bundle.Prices
	}
	doc := dom.NewDocument(body,
		dom.WithLogger(opts.Logger),
		dom.WithMiddleware(opts.Middleware...),
	)
	return Mount(doc, opts)
}

// Mount initializes every component against doc and registers its
// listeners. It restores the persisted selection before returning.
//
// Mount fails with a P010 error when a required element is missing.
// Mounting the same document twice registers every listener twice.
func Mount(doc *dom.Document, opts Options) (*Page, error) {
	els := make(map[string]*dom.Element, len(required))
	var missing []string
	for _, id := range required {
		el := doc.GetElementByID(id)
		if el == nil {
			missing = append(missing, "#"+id)
			continue
		}
		if cls := requiredClass[id]; cls != "" && !el.HasClass(cls) {
			missing = append(missing, "#"+id+"."+cls)
			continue
		}
		els[id] = el
	}
	if len(missing) > 0 {
		return nil, errors.New("P010").
			WithDetailf("missing %s", strings.Join(missing, ", ")).
			WithSuggestion("Build the document with page.BuildMarkup or add the elements listed above.")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	logger = logger.With("page", id)

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewLogger(logger)
	}

	p := &Page{
		id:     id,
		doc:    doc,
		state:  &State{},
		logger: logger,
	}

	mainImage := els["mainImage"]
	sizeSelect := els["sizeSelect"]
	swatches := doc.QuerySelectorAll(".swatch")
	thumbs := doc.QuerySelectorAll(".thumb")
	view := NewDOMView(mainImage, els["selVariant"], sizeSelect, swatches, thumbs)

	// Gallery
	p.Gallery = NewGallery(p.state, view)
	for i, th := range thumbs {
		key, th := strconv.Itoa(i), th
		th.AddEventListener(dom.EventClick, func(ev *dom.Event) error {
			full := th.Data("full")
			if full == "" {
				full = th.Attribute("src")
			}
			p.Gallery.SelectThumbnail(key, full)
			return nil
		})
	}
	mainImage.AddEventListener(dom.EventClick, func(ev *dom.Event) error {
		p.Gallery.ToggleZoom()
		return nil
	})
	mainImage.AddEventListener(dom.EventKeyDown, func(ev *dom.Event) error {
		if ev.Key == dom.KeyEnter {
			p.Gallery.ToggleZoom()
		}
		return nil
	})

	// Variants
	p.Variant = NewSelector(p.state, view, opts.Store, logger)
	p.Variant.Init(sizeSelect.Value())
	for _, sw := range swatches {
		sw := sw
		sw.AddEventListener(dom.EventClick, func(ev *dom.Event) error {
			p.Variant.SelectColor(sw.Data("color"), sw.Data("image"))
			return nil
		})
	}
	sizeSelect.AddEventListener(dom.EventChange, func(ev *dom.Event) error {
		p.Variant.SelectSize(sizeSelect.Value())
		return nil
	})

	// Modals
	p.Modals = NewController(doc)
	p.Modals.Bind(doc)
	sizeModal := p.Modals.Get("sizeChartModal")
	els["sizeChartBtn"].AddEventListener(dom.EventClick, func(ev *dom.Event) error {
		sizeModal.Open()
		return nil
	})

	// Compare
	p.Compare = NewCompare(swatches, els["compareSwatches"], els["comparePreview"])
	cmpModal := p.Modals.Get("compareModal")
	els["compareColorsBtn"].AddEventListener(dom.EventClick, func(ev *dom.Event) error {
		p.Compare.Build()
		cmpModal.Open()
		return nil
	})

	// Tabs
	p.Tabs = NewTabs(doc)
	p.Tabs.Bind()

	// Cart
	p.Cart = NewCart(p.state, notifier, els["bundleTotal"])
	p.Cart.SetBundle(opts.BundlePrices)
	els["addToCartBtn"].AddEventListener(dom.EventClick, func(ev *dom.Event) error {
		p.Cart.AddToCart(ev.Context())
		return nil
	})
	els["addBundleBtn"].AddEventListener(dom.EventClick, func(ev *dom.Event) error {
		p.Cart.AddBundle(ev.Context())
		return nil
	})
	for _, btn := range doc.QuerySelectorAll(".card-add") {
		btn.AddEventListener(dom.EventClick, func(ev *dom.Event) error {
			return p.Cart.AddCard(ev.Context(), ev.Target)
		})
	}

	logger.Debug("page mounted",
		"swatches", len(swatches),
		"thumbnails", len(thumbs),
		"tabs", len(p.Tabs.buttons),
		"color", p.state.Color,
		"size", p.state.Size,
	)
	return p, nil
}

// ID returns the page's session id.
func (p *Page) ID() string {
	return p.id
}

// Document returns the mounted document.
func (p *Page) Document() *dom.Document {
	return p.doc
}

// State returns a copy of the current UI state.
func (p *Page) State() State {
	return *p.state
}

// Logger returns the page-scoped logger.
func (p *Page) Logger() *slog.Logger {
	return p.logger
}
