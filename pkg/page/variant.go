package page

import (
	"log/slog"

	"github.com/vango-dev/productpage/pkg/storage"
)

// Selector tracks the selected color and size.
//
// Every mutation is rendered through the view and written to the store.
// Store failures are logged at debug level and otherwise ignored; the
// in-memory State stays authoritative for the session.
type Selector struct {
	state  *State
	view   VariantView
	store  storage.Store
	logger *slog.Logger
}

// NewSelector creates a Selector over state. A nil store keeps the
// selection for the session only; a nil logger uses slog.Default().
func NewSelector(state *State, view VariantView, store storage.Store, logger *slog.Logger) *Selector {
	if store == nil {
		store = storage.NewMemory(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{state: state, view: view, store: store, logger: logger}
}

// Init restores the persisted selection. A stored color is adopted and its
// swatch marked; a stored size is adopted and shown in the size control.
// Without a stored size, defaultSize (the control's initial value) is used.
func (s *Selector) Init(defaultSize string) {
	s.state.Size = defaultSize

	if color := s.load(KeyColor); color != "" {
		s.state.Color = color
		s.view.RenderActive(GroupSwatches, color)
	}
	if size := s.load(KeySize); size != "" {
		s.state.Size = size
		s.view.RenderSize(size)
	}
	s.view.RenderLabel(s.state.Label())
}

// SelectColor selects color. When the color option carries an image, the
// image replaces the main image and no thumbnail stays active.
func (s *Selector) SelectColor(color, image string) {
	s.view.RenderActive(GroupSwatches, color)
	s.state.Color = color
	if image != "" {
		s.view.RenderImage(image)
		s.view.RenderActive(GroupThumbnails, "")
	}
	s.view.RenderLabel(s.state.Label())
	s.persist(KeyColor, color)
}

// SelectSize selects size.
func (s *Selector) SelectSize(size string) {
	s.state.Size = size
	s.view.RenderLabel(s.state.Label())
	s.persist(KeySize, size)
}

// Label returns the current variant label.
func (s *Selector) Label() string {
	return s.state.Label()
}

func (s *Selector) load(key string) string {
	v, ok, err := s.store.Get(key)
	if err != nil {
		s.logger.Debug("restore selection failed", "key", key, "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

func (s *Selector) persist(key, value string) {
	if err := s.store.Set(key, value); err != nil {
		s.logger.Debug("persist selection failed", "key", key, "error", err)
	}
}
