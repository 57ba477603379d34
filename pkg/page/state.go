package page

// Persisted selection keys.
const (
	KeyColor = "selectedColor"
	KeySize  = "selectedSize"
)

// Placeholder shown for an unset part of the variant label.
const Placeholder = "—"

// State is the page's shared UI state.
type State struct {
	// Color is the selected color. Empty means not yet chosen.
	Color string

	// Size is the selected size. It is set during Init and never empty
	// afterwards when the size control has a value.
	Size string

	// Zoomed reports whether the main image is zoomed.
	Zoomed bool
}

// Label formats the variant label: "<color or —> - <size or —>".
func (s State) Label() string {
	return orPlaceholder(s.Color) + " - " + orPlaceholder(s.Size)
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
