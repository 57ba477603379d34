package page

import (
	"github.com/vango-dev/productpage/pkg/dom"
)

// MaxCompare is the most colors the compare preview shows. Further picks
// stay marked in the picker but are left out of the preview.
const MaxCompare = 4

// Compare builds the compare-colors picker and its preview.
type Compare struct {
	sources   []*dom.Element
	container *dom.Element
	preview   *dom.Element
	picks     []*dom.Element
}

// NewCompare creates a builder that mirrors sources into container and
// previews the picked colors in preview.
func NewCompare(sources []*dom.Element, container, preview *dom.Element) *Compare {
	return &Compare{sources: sources, container: container, preview: preview}
}

// Build discards any previous picker and preview and creates one compare
// swatch per source swatch, none picked.
func (c *Compare) Build() {
	c.container.Clear()
	c.preview.Clear()
	c.picks = c.picks[:0]
	for _, src := range c.sources {
		color := src.Data("color")
		sw := dom.Button(
			dom.Class("swatch"),
			dom.Type("button"),
			dom.Style("background", src.Style("background")),
			dom.Data("color", color),
			dom.AriaLabel("Compare "+color),
		)
		sw.AddEventListener(dom.EventClick, func(ev *dom.Event) error {
			c.Toggle(sw)
			return nil
		})
		c.container.AppendChild(sw)
		c.picks = append(c.picks, sw)
	}
}

// Toggle flips sw's picked state and refreshes the preview.
func (c *Compare) Toggle(sw *dom.Element) {
	sw.ToggleClass(ClassSelected)
	c.Refresh()
}

// Selected returns the picked colors in construction order, capped at
// MaxCompare.
func (c *Compare) Selected() []string {
	picked := c.picked()
	out := make([]string, len(picked))
	for i, sw := range picked {
		out[i] = sw.Data("color")
	}
	return out
}

func (c *Compare) picked() []*dom.Element {
	var out []*dom.Element
	for _, sw := range c.picks {
		if !sw.HasClass(ClassSelected) {
			continue
		}
		out = append(out, sw)
		if len(out) == MaxCompare {
			break
		}
	}
	return out
}

// Refresh rebuilds the preview from the picked swatches.
func (c *Compare) Refresh() {
	c.preview.Clear()
	for _, sw := range c.picked() {
		c.preview.AppendChild(dom.Div(
			dom.Class("compare-block"),
			dom.Div(dom.Class("compare-dot"), dom.Style("background", sw.Style("background"))),
			dom.Div(dom.Class("compare-name"), sw.Data("color")),
		))
	}
}
