package page

import (
	"strconv"

	"github.com/vango-dev/productpage/pkg/dom"
)

// Marker classes.
const (
	ClassSelected = "selected"
	ClassActive   = "active"
	ClassZoomed   = "zoomed"
	ClassHidden   = "hidden"
)

// DOMView implements View over a document.
//
// The swatch and thumbnail sets are captured at construction, so compare
// swatches built later (which also carry the swatch class) are never
// touched by the variant selection.
type DOMView struct {
	mainImage  *dom.Element
	label      *dom.Element
	sizeSelect *dom.Element
	swatches   []*dom.Element
	thumbs     []*dom.Element
}

var _ View = (*DOMView)(nil)

// NewDOMView creates a view over the given elements.
func NewDOMView(mainImage, label, sizeSelect *dom.Element, swatches, thumbs []*dom.Element) *DOMView {
	return &DOMView{
		mainImage:  mainImage,
		label:      label,
		sizeSelect: sizeSelect,
		swatches:   swatches,
		thumbs:     thumbs,
	}
}

// RenderLabel sets the variant label text.
func (v *DOMView) RenderLabel(text string) {
	v.label.SetText(text)
}

// RenderImage sets the main image source.
func (v *DOMView) RenderImage(src string) {
	v.mainImage.SetAttribute("src", src)
}

// RenderActive marks the swatch whose data-color equals key, or the
// thumbnail at position key.
func (v *DOMView) RenderActive(group Group, key string) {
	switch group {
	case GroupSwatches:
		for _, sw := range v.swatches {
			sw.SetClass(ClassSelected, key != "" && sw.Data("color") == key)
		}
	case GroupThumbnails:
		for i, th := range v.thumbs {
			th.SetClass(ClassActive, key != "" && strconv.Itoa(i) == key)
		}
	}
}

// RenderSize sets the size control's value.
func (v *DOMView) RenderSize(size string) {
	v.sizeSelect.SetValue(size)
}

// RenderZoom toggles the zoomed class on the main image.
func (v *DOMView) RenderZoom(zoomed bool) {
	v.mainImage.SetClass(ClassZoomed, zoomed)
}
