package page

// Group names a set of elements of which the view marks at most one.
type Group uint8

const (
	// GroupSwatches are the color swatches; keys are color names.
	GroupSwatches Group = iota

	// GroupThumbnails are the gallery thumbnails; keys are their
	// positions ("0", "1", ...).
	GroupThumbnails
)

// String returns the group name.
func (g Group) String() string {
	switch g {
	case GroupSwatches:
		return "swatches"
	case GroupThumbnails:
		return "thumbnails"
	default:
		return "unknown"
	}
}

// ImageRenderer shows an image as the main product image.
type ImageRenderer interface {
	RenderImage(src string)
}

// ActiveRenderer marks the element keyed key as the unique active member
// of group. An empty key clears the group.
type ActiveRenderer interface {
	RenderActive(group Group, key string)
}

// VariantView is the rendering surface of the Selector.
type VariantView interface {
	ImageRenderer
	ActiveRenderer

	// RenderLabel shows the variant label.
	RenderLabel(text string)

	// RenderSize shows size as the size control's value.
	RenderSize(size string)
}

// GalleryView is the rendering surface of the Gallery.
type GalleryView interface {
	ImageRenderer
	ActiveRenderer

	// RenderZoom reflects the zoom state.
	RenderZoom(zoomed bool)
}

// View is every capability the page renders through.
type View interface {
	VariantView
	RenderZoom(zoomed bool)
}
