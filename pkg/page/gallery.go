package page

// Gallery swaps the main image and tracks zoom.
type Gallery struct {
	state *State
	view  GalleryView
}

// NewGallery creates a Gallery over state.
func NewGallery(state *State, view GalleryView) *Gallery {
	return &Gallery{state: state, view: view}
}

// SelectThumbnail shows full as the main image and makes the thumbnail
// keyed key the unique active one.
func (g *Gallery) SelectThumbnail(key, full string) {
	g.view.RenderImage(full)
	g.view.RenderActive(GroupThumbnails, key)
}

// ToggleZoom flips the zoom state and returns it.
func (g *Gallery) ToggleZoom() bool {
	g.state.Zoomed = !g.state.Zoomed
	g.view.RenderZoom(g.state.Zoomed)
	return g.state.Zoomed
}
