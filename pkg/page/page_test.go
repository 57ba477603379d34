package page

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/productpage/internal/config"
	"github.com/vango-dev/productpage/internal/errors"
	"github.com/vango-dev/productpage/pkg/dom"
	"github.com/vango-dev/productpage/pkg/notify"
	"github.com/vango-dev/productpage/pkg/storage"
)

type fixture struct {
	page  *Page
	doc   *dom.Document
	store *storage.Memory
	rec   *notify.Recorder
}

func mount(t *testing.T, store *storage.Memory) *fixture {
	t.Helper()
	if store == nil {
		store = storage.NewMemory(nil)
	}
	rec := &notify.Recorder{}
	p, err := New(config.Default(), Options{
		Store:    store,
		Notifier: rec,
		Logger:   quietLogger(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &fixture{page: p, doc: p.Document(), store: store, rec: rec}
}

func (f *fixture) q(t *testing.T, sel string) *dom.Element {
	t.Helper()
	el := f.doc.QuerySelector(sel)
	if el == nil {
		t.Fatalf("no element matches %q", sel)
	}
	return el
}

func (f *fixture) click(t *testing.T, sel string) {
	t.Helper()
	f.doc.Click(context.Background(), f.q(t, sel))
}

func (f *fixture) label(t *testing.T) string {
	t.Helper()
	return f.q(t, "#selVariant").TextContent()
}

func TestMountInitialState(t *testing.T) {
	f := mount(t, nil)

	if got := f.label(t); got != "— - M" {
		t.Errorf("label = %q, want %q", got, "— - M")
	}
	if got := f.q(t, "#bundleTotal").TextContent(); got != "$75.00" {
		t.Errorf("bundle total = %q, want $75.00", got)
	}
	if n := len(f.doc.QuerySelectorAll(".swatch.selected")); n != 0 {
		t.Errorf("%d swatches selected before any interaction", n)
	}
	if f.page.ID() == "" {
		t.Error("page id is empty")
	}
	if ids := f.page.Modals.OpenModals(); len(ids) != 0 {
		t.Errorf("open modals at mount: %v", ids)
	}
}

func TestMountMissingElements(t *testing.T) {
	doc := dom.NewDocument(dom.Body(dom.Img(dom.ID("mainImage"))))
	_, err := Mount(doc, Options{Logger: quietLogger()})
	if err == nil {
		t.Fatal("Mount succeeded without required elements")
	}
	if errors.Code(err) != "P010" {
		t.Errorf("code = %q, want P010", errors.Code(err))
	}
	if !strings.Contains(err.Error(), "#sizeSelect") {
		t.Errorf("error %q does not name the missing element", err)
	}
	if strings.Contains(err.Error(), "#mainImage") {
		t.Errorf("error %q names a present element", err)
	}
}

func TestMountModalWithoutClass(t *testing.T) {
	body, err := BuildMarkup(config.Default())
	if err != nil {
		t.Fatalf("BuildMarkup: %v", err)
	}
	doc := dom.NewDocument(body)
	doc.GetElementByID("compareModal").RemoveClass("modal")

	_, err = Mount(doc, Options{Logger: quietLogger()})
	if errors.Code(err) != "P010" {
		t.Fatalf("Mount error = %v, want P010", err)
	}
	if !strings.Contains(err.Error(), "#compareModal.modal") {
		t.Errorf("error %q does not name the modal", err)
	}
	if strings.Contains(err.Error(), "#sizeChartModal") {
		t.Errorf("error %q names a valid modal", err)
	}
}

func TestThumbnailSwapsImage(t *testing.T) {
	f := mount(t, nil)
	thumbs := f.doc.QuerySelectorAll(".thumb")

	f.doc.Click(context.Background(), thumbs[1])

	if got := f.q(t, "#mainImage").Attribute("src"); got != "/images/tee-back.jpg" {
		t.Errorf("main image = %q", got)
	}
	active := f.doc.QuerySelectorAll(".thumb.active")
	if len(active) != 1 || active[0] != thumbs[1] {
		t.Errorf("active thumbnails = %d, want only the clicked one", len(active))
	}

	// The last thumbnail has no full-size image and falls back to its src.
	f.doc.Click(context.Background(), thumbs[3])
	if got := f.q(t, "#mainImage").Attribute("src"); got != "/images/tee-model.jpg" {
		t.Errorf("main image = %q, want the thumbnail src", got)
	}
	if thumbs[1].HasClass(ClassActive) {
		t.Error("previous thumbnail still active")
	}
}

func TestSwatchWithImageClearsThumbnails(t *testing.T) {
	f := mount(t, nil)
	f.click(t, ".thumb")
	f.click(t, `.swatch[data-color="Red"]`)

	if got := f.q(t, "#mainImage").Attribute("src"); got != "/images/tee-red.jpg" {
		t.Errorf("main image = %q", got)
	}
	if n := len(f.doc.QuerySelectorAll(".thumb.active")); n != 0 {
		t.Errorf("%d thumbnails still active", n)
	}
	if got := f.label(t); got != "Red - M" {
		t.Errorf("label = %q", got)
	}
	selected := f.doc.QuerySelectorAll(".swatch.selected")
	if len(selected) != 1 || selected[0].Data("color") != "Red" {
		t.Errorf("selected swatches = %d", len(selected))
	}
}

func TestZoomToggle(t *testing.T) {
	f := mount(t, nil)
	img := f.q(t, "#mainImage")
	ctx := context.Background()

	f.doc.Click(ctx, img)
	if !img.HasClass(ClassZoomed) || !f.page.State().Zoomed {
		t.Fatal("click should zoom")
	}
	f.doc.KeyDown(ctx, img, "a")
	if !img.HasClass(ClassZoomed) {
		t.Fatal("keys other than Enter must be ignored")
	}
	f.doc.KeyDown(ctx, img, dom.KeyEnter)
	if img.HasClass(ClassZoomed) || f.page.State().Zoomed {
		t.Fatal("Enter should unzoom")
	}
}

func TestSelectionSurvivesReload(t *testing.T) {
	store := storage.NewMemory(nil)
	f := mount(t, store)
	f.click(t, `.swatch[data-color="Red"]`)
	f.doc.Change(context.Background(), f.q(t, "#sizeSelect"), "L")
	f.doc.Change(context.Background(), f.q(t, "#sizeSelect"), "M")

	reloaded := mount(t, store)
	state := reloaded.page.State()
	if state.Color != "Red" || state.Size != "M" {
		t.Fatalf("restored %+v, want Red/M", state)
	}
	if got := reloaded.label(t); got != "Red - M" {
		t.Errorf("label = %q", got)
	}
	if got := reloaded.q(t, "#sizeSelect").Value(); got != "M" {
		t.Errorf("size control = %q", got)
	}
	if !reloaded.q(t, `.swatch[data-color="Red"]`).HasClass(ClassSelected) {
		t.Error("restored swatch not marked")
	}
}

func TestRestoredSizeOutsideOptions(t *testing.T) {
	f := mount(t, storage.NewMemory(map[string]string{KeySize: "XXL"}))

	if got := f.page.State().Size; got != "XXL" {
		t.Errorf("size = %q, want the stored value", got)
	}
	if got := f.label(t); got != "— - XXL" {
		t.Errorf("label = %q", got)
	}
}

func TestUnavailableStore(t *testing.T) {
	p, err := New(config.Default(), Options{
		Store:    storage.Unavailable{},
		Notifier: &notify.Recorder{},
		Logger:   quietLogger(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	doc := p.Document()
	doc.Click(context.Background(), doc.QuerySelector(`.swatch[data-color="Navy"]`))
	if got := p.State().Label(); got != "Navy - M" {
		t.Errorf("label = %q", got)
	}
}

func TestSizeChartModal(t *testing.T) {
	f := mount(t, nil)
	modal := f.q(t, "#sizeChartModal")
	body := f.doc.Body()

	f.click(t, "#sizeChartBtn")
	if modal.Attribute("aria-hidden") != "false" || body.Style("overflow") != "hidden" {
		t.Fatal("size chart did not open")
	}
	if ids := f.page.Modals.OpenModals(); len(ids) != 1 || ids[0] != "sizeChartModal" {
		t.Errorf("OpenModals() = %v", ids)
	}

	// Clicks inside the panel do not close it.
	f.click(t, "#sizeChartModal table")
	f.click(t, "#sizeChartModal h3")
	if modal.Attribute("aria-hidden") != "false" {
		t.Fatal("clicking modal content closed it")
	}

	f.doc.KeyDown(context.Background(), nil, dom.KeyEscape)
	if modal.Attribute("aria-hidden") != "true" || body.Style("overflow") != "" {
		t.Fatal("Escape did not close the modal")
	}
}

func TestModalBackdropAndCloseButton(t *testing.T) {
	f := mount(t, nil)
	modal := f.q(t, "#sizeChartModal")

	f.click(t, "#sizeChartBtn")
	f.doc.Click(context.Background(), modal)
	if modal.Attribute("aria-hidden") != "true" {
		t.Fatal("backdrop click did not close the modal")
	}

	f.click(t, "#sizeChartBtn")
	f.click(t, "#sizeChartModal .modal-close")
	if modal.Attribute("aria-hidden") != "true" {
		t.Fatal("close button did not close the modal")
	}
	if f.doc.Body().Style("overflow") != "" {
		t.Error("scroll lock not released")
	}
}

func TestEscapeWithoutOpenModal(t *testing.T) {
	f := mount(t, nil)
	f.doc.KeyDown(context.Background(), nil, dom.KeyEscape)
	for _, m := range f.doc.QuerySelectorAll(".modal") {
		if m.Attribute("aria-hidden") != "true" {
			t.Errorf("%s changed state", m.Selector())
		}
	}
}

func TestCompareBuild(t *testing.T) {
	f := mount(t, nil)
	f.click(t, "#compareColorsBtn")

	if f.q(t, "#compareModal").Attribute("aria-hidden") != "false" {
		t.Fatal("compare modal did not open")
	}
	picks := f.doc.QuerySelectorAll("#compareSwatches .swatch")
	if len(picks) != 5 {
		t.Fatalf("built %d compare swatches, want 5", len(picks))
	}
	first := picks[0]
	if first.Tag != "button" || first.Data("color") != "Red" ||
		first.Attribute("aria-label") != "Compare Red" || first.Style("background") != "#c0392b" {
		t.Errorf("unexpected compare swatch %s", first.OuterHTML())
	}
	if f.q(t, "#comparePreview").InnerHTML() != "" {
		t.Error("preview not empty after build")
	}

	// Picking compare swatches leaves the variant selection alone.
	f.doc.Click(context.Background(), first)
	if got := f.label(t); got != "— - M" {
		t.Errorf("label = %q", got)
	}
}

func TestComparePreviewCap(t *testing.T) {
	f := mount(t, nil)
	f.click(t, "#compareColorsBtn")
	picks := f.doc.QuerySelectorAll("#compareSwatches .swatch")
	ctx := context.Background()

	// Pick in reverse order; the preview keeps construction order.
	for i := len(picks) - 1; i >= 0; i-- {
		f.doc.Click(ctx, picks[i])
	}

	blocks := f.doc.QuerySelectorAll("#comparePreview .compare-block")
	if len(blocks) != MaxCompare {
		t.Fatalf("%d preview blocks, want %d", len(blocks), MaxCompare)
	}
	want := []string{"Red", "Navy", "Sage", "Sand"}
	for i, b := range blocks {
		if got := b.QuerySelector(".compare-name").TextContent(); got != want[i] {
			t.Errorf("block %d = %q, want %q", i, got, want[i])
		}
	}
	if got := blocks[0].QuerySelector(".compare-dot").Style("background"); got != "#c0392b" {
		t.Errorf("dot background = %q", got)
	}
	if n := len(f.doc.QuerySelectorAll("#compareSwatches .swatch.selected")); n != 5 {
		t.Errorf("%d picks marked, want all 5", n)
	}

	// Unpicking one of the first four lets the fifth in.
	f.doc.Click(ctx, picks[1])
	if got := f.page.Compare.Selected(); strings.Join(got, ",") != "Red,Sage,Sand,Charcoal" {
		t.Errorf("Selected() = %v", got)
	}

	// Reopening starts over.
	f.click(t, "#compareColorsBtn")
	if got := f.page.Compare.Selected(); len(got) != 0 {
		t.Errorf("Selected() after rebuild = %v", got)
	}
	if n := len(f.doc.QuerySelectorAll("#compareSwatches .swatch")); n != 5 {
		t.Errorf("%d compare swatches after rebuild", n)
	}
}

func TestTabs(t *testing.T) {
	f := mount(t, nil)
	f.click(t, `.tab-btn[data-tab="materials"]`)

	for _, pane := range f.doc.QuerySelectorAll(".tab-content") {
		hidden := pane.HasClass(ClassHidden)
		if pane.ID() == "materials" && hidden {
			t.Error("materials pane hidden")
		}
		if pane.ID() != "materials" && !hidden {
			t.Errorf("%s pane visible", pane.ID())
		}
	}
	active := f.doc.QuerySelectorAll(".tab-btn.active")
	if len(active) != 1 || active[0].Data("tab") != "materials" {
		t.Errorf("active buttons = %d", len(active))
	}
	if f.page.Tabs.Active() != "materials" {
		t.Errorf("Active() = %q", f.page.Tabs.Active())
	}

	scrolls := f.doc.ScrollRequests()
	if len(scrolls) != 1 {
		t.Fatalf("%d scroll requests, want 1", len(scrolls))
	}
	if scrolls[0].Element.ID() != "materials" ||
		scrolls[0].Options != (dom.ScrollOptions{Behavior: "smooth", Block: "nearest"}) {
		t.Errorf("scroll request = %+v", scrolls[0])
	}
}

func TestTabWithoutPane(t *testing.T) {
	f := mount(t, nil)
	orphan := dom.Button(dom.Class("tab-btn"), dom.Data("tab", "missing"))
	f.doc.Body().AppendChild(orphan)
	f.page.Tabs.buttons = append(f.page.Tabs.buttons, orphan)

	f.page.Tabs.Select(orphan)

	if n := len(f.doc.QuerySelectorAll(".tab-content.hidden")); n != 3 {
		t.Errorf("%d hidden panes, want all 3", n)
	}
	if len(f.doc.ScrollRequests()) != 0 {
		t.Error("scrolled without a pane")
	}
	if f.page.Tabs.Activate("nope") {
		t.Error("Activate of an unknown tab reported true")
	}
	if !f.page.Tabs.Activate("reviews") {
		t.Error("Activate(reviews) = false")
	}
}

func TestCartNotifications(t *testing.T) {
	f := mount(t, nil)

	f.click(t, "#addToCartBtn")
	f.click(t, `.swatch[data-color="Sand"]`)
	f.doc.Change(context.Background(), f.q(t, "#sizeSelect"), "XL")
	f.click(t, "#addToCartBtn")
	f.click(t, "#addBundleBtn")
	f.click(t, ".card .card-add")

	want := []string{
		"Added to cart: — / M",
		"Added to cart: Sand / XL",
		"Bundle added. Total $75.00",
		"Canvas Tote added to cart",
	}
	got := f.rec.Messages()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("notifications =\n%q\nwant\n%q", got, want)
	}
	for _, n := range f.rec.All() {
		if n.Level != notify.LevelSuccess {
			t.Errorf("%q level = %s", n.Message, n.Level)
		}
	}
}

func TestCardWithoutTitle(t *testing.T) {
	f := mount(t, nil)
	cart := f.page.Cart
	orphan := dom.Button(dom.Class("card-add"))
	f.doc.Body().AppendChild(orphan)

	if err := cart.AddCard(context.Background(), orphan); err == nil {
		t.Error("AddCard outside a card succeeded")
	}
	card := dom.Div(dom.Class("card"), dom.Button(dom.Class("card-add")))
	f.doc.Body().AppendChild(card)
	if err := cart.AddCard(context.Background(), card.QuerySelector(".card-add")); err == nil {
		t.Error("AddCard without a title succeeded")
	}
	if len(f.rec.All()) != 0 {
		t.Errorf("unexpected notifications %v", f.rec.Messages())
	}
}

func TestMountCustomBundle(t *testing.T) {
	p, err := New(config.Default(), Options{
		BundlePrices: []float64{19.99, 5.01},
		Logger:       quietLogger(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := p.Document().GetElementByID("bundleTotal").TextContent(); got != "$25.00" {
		t.Errorf("bundle total = %q", got)
	}
}
