package page

import (
	"strings"

	"github.com/vango-dev/productpage/internal/config"
	"github.com/vango-dev/productpage/internal/errors"
	"github.com/vango-dev/productpage/pkg/dom"
)

// BuildMarkup creates the page's static element tree for cat.
func BuildMarkup(cat *config.Catalog) (*dom.Element, error) {
	tabs, err := tabSection(cat.Tabs)
	if err != nil {
		return nil, err
	}
	return dom.Body(
		dom.Class("product-page"),
		dom.Section(
			dom.Class("product"),
			gallery(cat),
			details(cat),
		),
		tabs,
		bundleSection(cat.Bundle),
		cardSection(cat.Cards),
		sizeChartModal(cat.SizeChart),
		compareModal(),
	), nil
}

func gallery(cat *config.Catalog) *dom.Element {
	thumbs := make([]*dom.Element, 0, len(cat.Thumbnails))
	for _, th := range cat.Thumbnails {
		thumbs = append(thumbs, dom.Img(
			dom.Class("thumb"),
			dom.Src(th.Src),
			optional(dom.Data("full", th.Full)),
			optional(dom.Alt(th.Alt)),
			dom.TabIndex(0),
		))
	}
	return dom.Div(
		dom.Class("gallery"),
		dom.Img(
			dom.ID("mainImage"),
			dom.Class("main-image"),
			dom.Src(cat.MainImage),
			dom.Alt(cat.Title),
			dom.TabIndex(0),
		),
		dom.Div(dom.ID("thumbnailRow"), dom.Class("thumbnails"), thumbs),
	)
}

func details(cat *config.Catalog) *dom.Element {
	swatches := make([]*dom.Element, 0, len(cat.Swatches))
	for _, sw := range cat.Swatches {
		label := sw.Label
		if label == "" {
			label = sw.Color
		}
		swatches = append(swatches, dom.Button(
			dom.Class("swatch"),
			dom.Type("button"),
			dom.Style("background", sw.Background),
			dom.Data("color", sw.Color),
			optional(dom.Data("image", sw.Image)),
			dom.AriaLabel(label),
		))
	}

	options := make([]*dom.Element, 0, len(cat.Sizes))
	for _, size := range cat.Sizes {
		var selected dom.Attr
		if size == cat.DefaultSize {
			selected = dom.Selected()
		}
		options = append(options, dom.Option(dom.Value(size), selected, size))
	}

	return dom.Div(
		dom.Class("details"),
		dom.H1(dom.Class("title"), cat.Title),
		dom.P(dom.Class("price"), FormatPrice(toCents(cat.Price))),
		dom.Div(dom.Class("swatches"), dom.Role("group"), dom.AriaLabel("Colors"), swatches),
		dom.Div(
			dom.Class("size-row"),
			dom.Label(dom.A("for", "sizeSelect"), "Size"),
			dom.Select(dom.ID("sizeSelect"), options),
			dom.Button(dom.ID("sizeChartBtn"), dom.Type("button"), "Size chart"),
		),
		dom.P(
			dom.Class("variant"),
			"Selected: ",
			dom.Span(dom.ID("selVariant"), dom.AriaLive("polite")),
		),
		dom.Div(
			dom.Class("actions"),
			dom.Button(dom.ID("compareColorsBtn"), dom.Type("button"), "Compare colors"),
			dom.Button(dom.ID("addToCartBtn"), dom.Class("btn-primary"), dom.Type("button"), "Add to cart"),
		),
	)
}

func tabSection(tabs []config.Tab) (*dom.Element, error) {
	buttons := make([]*dom.Element, 0, len(tabs))
	panes := make([]*dom.Element, 0, len(tabs))
	for i, tab := range tabs {
		html, err := RenderMarkdown(tab.Markdown)
		if err != nil {
			return nil, errors.New("P012").WithDetailf("tab %q: %v", tab.ID, err).Wrap(err)
		}
		btnClass, paneClass := []string{"tab-btn"}, []string{"tab-content"}
		if i == 0 {
			btnClass = append(btnClass, ClassActive)
		} else {
			paneClass = append(paneClass, ClassHidden)
		}
		buttons = append(buttons, dom.Button(
			dom.Class(btnClass...),
			dom.Type("button"),
			dom.Role("tab"),
			dom.Data("tab", tab.ID),
			tab.Label,
		))
		panes = append(panes, dom.Div(
			dom.ID(tab.ID),
			dom.Class(paneClass...),
			dom.Role("tabpanel"),
			dom.Raw(strings.TrimSpace(html)),
		))
	}
	return dom.Section(
		dom.Class("tabs"),
		dom.Div(dom.Class("tab-buttons"), dom.Role("tablist"), buttons),
		panes,
	), nil
}

func bundleSection(b config.Bundle) *dom.Element {
	items := make([]*dom.Element, 0, len(b.Prices))
	for _, p := range b.Prices {
		items = append(items, dom.Span(dom.Class("bundle-item"), FormatPrice(toCents(p))))
	}
	return dom.Section(
		dom.Class("bundle"),
		dom.H3(b.Title),
		dom.Div(dom.Class("bundle-items"), items),
		dom.P(dom.Class("bundle-total"), "Total: ", dom.Span(dom.ID("bundleTotal"))),
		dom.Button(dom.ID("addBundleBtn"), dom.Type("button"), "Add bundle"),
	)
}

func cardSection(cards []config.Card) *dom.Element {
	out := make([]*dom.Element, 0, len(cards))
	for _, c := range cards {
		var img *dom.Element
		if c.Image != "" {
			img = dom.Img(dom.Src(c.Image), dom.Alt(c.Title))
		}
		out = append(out, dom.Div(
			dom.Class("card"),
			img,
			dom.H4(c.Title),
			dom.P(dom.Class("price"), FormatPrice(toCents(c.Price))),
			dom.Button(dom.Class("card-add"), dom.Type("button"), "Add"),
		))
	}
	return dom.Section(dom.Class("pairs"), dom.H3("Pairs well with"), out)
}

func sizeChartModal(rows []config.SizeChartRow) *dom.Element {
	trs := []*dom.Element{dom.Tr(dom.Th("Size"), dom.Th("Chest"), dom.Th("Length"))}
	for _, r := range rows {
		trs = append(trs, dom.Tr(dom.Td(r.Size), dom.Td(r.Chest), dom.Td(r.Length)))
	}
	return modal("sizeChartModal", "Size chart", dom.Table(dom.Class("size-chart"), trs))
}

func compareModal() *dom.Element {
	return modal("compareModal", "Compare colors",
		dom.Div(dom.ID("compareSwatches"), dom.Class("compare-swatches")),
		dom.Div(dom.ID("comparePreview"), dom.Class("compare-preview")),
	)
}

func modal(id, title string, content ...*dom.Element) *dom.Element {
	return dom.Div(
		dom.ID(id),
		dom.Class("modal"),
		dom.Role("dialog"),
		dom.AriaModal(true),
		dom.AriaHidden(true),
		dom.Div(
			dom.Class("modal-panel"),
			dom.Button(dom.Class("modal-close"), dom.Type("button"), dom.AriaLabel("Close"), "×"),
			dom.H3(title),
			content,
		),
	)
}

// optional drops attributes with an empty value.
func optional(a dom.Attr) dom.Attr {
	if a.Value == "" {
		return dom.Attr{}
	}
	return a
}
