package page

import (
	"strings"
	"testing"

	"github.com/vango-dev/productpage/internal/config"
	"github.com/vango-dev/productpage/pkg/dom"
)

func TestBuildMarkupContract(t *testing.T) {
	body, err := BuildMarkup(config.Default())
	if err != nil {
		t.Fatalf("BuildMarkup: %v", err)
	}
	doc := dom.NewDocument(body)

	for _, id := range required {
		if doc.GetElementByID(id) == nil {
			t.Errorf("#%s missing", id)
		}
	}
	for _, id := range []string{"thumbnailRow", "description", "materials", "reviews"} {
		if doc.GetElementByID(id) == nil {
			t.Errorf("#%s missing", id)
		}
	}

	counts := map[string]int{
		".thumb":                     4,
		"#thumbnailRow .thumb":       4,
		".swatch[data-color]":        5,
		".swatch[data-image]":        4,
		"#sizeSelect option":         5,
		".tab-btn[data-tab]":         3,
		".tab-content":               3,
		".tab-content.hidden":        2,
		".card":                      3,
		".card h4":                   3,
		".card .card-add":            3,
		".modal":                     2,
		`.modal[aria-hidden="true"]`: 2,
		".modal .modal-close":        2,
	}
	for sel, want := range counts {
		if got := len(doc.QuerySelectorAll(sel)); got != want {
			t.Errorf("%s: %d elements, want %d", sel, got, want)
		}
	}

	if got := doc.GetElementByID("sizeSelect").Value(); got != "M" {
		t.Errorf("size control = %q, want the default size", got)
	}
	if th := doc.QuerySelectorAll(".thumb")[3]; th.HasAttribute("data-full") {
		t.Error("thumbnail without a full image carries data-full")
	}
}

func TestBuildMarkupRendersMarkdown(t *testing.T) {
	cat := config.Default()
	cat.Tabs = []config.Tab{{
		ID:       "notes",
		Label:    "Notes",
		Markdown: "**Bold** claim\n\n<script>alert('x')</script>\n\n[link](https://example.com)",
	}}
	body, err := BuildMarkup(cat)
	if err != nil {
		t.Fatalf("BuildMarkup: %v", err)
	}
	pane := dom.NewDocument(body).GetElementByID("notes")
	html := pane.InnerHTML()

	if !strings.Contains(html, "<strong>Bold</strong>") {
		t.Errorf("markdown not rendered: %s", html)
	}
	if strings.Contains(html, "<script") {
		t.Errorf("script survived sanitizing: %s", html)
	}
	if !strings.Contains(html, `rel="nofollow"`) {
		t.Errorf("link not marked nofollow: %s", html)
	}
	if pane.HasClass(ClassHidden) {
		t.Error("first pane hidden")
	}
}

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    []string
		without []string
	}{
		{
			name: "list",
			src:  "- one\n- two\n",
			want: []string{"<ul>", "<li>one</li>"},
		},
		{
			name: "table",
			src:  "| a | b |\n|---|---|\n| 1 | 2 |\n",
			want: []string{"<table>", "<td>1</td>"},
		},
		{
			name:    "event handler",
			src:     `<img src="x.png" onerror="alert(1)">`,
			without: []string{"onerror"},
		},
		{
			name:    "javascript link",
			src:     "[x](javascript:alert(1))",
			without: []string{"javascript:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := RenderMarkdown(tt.src)
			if err != nil {
				t.Fatalf("RenderMarkdown: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(html, w) {
					t.Errorf("missing %q in %s", w, html)
				}
			}
			for _, w := range tt.without {
				if strings.Contains(html, w) {
					t.Errorf("unexpected %q in %s", w, html)
				}
			}
		})
	}
}

func TestBuildMarkupEscapesText(t *testing.T) {
	cat := config.Default()
	cat.Title = `Tee <b>"Limited"</b>`
	body, err := BuildMarkup(cat)
	if err != nil {
		t.Fatalf("BuildMarkup: %v", err)
	}
	html := body.OuterHTML()
	if strings.Contains(html, "<b>") {
		t.Errorf("title not escaped: %s", html)
	}
}
