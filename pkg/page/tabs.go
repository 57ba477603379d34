package page

import (
	"github.com/vango-dev/productpage/pkg/dom"
)

// Tabs shows one content pane at a time.
type Tabs struct {
	doc     *dom.Document
	buttons []*dom.Element
}

// NewTabs creates a switcher over the .tab-btn elements of doc.
func NewTabs(doc *dom.Document) *Tabs {
	return &Tabs{doc: doc, buttons: doc.QuerySelectorAll(".tab-btn")}
}

// Bind activates a tab whenever its button is clicked.
func (t *Tabs) Bind() {
	for _, btn := range t.buttons {
		btn := btn
		btn.AddEventListener(dom.EventClick, func(ev *dom.Event) error {
			t.Select(btn)
			return nil
		})
	}
}

// Select makes btn the unique active tab button, hides every pane and
// reveals the pane named by btn's data-tab, scrolling it into view. A
// missing pane leaves every pane hidden.
func (t *Tabs) Select(btn *dom.Element) {
	for _, b := range t.buttons {
		b.SetClass(ClassActive, b == btn)
	}
	for _, pane := range t.doc.QuerySelectorAll(".tab-content") {
		pane.AddClass(ClassHidden)
	}
	pane := t.doc.GetElementByID(btn.Data("tab"))
	if pane == nil {
		return
	}
	pane.RemoveClass(ClassHidden)
	pane.ScrollIntoView(dom.ScrollOptions{Behavior: "smooth", Block: "nearest"})
}

// Activate selects the tab whose button names pane id. It reports false
// when no button does.
func (t *Tabs) Activate(id string) bool {
	for _, b := range t.buttons {
		if b.Data("tab") == id {
			t.Select(b)
			return true
		}
	}
	return false
}

// Active returns the pane id of the active tab button, or "".
func (t *Tabs) Active() string {
	for _, b := range t.buttons {
		if b.HasClass(ClassActive) {
			return b.Data("tab")
		}
	}
	return ""
}
