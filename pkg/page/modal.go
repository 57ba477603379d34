package page

import (
	"github.com/vango-dev/productpage/pkg/dom"
)

// Modal is an overlay dialog. Its visibility lives in aria-hidden.
type Modal struct {
	el   *dom.Element
	body *dom.Element
}

// NewModal wraps el. Opening a modal locks scrolling on body.
func NewModal(el, body *dom.Element) *Modal {
	return &Modal{el: el, body: body}
}

// ID returns the modal element's id.
func (m *Modal) ID() string {
	return m.el.ID()
}

// Element returns the modal element.
func (m *Modal) Element() *dom.Element {
	return m.el
}

// Open shows the modal and locks page scroll.
func (m *Modal) Open() {
	m.el.SetAttribute("aria-hidden", "false")
	m.body.SetStyle("overflow", "hidden")
}

// Close hides the modal and releases the scroll lock. The lock is released
// even if another modal is still open.
func (m *Modal) Close() {
	m.el.SetAttribute("aria-hidden", "true")
	m.body.SetStyle("overflow", "")
}

// IsOpen reports whether the modal is shown.
func (m *Modal) IsOpen() bool {
	return m.el.Attribute("aria-hidden") == "false"
}

// Controller owns the page's modals.
type Controller struct {
	modals []*Modal
}

// NewController creates a Controller for every .modal element under doc.
func NewController(doc *dom.Document) *Controller {
	c := &Controller{}
	for _, el := range doc.QuerySelectorAll(".modal") {
		c.modals = append(c.modals, NewModal(el, doc.Body()))
	}
	return c
}

// Get returns the modal with the given id, or nil.
func (c *Controller) Get(id string) *Modal {
	for _, m := range c.modals {
		if m.ID() == id {
			return m
		}
	}
	return nil
}

// For returns the modal enclosing el, or nil.
func (c *Controller) For(el *dom.Element) *Modal {
	if el == nil {
		return nil
	}
	enclosing := el.Closest(".modal")
	for _, m := range c.modals {
		if m.el == enclosing {
			return m
		}
	}
	return nil
}

// OpenModals returns the ids of the open modals in document order.
func (c *Controller) OpenModals() []string {
	var ids []string
	for _, m := range c.modals {
		if m.IsOpen() {
			ids = append(ids, m.ID())
		}
	}
	return ids
}

// CloseAll closes every open modal and returns how many were closed.
func (c *Controller) CloseAll() int {
	n := 0
	for _, m := range c.modals {
		if m.IsOpen() {
			m.Close()
			n++
		}
	}
	return n
}

// Bind wires the close triggers: .modal-close buttons, clicks on the
// backdrop (the .modal element itself) and Escape anywhere.
func (c *Controller) Bind(doc *dom.Document) {
	for _, m := range c.modals {
		m := m
		for _, btn := range m.el.QuerySelectorAll(".modal-close") {
			btn.AddEventListener(dom.EventClick, func(ev *dom.Event) error {
				if owner := c.For(ev.Target); owner != nil {
					owner.Close()
				}
				return nil
			})
		}
		m.el.AddEventListener(dom.EventClick, func(ev *dom.Event) error {
			if ev.Target == m.el {
				m.Close()
			}
			return nil
		})
	}
	doc.AddEventListener(dom.EventKeyDown, func(ev *dom.Event) error {
		if ev.Key == dom.KeyEscape {
			c.CloseAll()
		}
		return nil
	})
}
