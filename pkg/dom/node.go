package dom

import (
	"strings"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement Kind = iota // <div>, <button>, etc.
	KindText                // Plain text node
	KindRaw                 // Raw HTML, written verbatim
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value string
}

// IsEmpty returns true if this is an empty attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Element is a node in the document tree.
type Element struct {
	Kind Kind
	Tag  string
	Text string // For KindText and KindRaw

	attrs     []Attr
	parent    *Element
	children  []*Element
	listeners map[string][]Listener

	// noSelection marks a select whose value was set to a missing option.
	noSelection bool

	// doc is set on the root element only.
	doc *Document
}

// ID returns the id attribute.
func (e *Element) ID() string {
	v, _ := e.GetAttribute("id")
	return v
}

// GetAttribute returns the value of an attribute and whether it is set.
func (e *Element) GetAttribute(key string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Attribute returns the value of an attribute, or "" when unset.
func (e *Element) Attribute(key string) string {
	v, _ := e.GetAttribute(key)
	return v
}

// HasAttribute reports whether the attribute is set.
func (e *Element) HasAttribute(key string) bool {
	_, ok := e.GetAttribute(key)
	return ok
}

// SetAttribute sets an attribute, keeping its original position if present.
func (e *Element) SetAttribute(key, value string) {
	for i := range e.attrs {
		if e.attrs[i].Key == key {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Key: key, Value: value})
}

// RemoveAttribute removes an attribute if present.
func (e *Element) RemoveAttribute(key string) {
	for i := range e.attrs {
		if e.attrs[i].Key == key {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			return
		}
	}
}

// Attrs returns a copy of the element's attributes in insertion order.
func (e *Element) Attrs() []Attr {
	out := make([]Attr, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// Data returns the data-* attribute for key (the dataset entry).
func (e *Element) Data(key string) string {
	return e.Attribute("data-" + key)
}

// SetData sets the data-* attribute for key.
func (e *Element) SetData(key, value string) {
	e.SetAttribute("data-"+key, value)
}

// =============================================================================
// Class list
// =============================================================================

// Classes returns the element's class list.
func (e *Element) Classes() []string {
	return strings.Fields(e.Attribute("class"))
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass adds classes that are not already present.
func (e *Element) AddClass(names ...string) {
	classes := e.Classes()
	changed := false
	for _, name := range names {
		if name == "" || contains(classes, name) {
			continue
		}
		classes = append(classes, name)
		changed = true
	}
	if changed {
		e.SetAttribute("class", strings.Join(classes, " "))
	}
}

// RemoveClass removes classes if present.
func (e *Element) RemoveClass(names ...string) {
	if !e.HasAttribute("class") {
		return
	}
	classes := e.Classes()
	kept := classes[:0]
	for _, c := range classes {
		if !contains(names, c) {
			kept = append(kept, c)
		}
	}
	e.SetAttribute("class", strings.Join(kept, " "))
}

// ToggleClass flips name and reports whether it is now present.
func (e *Element) ToggleClass(name string) bool {
	if e.HasClass(name) {
		e.RemoveClass(name)
		return false
	}
	e.AddClass(name)
	return true
}

// SetClass adds name when on is true and removes it otherwise.
func (e *Element) SetClass(name string, on bool) {
	if on {
		e.AddClass(name)
	} else {
		e.RemoveClass(name)
	}
}

// =============================================================================
// Inline style
// =============================================================================

// Style returns the inline style value for prop, or "".
func (e *Element) Style(prop string) string {
	for _, decl := range parseStyle(e.Attribute("style")) {
		if decl.Key == prop {
			return decl.Value
		}
	}
	return ""
}

// SetStyle sets an inline style property. An empty value removes it.
func (e *Element) SetStyle(prop, value string) {
	decls := parseStyle(e.Attribute("style"))
	found := false
	out := decls[:0]
	for _, decl := range decls {
		if decl.Key == prop {
			found = true
			if value == "" {
				continue
			}
			decl.Value = value
		}
		out = append(out, decl)
	}
	if !found && value != "" {
		out = append(out, Attr{Key: prop, Value: value})
	}
	if len(out) == 0 {
		e.RemoveAttribute("style")
		return
	}
	e.SetAttribute("style", formatStyle(out))
}

func parseStyle(s string) []Attr {
	var decls []Attr
	for _, part := range strings.Split(s, ";") {
		key, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		decls = append(decls, Attr{Key: key, Value: strings.TrimSpace(value)})
	}
	return decls
}

func formatStyle(decls []Attr) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.Key + ": " + d.Value
	}
	return strings.Join(parts, "; ")
}

// =============================================================================
// Tree
// =============================================================================

// Parent returns the parent element, or nil for a root or detached node.
func (e *Element) Parent() *Element {
	return e.parent
}

// ChildNodes returns all children, including text and raw nodes.
func (e *Element) ChildNodes() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// Children returns the element children only.
func (e *Element) Children() []*Element {
	var out []*Element
	for _, c := range e.children {
		if c.Kind == KindElement {
			out = append(out, c)
		}
	}
	return out
}

// AppendChild appends child, detaching it from its previous parent.
func (e *Element) AppendChild(child *Element) {
	if child == nil {
		return
	}
	child.Remove()
	child.parent = e
	e.children = append(e.children, child)
}

// Remove detaches the element from its parent.
func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// Clear removes every child.
func (e *Element) Clear() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
}

// TextContent returns the concatenated text of all descendant text nodes.
func (e *Element) TextContent() string {
	if e.Kind == KindText {
		return e.Text
	}
	var b strings.Builder
	e.walk(func(n *Element) bool {
		if n.Kind == KindText {
			b.WriteString(n.Text)
		}
		return true
	})
	return b.String()
}

// SetText replaces all children with a single text node.
func (e *Element) SetText(text string) {
	e.Clear()
	e.AppendChild(Text(text))
}

// Document returns the document the element is attached to, or nil.
func (e *Element) Document() *Document {
	n := e
	for n.parent != nil {
		n = n.parent
	}
	return n.doc
}

// Closest returns the nearest inclusive ancestor matching sel, or nil.
func (e *Element) Closest(sel string) *Element {
	s, err := Compile(sel)
	if err != nil {
		return nil
	}
	for n := e; n != nil; n = n.parent {
		if n.Kind == KindElement && s.Match(n) {
			return n
		}
	}
	return nil
}

// Matches reports whether the element matches sel.
func (e *Element) Matches(sel string) bool {
	s, err := Compile(sel)
	if err != nil {
		return false
	}
	return s.Match(e)
}

// QuerySelector returns the first descendant matching sel, or nil.
func (e *Element) QuerySelector(sel string) *Element {
	all := e.QuerySelectorAll(sel)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// QuerySelectorAll returns every descendant matching sel in document order.
// An invalid selector matches nothing.
func (e *Element) QuerySelectorAll(sel string) []*Element {
	s, err := Compile(sel)
	if err != nil {
		return nil
	}
	var out []*Element
	for _, c := range e.children {
		c.walk(func(n *Element) bool {
			if n.Kind == KindElement && s.Match(n) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// walk visits e and its descendants in document order until fn returns false.
func (e *Element) walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// =============================================================================
// Form values
// =============================================================================

// Value returns the current value of a form control. For a select it is
// the value of the selected option, defaulting to the first option.
func (e *Element) Value() string {
	if e.Tag != "select" {
		return e.Attribute("value")
	}
	options := e.QuerySelectorAll("option")
	for _, o := range options {
		if o.HasAttribute("selected") {
			return optionValue(o)
		}
	}
	if len(options) > 0 && !e.noSelection {
		return optionValue(options[0])
	}
	return ""
}

// SetValue sets the value of a form control. For a select, the option with
// a matching value becomes selected; with no match no option is selected
// and Value reports "".
func (e *Element) SetValue(value string) {
	if e.Tag != "select" {
		e.SetAttribute("value", value)
		return
	}
	matched := false
	for _, o := range e.QuerySelectorAll("option") {
		if !matched && optionValue(o) == value {
			o.SetAttribute("selected", "")
			matched = true
			continue
		}
		o.RemoveAttribute("selected")
	}
	e.noSelection = !matched
}

// Options returns the option values of a select element.
func (e *Element) Options() []string {
	var out []string
	for _, o := range e.QuerySelectorAll("option") {
		out = append(out, optionValue(o))
	}
	return out
}

func optionValue(o *Element) string {
	if v, ok := o.GetAttribute("value"); ok {
		return v
	}
	return o.TextContent()
}

// =============================================================================
// Events
// =============================================================================

// AddEventListener registers l for events of type typ on this element.
// Listeners fire in registration order.
func (e *Element) AddEventListener(typ string, l Listener) {
	if l == nil {
		return
	}
	if e.listeners == nil {
		e.listeners = make(map[string][]Listener)
	}
	e.listeners[typ] = append(e.listeners[typ], l)
}

// ListenerCount returns the number of listeners registered for typ.
func (e *Element) ListenerCount(typ string) int {
	return len(e.listeners[typ])
}

// ScrollIntoView asks the document to scroll the element into view.
// Detached elements are ignored.
func (e *Element) ScrollIntoView(opts ScrollOptions) {
	if d := e.Document(); d != nil {
		d.scrolls = append(d.scrolls, ScrollRequest{Element: e, Options: opts})
	}
}

// Selector returns a short human-readable selector for the element,
// used for logs and metric labels.
func (e *Element) Selector() string {
	if e == nil {
		return "window"
	}
	if id := e.ID(); id != "" {
		return "#" + id
	}
	if classes := e.Classes(); len(classes) > 0 {
		return e.Tag + "." + classes[0]
	}
	return e.Tag
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
