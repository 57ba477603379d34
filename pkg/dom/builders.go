package dom

import (
	"fmt"
	"strings"
)

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates a new element with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, *Element, []*Element or string
// (a text child).
func El(tag string, args ...any) *Element {
	node := &Element{
		Kind: KindElement,
		Tag:  tag,
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			applyAttr(node, v)
		case []Attr:
			for _, a := range v {
				applyAttr(node, a)
			}
		case *Element:
			if v != nil {
				node.AppendChild(v)
			}
		case []*Element:
			for _, c := range v {
				if c != nil {
					node.AppendChild(c)
				}
			}
		case string:
			node.AppendChild(Text(v))
		default:
			panic(fmt.Sprintf("dom.El: unsupported argument type %T", arg))
		}
	}

	return node
}

func applyAttr(node *Element, a Attr) {
	switch {
	case a.IsEmpty():
	case a.Key == "class":
		node.AddClass(strings.Fields(a.Value)...)
	case strings.HasPrefix(a.Key, "style:"):
		node.SetStyle(strings.TrimPrefix(a.Key, "style:"), a.Value)
	default:
		node.SetAttribute(a.Key, a.Value)
	}
}

// Text creates a text node.
func Text(content string) *Element {
	return &Element{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *Element {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates an unescaped HTML node.
// Use only with sanitized content.
func Raw(html string) *Element {
	return &Element{Kind: KindRaw, Text: html}
}

// =============================================================================
// Attributes
// =============================================================================

func attr(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// A creates an arbitrary attribute.
func A(key, value string) Attr { return attr(key, value) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class adds classes to the element.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Style sets one inline style property.
func Style(prop, value string) Attr { return attr("style:"+prop, value) }

// Data creates a data-* attribute: Data("color", "Red") → data-color="Red".
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Src sets the src attribute.
func Src(src string) Attr { return attr("src", src) }

// Alt sets the alt attribute.
func Alt(alt string) Attr { return attr("alt", alt) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Value sets the value attribute.
func Value(v string) Attr { return attr("value", v) }

// Selected marks an option as selected.
func Selected() Attr { return attr("selected", "") }

// TabIndex sets the tabindex attribute.
func TabIndex(i int) Attr { return attr("tabindex", fmt.Sprint(i)) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Attr { return attr("aria-hidden", fmt.Sprint(hidden)) }

// AriaModal sets the aria-modal attribute.
func AriaModal(modal bool) Attr { return attr("aria-modal", fmt.Sprint(modal)) }

// AriaLive sets the aria-live attribute.
func AriaLive(mode string) Attr { return attr("aria-live", mode) }

// =============================================================================
// Elements
// =============================================================================

// Body creates a <body> element.
func Body(args ...any) *Element { return El("body", args...) }

// Div creates a <div> element.
func Div(args ...any) *Element { return El("div", args...) }

// Section creates a <section> element.
func Section(args ...any) *Element { return El("section", args...) }

// Span creates a <span> element.
func Span(args ...any) *Element { return El("span", args...) }

// P creates a <p> element.
func P(args ...any) *Element { return El("p", args...) }

// H1 creates an <h1> element.
func H1(args ...any) *Element { return El("h1", args...) }

// H3 creates an <h3> element.
func H3(args ...any) *Element { return El("h3", args...) }

// H4 creates an <h4> element.
func H4(args ...any) *Element { return El("h4", args...) }

// Button creates a <button> element.
func Button(args ...any) *Element { return El("button", args...) }

// Img creates an <img> element.
func Img(args ...any) *Element { return El("img", args...) }

// Label creates a <label> element.
func Label(args ...any) *Element { return El("label", args...) }

// Select creates a <select> element.
func Select(args ...any) *Element { return El("select", args...) }

// Option creates an <option> element.
func Option(args ...any) *Element { return El("option", args...) }

// Table creates a <table> element.
func Table(args ...any) *Element { return El("table", args...) }

// Tr creates a <tr> element.
func Tr(args ...any) *Element { return El("tr", args...) }

// Th creates a <th> element.
func Th(args ...any) *Element { return El("th", args...) }

// Td creates a <td> element.
func Td(args ...any) *Element { return El("td", args...) }
