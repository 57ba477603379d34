package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// RenderConfig configures HTML serialization.
type RenderConfig struct {
	// Pretty enables indented output.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Render writes el and its descendants as HTML.
func Render(w io.Writer, el *Element, cfg RenderConfig) error {
	if cfg.Indent == "" {
		cfg.Indent = "  "
	}
	return renderNode(w, el, cfg, 0)
}

// OuterHTML returns el serialized as compact HTML.
func (e *Element) OuterHTML() string {
	var buf bytes.Buffer
	if err := Render(&buf, e, RenderConfig{}); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML returns the serialized children of el.
func (e *Element) InnerHTML() string {
	var buf bytes.Buffer
	for _, c := range e.children {
		if err := Render(&buf, c, RenderConfig{}); err != nil {
			return ""
		}
	}
	return buf.String()
}

func renderNode(w io.Writer, node *Element, cfg RenderConfig, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case KindElement:
		return renderElement(w, node, cfg, depth)
	case KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

func renderElement(w io.Writer, node *Element, cfg RenderConfig, depth int) error {
	if cfg.Pretty && depth > 0 {
		writeIndent(w, cfg, depth)
	}

	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(node.Tag)
	for _, a := range node.attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		if a.Value == "" && isBooleanAttr(a.Key) {
			continue
		}
		b.WriteString(`="`)
		b.WriteString(escapeAttr(a.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	if IsVoidElement(node.Tag) {
		if cfg.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	block := len(node.Children()) > 0
	if cfg.Pretty && block {
		io.WriteString(w, "\n")
	}
	for _, child := range node.children {
		if cfg.Pretty && block && child.Kind != KindElement {
			writeIndent(w, cfg, depth+1)
		}
		if err := renderNode(w, child, cfg, depth+1); err != nil {
			return err
		}
		if cfg.Pretty && block && child.Kind != KindElement {
			io.WriteString(w, "\n")
		}
	}
	if cfg.Pretty && block {
		writeIndent(w, cfg, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", node.Tag); err != nil {
		return err
	}
	if cfg.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

func writeIndent(w io.Writer, cfg RenderConfig, depth int) {
	io.WriteString(w, strings.Repeat(cfg.Indent, depth))
}

func isBooleanAttr(key string) bool {
	switch key {
	case "selected", "disabled", "checked", "hidden", "readonly", "required", "multiple":
		return true
	}
	return false
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for safe inclusion in HTML attribute values.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
