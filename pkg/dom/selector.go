package dom

import (
	"fmt"
	"strings"
	"sync"
)

// Selector is a compiled CSS-subset selector.
type Selector struct {
	source string
	groups [][]compound
}

type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

type attrMatch struct {
	key      string
	value    string
	hasValue bool
}

var selectorCache sync.Map // string -> *Selector

// Compile parses sel. Supported syntax: type selectors, *, #id, .class,
// [attr], [attr=value] (value optionally quoted), the descendant
// combinator and comma-separated groups.
func Compile(sel string) (*Selector, error) {
	if cached, ok := selectorCache.Load(sel); ok {
		return cached.(*Selector), nil
	}
	s := &Selector{source: sel}
	for _, group := range splitGroups(sel) {
		group = strings.TrimSpace(group)
		if group == "" {
			return nil, fmt.Errorf("dom: empty selector group in %q", sel)
		}
		var chain []compound
		for _, part := range splitCompounds(group) {
			c, err := parseCompound(part)
			if err != nil {
				return nil, fmt.Errorf("dom: invalid selector %q: %w", sel, err)
			}
			chain = append(chain, c)
		}
		s.groups = append(s.groups, chain)
	}
	selectorCache.Store(sel, s)
	return s, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(sel string) *Selector {
	s, err := Compile(sel)
	if err != nil {
		panic(err)
	}
	return s
}

// String returns the selector source.
func (s *Selector) String() string {
	return s.source
}

// Match reports whether el matches any group of the selector.
func (s *Selector) Match(el *Element) bool {
	if el == nil || el.Kind != KindElement {
		return false
	}
	for _, chain := range s.groups {
		if matchChain(chain, el) {
			return true
		}
	}
	return false
}

func matchChain(chain []compound, el *Element) bool {
	last := len(chain) - 1
	if !chain[last].match(el) {
		return false
	}
	n := el.parent
	for i := last - 1; i >= 0; i-- {
		for n != nil && !chain[i].match(n) {
			n = n.parent
		}
		if n == nil {
			return false
		}
		n = n.parent
	}
	return true
}

func (c compound) match(el *Element) bool {
	if el.Kind != KindElement {
		return false
	}
	if c.tag != "" && c.tag != "*" && !strings.EqualFold(c.tag, el.Tag) {
		return false
	}
	if c.id != "" && el.ID() != c.id {
		return false
	}
	for _, cls := range c.classes {
		if !el.HasClass(cls) {
			return false
		}
	}
	for _, a := range c.attrs {
		v, ok := el.GetAttribute(a.key)
		if !ok || (a.hasValue && v != a.value) {
			return false
		}
	}
	return true
}

// splitGroups splits on commas outside attribute brackets.
func splitGroups(sel string) []string {
	return splitOutsideBrackets(sel, func(r rune) bool { return r == ',' })
}

// splitCompounds splits on whitespace outside attribute brackets.
func splitCompounds(group string) []string {
	parts := splitOutsideBrackets(group, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n'
	})
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitOutsideBrackets(s string, sep func(rune) bool) []string {
	var parts []string
	var b strings.Builder
	depth := 0
	var quote rune
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			if depth > 0 {
				quote = r
			}
		case r == '[':
			depth++
		case r == ']':
			depth--
		case depth == 0 && sep(r):
			parts = append(parts, b.String())
			b.Reset()
			continue
		}
		b.WriteRune(r)
	}
	return append(parts, b.String())
}

func parseCompound(s string) (compound, error) {
	var c compound
	i := 0
	if i < len(s) && (s[i] == '*' || isIdentByte(s[i])) {
		if s[i] == '*' {
			c.tag = "*"
			i++
		} else {
			j := scanIdent(s, i)
			c.tag = s[i:j]
			i = j
		}
	}
	for i < len(s) {
		switch s[i] {
		case '#':
			j := scanIdent(s, i+1)
			if j == i+1 {
				return c, fmt.Errorf("expected id after '#'")
			}
			c.id = s[i+1 : j]
			i = j
		case '.':
			j := scanIdent(s, i+1)
			if j == i+1 {
				return c, fmt.Errorf("expected class after '.'")
			}
			c.classes = append(c.classes, s[i+1:j])
			i = j
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return c, fmt.Errorf("unterminated attribute selector")
			}
			m, err := parseAttrMatch(s[i+1 : i+end])
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, m)
			i += end + 1
		default:
			return c, fmt.Errorf("unexpected %q", s[i])
		}
	}
	return c, nil
}

func parseAttrMatch(body string) (attrMatch, error) {
	key, value, hasValue := strings.Cut(body, "=")
	key = strings.TrimSpace(key)
	if key == "" || scanIdent(key, 0) != len(key) {
		return attrMatch{}, fmt.Errorf("invalid attribute name %q", key)
	}
	m := attrMatch{key: key, hasValue: hasValue}
	if hasValue {
		value = strings.TrimSpace(value)
		if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
			value = value[1 : len(value)-1]
		}
		m.value = value
	}
	return m, nil
}

func scanIdent(s string, i int) int {
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	return i
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
