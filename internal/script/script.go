// Package script parses and runs replay scripts: line-based interaction
// sequences driven against a mounted page.
//
//	# pick a variant and check the label
//	click .swatch[data-color="Red"]
//	change #sizeSelect M
//	expect #selVariant "Red - M"
//	reload
//	key window Escape
//	snapshot #comparePreview
//
// Arguments are separated by whitespace. Quoted arguments keep their
// spaces, and attribute brackets in selectors are read whole. The single
// selector of click and snapshot may be written unquoted.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vango-dev/productpage/internal/errors"
)

// Op is a script command name.
type Op string

// Script commands.
const (
	OpClick    Op = "click"
	OpKey      Op = "key"
	OpChange   Op = "change"
	OpReload   Op = "reload"
	OpState    Op = "state"
	OpSnapshot Op = "snapshot"
	OpExpect   Op = "expect"
)

// Window is the key target naming the window.
const Window = "window"

// arity gives the minimum and maximum argument counts of each command.
var arity = map[Op][2]int{
	OpClick:    {1, 1},
	OpKey:      {2, 2},
	OpChange:   {2, 2},
	OpReload:   {0, 0},
	OpState:    {0, 0},
	OpSnapshot: {0, 1},
	OpExpect:   {2, 2},
}

// joinsArgs marks commands whose single selector argument may contain
// unquoted spaces.
var joinsArgs = map[Op]bool{
	OpClick:    true,
	OpSnapshot: true,
}

// Command is one parsed script line.
type Command struct {
	Op   Op
	Args []string
	Line int
}

// String formats the command as it would appear in a script.
func (c Command) String() string {
	parts := []string{string(c.Op)}
	for _, a := range c.Args {
		if a == "" || (strings.ContainsAny(a, " \t") && !strings.Contains(a, `"`)) {
			a = `"` + a + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// Parse reads a script. Blank lines and lines starting with # followed by
// a space (or nothing) are skipped.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text == "#" || strings.HasPrefix(text, "# ") {
			continue
		}
		fields, err := split(text)
		if err != nil {
			return nil, errors.New("P030").WithDetailf("line %d: %v", line, err)
		}
		op := Op(strings.ToLower(fields[0]))
		bounds, ok := arity[op]
		if !ok {
			return nil, errors.New("P030").
				WithDetailf("line %d: unknown command %q", line, fields[0]).
				WithSuggestion("Use click, key, change, reload, state, snapshot or expect.")
		}
		args := fields[1:]
		if joinsArgs[op] && len(args) > 1 {
			args = []string{strings.Join(args, " ")}
		}
		if len(args) < bounds[0] || len(args) > bounds[1] {
			return nil, errors.New("P030").
				WithDetailf("line %d: %s takes %s, got %d", line, op, describeArity(bounds), len(args))
		}
		cmds = append(cmds, Command{Op: op, Args: args, Line: line})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.New("P030").Wrap(err)
	}
	return cmds, nil
}

func describeArity(b [2]int) string {
	switch {
	case b[0] == b[1] && b[0] == 1:
		return "1 argument"
	case b[0] == b[1]:
		return fmt.Sprintf("%d arguments", b[0])
	default:
		return fmt.Sprintf("%d to %d arguments", b[0], b[1])
	}
}

// split breaks a line into arguments. A token that starts with a quote
// runs to the matching quote, which is removed. Inside a token, brackets
// group everything up to the closing bracket, quotes included.
func split(s string) ([]string, error) {
	var (
		out []string
		cur strings.Builder
	)
	inToken := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			if inToken {
				out = append(out, cur.String())
				cur.Reset()
				inToken = false
			}
		case (c == '"' || c == '\'') && !inToken:
			end := strings.IndexByte(s[i+1:], c)
			if end < 0 {
				return nil, fmt.Errorf("unterminated %c quote", c)
			}
			out = append(out, s[i+1:i+1+end])
			i += end + 1
			if i+1 < len(s) && s[i+1] != ' ' && s[i+1] != '\t' {
				return nil, fmt.Errorf("unexpected %q after quoted argument", s[i+1])
			}
		case c == '[':
			end, err := closeBracket(s, i)
			if err != nil {
				return nil, err
			}
			cur.WriteString(s[i : end+1])
			inToken = true
			i = end
		default:
			cur.WriteByte(c)
			inToken = true
		}
	}
	if inToken {
		out = append(out, cur.String())
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return out, nil
}

// closeBracket returns the index of the ] closing the [ at open.
func closeBracket(s string, open int) (int, error) {
	var quote byte
	for i := open + 1; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ']':
			return i, nil
		}
	}
	return 0, fmt.Errorf("unterminated [ in %q", s[open:])
}
