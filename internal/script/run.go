package script

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vango-dev/productpage/internal/errors"
	"github.com/vango-dev/productpage/pkg/dom"
	"github.com/vango-dev/productpage/pkg/page"
)

// Runner executes commands against a page.
type Runner struct {
	// Mount creates the page. It is called once before the first command
	// and again on every reload.
	Mount func() (*page.Page, error)

	// Out receives state and snapshot output. Nil discards it.
	Out io.Writer

	// Echo writes each command to Out before running it.
	Echo bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Run mounts a page and executes cmds in order, stopping at the first
// failing command. It returns the page as left by the last command.
func (r *Runner) Run(ctx context.Context, cmds []Command) (*page.Page, error) {
	out := r.Out
	if out == nil {
		out = io.Discard
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p, err := r.Mount()
	if err != nil {
		return nil, err
	}
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return p, err
		}
		if r.Echo {
			fmt.Fprintf(out, "> %s\n", cmd)
		}
		logger.Debug("replay step", "line", cmd.Line, "op", cmd.Op, "args", cmd.Args)
		next, err := r.step(ctx, p, cmd, out)
		if err != nil {
			return p, errors.FromError(err, "P031").WithDetailf("line %d: %s", cmd.Line, cmd)
		}
		p = next
	}
	return p, nil
}

func (r *Runner) step(ctx context.Context, p *page.Page, cmd Command, out io.Writer) (*page.Page, error) {
	doc := p.Document()
	switch cmd.Op {
	case OpClick:
		el, err := find(doc, cmd.Args[0])
		if err != nil {
			return p, err
		}
		doc.Click(ctx, el)

	case OpKey:
		var target *dom.Element
		if cmd.Args[0] != Window {
			el, err := find(doc, cmd.Args[0])
			if err != nil {
				return p, err
			}
			target = el
		}
		doc.KeyDown(ctx, target, cmd.Args[1])

	case OpChange:
		el, err := find(doc, cmd.Args[0])
		if err != nil {
			return p, err
		}
		doc.Change(ctx, el, cmd.Args[1])

	case OpReload:
		return r.Mount()

	case OpState:
		s := p.State()
		open := p.Modals.OpenModals()
		fmt.Fprintf(out, "label=%q zoomed=%t open=[%s] compare=[%s] tab=%s\n",
			s.Label(), s.Zoomed, strings.Join(open, " "),
			strings.Join(p.Compare.Selected(), " "), p.Tabs.Active())

	case OpSnapshot:
		el := doc.Body()
		if len(cmd.Args) == 1 {
			found, err := find(doc, cmd.Args[0])
			if err != nil {
				return p, err
			}
			el = found
		}
		if err := dom.Render(out, el, dom.RenderConfig{Pretty: true, Indent: "  "}); err != nil {
			return p, err
		}

	case OpExpect:
		el, err := find(doc, cmd.Args[0])
		if err != nil {
			return p, err
		}
		if got := el.TextContent(); got != cmd.Args[1] {
			return p, fmt.Errorf("text is %q, want %q", got, cmd.Args[1])
		}

	default:
		return p, fmt.Errorf("unknown command %q", cmd.Op)
	}
	return p, nil
}

func find(doc *dom.Document, sel string) (*dom.Element, error) {
	if _, err := dom.Compile(sel); err != nil {
		return nil, errors.New("P011").WithDetail(sel).Wrap(err)
	}
	el := doc.QuerySelector(sel)
	if el == nil {
		return nil, fmt.Errorf("no element matches %s", sel)
	}
	return el, nil
}
