package script

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vango-dev/productpage/internal/errors"
)

func TestParse(t *testing.T) {
	src := `
# select a variant
click .swatch[data-color="Red"]
change #sizeSelect M
key window Escape
key #mainImage Enter
click #sizeChartModal .modal-close
expect #selVariant "Red - M"
expect '#bundleTotal' $75.00
snapshot
snapshot #comparePreview .compare-block
RELOAD
state
`
	cmds, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Command{
		{OpClick, []string{`.swatch[data-color="Red"]`}, 3},
		{OpChange, []string{"#sizeSelect", "M"}, 4},
		{OpKey, []string{"window", "Escape"}, 5},
		{OpKey, []string{"#mainImage", "Enter"}, 6},
		{OpClick, []string{"#sizeChartModal .modal-close"}, 7},
		{OpExpect, []string{"#selVariant", "Red - M"}, 8},
		{OpExpect, []string{"#bundleTotal", "$75.00"}, 9},
		{OpSnapshot, nil, 10},
		{OpSnapshot, []string{"#comparePreview .compare-block"}, 11},
		{OpReload, nil, 12},
		{OpState, nil, 13},
	}
	if len(cmds) != len(want) {
		t.Fatalf("parsed %d commands, want %d: %v", len(cmds), len(want), cmds)
	}
	for i := range want {
		got := cmds[i]
		if len(got.Args) == 0 {
			got.Args = nil
		}
		if !reflect.DeepEqual(got, want[i]) {
			t.Errorf("command %d = %#v, want %#v", i, got, want[i])
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown command", "hover #mainImage", `unknown command "hover"`},
		{"missing argument", "change #sizeSelect", "change takes 2 arguments, got 1"},
		{"extra argument", "reload now", "reload takes 0 arguments, got 1"},
		{"missing selector", "click", "click takes 1 argument, got 0"},
		{"unterminated quote", `expect #selVariant "Red`, "unterminated \" quote"},
		{"unterminated bracket", `click .swatch[data-color="Red"`, "unterminated ["},
		{"glued quote", `expect #selVariant "Red"x`, "after quoted argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("Parse succeeded")
			}
			if errors.Code(err) != "P030" {
				t.Errorf("code = %q, want P030", errors.Code(err))
			}
			var pe *errors.PageError
			if !asPageError(err, &pe) || !strings.Contains(pe.Detail, tt.want) {
				t.Errorf("detail = %q, want it to contain %q", pe.Detail, tt.want)
			}
			if !strings.Contains(pe.Detail, "line 1") {
				t.Errorf("detail %q does not name the line", pe.Detail)
			}
		})
	}
}

func asPageError(err error, target **errors.PageError) bool {
	pe, ok := err.(*errors.PageError)
	if ok {
		*target = pe
	}
	return ok
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Command{Op: OpClick, Args: []string{`.swatch[data-color="Red"]`}}, `click .swatch[data-color="Red"]`},
		{Command{Op: OpExpect, Args: []string{"#selVariant", "Red - M"}}, `expect #selVariant "Red - M"`},
		{Command{Op: OpChange, Args: []string{"#sizeSelect", ""}}, `change #sizeSelect ""`},
		{Command{Op: OpReload}, "reload"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCommandStringRoundTrip(t *testing.T) {
	cmd := Command{Op: OpExpect, Args: []string{"#sizeChartModal h3", "Size chart"}, Line: 1}
	parsed, err := Parse(strings.NewReader(cmd.String()))
	if err != nil {
		t.Fatalf("Parse(%q): %v", cmd.String(), err)
	}
	if !reflect.DeepEqual(parsed, []Command{cmd}) {
		t.Errorf("round trip = %#v", parsed)
	}
}
