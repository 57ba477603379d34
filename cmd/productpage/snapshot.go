package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/productpage/pkg/dom"
	"github.com/vango-dev/productpage/pkg/page"
)

func snapshotCmd(global *globalOptions) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the page markup",
		Long: `Build the page from the catalog, mount it over an empty store and
print its HTML.

Examples:
  productpage snapshot
  productpage snapshot --config tee.yaml --compact`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(global, compact, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "Print without indentation")

	return cmd
}

func runSnapshot(global *globalOptions, compact bool, out io.Writer) error {
	cat, err := loadCatalog(global)
	if err != nil {
		return err
	}
	p, err := page.New(cat, page.Options{Logger: newLogger(cat.Log, io.Discard)})
	if err != nil {
		return err
	}
	cfg := dom.RenderConfig{Pretty: !compact, Indent: "  "}
	if err := dom.Render(out, p.Document().Body(), cfg); err != nil {
		return err
	}
	if compact {
		_, err = io.WriteString(out, "\n")
	}
	return err
}
