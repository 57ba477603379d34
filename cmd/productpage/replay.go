package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/productpage/internal/errors"
	"github.com/vango-dev/productpage/internal/script"
	"github.com/vango-dev/productpage/internal/telemetry"
)

type replayOptions struct {
	backend string
	path    string
	metrics bool
	echo    bool
}

func replayCmd(global *globalOptions) *cobra.Command {
	var opts replayOptions

	cmd := &cobra.Command{
		Use:   "replay [script]",
		Short: "Run an interaction script against the page",
		Long: `Run a replay script against a freshly mounted page. With no script,
or "-", the script is read from standard input.

Commands:
  click <selector>            Click the first matching element
  key <selector|window> <k>   Press key k
  change <selector> <value>   Set a control's value and fire change
  expect <selector> <text>    Fail unless the element's text equals text
  reload                      Mount a fresh page over the same store
  state                       Print the page state
  snapshot [selector]         Print the document (or one element)

Examples:
  productpage replay steps.txt
  echo 'click .swatch[data-color="Red"]' | productpage replay --store sqlite --store-path page.db
  productpage replay steps.txt --metrics`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := "-"
			if len(args) == 1 {
				src = args[0]
			}
			return runReplay(cmd.Context(), global, opts, src, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.backend, "store", "", "Store backend override (memory, file, sqlite, none)")
	cmd.Flags().StringVar(&opts.path, "store-path", "", "Store path override for the file and sqlite backends")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "Print collected metrics when done")
	cmd.Flags().BoolVarP(&opts.echo, "echo", "e", false, "Print each command before running it")

	return cmd
}

func runReplay(ctx context.Context, global *globalOptions, opts replayOptions, src string, stdin io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cat, err := loadCatalog(global)
	if err != nil {
		return err
	}
	if opts.backend != "" {
		cat.Storage.Backend = opts.backend
	}
	if opts.path != "" {
		cat.Storage.Path = opts.path
	}
	if err := cat.Validate(); err != nil {
		return err
	}

	r := stdin
	if src != "-" {
		f, err := os.Open(src)
		if err != nil {
			return errors.New("P030").WithDetail("cannot open " + src).Wrap(err)
		}
		defer f.Close()
		r = f
	}
	cmds, err := script.Parse(r)
	if err != nil {
		return err
	}

	shutdown, err := telemetry.Setup(ctx, "productpage")
	if err != nil {
		warn("tracing disabled: %v", err)
	}
	defer shutdown(context.Background())

	env, err := newPageEnv(cat, out)
	if err != nil {
		return err
	}
	defer env.close()

	runner := &script.Runner{
		Mount:  env.mount,
		Out:    out,
		Echo:   opts.echo,
		Logger: env.logger,
	}
	if _, err := runner.Run(ctx, cmds); err != nil {
		return err
	}

	if opts.metrics {
		if err := telemetry.WriteMetrics(out, env.registry); err != nil {
			return err
		}
	}
	return nil
}
