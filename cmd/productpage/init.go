package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/productpage/internal/config"
	"github.com/vango-dev/productpage/internal/errors"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default catalog",
		Long: `Write the built-in catalog as YAML so it can be edited.

Examples:
  productpage init
  productpage init shop/tee.yaml --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigFileName
			if len(args) == 1 {
				path = args[0]
			}
			return runInit(path, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing catalog")

	return cmd
}

func runInit(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New("P023").
			WithDetail(path + " already exists").
			WithSuggestion("Pass --force to overwrite it")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	cat := config.Default()
	if err := cat.Save(path); err != nil {
		return err
	}

	success("Wrote %s", path)
	info("%d colors, %d sizes, %d tabs", len(cat.Swatches), len(cat.Sizes), len(cat.Tabs))
	info("Try: productpage replay --config %s", path)
	return nil
}
