package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/layeredconf/oconf"
)

func newGetCmd() *cobra.Command {
	var listMode string

	cmd := &cobra.Command{
		Use:   "get <path> <file.yaml> [file2.yaml ...]",
		Short: "Resolve a single path out of one or more merged YAML layers",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			mode, err := parseListMode(listMode)
			if err != nil {
				return err
			}

			cfg, err := loadLayers(args[1:], mode)
			if err != nil {
				return err
			}

			return runGet(cfg, args[0])
		},
	}

	cmd.Flags().StringVar(&listMode, "list-mode", "replace",
		"list merge mode, one of: replace, extend, extend-unique")

	return cmd
}

func runGet(cfg *oconf.Config, path string) error {
	v, err := cfg.Get(path)
	if err != nil {
		return err
	}

	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	_, err = fmt.Fprintln(os.Stdout, string(out))

	return err
}
