package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newMissingKeysCmd() *cobra.Command {
	var listMode string

	cmd := &cobra.Command{
		Use:   "missing-keys <file.yaml> [file2.yaml ...]",
		Short: "List every mandatory key still unset after merging layers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			mode, err := parseListMode(listMode)
			if err != nil {
				return err
			}

			cfg, err := loadLayers(args, mode)
			if err != nil {
				return err
			}

			for _, k := range cfg.MissingKeys() {
				if _, err := fmt.Fprintln(os.Stdout, k); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&listMode, "list-mode", "replace",
		"list merge mode, one of: replace, extend, extend-unique")

	return cmd
}
