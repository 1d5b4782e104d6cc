package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	var listMode string

	cmd := &cobra.Command{
		Use:   "merge <file.yaml> [file2.yaml ...]",
		Short: "Merge YAML layers right-biased and print the result",
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

			out, err := cfg.SaveYAML()
			if err != nil {
				return fmt.Errorf("serialize merged config: %w", err)
			}

			_, err = os.Stdout.Write(out)

			return err
		},
	}

	cmd.Flags().StringVar(&listMode, "list-mode", "replace",
		"list merge mode, one of: replace, extend, extend-unique")

	return cmd
}
