// Command oconfctl is a demonstration CLI over package oconf: it loads
// one or more YAML layers, merges them, and can query a path, list
// missing mandatory keys, or emit a JSON Schema describing the merged
// tree. Its flag wiring follows cmd/magicschema's pattern of a package
// Config embedded into a cobra.Command.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/layeredconf/oconf/internal/profiling"
	"github.com/layeredconf/oconf/log"
	"github.com/layeredconf/oconf/version"
)

func main() {
	logCfg := log.NewConfig()
	profCfg := profiling.NewConfig()
	profiler := profCfg.NewProfiler()

	rootCmd := &cobra.Command{
		Use:           "oconfctl",
		Short:         "Inspect and merge layered configuration trees",
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profCfg.RegisterFlags(rootCmd.PersistentFlags())

	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := profCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		handler, err := logCfg.NewHandler(os.Stderr)
		if err != nil {
			return err
		}

		slog.SetDefault(slog.New(handler))

		return profiler.Start()
	}

	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return profiler.Stop()
	}

	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newMissingKeysCmd())
	rootCmd.AddCommand(newSchemaCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
