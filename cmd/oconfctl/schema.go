package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/layeredconf/oconf"
	"github.com/layeredconf/oconf/schemagen"
)

func newSchemaCmd() *cobra.Command {
	genCfg := schemagen.NewConfig()

	cmd := &cobra.Command{
		Use:   "schema <file.yaml> [file2.yaml ...]",
		Short: "Emit a best-effort JSON Schema inferred from one or more YAML layers",
		Long: `schema infers a JSON Schema (Draft 7) from one or more YAML layers on a
best-effort basis, by structural inference over the loaded value tree. When
multiple files are given, their inferred schemas are merged with union
semantics (a field present with different types across inputs widens to
their common type).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfgs := make([]*oconf.Config, 0, len(args))

			for _, p := range args {
				data, err := readInput(p)
				if err != nil {
					return err
				}

				cfg, err := oconf.LoadYAML(data)
				if err != nil {
					return fmt.Errorf("%s: %w", p, err)
				}

				cfgs = append(cfgs, cfg)
			}

			return runSchema(genCfg, cfgs)
		},
	}

	genCfg.RegisterFlags(cmd.Flags())

	if err := genCfg.RegisterCompletions(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	return cmd
}

func runSchema(cfg *schemagen.Config, cfgs []*oconf.Config) error {
	gen := cfg.NewGenerator()

	js, err := gen.Generate(cfgs...)
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}

	indent := "  "
	if cfg.Indent > 0 {
		indent = ""
		for range cfg.Indent {
			indent += " "
		}
	}

	out, err := json.MarshalIndent(js, "", indent)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	out = append(out, '\n')

	if cfg.Output == "" || cfg.Output == "-" {
		_, err = os.Stdout.Write(out)
	} else {
		err = os.WriteFile(cfg.Output, out, 0o644)
	}

	return err
}
