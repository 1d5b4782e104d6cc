package main

import (
	"fmt"
	"io"
	"os"

	"github.com/layeredconf/oconf"
)

func loadLayers(paths []string, mode oconf.ListMode) (*oconf.Config, error) {
	layers := make([]*oconf.Config, 0, len(paths))

	for _, p := range paths {
		data, err := readInput(p)
		if err != nil {
			return nil, err
		}

		cfg, err := oconf.LoadYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}

		layers = append(layers, cfg)
	}

	return oconf.Merge(mode, layers...)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}

func parseListMode(s string) (oconf.ListMode, error) {
	switch s {
	case "replace":
		return oconf.ListReplace, nil
	case "extend":
		return oconf.ListExtend, nil
	case "extend-unique":
		return oconf.ListExtendUnique, nil
	default:
		return 0, fmt.Errorf("%w: unknown list mode %q", errBadFlag, s)
	}
}
