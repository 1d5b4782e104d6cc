package oconf

import (
	"fmt"
	"strings"

	"github.com/layeredconf/oconf/grammar"
	"github.com/layeredconf/oconf/node"
	"github.com/layeredconf/oconf/resolver"
)

// New builds an empty Config: an empty map container with default flags,
// backed by a fresh registry carrying the built-in oc.* resolvers (§6.2
// "empty").
func New() *Config {
	return wrap(node.NewMapContainer(node.FlagSet{}), resolver.NewWithBuiltins())
}

// FromNode wraps an already-built node.Node tree as a Config, carrying a
// fresh registry of built-in resolvers. This is the entry point for
// trees built outside package oconf, such as a *node.MapContainer
// produced by schema.Bind.
func FromNode(n node.Node) *Config {
	return wrap(n, resolver.NewWithBuiltins())
}

// FromNative builds a Config from a language-native map or sequence
// (§6.2). The registry carries the built-in resolvers; register custom
// ones on the returned Config before reading any interpolation-bearing
// value.
func FromNative(v any) (*Config, error) {
	n, err := node.FromNative(v)
	if err != nil {
		return nil, err
	}

	return wrap(n, resolver.NewWithBuiltins()), nil
}

// FromDotList builds a Config from a sequence of "path=value" assignments
// (§6.2), applied in order against an initially empty, non-struct Config.
// Each right-hand side is parsed through the Element grammar (§2), so
// "a.b=1" yields an int64 and "a.c=${a.b}" yields a lazy interpolation.
// Intermediate containers are created as needed, matching the permissive
// (non-struct) semantics a dotlist author expects.
func FromDotList(assignments []string) (*Config, error) {
	cfg := New()

	for _, a := range assignments {
		path, rhs, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("%w: dotlist entry %q has no '=' separator", ErrKey, a)
		}

		el, err := grammar.ParseElement(rhs)
		if err != nil {
			return nil, fmt.Errorf("dotlist entry %q: %w", a, err)
		}

		v, err := elementToValue(el)
		if err != nil {
			return nil, fmt.Errorf("dotlist entry %q: %w", a, err)
		}

		if err := cfg.Update(path, v, WithForceAdd()); err != nil {
			return nil, fmt.Errorf("dotlist entry %q: %w", a, err)
		}
	}

	return cfg, nil
}
