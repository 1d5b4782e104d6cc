package oconf

import (
	"github.com/layeredconf/oconf/interp"
	"github.com/layeredconf/oconf/node"
	"github.com/layeredconf/oconf/resolver"
)

// Config is the facade over a configuration tree: it pairs a node.Node
// root with the resolver registry used to evaluate its interpolations.
type Config struct {
	root node.Node
	reg  *resolver.Registry
}

func wrap(root node.Node, reg *resolver.Registry) *Config {
	if reg == nil {
		reg = resolver.NewWithBuiltins()
	}

	return &Config{root: root, reg: reg}
}

// Root returns the underlying tree root. Callers that need node-level
// operations package oconf does not expose (e.g. package schemagen
// walking declared kinds) use this as their entry point.
func (c *Config) Root() node.Node { return c.root }

// Registry returns the resolver registry backing this Config's
// interpolation evaluation. Register custom resolvers on it before
// reading any interpolation-bearing value.
func (c *Config) Registry() *resolver.Registry { return c.reg }

func (c *Config) evaluator() *interp.Evaluator { return interp.New(c.reg) }

// resolveNode evaluates n if it is an interpolation-bearing scalar,
// returning its value. A map or list is returned as its plain native
// projection (map[string]any / []any) with interpolations resolved, the
// same value ToContainer(true) builds for that subtree.
func (c *Config) resolveNode(n node.Node) (any, error) {
	s, ok := n.(*node.Scalar)
	if !ok {
		return c.toContainer(n, true)
	}

	if s.IsMissing() {
		return nil, newMissingMandatoryError(node.PathString(s))
	}

	if s.IsInterpolation() {
		return c.evaluator().Resolve(s)
	}

	if s.IsNull() {
		return nil, nil
	}

	return s.Value(), nil
}
