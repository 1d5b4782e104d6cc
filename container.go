package oconf

import (
	"sort"

	"github.com/layeredconf/oconf/node"
)

// ToContainer walks cfg's tree and produces a plain, language-native
// value: map[string]any, []any, or a scalar Go value (§4.8). When resolve
// is true, every interpolation encountered is evaluated; when false, an
// unresolved interpolation is rendered back to its raw "${...}" text so
// the result remains a faithful native projection of the tree (the
// to-container/create round-trip invariant in §8).
func (c *Config) ToContainer(resolve bool) (any, error) {
	return c.toContainer(c.root, resolve)
}

func (c *Config) toContainer(n node.Node, resolve bool) (any, error) {
	switch t := n.(type) {
	case *node.MapContainer:
		out := make(map[string]any, t.Len())

		for _, k := range t.Keys() {
			child, _ := t.Get(k)

			v, err := c.toContainer(child, resolve)
			if err != nil {
				return nil, err
			}

			out[k.String()] = v
		}

		return out, nil
	case *node.ListContainer:
		out := make([]any, 0, t.Len())

		for _, child := range t.Items() {
			v, err := c.toContainer(child, resolve)
			if err != nil {
				return nil, err
			}

			out = append(out, v)
		}

		return out, nil
	case *node.Scalar:
		if t.IsMissing() {
			return node.Missing{}, nil
		}

		if t.IsInterpolation() {
			if !resolve {
				return t.Value().(node.Interpolation).Raw, nil
			}

			return c.evaluator().Resolve(t)
		}

		return t.Value(), nil
	default:
		return nil, newTypeError(node.PathString(n), node.KindAny, "unknown node kind %T", n)
	}
}

// Resolve eagerly evaluates every interpolation in cfg's tree in place,
// replacing each expression scalar with a scalar holding its resolved
// value (§4.8). Idempotent: resolving an already-resolved tree is a no-op
// (§8).
func (c *Config) Resolve() error {
	return c.resolveInPlace(c.root)
}

func (c *Config) resolveInPlace(n node.Node) error {
	switch t := n.(type) {
	case *node.MapContainer:
		for _, k := range t.Keys() {
			child, _ := t.Get(k)

			if err := c.resolveInPlace(child); err != nil {
				return err
			}
		}

		return nil
	case *node.ListContainer:
		for _, child := range t.Items() {
			if err := c.resolveInPlace(child); err != nil {
				return err
			}
		}

		return nil
	case *node.Scalar:
		if !t.IsInterpolation() {
			return nil
		}

		v, err := c.evaluator().Resolve(t)
		if err != nil {
			return err
		}

		return t.Set(v)
	default:
		return nil
	}
}

// MissingKeys returns the full set of dotted/bracketed path strings
// naming every descendant scalar currently holding MISSING (§4.8),
// including list indices (e.g. "foo.bar[2]").
func (c *Config) MissingKeys() []string {
	var out []string

	c.collectMissing(c.root, &out)
	sort.Strings(out)

	return out
}

func (c *Config) collectMissing(n node.Node, out *[]string) {
	switch t := n.(type) {
	case *node.MapContainer:
		for _, k := range t.Keys() {
			child, _ := t.Get(k)
			c.collectMissing(child, out)
		}
	case *node.ListContainer:
		for _, child := range t.Items() {
			c.collectMissing(child, out)
		}
	case *node.Scalar:
		if t.IsMissing() {
			*out = append(*out, node.PathString(t))
		}
	}
}

// MaskedCopy returns a new map container restricted to the named
// top-level keys, preserving each retained subtree's types and flags
// (§4.8). Keys not present in cfg's root are silently skipped; callers
// that need strict key-existence should check Has first. A root that is
// not a map container is reported as a TypeError.
func (c *Config) MaskedCopy(keys ...string) (*Config, error) {
	root, ok := c.root.(*node.MapContainer)
	if !ok {
		return nil, newTypeError(node.PathString(c.root), node.KindMap, "masked-copy requires a map root")
	}

	out := node.NewMapContainer(*root.Flags())

	for _, k := range keys {
		child, ok := root.Get(node.StringKey(k))
		if !ok {
			continue
		}

		if err := out.InsertForce(node.StringKey(k), child.Clone()); err != nil {
			return nil, err
		}
	}

	return wrap(out, c.reg), nil
}
