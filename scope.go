package oconf

import "github.com/layeredconf/oconf/node"

// OpenScope lifts read-only on the container addressed by p for the
// duration of fn, restoring the container's original ReadOnly flag
// afterward even if fn panics or returns an error (§4.5: "a scoped guard
// lifts it temporarily and restores on scope exit"). p must address a map
// or list container; a scalar path returns a TypeError.
func (c *Config) OpenScope(p string, fn func() error) error {
	n, err := c.SelectRaw(p)
	if err != nil {
		return err
	}

	fc, ok := n.(node.Container)
	if !ok {
		return newTypeError(node.PathString(n), node.KindAny, "open-scope target must be a map or list container")
	}

	prev := fc.Flags().ReadOnly
	fc.Flags().ReadOnly = node.False

	defer func() { fc.Flags().ReadOnly = prev }()

	return fn()
}
