package schema

import (
	"fmt"

	"github.com/layeredconf/oconf/node"
)

// Validate re-walks n's subtree looking for every node.MapContainer whose
// SchemaRef is a *Binding and checks the one thing Scalar.Set's
// single-Kind coercion table cannot enforce on its own: union-typed
// fields, which must match exactly one arm with no cross-arm coercion
// (§4.7). Plain single-kind fields and struct-mode key rejection are
// already enforced at assignment/merge time by node itself, so this is a
// narrower check than a full schema re-validation, not a duplicate of it.
func Validate(n node.Node) error {
	switch t := n.(type) {
	case *node.MapContainer:
		if b, ok := t.SchemaRef.(*Binding); ok {
			if err := b.validateContainer(t); err != nil {
				return err
			}
		}

		for _, k := range t.Keys() {
			child, _ := t.Get(k)

			if err := Validate(child); err != nil {
				return err
			}
		}
	case *node.ListContainer:
		for _, child := range t.Items() {
			if err := Validate(child); err != nil {
				return err
			}
		}
	}

	return nil
}

func (b *Binding) validateContainer(c *node.MapContainer) error {
	for _, f := range b.Schema.Fields {
		if !f.IsUnion() {
			continue
		}

		child, ok := c.Get(node.StringKey(f.Name))
		if !ok {
			continue
		}

		s, ok := child.(*node.Scalar)
		if !ok {
			continue
		}

		if err := checkUnion(f, s); err != nil {
			return fmt.Errorf("%s: %w", node.PathString(s), err)
		}
	}

	return nil
}

// checkUnion reports whether s's current runtime value matches exactly
// one arm of f's union, with no coercion across arm kinds. MISSING and
// unresolved interpolations are not yet checkable and pass through:
// MISSING is caught by the normal mandatory-value read path, and an
// interpolation's eventual value is re-checked by the caller after
// resolution (the evaluator has no schema awareness of its own, see
// package interp's adapt limitation).
func checkUnion(f Field, s *node.Scalar) error {
	v := s.Value()

	if node.IsMissing(v) {
		return nil
	}

	if _, ok := v.(node.Interpolation); ok {
		return nil
	}

	if v == nil {
		if f.UnionAcceptsNull() {
			return nil
		}

		return fmt.Errorf("%w: null does not match any arm of union field %q", ErrSchema, f.Name)
	}

	for _, arm := range f.Union {
		if arm.Kind == node.KindEnum {
			if _, ok := v.(node.EnumValue); ok {
				return nil
			}

			continue
		}

		if matchesKind(arm.Kind, v) {
			return nil
		}
	}

	return fmt.Errorf("%w: value %v does not exactly match any arm of union field %q", ErrSchema, v, f.Name)
}

// matchesKind reports whether v is already a Go value of the Go type that
// Scalar.Set would store for kind, without attempting any coercion.
func matchesKind(kind node.Kind, v any) bool {
	switch kind {
	case node.KindBool:
		_, ok := v.(bool)

		return ok
	case node.KindInt:
		_, ok := v.(int64)

		return ok
	case node.KindFloat:
		_, ok := v.(float64)

		return ok
	case node.KindString, node.KindPath:
		_, ok := v.(string)

		return ok
	case node.KindBytes:
		_, ok := v.([]byte)

		return ok
	default:
		return false
	}
}
