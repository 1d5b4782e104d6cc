package oconf

import (
	"fmt"

	"github.com/layeredconf/oconf/node"
)

// ListMode controls how merge combines two list containers (§4.6 rule 2).
type ListMode int

const (
	// ListReplace discards the left list and keeps the right one. The
	// default.
	ListReplace ListMode = iota
	// ListExtend appends the right list's elements after the left's.
	ListExtend
	// ListExtendUnique appends the right list's elements after the
	// left's, skipping any that already equal (by value) an element
	// already present.
	ListExtendUnique
)

// Merge produces a new Config from the right-biased overlay of layers in
// order (§4.6): merge(layers[0], layers[1], ..., layers[n-1]). The inputs'
// trees are left unchanged; merge operates on clones throughout so a
// mid-merge validation failure never corrupts a caller's existing Config.
func Merge(mode ListMode, layers ...*Config) (*Config, error) {
	if len(layers) == 0 {
		return wrap(node.NewMapContainer(node.FlagSet{}), nil), nil
	}

	acc := layers[0].root.Clone()
	reg := layers[0].reg

	for _, l := range layers[1:] {
		merged, err := mergeNodes(acc, l.root.Clone(), mode)
		if err != nil {
			return nil, err
		}

		acc = merged
	}

	return wrap(acc, reg), nil
}

// UnsafeMerge is the destructive counterpart to Merge (§4.6): it may
// consume (move nodes out of) its inputs rather than cloning them, for
// callers that do not need the original layers to survive. The receiver's
// tree is replaced by the merged result.
func (c *Config) UnsafeMerge(mode ListMode, others ...*Config) error {
	acc := c.root

	for _, o := range others {
		merged, err := mergeNodes(acc, o.root, mode)
		if err != nil {
			return err
		}

		acc = merged
	}

	c.root = acc

	return nil
}

// mergeNodes implements the recursive per-position overlay of §4.6. Both
// arguments must already be detached (or owned exclusively by the caller):
// the returned node may directly reuse either argument's subtrees.
func mergeNodes(left, right node.Node, mode ListMode) (node.Node, error) {
	switch l := left.(type) {
	case *node.MapContainer:
		r, ok := right.(*node.MapContainer)
		if !ok {
			return nil, fmt.Errorf("%w: cannot merge %T into a map at %q", ErrType, right, node.PathString(left))
		}

		return mergeMaps(l, r, mode)
	case *node.ListContainer:
		r, ok := right.(*node.ListContainer)
		if !ok {
			return nil, fmt.Errorf("%w: cannot merge %T into a list at %q", ErrType, right, node.PathString(left))
		}

		return mergeLists(l, r, mode), nil
	case *node.Scalar:
		r, ok := right.(*node.Scalar)
		if !ok {
			return nil, fmt.Errorf("%w: cannot merge %T into a scalar at %q", ErrType, right, node.PathString(left))
		}

		return mergeScalars(l, r)
	default:
		return nil, fmt.Errorf("%w: unknown node kind %T", ErrType, left)
	}
}

// mergeMaps applies rules 1, 4, 5, and 7: union of keys (left order first),
// recursive merge of shared keys, struct-mode/open-container validation of
// keys the right side introduces, and flag preservation on the left.
func mergeMaps(left, right *node.MapContainer, mode ListMode) (*node.MapContainer, error) {
	out := node.NewMapContainer(*left.Flags())
	out.SetElementHint(left.ElementHint())
	out.SchemaRef = left.SchemaRef

	if kk := left.KeyKind(); kk != nil {
		out.SetKeyKind(*kk)
	}

	for _, k := range left.Keys() {
		child, _ := left.Get(k)

		rchild, ok := right.Get(k)
		if !ok {
			if err := out.InsertForce(k, child); err != nil {
				return nil, err
			}

			continue
		}

		if node.IsMissing(scalarValueOrNil(rchild)) {
			if err := out.InsertForce(k, child); err != nil {
				return nil, err
			}

			continue
		}

		merged, err := mergeNodes(child, rchild, mode)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", node.PathString(rchild), err)
		}

		if err := out.InsertForce(k, merged); err != nil {
			return nil, err
		}
	}

	for _, k := range right.Keys() {
		if left.Has(k) {
			continue
		}

		if node.IsStruct(left) {
			return nil, newAttributeError(node.PathString(left)+"."+k.String(), "%q is not in struct", k.String())
		}

		rchild, _ := right.Get(k)

		if err := out.InsertForce(k, rchild); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func scalarValueOrNil(n node.Node) any {
	s, ok := n.(*node.Scalar)
	if !ok {
		return nil
	}

	return s.Value()
}

// mergeLists applies rule 2.
func mergeLists(left, right *node.ListContainer, mode ListMode) *node.ListContainer {
	out := node.NewListContainer(*left.Flags())
	out.SetElementHint(left.ElementHint())

	switch mode {
	case ListReplace:
		for _, item := range right.Items() {
			out.Append(item)
		}
	case ListExtend:
		for _, item := range left.Items() {
			out.Append(item)
		}

		for _, item := range right.Items() {
			out.Append(item)
		}
	case ListExtendUnique:
		for _, item := range left.Items() {
			out.Append(item)
		}

		for _, item := range right.Items() {
			if !containsEqual(out.Items(), item) {
				out.Append(item)
			}
		}
	}

	return out
}

func containsEqual(items []node.Node, candidate node.Node) bool {
	for _, item := range items {
		if node.DeepEqual(item, candidate) {
			return true
		}
	}

	return false
}

// mergeScalars applies rules 3, 5, and 6: MISSING on the right never
// overwrites; otherwise the right's raw value is re-validated against the
// left's declared kind (the left anchors the schema). Interpolation is a
// Go value type here, so copying right.Value() onto a clone of left
// already satisfies "copied by value" (rule 6): there is no reference back
// to the right tree's node to sever.
func mergeScalars(left, right *node.Scalar) (*node.Scalar, error) {
	if right.IsMissing() {
		return left, nil
	}

	out := node.NewScalar(left.DeclaredKind(), left.Optional())
	if left.DeclaredKind() == node.KindEnum {
		out = node.NewEnumScalar(left.EnumMembers(), left.Optional())
	}

	if err := out.Set(right.Value()); err != nil {
		return nil, newValidationError(node.PathString(left), err)
	}

	return out, nil
}
