package oconf

import (
	"fmt"
	"strconv"

	"github.com/layeredconf/oconf/node"
	"github.com/layeredconf/oconf/path"
)

func childPathString(cur node.Node, seg path.Segment) string {
	p := node.PathString(cur)

	if seg.Kind == path.SegIndex {
		return p + "[" + strconv.Itoa(seg.Index) + "]"
	}

	if p == "" {
		return seg.Key
	}

	return p + "." + seg.Key
}

// stepStrict descends exactly one segment, treating any form of absence
// (a missing non-struct map key, a struct-mode container rejecting an
// unknown key, an out-of-range list index) as an error.
func stepStrict(cur node.Node, seg path.Segment) (node.Node, error) {
	switch c := cur.(type) {
	case *node.MapContainer:
		if seg.Kind != path.SegKey {
			return nil, newTypeError(node.PathString(cur), node.KindMap, "map requires a key segment, got an index")
		}

		child, ok := c.Get(node.StringKey(seg.Key))
		if ok {
			return child, nil
		}

		if node.IsStruct(c) {
			return nil, newAttributeError(childPathString(cur, seg), "%q is not in struct", seg.Key)
		}

		return nil, newKeyError(childPathString(cur, seg), node.KindMap, "key %q not found", seg.Key)
	case *node.ListContainer:
		if seg.Kind != path.SegIndex {
			return nil, newTypeError(node.PathString(cur), node.KindList, "list requires an index segment, got a key")
		}

		child, ok := c.At(seg.Index)
		if !ok {
			return nil, newKeyError(childPathString(cur, seg), node.KindList, "index %d out of range", seg.Index)
		}

		return child, nil
	default:
		return nil, newTypeError(node.PathString(cur), node.KindAny, "cannot navigate into a scalar with segment %q", seg.String())
	}
}

func (c *Config) walk(segs []path.Segment) (node.Node, error) {
	cur := c.root

	for _, seg := range segs {
		next, err := stepStrict(cur, seg)
		if err != nil {
			return nil, err
		}

		cur = next
	}

	return cur, nil
}

// walkOptional is like walk, but a missing key in a non-struct map
// container is reported as (nil, false, nil) instead of an error, the
// "default-returning getter success" case in §4.5's missing-key
// semantics. Struct-mode violations and out-of-range list indices are
// still hard errors: only map-key absence is defaultable.
func (c *Config) walkOptional(segs []path.Segment) (node.Node, bool, error) {
	cur := c.root

	for _, seg := range segs {
		switch t := cur.(type) {
		case *node.MapContainer:
			if seg.Kind != path.SegKey {
				return nil, false, newTypeError(node.PathString(cur), node.KindMap, "map requires a key segment, got an index")
			}

			child, ok := t.Get(node.StringKey(seg.Key))
			if !ok {
				if node.IsStruct(t) {
					return nil, false, newAttributeError(childPathString(cur, seg), "%q is not in struct", seg.Key)
				}

				return nil, false, nil
			}

			cur = child
		case *node.ListContainer:
			if seg.Kind != path.SegIndex {
				return nil, false, newTypeError(node.PathString(cur), node.KindList, "list requires an index segment, got a key")
			}

			child, ok := t.At(seg.Index)
			if !ok {
				return nil, false, newKeyError(childPathString(cur, seg), node.KindList, "index %d out of range", seg.Index)
			}

			cur = child
		default:
			return nil, false, newTypeError(node.PathString(cur), node.KindAny, "cannot navigate into a scalar with segment %q", seg.String())
		}
	}

	return cur, true, nil
}

// Get returns the resolved value at p. Missing intermediate map keys,
// struct-mode violations, and out-of-range list indices are reported as
// errors; a MISSING scalar is reported as MissingMandatoryValueError.
func (c *Config) Get(p string) (any, error) {
	segs, err := path.Tokenize(p)
	if err != nil {
		return nil, err
	}

	n, err := c.walk(segs)
	if err != nil {
		return nil, err
	}

	return c.resolveNode(n)
}

// Select returns the resolved value at p, or def if p addresses an
// absent non-struct map key. Interpolation and validation errors along
// the way still propagate; only structural absence converts to the
// default (§7).
func (c *Config) Select(p string, def any) (any, error) {
	segs, err := path.Tokenize(p)
	if err != nil {
		return nil, err
	}

	n, ok, err := c.walkOptional(segs)
	if err != nil {
		return nil, err
	}

	if !ok {
		return def, nil
	}

	return c.resolveNode(n)
}

// Has reports whether p addresses a present node (without resolving it).
func (c *Config) Has(p string) (bool, error) {
	segs, err := path.Tokenize(p)
	if err != nil {
		return false, err
	}

	_, ok, err := c.walkOptional(segs)

	return ok, err
}

// SelectRaw returns the node at p without resolving interpolation,
// matching §4.5's "low-level select may return the raw interpolation
// expression on request".
func (c *Config) SelectRaw(p string) (node.Node, error) {
	segs, err := path.Tokenize(p)
	if err != nil {
		return nil, err
	}

	return c.walk(segs)
}

// UpdateOptions configures Update.
type UpdateOptions struct {
	// Merge controls whether a container value assigned over an existing
	// container is merged into it (true, the default) or replaces it
	// wholesale.
	Merge bool
	// ForceAdd bypasses struct-mode along the traversed path, creating
	// intermediate map containers (with inherit-from-parent flags) as
	// needed.
	ForceAdd bool
}

// UpdateOption configures a single aspect of UpdateOptions.
type UpdateOption func(*UpdateOptions)

// WithForceAdd defeats struct-mode along the assignment path.
func WithForceAdd() UpdateOption { return func(o *UpdateOptions) { o.ForceAdd = true } }

// WithoutMerge replaces an existing container wholesale instead of
// merging into it.
func WithoutMerge() UpdateOption { return func(o *UpdateOptions) { o.Merge = false } }

// Update assigns value at p, per §4.5. A plain string value containing
// "${" is checked for interpolation syntax validity and, if genuinely
// interpolation-bearing, stored lazily rather than evaluated immediately.
func (c *Config) Update(p string, value any, opts ...UpdateOption) error {
	o := UpdateOptions{Merge: true}
	for _, opt := range opts {
		opt(&o)
	}

	segs, err := path.Tokenize(p)
	if err != nil {
		return err
	}

	if len(segs) == 0 {
		return newKeyError("", node.KindAny, "empty path")
	}

	parent, lastSeg, err := c.ensurePath(segs, o.ForceAdd)
	if err != nil {
		return err
	}

	v, err := literalize(value)
	if err != nil {
		return err
	}

	return assign(parent, lastSeg, v, o)
}

// Set is a convenience wrapper over Update with default options (merge
// enabled, struct-mode enforced).
func (c *Config) Set(p string, value any) error {
	return c.Update(p, value)
}

// ensurePath walks every segment but the last, creating a missing
// intermediate container in a non-struct map, or in a struct-mode map
// when forceAdd is set. It returns the direct parent of the final segment.
func (c *Config) ensurePath(segs []path.Segment, forceAdd bool) (node.Node, path.Segment, error) {
	cur := c.root

	for i := 0; i < len(segs)-1; i++ {
		seg := segs[i]

		switch t := cur.(type) {
		case *node.MapContainer:
			if seg.Kind != path.SegKey {
				return nil, path.Segment{}, newTypeError(node.PathString(cur), node.KindMap, "map requires a key segment")
			}

			if node.IsReadOnly(t) {
				return nil, path.Segment{}, newReadonlyError(node.PathString(cur))
			}

			child, ok := t.Get(node.StringKey(seg.Key))
			if !ok {
				if node.IsStruct(t) && !forceAdd {
					return nil, path.Segment{}, newAttributeError(childPathString(cur, seg), "%q is not in struct", seg.Key)
				}

				child = newIntermediateContainer(segs[i+1])

				insert := t.Insert
				if forceAdd {
					insert = t.InsertForce
				}

				if err := insert(node.StringKey(seg.Key), child); err != nil {
					return nil, path.Segment{}, newValidationError(childPathString(cur, seg), err)
				}
			}

			cur = child
		case *node.ListContainer:
			if seg.Kind != path.SegIndex {
				return nil, path.Segment{}, newTypeError(node.PathString(cur), node.KindList, "list requires an index segment")
			}

			if node.IsReadOnly(t) {
				return nil, path.Segment{}, newReadonlyError(node.PathString(cur))
			}

			child, ok := t.At(seg.Index)
			if !ok {
				return nil, path.Segment{}, newKeyError(childPathString(cur, seg), node.KindList, "index %d out of range", seg.Index)
			}

			cur = child
		default:
			return nil, path.Segment{}, newTypeError(node.PathString(cur), node.KindAny, "cannot navigate into a scalar")
		}
	}

	return cur, segs[len(segs)-1], nil
}

func newIntermediateContainer(nextSeg path.Segment) node.Node {
	if nextSeg.Kind == path.SegIndex {
		return node.NewListContainer(node.FlagSet{})
	}

	return node.NewMapContainer(node.FlagSet{})
}

// assign writes value at seg within parent, applying struct-mode,
// read-only, and merge/force-add semantics.
func assign(parent node.Node, seg path.Segment, value any, o UpdateOptions) error {
	if node.IsReadOnly(parent) {
		return newReadonlyError(childPathString(parent, seg))
	}

	switch t := parent.(type) {
	case *node.MapContainer:
		if seg.Kind != path.SegKey {
			return newTypeError(node.PathString(parent), node.KindMap, "map requires a key segment")
		}

		key := node.StringKey(seg.Key)

		existing, has := t.Get(key)
		if !has {
			if node.IsStruct(t) && !o.ForceAdd {
				return newAttributeError(childPathString(parent, seg), "%q is not in struct", seg.Key)
			}

			n, err := node.FromNative(value)
			if err != nil {
				return newValidationError(childPathString(parent, seg), err)
			}

			insert := t.Insert
			if o.ForceAdd {
				insert = t.InsertForce
			}

			return insert(key, n)
		}

		return assignInto(existing, value, o, childPathString(parent, seg))
	case *node.ListContainer:
		if seg.Kind != path.SegIndex {
			return newTypeError(node.PathString(parent), node.KindList, "list requires an index segment")
		}

		existing, ok := t.At(seg.Index)
		if !ok {
			return newKeyError(childPathString(parent, seg), node.KindList, "index %d out of range", seg.Index)
		}

		return assignInto(existing, value, o, childPathString(parent, seg))
	default:
		return newTypeError(node.PathString(parent), node.KindAny, "cannot assign into a scalar")
	}
}

// assignInto overwrites an existing node's value in place where
// possible: a Scalar is coerced via Set; a container is either merged
// into (the default) or replaced wholesale (WithoutMerge).
func assignInto(existing node.Node, value any, o UpdateOptions, errPath string) error {
	switch t := existing.(type) {
	case *node.Scalar:
		if node.IsReadOnly(existing) {
			return newReadonlyError(errPath)
		}

		if err := t.Set(value); err != nil {
			return newValidationError(errPath, err)
		}

		return nil
	case *node.MapContainer, *node.ListContainer:
		if node.IsReadOnly(existing) {
			return newReadonlyError(errPath)
		}

		n, err := node.FromNative(value)
		if err != nil {
			return newValidationError(errPath, err)
		}

		if !o.Merge {
			return replaceInParent(existing, n)
		}

		merged, err := mergeNodes(existing, n, ListReplace)
		if err != nil {
			return newValidationError(errPath, err)
		}

		return replaceInParent(existing, merged)
	default:
		return fmt.Errorf("%w: unknown node kind %T", ErrType, existing)
	}
}

// replaceInParent re-inserts replacement at old's position in old's
// parent, preserving the parent's own flags.
func replaceInParent(old, replacement node.Node) error {
	parent := old.Parent()
	if parent == nil {
		return fmt.Errorf("%w: cannot replace a root node in place", ErrType)
	}

	switch p := parent.(type) {
	case *node.MapContainer:
		return p.InsertForce(old.KeyInParent().(node.MapKey), replacement)
	case *node.ListContainer:
		idx := int(old.KeyInParent().(node.IndexKey))

		return p.Set(idx, replacement)
	default:
		return fmt.Errorf("%w: unknown container kind %T", ErrType, parent)
	}
}
