package interp

import (
	"fmt"
	"strconv"

	"github.com/layeredconf/oconf/grammar"
	"github.com/layeredconf/oconf/node"
	"github.com/layeredconf/oconf/resolver"
)

// Evaluator evaluates interpolation-bearing scalars relative to an anchor
// node (§4.4). It holds a registry snapshot captured once at construction,
// per §5's "stable across that evaluation" requirement: resolvers
// registered or cleared after the Evaluator is built do not affect
// in-flight evaluations performed with it.
type Evaluator struct {
	snap *resolver.Snapshot
}

// New captures a snapshot of reg and returns an Evaluator bound to it.
func New(reg *resolver.Registry) *Evaluator {
	return &Evaluator{snap: reg.Snapshot()}
}

// Resolve evaluates anchor's current value. If anchor does not hold a
// node.Interpolation, its value is returned unchanged. Otherwise the raw
// interpolation text is parsed, evaluated, and the result is adapted to
// anchor's declared kind.
func (e *Evaluator) Resolve(anchor *node.Scalar) (any, error) {
	return e.resolve(anchor, map[node.Node]bool{})
}

func (e *Evaluator) resolve(anchor *node.Scalar, stack map[node.Node]bool) (any, error) {
	v := anchor.Value()

	interp, ok := v.(node.Interpolation)
	if !ok {
		return v, nil
	}

	if stack[anchor] {
		return nil, wrapErr(anchor, fmt.Errorf("%w at %s", ErrCycle, node.PathString(anchor)))
	}

	stack[anchor] = true
	defer delete(stack, anchor)

	text, err := grammar.ParseText(interp.Raw)
	if err != nil {
		return nil, wrapErr(anchor, err)
	}

	result, err := e.evalText(anchor, text, stack)
	if err != nil {
		return nil, err
	}

	return e.adapt(anchor, result)
}

// evalText evaluates a parsed Text relative to anchor. A single top-level
// interpolation passes its referent through unchanged (preserving type);
// a composite expression concatenates the stringification of each
// fragment (§4.4).
func (e *Evaluator) evalText(anchor node.Node, text *grammar.Text, stack map[node.Node]bool) (any, error) {
	if text.SingleInterp {
		return e.evalInterp(anchor, text.Fragments[0].Interp, stack)
	}

	var sb []byte

	for _, f := range text.Fragments {
		switch f.Kind {
		case grammar.FragLiteral:
			sb = append(sb, f.Literal...)
		case grammar.FragEscape:
			sb = append(sb, string(f.Escape)...)
		case grammar.FragInterp:
			v, err := e.evalInterp(anchor, f.Interp, stack)
			if err != nil {
				return nil, err
			}

			sb = append(sb, node.Stringify(v)...)
		}
	}

	return string(sb), nil
}

func (e *Evaluator) evalInterp(anchor node.Node, i *grammar.Interp, stack map[node.Node]bool) (any, error) {
	if i.Ref != nil {
		return e.evalRef(anchor, i.Ref, stack)
	}

	return e.evalCall(anchor, i.Call, stack)
}

// evalRef evaluates a node reference: ascend NumDots parents from anchor
// (or start from the evaluation root when NumDots is 0), then walk each
// segment (§4.4, §8's relative-interpolation scenarios).
func (e *Evaluator) evalRef(anchor node.Node, ref *grammar.NodeRef, stack map[node.Node]bool) (any, error) {
	var cur node.Node

	if ref.NumDots == 0 {
		cur = node.Root(anchor)
	} else {
		cur = anchor
		for i := 0; i < ref.NumDots; i++ {
			if cur == nil {
				return nil, wrapErr(anchor, fmt.Errorf("%w: relative reference ascends past the root", ErrKey))
			}

			cur = cur.Parent()
		}

		if cur == nil {
			return nil, wrapErr(anchor, fmt.Errorf("%w: relative reference ascends past the root", ErrKey))
		}
	}

	for _, segText := range ref.Segments {
		key, err := e.evalSegmentKey(anchor, segText, stack)
		if err != nil {
			return nil, err
		}

		next, ok, err := step(cur, key)
		if err != nil {
			return nil, wrapErr(anchor, err)
		}

		if !ok {
			return nil, wrapErr(anchor, fmt.Errorf("%w: %v", ErrToMissing, key))
		}

		cur = next
	}

	return e.materialize(cur, stack)
}

// evalSegmentKey evaluates one path segment to the key it addresses. A
// plain literal segment ("port") is used as-is; a bracket segment may
// embed a nested interpolation ("[${selected_plan}]"), which is evaluated
// to produce a dynamic key of whatever type its referent holds.
func (e *Evaluator) evalSegmentKey(anchor node.Node, segText *grammar.Text, stack map[node.Node]bool) (any, error) {
	if len(segText.Fragments) == 1 && segText.Fragments[0].Kind == grammar.FragLiteral {
		return segText.Fragments[0].Literal, nil
	}

	return e.evalText(anchor, segText, stack)
}

// step descends one segment from cur, coercing key to whatever form cur
// requires (a MapKey for a map, an integer index for a list).
func step(cur node.Node, key any) (node.Node, bool, error) {
	switch c := cur.(type) {
	case *node.MapContainer:
		mk, err := mapKeyFor(c, key)
		if err != nil {
			return nil, false, err
		}

		child, ok := c.Get(mk)

		return child, ok, nil
	case *node.ListContainer:
		idx, err := toIndex(key)
		if err != nil {
			return nil, false, err
		}

		child, ok := c.At(idx)

		return child, ok, nil
	default:
		return nil, false, fmt.Errorf("%w: cannot navigate into a scalar", ErrKey)
	}
}

func mapKeyFor(c *node.MapContainer, key any) (node.MapKey, error) {
	kind := node.KeyString
	if kk := c.KeyKind(); kk != nil {
		kind = *kk
	}

	switch kind {
	case node.KeyInt:
		i, err := toIndex(key)
		if err != nil {
			return node.MapKey{}, err
		}

		return node.IntKey(int64(i)), nil
	case node.KeyBool:
		b, err := node.Coerce(node.KindBool, key)
		if err != nil {
			return node.MapKey{}, err
		}

		return node.MapKey{Kind: node.KeyBool, Bool: b.(bool)}, nil
	default:
		return node.StringKey(node.Stringify(key)), nil
	}
}

func toIndex(key any) (int, error) {
	switch t := key.(type) {
	case int64:
		return int(t), nil
	case int:
		return t, nil
	case string:
		i, err := strconv.Atoi(t)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a valid list index", ErrKey, t)
		}

		return i, nil
	default:
		return 0, fmt.Errorf("%w: %v is not a valid list index", ErrKey, key)
	}
}

// materialize turns a resolved tree location into an evaluated value: a
// scalar's value (recursively resolving a chained interpolation), or the
// container itself when the reference lands on a map or list (§4.4's "no
// runtime coercion of container shape" rule).
func (e *Evaluator) materialize(n node.Node, stack map[node.Node]bool) (any, error) {
	s, ok := n.(*node.Scalar)
	if !ok {
		return n, nil
	}

	if s.IsMissing() {
		return nil, wrapErr(s, ErrToMissing)
	}

	if s.IsInterpolation() {
		return e.resolve(s, stack)
	}

	return s.Value(), nil
}

// evalCall evaluates a resolver call: the name (which may itself embed
// dynamic parts), then its arguments left to right, then invokes the
// resolver through the registry snapshot (§4.4).
func (e *Evaluator) evalCall(anchor node.Node, call *grammar.ResolverCall, stack map[node.Node]bool) (any, error) {
	name, err := e.resolverName(anchor, call, stack)
	if err != nil {
		return nil, err
	}

	args := make([]any, 0, len(call.Args))

	for _, el := range call.Args {
		v, err := e.evalElement(anchor, el, stack)
		if err != nil {
			return nil, err
		}

		args = append(args, v)
	}

	if !e.snap.Has(name) {
		return nil, wrapErr(anchor, fmt.Errorf("%w: %q", ErrUnsupportedType, name))
	}

	ctx := resolver.Context{Parent: anchor.Parent(), Root: node.Root(anchor)}

	v, err := e.snap.Call(ctx, name, args, canonicalCall(call))
	if err != nil {
		return nil, wrapErr(anchor, err)
	}

	return v, nil
}

func (e *Evaluator) resolverName(anchor node.Node, call *grammar.ResolverCall, stack map[node.Node]bool) (string, error) {
	parts := make([]string, len(call.NameParts))

	for i, p := range call.NameParts {
		if p.Nested == nil {
			parts[i] = p.Literal

			continue
		}

		v, err := e.evalText(anchor, p.Nested, stack)
		if err != nil {
			return "", err
		}

		parts[i] = node.Stringify(v)
	}

	name := parts[0]
	for _, p := range parts[1:] {
		name += "." + p
	}

	return name, nil
}

// evalElement evaluates one resolver-argument Element to a Go value.
func (e *Evaluator) evalElement(anchor node.Node, el grammar.Element, stack map[node.Node]bool) (any, error) {
	switch el.Kind {
	case grammar.ElemPrimitive:
		// Bare resolver-argument primitives are passed through as their
		// trimmed source text, not type-inferred: only oc.decode infers a
		// type from its string argument (§4.3); built-ins that need a
		// literal "null" marker (oc.env's default) match on the text
		// itself rather than receiving a pre-converted nil.
		return el.Primitive, nil
	case grammar.ElemQuoted:
		return e.evalText(anchor, el.Quoted, stack)
	case grammar.ElemList:
		out := make([]any, 0, len(el.List))

		for _, item := range el.List {
			v, err := e.evalElement(anchor, item, stack)
			if err != nil {
				return nil, err
			}

			out = append(out, v)
		}

		return out, nil
	case grammar.ElemMap:
		out := make(map[string]any, len(el.Map))

		for _, entry := range el.Map {
			v, err := e.evalElement(anchor, entry.Value, stack)
			if err != nil {
				return nil, err
			}

			out[entry.Key] = v
		}

		return out, nil
	case grammar.ElemInterp:
		return e.evalInterp(anchor, el.Interp, stack)
	default:
		return nil, fmt.Errorf("%w: unknown element kind %d", ErrUnsupportedType, el.Kind)
	}
}

// adapt coerces an evaluation result to anchor's declared kind (§4.1).
// Containers, Missing, and null pass through unchanged, as do scalars
// whose declared kind is KindAny or KindInterpolation (the latter having
// no declared kind of its own per node.Kind's doc comment).
func (e *Evaluator) adapt(anchor *node.Scalar, result any) (any, error) {
	switch result.(type) {
	case *node.MapContainer, *node.ListContainer, node.Missing, nil:
		return result, nil
	}

	kind := anchor.DeclaredKind()
	if kind == node.KindAny || kind == node.KindInterpolation {
		return result, nil
	}

	if kind == node.KindEnum {
		v, err := node.CoerceEnum(anchor.EnumMembers(), result)
		if err != nil {
			return nil, wrapErr(anchor, err)
		}

		return v, nil
	}

	coerced, err := node.Coerce(kind, result)
	if err != nil {
		return nil, wrapErr(anchor, err)
	}

	return coerced, nil
}
