package resolver

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/layeredconf/oconf/grammar"
	"github.com/layeredconf/oconf/node"
)

// registerBuiltins installs the §4.3 built-in resolver set under the
// "oc." namespace reserved by §6.3.
func registerBuiltins(r *Registry) {
	must := func(name string, fn any, useCache bool) {
		if err := r.Register(name, fn, true, useCache); err != nil {
			panic(fmt.Sprintf("resolver: built-in %q failed to register: %v", name, err))
		}
	}

	must("oc.env", PlainFunc(envLookup), true)
	must("oc.decode", PlainFunc(stringDecode), false)
	must("oc.select", ContextFunc(selectWithDefault), false)
	must("oc.subconfig", PlainFunc(createSubconfig), false)
	must("oc.deprecated", ContextFunc(deprecated), false)
	must("oc.dict.keys", PlainFunc(dictKeys), false)
	must("oc.dict.values", PlainFunc(dictValues), false)
}

// isNullLiteral reports whether an evaluated default argument should be
// treated as the literal null value rather than a string, per §8 scenario
// 5 ("default of the literal null returns the null value, not a string").
func isNullLiteral(v any) bool {
	s, ok := v.(string)

	return ok && strings.EqualFold(s, "null")
}

func envLookup(args []any) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("resolver: oc.env requires at least one argument")
	}

	name, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("resolver: oc.env: argument 1 must be a string, got %T", args[0])
	}

	if v, ok := os.LookupEnv(name); ok {
		return v, nil
	}

	if len(args) < 2 {
		return node.Missing{}, nil
	}

	if isNullLiteral(args[1]) {
		return nil, nil
	}

	return node.Stringify(args[1]), nil
}

func stringDecode(args []any) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("resolver: oc.decode requires one argument")
	}

	if args[0] == nil {
		return nil, nil
	}

	s, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("resolver: oc.decode: argument must be a string, got %T", args[0])
	}

	el, err := grammar.ParseElement(s)
	if err != nil {
		return nil, fmt.Errorf("resolver: oc.decode: %w", err)
	}

	return elementToNative(el)
}

func elementToNative(el grammar.Element) (any, error) {
	switch el.Kind {
	case grammar.ElemPrimitive:
		return InferPrimitive(el.Primitive), nil
	case grammar.ElemQuoted:
		return literalTextOnly(el.Quoted)
	case grammar.ElemList:
		out := make([]any, 0, len(el.List))

		for _, item := range el.List {
			v, err := elementToNative(item)
			if err != nil {
				return nil, err
			}

			out = append(out, v)
		}

		return out, nil
	case grammar.ElemMap:
		out := make(map[string]any, len(el.Map))

		for _, entry := range el.Map {
			v, err := elementToNative(entry.Value)
			if err != nil {
				return nil, err
			}

			out[entry.Key] = v
		}

		return out, nil
	case grammar.ElemInterp:
		return nil, fmt.Errorf("resolver: oc.decode cannot resolve a nested interpolation argument")
	default:
		return nil, fmt.Errorf("resolver: oc.decode: unknown element kind %d", el.Kind)
	}
}

// literalTextOnly concatenates the literal and escape fragments of a
// quoted Text. A quoted decode argument that itself embeds an
// interpolation cannot be resolved from within a resolver call (that
// requires the evaluator this package is invoked from); such fragments
// are rejected rather than silently dropped.
func literalTextOnly(t *grammar.Text) (string, error) {
	var sb strings.Builder

	for _, f := range t.Fragments {
		switch f.Kind {
		case grammar.FragLiteral:
			sb.WriteString(f.Literal)
		case grammar.FragEscape:
			sb.WriteRune(f.Escape)
		case grammar.FragInterp:
			return "", fmt.Errorf("resolver: oc.decode cannot resolve a nested interpolation in a quoted argument")
		}
	}

	return sb.String(), nil
}

// InferPrimitive infers the Go value a bare (unquoted) Element primitive
// denotes: bool, int64, float64, the null value, or else the string itself
// unchanged. Used by oc.decode (via elementToNative) and by the root
// package's dotlist value conversion; the interp evaluator passes bare
// resolver-call arguments as text and does not call it.
func InferPrimitive(s string) any {
	if v, err := node.Coerce(node.KindBool, s); err == nil {
		return v
	}

	if v, err := node.Coerce(node.KindInt, s); err == nil {
		return v
	}

	if v, err := node.Coerce(node.KindFloat, s); err == nil {
		return v
	}

	if strings.EqualFold(s, "null") {
		return nil
	}

	return s
}

func selectWithDefault(ctx Context, args []any) (any, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("resolver: oc.select requires (path, default)")
	}

	path, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("resolver: oc.select: argument 1 must be a string path, got %T", args[0])
	}

	found, err := navigateLiteral(ctx.Parent, path)
	if err != nil {
		return nil, err
	}

	if found == nil {
		return args[1], nil
	}

	switch n := found.(type) {
	case *node.Scalar:
		if n.IsMissing() {
			return args[1], nil
		}

		if n.IsInterpolation() {
			return n.Value(), nil
		}

		return n.Value(), nil
	default:
		return found, nil
	}
}

func createSubconfig(args []any) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("resolver: oc.subconfig requires one argument")
	}

	return node.FromNative(args[0])
}

func deprecated(ctx Context, args []any) (any, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("resolver: oc.deprecated requires (oldName, newPath)")
	}

	oldName, _ := args[0].(string)

	newPath, ok := args[1].(string)
	if !ok {
		return nil, fmt.Errorf("resolver: oc.deprecated: argument 2 must be a string path, got %T", args[1])
	}

	slog.Warn("deprecated configuration key in use", "key", oldName, "replacement", newPath)

	found, err := navigateLiteral(ctx.Parent, newPath)
	if err != nil {
		return nil, err
	}

	if found == nil {
		return node.Missing{}, nil
	}

	if s, ok := found.(*node.Scalar); ok {
		return s.Value(), nil
	}

	return found, nil
}

func dictKeys(args []any) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("resolver: oc.dict.keys requires one argument")
	}

	m, ok := args[0].(*node.MapContainer)
	if !ok {
		return nil, fmt.Errorf("resolver: oc.dict.keys: argument must be a map, got %T", args[0])
	}

	out := node.NewListContainer(node.FlagSet{})
	for _, k := range m.Keys() {
		s := node.NewScalar(node.KindString, false)
		if err := s.Set(k.String()); err != nil {
			return nil, err
		}

		out.Append(s)
	}

	return out, nil
}

// dictValues returns a list of the map's values. §4.3 describes these as
// "references... (dynamic)"; this implementation returns detached clones
// rather than live aliases, since node has no live-alias node variant
// (documented limitation).
func dictValues(args []any) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("resolver: oc.dict.values requires one argument")
	}

	m, ok := args[0].(*node.MapContainer)
	if !ok {
		return nil, fmt.Errorf("resolver: oc.dict.values: argument must be a map, got %T", args[0])
	}

	out := node.NewListContainer(node.FlagSet{})
	for _, k := range m.Keys() {
		child, _ := m.Get(k)
		out.Append(child.Clone())
	}

	return out, nil
}
