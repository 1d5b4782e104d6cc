package oconf

import (
	"strings"

	"github.com/layeredconf/oconf/grammar"
	"github.com/layeredconf/oconf/node"
	"github.com/layeredconf/oconf/resolver"
)

// literalize inspects a raw value about to be assigned through the
// access API: a string containing "${" is parsed to check whether it is
// genuinely interpolation-bearing (syntactic validity is checked on
// assignment, per §4.1 invariant 4); if so it is wrapped as a
// node.Interpolation so later access evaluates it lazily. Any other value
// passes through unchanged.
func literalize(v any) (any, error) {
	s, ok := v.(string)
	if !ok || !strings.Contains(s, "${") {
		return v, nil
	}

	text, err := grammar.ParseText(s)
	if err != nil {
		return nil, err
	}

	if !containsInterp(text) {
		return v, nil
	}

	return node.Interpolation{Raw: s}, nil
}

func containsInterp(t *grammar.Text) bool {
	for _, f := range t.Fragments {
		if f.Kind == grammar.FragInterp {
			return true
		}
	}

	return false
}

// elementToValue converts a parsed grammar.Element (the §6.2 dotlist
// right-hand-side grammar) to a value suitable for node.FromNative: plain
// Go natives for primitives/lists/maps, and node.Interpolation for any
// piece that embeds an unresolved interpolation. Construction from this
// value happens through node.FromNative, whose default branch calls
// Scalar.Set, which already special-cases node.Interpolation (§4.1).
func elementToValue(el grammar.Element) (any, error) {
	switch el.Kind {
	case grammar.ElemPrimitive:
		return resolver.InferPrimitive(el.Primitive), nil
	case grammar.ElemQuoted:
		if !containsInterp(el.Quoted) {
			return literalText(el.Quoted), nil
		}

		return node.Interpolation{Raw: grammar.Render(el.Quoted)}, nil
	case grammar.ElemList:
		out := make([]any, 0, len(el.List))

		for _, item := range el.List {
			v, err := elementToValue(item)
			if err != nil {
				return nil, err
			}

			out = append(out, v)
		}

		return out, nil
	case grammar.ElemMap:
		out := make(map[string]any, len(el.Map))

		for _, entry := range el.Map {
			v, err := elementToValue(entry.Value)
			if err != nil {
				return nil, err
			}

			out[entry.Key] = v
		}

		return out, nil
	case grammar.ElemInterp:
		return node.Interpolation{Raw: grammar.RenderInterp(el.Interp)}, nil
	default:
		return nil, nil
	}
}

func literalText(t *grammar.Text) string {
	var sb strings.Builder

	for _, f := range t.Fragments {
		switch f.Kind {
		case grammar.FragLiteral:
			sb.WriteString(f.Literal)
		case grammar.FragEscape:
			sb.WriteRune(f.Escape)
		}
	}

	return sb.String()
}
