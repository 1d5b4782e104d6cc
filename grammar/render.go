package grammar

import "strings"

// Render renders a parsed Text back to normalized source form. Two
// spellings that parse to the same AST (e.g. differing only in the
// inter-argument whitespace a primitive already has trimmed) render
// identically, which is what makes this suitable as a resolver cache key
// component (§4.3) and as the reconstruction step for an Element whose
// original source substring was not retained (e.g. dotlist assignment,
// §6.2).
func Render(t *Text) string {
	var sb strings.Builder

	for _, f := range t.Fragments {
		switch f.Kind {
		case FragLiteral:
			sb.WriteString(f.Literal)
		case FragEscape:
			sb.WriteByte('\\')

			if f.Escape == '\t' {
				sb.WriteByte('t')
			} else {
				sb.WriteRune(f.Escape)
			}
		case FragInterp:
			sb.WriteString(RenderInterp(f.Interp))
		}
	}

	return sb.String()
}

// RenderInterp renders a single interpolation (node reference or resolver
// call) back to its "${...}" source form.
func RenderInterp(i *Interp) string {
	if i.Ref != nil {
		return "${" + RenderNodeRef(i.Ref) + "}"
	}

	return "${" + RenderResolverCall(i.Call) + "}"
}

// RenderNodeRef renders a node reference's body (the text between "${"
// and "}", excluding the delimiters).
func RenderNodeRef(ref *NodeRef) string {
	var sb strings.Builder

	for i := 0; i < ref.NumDots; i++ {
		sb.WriteByte('.')
	}

	for i, seg := range ref.Segments {
		if i > 0 {
			sb.WriteByte('.')
		}

		sb.WriteString(Render(seg))
	}

	return sb.String()
}

// RenderResolverCall renders a resolver call's body.
func RenderResolverCall(call *ResolverCall) string {
	var sb strings.Builder

	for i, p := range call.NameParts {
		if i > 0 {
			sb.WriteByte('.')
		}

		if p.Nested != nil {
			sb.WriteString("${" + Render(p.Nested) + "}")
		} else {
			sb.WriteString(p.Literal)
		}
	}

	sb.WriteByte(':')

	for i, a := range call.Args {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(RenderElement(a))
	}

	return sb.String()
}

// RenderElement renders a single resolver-argument or inline-container
// Element back to source form.
func RenderElement(el Element) string {
	switch el.Kind {
	case ElemPrimitive:
		return el.Primitive
	case ElemQuoted:
		return `"` + Render(el.Quoted) + `"`
	case ElemList:
		parts := make([]string, len(el.List))
		for i, item := range el.List {
			parts[i] = RenderElement(item)
		}

		return "[" + strings.Join(parts, ",") + "]"
	case ElemMap:
		parts := make([]string, len(el.Map))
		for i, entry := range el.Map {
			parts[i] = entry.Key + ":" + RenderElement(entry.Value)
		}

		return "{" + strings.Join(parts, ",") + "}"
	case ElemInterp:
		return RenderInterp(el.Interp)
	default:
		return ""
	}
}
