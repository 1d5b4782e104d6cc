package grammar

import "strings"

// ParseText parses s as a Text: a sequence of literal runs, escape
// sequences, and "${...}" interpolations. It is the entry point used for
// scalar assignment, and is called recursively for quoted arguments and
// bracketed path segments, which share the same grammar.
func ParseText(s string) (*Text, error) {
	var fragments []Fragment

	i := 0
	for i < len(s) {
		if s[i] == '\\' && i+1 < len(s) {
			ch, ok := escapeMap[s[i+1]]
			if !ok {
				return nil, parseErrorf("invalid escape sequence \\%c at offset %d", s[i+1], i)
			}

			fragments = append(fragments, Fragment{Kind: FragEscape, Escape: ch})
			i += 2

			continue
		}

		if s[i] == '$' && i+1 < len(s) && s[i+1] == '{' {
			end, err := skipInterpBody(s, i+2)
			if err != nil {
				return nil, err
			}

			interp, err := parseInterpBody(s[i+2 : end])
			if err != nil {
				return nil, err
			}

			fragments = append(fragments, Fragment{Kind: FragInterp, Interp: interp})
			i = end + 1

			continue
		}

		j := i
		for j < len(s) {
			if s[j] == '\\' {
				break
			}

			if s[j] == '$' && j+1 < len(s) && s[j+1] == '{' {
				break
			}

			j++
		}

		if j > i {
			fragments = append(fragments, Fragment{Kind: FragLiteral, Literal: s[i:j]})
		}

		i = j
	}

	text := &Text{Fragments: fragments}
	if len(fragments) == 1 && fragments[0].Kind == FragInterp {
		text.SingleInterp = true
	}

	return text, nil
}

// parseInterpBody parses the content between a matched "${" and "}" as
// either a node reference or a resolver call, distinguished by the
// presence of a top-level ':'.
func parseInterpBody(body string) (*Interp, error) {
	if ci := findTopLevel(body, ":"); ci >= 0 {
		call, err := parseResolverCall(body[:ci], body[ci+1:])
		if err != nil {
			return nil, err
		}

		return &Interp{Call: call}, nil
	}

	ref, err := parseNodeRef(body)
	if err != nil {
		return nil, err
	}

	return &Interp{Ref: ref}, nil
}

func parseNodeRef(body string) (*NodeRef, error) {
	i := 0
	for i < len(body) && body[i] == '.' {
		i++
	}

	segments, err := parseSegments(body[i:])
	if err != nil {
		return nil, err
	}

	return &NodeRef{NumDots: i, Segments: segments}, nil
}

func parseSegments(s string) ([]*Text, error) {
	var segments []*Text

	i := 0
	for i < len(s) {
		switch s[i] {
		case '.':
			i++
		case '[':
			end, err := skipBracketPair(s, i, ']')
			if err != nil {
				return nil, err
			}

			inner, err := ParseText(s[i+1 : end-1])
			if err != nil {
				return nil, err
			}

			segments = append(segments, inner)
			i = end
		default:
			j := i
			for j < len(s) && s[j] != '.' && s[j] != '[' {
				j++
			}

			segments = append(segments, &Text{Fragments: []Fragment{{Kind: FragLiteral, Literal: s[i:j]}}})
			i = j
		}
	}

	return segments, nil
}

func parseResolverCall(namePart, argsPart string) (*ResolverCall, error) {
	var parts []NamePart

	for _, piece := range splitTopLevel(namePart, '.') {
		piece = strings.TrimSpace(piece)

		if strings.HasPrefix(piece, "${") && strings.HasSuffix(piece, "}") {
			txt, err := ParseText(piece)
			if err != nil {
				return nil, err
			}

			parts = append(parts, NamePart{Nested: txt})

			continue
		}

		parts = append(parts, NamePart{Literal: piece})
	}

	var (
		args          []Element
		trailingEmpty bool
	)

	if strings.TrimSpace(argsPart) != "" || strings.Contains(argsPart, ",") {
		pieces := splitTopLevel(argsPart, ',')

		if len(pieces) > 0 && strings.TrimSpace(pieces[len(pieces)-1]) == "" {
			trailingEmpty = true
			pieces = pieces[:len(pieces)-1]
		}

		for _, p := range pieces {
			if strings.TrimSpace(p) == "" {
				continue
			}

			el, err := parseElement(p)
			if err != nil {
				return nil, err
			}

			args = append(args, el)
		}
	}

	return &ResolverCall{NameParts: parts, Args: args, TrailingEmptyArg: trailingEmpty}, nil
}

// ParseElement parses s as a single resolver-argument Element: a
// primitive, a quoted string, a bracketed list, a braced map, or a bare
// interpolation.
func ParseElement(s string) (Element, error) {
	return parseElement(s)
}

func parseElement(s string) (Element, error) {
	trimmed := strings.TrimSpace(s)

	if trimmed == "" {
		return Element{Kind: ElemPrimitive}, nil
	}

	switch trimmed[0] {
	case '"', '\'':
		if len(trimmed) < 2 || trimmed[len(trimmed)-1] != trimmed[0] {
			return Element{}, parseErrorf("unterminated quoted argument %q", trimmed)
		}

		inner, err := ParseText(trimmed[1 : len(trimmed)-1])
		if err != nil {
			return Element{}, err
		}

		return Element{Kind: ElemQuoted, Quoted: inner}, nil

	case '[':
		if trimmed[len(trimmed)-1] != ']' {
			return Element{}, parseErrorf("unterminated list literal %q", trimmed)
		}

		var list []Element

		for _, item := range splitTopLevel(trimmed[1:len(trimmed)-1], ',') {
			if strings.TrimSpace(item) == "" {
				continue
			}

			el, err := parseElement(item)
			if err != nil {
				return Element{}, err
			}

			list = append(list, el)
		}

		return Element{Kind: ElemList, List: list}, nil

	case '{':
		if trimmed[len(trimmed)-1] != '}' {
			return Element{}, parseErrorf("unterminated map literal %q", trimmed)
		}

		var entries []MapEntry

		for _, entry := range splitTopLevel(trimmed[1:len(trimmed)-1], ',') {
			if strings.TrimSpace(entry) == "" {
				continue
			}

			ci := findTopLevel(entry, ":")
			if ci < 0 {
				return Element{}, parseErrorf("map literal entry %q is missing ':'", entry)
			}

			val, err := parseElement(entry[ci+1:])
			if err != nil {
				return Element{}, err
			}

			entries = append(entries, MapEntry{Key: strings.TrimSpace(entry[:ci]), Value: val})
		}

		return Element{Kind: ElemMap, Map: entries}, nil

	default:
		if strings.HasPrefix(trimmed, "${") {
			end, err := skipInterpBody(trimmed, 2)
			if err != nil {
				return Element{}, err
			}

			if end != len(trimmed)-1 {
				return Element{}, parseErrorf("trailing characters after interpolation in argument %q", trimmed)
			}

			interp, err := parseInterpBody(trimmed[2:end])
			if err != nil {
				return Element{}, err
			}

			return Element{Kind: ElemInterp, Interp: interp}, nil
		}

		return Element{Kind: ElemPrimitive, Primitive: trimmed}, nil
	}
}
