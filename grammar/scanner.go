package grammar

import "strings"

// This file implements the structural scanning primitives shared by the
// parser: finding the matching close of a nested construct (a quoted
// string, a "${...}" interpolation, a "[...]" or "{...}" literal) while
// treating each as an atomic unit, so that top-level delimiter search
// (the ':' splitting a resolver name from its arguments, the ',' splitting
// arguments) never looks inside one.

// skipUnit advances past exactly one structural unit starting at s[i]:
// an escape pair, a quoted span, a nested interpolation, or a bracket/brace
// pair, or else a single plain byte. It returns the index just past the
// unit.
func skipUnit(s string, i int) (int, error) {
	c := s[i]

	switch {
	case c == '\\' && i+1 < len(s):
		return i + 2, nil
	case c == '"' || c == '\'':
		return skipQuoted(s, i)
	case c == '$' && i+1 < len(s) && s[i+1] == '{':
		end, err := skipInterpBody(s, i+2)
		if err != nil {
			return 0, err
		}

		return end + 1, nil
	case c == '[':
		return skipBracketPair(s, i, ']')
	case c == '{':
		return skipBracketPair(s, i, '}')
	default:
		return i + 1, nil
	}
}

// skipQuoted advances past the quoted span starting at s[i] (s[i] is the
// opening quote character), treating any nested "${...}" it contains as an
// atomic unit so a brace or the quote character inside it is not mistaken
// for the end of the span.
func skipQuoted(s string, i int) (int, error) {
	q := s[i]
	j := i + 1

	for j < len(s) {
		switch {
		case s[j] == '\\' && j+1 < len(s):
			j += 2
		case s[j] == q:
			return j + 1, nil
		case s[j] == '$' && j+1 < len(s) && s[j+1] == '{':
			end, err := skipInterpBody(s, j+2)
			if err != nil {
				return 0, err
			}

			j = end + 1
		default:
			j++
		}
	}

	return 0, parseErrorf("unterminated quoted string starting at offset %d", i)
}

// skipInterpBody finds the index of the '}' matching a "${" whose body
// starts at s[start], honoring nested interpolations, quoted spans, and
// "{...}" map literals.
func skipInterpBody(s string, start int) (int, error) {
	i := start

	for i < len(s) {
		switch {
		case s[i] == '\\' && i+1 < len(s):
			i += 2
		case s[i] == '{':
			end, err := skipBracketPair(s, i, '}')
			if err != nil {
				return 0, err
			}

			i = end
		case s[i] == '"' || s[i] == '\'':
			end, err := skipQuoted(s, i)
			if err != nil {
				return 0, err
			}

			i = end
		case s[i] == '$' && i+1 < len(s) && s[i+1] == '{':
			end, err := skipInterpBody(s, i+2)
			if err != nil {
				return 0, err
			}

			i = end + 1
		case s[i] == '}':
			return i, nil
		default:
			i++
		}
	}

	return 0, parseErrorf("unterminated interpolation starting at offset %d", start)
}

// skipBracketPair advances past the "[...]" or "{...}" span starting at
// s[start], returning the index just past the matching close byte.
func skipBracketPair(s string, start int, close byte) (int, error) {
	i := start + 1

	for i < len(s) && s[i] != close {
		next, err := skipUnit(s, i)
		if err != nil {
			return 0, err
		}

		i = next
	}

	if i >= len(s) {
		return 0, parseErrorf("unterminated %q starting at offset %d", close, start)
	}

	return i + 1, nil
}

// findTopLevel returns the index of the first byte of s in targets that is
// not inside a quoted span, a nested interpolation, or a bracket/brace
// pair, or -1 if none is found.
func findTopLevel(s string, targets string) int {
	i := 0
	for i < len(s) {
		if strings.IndexByte(targets, s[i]) >= 0 {
			return i
		}

		next, err := skipUnit(s, i)
		if err != nil {
			return -1
		}

		i = next
	}

	return -1
}

// splitTopLevel splits s on occurrences of sep that are not inside a
// quoted span, a nested interpolation, or a bracket/brace pair.
func splitTopLevel(s string, sep byte) []string {
	var out []string

	i, last := 0, 0
	for i < len(s) {
		if s[i] == sep {
			out = append(out, s[last:i])
			i++
			last = i

			continue
		}

		next, err := skipUnit(s, i)
		if err != nil {
			break
		}

		i = next
	}

	out = append(out, s[last:])

	return out
}

// escapeMap maps the character following a backslash to the literal rune
// it produces (§4.2's escape-sequence list).
var escapeMap = map[byte]rune{
	'\\': '\\',
	'$':  '$',
	'{':  '{',
	'}':  '}',
	'[':  '[',
	']':  ']',
	'(':  '(',
	')':  ')',
	':':  ':',
	'=':  '=',
	',':  ',',
	' ':  ' ',
	't':  '\t',
}
