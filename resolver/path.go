package resolver

import (
	"fmt"
	"strconv"

	"github.com/layeredconf/oconf/grammar"
	"github.com/layeredconf/oconf/node"
)

// navigateLiteral walks a plain (non-dynamic) node reference path string
// such as "a.b[0].c" starting from anchor, ascending dots first, per the
// same reference grammar the interp package evaluates. It is used by
// built-ins (oc.select, oc.deprecated) whose path argument is supplied as
// a plain string rather than parsed from the surrounding interpolation,
// so it rejects any segment that embeds a nested interpolation: resolving
// one would require the evaluator that built-ins run underneath, which
// this package cannot depend on without a cycle.
func navigateLiteral(anchor node.Node, path string) (node.Node, error) {
	text, err := grammar.ParseText("${" + path + "}")
	if err != nil {
		return nil, fmt.Errorf("resolver: invalid path %q: %w", path, err)
	}

	if len(text.Fragments) != 1 || text.Fragments[0].Interp == nil || text.Fragments[0].Interp.Ref == nil {
		return nil, fmt.Errorf("resolver: %q is not a plain node-reference path", path)
	}

	ref := text.Fragments[0].Interp.Ref

	cur := anchor
	for i := 0; i < ref.NumDots; i++ {
		if cur == nil {
			return nil, fmt.Errorf("resolver: path %q ascends past the root", path)
		}

		cur = cur.Parent()
	}

	for _, seg := range ref.Segments {
		if len(seg.Fragments) != 1 || seg.Fragments[0].Kind != grammar.FragLiteral {
			return nil, fmt.Errorf("resolver: dynamic segments are not supported in this path argument")
		}

		key := seg.Fragments[0].Literal

		switch c := cur.(type) {
		case *node.MapContainer:
			child, ok := c.Get(node.StringKey(key))
			if !ok {
				return nil, nil
			}

			cur = child
		case *node.ListContainer:
			idx, err := strconv.Atoi(key)
			if err != nil {
				return nil, fmt.Errorf("resolver: %q is not a valid list index", key)
			}

			child, ok := c.At(idx)
			if !ok {
				return nil, nil
			}

			cur = child
		default:
			return nil, nil
		}
	}

	return cur, nil
}
