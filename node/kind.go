// Package node implements the configuration value/container tree: scalar
// nodes, map containers, list containers, and the type, optionality, and
// flag metadata attached to each.
package node

import "fmt"

// Kind identifies the declared type of a scalar node, or "any" when the
// node accepts any scalar kind unchanged.
type Kind int

const (
	// KindAny accepts any scalar kind unchanged.
	KindAny Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindEnum
	// KindInterpolation marks a scalar whose raw value is an unresolved
	// interpolation-bearing string; it has no declared value kind of its
	// own until resolved.
	KindInterpolation
	// KindPath marks a scalar holding a filesystem path string.
	KindPath
	// KindMap and KindList identify container nodes rather than scalars;
	// they appear in error messages describing a node's "object kind".
	KindMap
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindEnum:
		return "enum"
	case KindInterpolation:
		return "interpolation"
	case KindPath:
		return "path"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Tri is a three-valued flag: true, false, or inherited from the nearest
// ancestor with a definite value. The root defaults to false when no
// ancestor resolves it.
type Tri int

const (
	// Inherit means "ask the parent".
	Inherit Tri = iota
	True
	False
)

// Resolve walks up from this node asking ancestors for a definite value
// when Tri is Inherit. get(n) must return the Tri flag value stored
// directly on n (not resolved).
func (t Tri) Resolve(self Node, get func(Node) Tri) bool {
	cur := self

	v := t
	for v == Inherit && cur != nil {
		cur = cur.Parent()
		if cur == nil {
			break
		}

		v = get(cur)
	}

	return v == True
}
