package node

// FlagSet holds the read-only and struct flags carried by every container.
// Each flag is three-valued: True, False, or Inherit (walk to the nearest
// ancestor with a definite value; the root defaults to False for both).
type FlagSet struct {
	ReadOnly Tri
	Struct   Tri
}

// Container is the subset of Node common to MapContainer and ListContainer:
// flag storage and child enumeration by position.
type Container interface {
	Node
	Flags() *FlagSet
	Len() int
}

// IsReadOnly reports whether n's subtree is read-only: the nearest
// container (n itself, if n is one) has ReadOnly=True, walking ancestors
// through Inherit.
func IsReadOnly(n Node) bool {
	c := nearestContainer(n)
	if c == nil {
		return false
	}

	return c.Flags().ReadOnly.Resolve(c, func(a Node) Tri {
		ac, ok := a.(Container)
		if !ok {
			return Inherit
		}

		return ac.Flags().ReadOnly
	})
}

// IsStruct reports whether n's subtree is struct-mode: the nearest
// container (n itself, if n is one) has Struct=True, walking ancestors
// through Inherit.
func IsStruct(n Node) bool {
	c := nearestContainer(n)
	if c == nil {
		return false
	}

	return c.Flags().Struct.Resolve(c, func(a Node) Tri {
		ac, ok := a.(Container)
		if !ok {
			return Inherit
		}

		return ac.Flags().Struct
	})
}

func nearestContainer(n Node) Container {
	for cur := n; cur != nil; cur = cur.Parent() {
		if c, ok := cur.(Container); ok {
			return c
		}
	}

	return nil
}
