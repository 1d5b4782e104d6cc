package node

// Node is the sum type at the root of every configuration tree: a *Scalar,
// a *MapContainer, or a *ListContainer. The interface is sealed to this
// package (via the unexported setParent method) so that callers outside
// node can rely on an exhaustive type switch over exactly these three
// variants.
type Node interface {
	// Parent returns the owning container, or nil if this node is a root.
	Parent() Node
	// KeyInParent returns this node's key within its parent: a MapKey for
	// a map child, an IndexKey for a list child, or nil for a root node.
	KeyInParent() any
	// Clone returns a deep, detached copy of the subtree rooted here.
	Clone() Node

	setParent(p Node, key any)
}

// base is embedded by every Node implementation to provide the parent
// back-link. The parent->child edge (held by the container's children
// slice/map) is strong; this child->parent edge is non-owning and is the
// only mutable piece of tree topology outside of insert/remove/move.
type base struct {
	parent Node
	key    any
}

func (b *base) Parent() Node { return b.parent }

func (b *base) KeyInParent() any { return b.key }

func (b *base) setParent(p Node, key any) {
	b.parent = p
	b.key = key
}

// Detach removes n's parent back-link without touching the parent's own
// child storage. Containers call this before re-parenting a node they are
// removing, per the "moving a node requires detaching it first" invariant.
func Detach(n Node) {
	n.setParent(nil, nil)
}

// Root walks parent pointers to the root of n's tree.
func Root(n Node) Node {
	for {
		p := n.Parent()
		if p == nil {
			return n
		}

		n = p
	}
}
