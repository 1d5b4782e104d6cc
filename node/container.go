package node

import "fmt"

// ElementHint constrains the declared kind (and, for KindEnum, the member
// set) applied to children added to a container without their own explicit
// schema.
type ElementHint struct {
	Kind        Kind
	EnumMembers []EnumValue
}

// MapContainer is an ordered, string/int/bool/float/bytes/enum-keyed
// mapping to child Nodes.
type MapContainer struct {
	base
	flags       FlagSet
	order       []MapKey
	children    map[string]Node
	elementHint *ElementHint
	keyKind     *KeyKind
	// SchemaRef holds an opaque reference to the structured-schema binding
	// that produced this container, set by package schema. nil means the
	// container is not schema-bound ("open").
	SchemaRef any
}

// NewMapContainer creates an empty, detached MapContainer.
func NewMapContainer(flags FlagSet) *MapContainer {
	return &MapContainer{flags: flags, children: make(map[string]Node)}
}

func (m *MapContainer) Flags() *FlagSet { return &m.flags }

func (m *MapContainer) Len() int { return len(m.order) }

// Keys returns the container's keys in insertion order.
func (m *MapContainer) Keys() []MapKey {
	out := make([]MapKey, len(m.order))
	copy(out, m.order)

	return out
}

// ElementHint returns the declared kind applied to children inserted
// without their own schema, or nil if unconstrained.
func (m *MapContainer) ElementHint() *ElementHint { return m.elementHint }

// SetElementHint sets the element-type hint for this container.
func (m *MapContainer) SetElementHint(h *ElementHint) { m.elementHint = h }

// KeyKind returns the uniform key kind required by this container, or nil
// if any key kind is accepted.
func (m *MapContainer) KeyKind() *KeyKind { return m.keyKind }

// SetKeyKind constrains this container to a single key kind.
func (m *MapContainer) SetKeyKind(k KeyKind) { m.keyKind = &k }

// Get returns the child at k, if present.
func (m *MapContainer) Get(k MapKey) (Node, bool) {
	n, ok := m.children[k.index()]

	return n, ok
}

// Has reports whether k is present.
func (m *MapContainer) Has(k MapKey) bool {
	_, ok := m.children[k.index()]

	return ok
}

// ErrStructViolation indicates an attempt to add a key to a struct-mode
// container that would not expose it. A key of the wrong kind is reported
// as ErrCoercion instead.
var ErrStructViolation = fmt.Errorf("key not in struct")

// Insert adds or replaces the child at k. If this container is struct-mode
// and k is not already present, Insert fails; use InsertForce to bypass
// that check. The previous parent (if any) of child is detached first.
func (m *MapContainer) Insert(k MapKey, child Node) error {
	if IsStruct(m) && !m.Has(k) {
		return fmt.Errorf("%w: %q", ErrStructViolation, k.String())
	}

	return m.insert(k, child)
}

// InsertForce adds or replaces the child at k, bypassing struct-mode.
func (m *MapContainer) InsertForce(k MapKey, child Node) error {
	return m.insert(k, child)
}

func (m *MapContainer) insert(k MapKey, child Node) error {
	if m.keyKind != nil && *m.keyKind != k.Kind {
		return fmt.Errorf("%w: key %q has kind %d, container requires %d", ErrCoercion, k.String(), k.Kind, *m.keyKind)
	}

	idx := k.index()
	if _, exists := m.children[idx]; !exists {
		m.order = append(m.order, k)
	}

	if p := child.Parent(); p != nil {
		Detach(child)
	}

	child.setParent(m, k)
	m.children[idx] = child

	return nil
}

// Delete removes the child at k, if present, returning whether it existed.
func (m *MapContainer) Delete(k MapKey) bool {
	idx := k.index()

	child, ok := m.children[idx]
	if !ok {
		return false
	}

	Detach(child)
	delete(m.children, idx)

	for i, ok := range m.order {
		if ok.index() == idx {
			m.order = append(m.order[:i], m.order[i+1:]...)

			break
		}
	}

	return true
}

// Clone returns a deep, detached copy of this container and its subtree.
// SchemaRef is copied by reference (the binding itself is not cloned).
func (m *MapContainer) Clone() Node {
	out := &MapContainer{
		flags:     m.flags,
		children:  make(map[string]Node, len(m.children)),
		order:     append([]MapKey(nil), m.order...),
		SchemaRef: m.SchemaRef,
	}
	if m.elementHint != nil {
		h := *m.elementHint
		out.elementHint = &h
	}

	if m.keyKind != nil {
		k := *m.keyKind
		out.keyKind = &k
	}

	for idx, child := range m.children {
		c := child.Clone()
		c.setParent(out, child.KeyInParent())
		out.children[idx] = c
	}

	return out
}

// ListContainer is an ordered sequence of child Nodes.
type ListContainer struct {
	base
	flags       FlagSet
	items       []Node
	elementHint *ElementHint
}

// NewListContainer creates an empty, detached ListContainer.
func NewListContainer(flags FlagSet) *ListContainer {
	return &ListContainer{flags: flags}
}

func (l *ListContainer) Flags() *FlagSet { return &l.flags }

func (l *ListContainer) Len() int { return len(l.items) }

// ElementHint returns the declared kind applied to appended children, or
// nil if unconstrained.
func (l *ListContainer) ElementHint() *ElementHint { return l.elementHint }

// SetElementHint sets the element-type hint for this container.
func (l *ListContainer) SetElementHint(h *ElementHint) { l.elementHint = h }

// At returns the child at index i.
func (l *ListContainer) At(i int) (Node, bool) {
	if i < 0 || i >= len(l.items) {
		return nil, false
	}

	return l.items[i], true
}

// Items returns the children in order. The returned slice must not be
// mutated by the caller.
func (l *ListContainer) Items() []Node { return l.items }

// Append adds child to the end of the list.
func (l *ListContainer) Append(child Node) {
	if child.Parent() != nil {
		Detach(child)
	}

	child.setParent(l, IndexKey(len(l.items)))
	l.items = append(l.items, child)
}

// ErrIndexOutOfRange indicates an out-of-bounds list access.
var ErrIndexOutOfRange = fmt.Errorf("index out of range")

// Set replaces the child at index i.
func (l *ListContainer) Set(i int, child Node) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	if child.Parent() != nil {
		Detach(child)
	}

	child.setParent(l, IndexKey(i))
	l.items[i] = child

	return nil
}

// Delete removes the child at index i, shifting subsequent indices down.
func (l *ListContainer) Delete(i int) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	Detach(l.items[i])
	l.items = append(l.items[:i], l.items[i+1:]...)

	for j := i; j < len(l.items); j++ {
		l.items[j].setParent(l, IndexKey(j))
	}

	return nil
}

// Clone returns a deep, detached copy of this container and its subtree.
func (l *ListContainer) Clone() Node {
	out := &ListContainer{flags: l.flags, items: make([]Node, len(l.items))}
	if l.elementHint != nil {
		h := *l.elementHint
		out.elementHint = &h
	}

	for i, child := range l.items {
		c := child.Clone()
		c.setParent(out, IndexKey(i))
		out.items[i] = c
	}

	return out
}

// DeepEqual reports structural value equality between two nodes: scalars
// compare by Equal, containers compare key/index-wise.
func DeepEqual(a, b Node) bool {
	switch av := a.(type) {
	case *Scalar:
		bv, ok := b.(*Scalar)

		return ok && Equal(av.Value(), bv.Value())
	case *MapContainer:
		bv, ok := b.(*MapContainer)
		if !ok || av.Len() != bv.Len() {
			return false
		}

		for _, k := range av.Keys() {
			ac, _ := av.Get(k)

			bc, ok := bv.Get(k)
			if !ok || !DeepEqual(ac, bc) {
				return false
			}
		}

		return true
	case *ListContainer:
		bv, ok := b.(*ListContainer)
		if !ok || av.Len() != bv.Len() {
			return false
		}

		for i, ac := range av.Items() {
			if !DeepEqual(ac, bv.Items()[i]) {
				return false
			}
		}

		return true
	default:
		return false
	}
}
