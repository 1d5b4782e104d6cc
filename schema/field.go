package schema

import "github.com/layeredconf/oconf/node"

// Element describes the declared kind applied to the children of a
// container-typed field (a Dict[K,V]-shaped map or a List[T]-shaped
// list), mirroring node.ElementHint one level up at the schema-field
// level so reflection-derived and hand-declared schemas share one shape.
type Element struct {
	// Kind is the element's declared scalar kind. Zero value (KindAny)
	// means unconstrained.
	Kind node.Kind
	// EnumMembers constrains Kind == node.KindEnum elements.
	EnumMembers []node.EnumValue
	// Nested, when non-nil, means each element is itself a structured
	// schema rather than a plain scalar (a List[SomeRecord] field).
	Nested *Schema
}

// Field is one named field of a structured Schema (§4.7): a name, a
// declared type hint, optionality, a default (or default-factory for
// non-copyable defaults), and — for container or nested-schema fields —
// the element/nested shape those require.
type Field struct {
	// Name is the field's key in the bound map container.
	Name string
	// Kind is the field's declared scalar kind. Ignored when Nested,
	// Element, or Union is set (those describe container/union/record
	// shapes that have no single scalar Kind of their own).
	Kind node.Kind
	// EnumMembers constrains Kind == node.KindEnum fields.
	EnumMembers []node.EnumValue
	// Optional permits an explicit null value (§4.1's "optional"
	// invariant on the bound Scalar).
	Optional bool
	// Required forces the field's initial value to MISSING regardless of
	// Default/DefaultFactory, the "absent-mandatory" sentinel of §3.
	Required bool
	// HasDefault reports whether Default (or DefaultFactory) should seed
	// the field's initial value when Required is false.
	HasDefault bool
	// Default is the field's literal default value, used when
	// DefaultFactory is nil.
	Default any
	// DefaultFactory produces a fresh default each time the schema is
	// bound, for defaults that must not be shared across instances (a
	// slice, a map, or a fresh timestamp) — §4.7's "default-factory for
	// non-copyable defaults".
	DefaultFactory func() any
	// Element describes a Dict[K,V]/List[T]-shaped field: when non-nil,
	// Kind/EnumMembers/Union are ignored and the bound node is a
	// container (a MapContainer if List is false, else a ListContainer)
	// carrying this element hint. Unlike a Nested field, an Element
	// container is "open": it is never struct-locked (§4.7 "recursive
	// but not recursive-struct").
	Element *Element
	// List marks an Element field as a List[T] rather than a Dict[K,V];
	// ignored unless Element is set.
	List bool
	// Nested, when non-nil, makes this field itself a bound structured
	// sub-record rather than a scalar or open container.
	Nested *Schema
	// Union, when non-set (nil), makes this an ordinary single-kind
	// field. When set, the field accepts a value matching exactly one
	// arm (no cross-arm coercion, §4.7); if any arm is itself Optional
	// the whole union accepts null.
	Union []Field
}

// IsUnion reports whether f is a union-typed field.
func (f Field) IsUnion() bool { return len(f.Union) > 0 }

// UnionAcceptsNull reports whether any arm of a union field is itself
// null-permitting, which per §4.7 makes the whole union optional.
func (f Field) UnionAcceptsNull() bool {
	for _, arm := range f.Union {
		if arm.Optional {
			return true
		}
	}

	return false
}

// Schema is an ordered, named set of Field declarations — a structured
// record type as described by §4.7.
type Schema struct {
	// Name identifies the record type, used in error messages and as the
	// JSON Schema title by default.
	Name string
	// Fields are the record's fields, in declaration order; order is
	// preserved in the bound container per §3's "insertion order is part
	// of the value".
	Fields []Field
}

// NewSchema builds a Schema from an ordered field list.
func NewSchema(name string, fields ...Field) *Schema {
	return &Schema{Name: name, Fields: fields}
}

// FieldByName returns the field named n, if present.
func (s *Schema) FieldByName(n string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == n {
			return f, true
		}
	}

	return Field{}, false
}
