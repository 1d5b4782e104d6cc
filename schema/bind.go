package schema

import (
	"fmt"

	"github.com/layeredconf/oconf/node"
)

// Binding is the runtime record of a Schema having been bound to a
// node.MapContainer: it is stashed on that container's SchemaRef (§3's
// "optional backing-schema reference") so later mutation and merge can
// look the field metadata back up, and so schema.Validate can re-walk the
// tree finding every schema-bound container without the caller tracking
// them separately.
type Binding struct {
	Schema *Schema
	// nested holds the child Binding for every field bound as a Nested
	// sub-schema, keyed by field name, so Validate can recurse without
	// re-deriving it from the container's own (possibly since-replaced)
	// children.
	nested map[string]*Binding
}

// FieldByName delegates to the underlying Schema.
func (b *Binding) FieldByName(n string) (Field, bool) { return b.Schema.FieldByName(n) }

// Bind projects s onto a freshly constructed, detached node.MapContainer
// (§4.7): one child node per field, populated from each field's declared
// kind/optionality and seeded with its default (or MISSING when Required
// or no default is declared). The container's Struct flag is set to True,
// so unrecognized keys are rejected per invariant 3 ("a container bound
// to a schema exposes exactly the schema's fields").
func Bind(s *Schema) (*node.MapContainer, *Binding, error) {
	out := node.NewMapContainer(node.FlagSet{Struct: node.True})
	binding := &Binding{Schema: s, nested: map[string]*Binding{}}

	for _, f := range s.Fields {
		child, childBinding, err := bindField(f)
		if err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", f.Name, err)
		}

		if err := out.InsertForce(node.StringKey(f.Name), child); err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", f.Name, err)
		}

		if childBinding != nil {
			binding.nested[f.Name] = childBinding
		}
	}

	out.SchemaRef = binding

	return out, binding, nil
}

// bindField constructs the node for a single Field, plus the nested
// Binding when the field is itself a sub-schema.
func bindField(f Field) (node.Node, *Binding, error) {
	switch {
	case f.Nested != nil:
		// A MapContainer has no null state (§3's Node sum type only gives
		// null to scalars), so a Nested field's Optional flag cannot be
		// represented on the bound node itself; it is preserved on the
		// Field for documentation/JSONSchema purposes only.
		child, childBinding, err := Bind(f.Nested)
		if err != nil {
			return nil, nil, err
		}

		return child, childBinding, nil
	case f.Element != nil:
		return bindElementField(f), nil, nil
	case f.IsUnion():
		s := node.NewScalar(node.KindAny, f.Optional || f.UnionAcceptsNull())

		return s, nil, seedDefault(s, f)
	default:
		var s *node.Scalar
		if f.Kind == node.KindEnum {
			s = node.NewEnumScalar(f.EnumMembers, f.Optional)
		} else {
			s = node.NewScalar(f.Kind, f.Optional)
		}

		return s, nil, seedDefault(s, f)
	}
}

func bindElementField(f Field) node.Node {
	hint := &node.ElementHint{Kind: f.Element.Kind, EnumMembers: f.Element.EnumMembers}

	if f.List {
		l := node.NewListContainer(node.FlagSet{})
		l.SetElementHint(hint)

		return l
	}

	m := node.NewMapContainer(node.FlagSet{Struct: node.False})
	m.SetElementHint(hint)

	return m
}

func seedDefault(s *node.Scalar, f Field) error {
	if f.Required || !f.HasDefault {
		return nil
	}

	if f.DefaultFactory != nil {
		return s.Set(f.DefaultFactory())
	}

	if f.Default == nil {
		if !f.Optional {
			return nil
		}

		return s.Set(nil)
	}

	return s.Set(f.Default)
}
