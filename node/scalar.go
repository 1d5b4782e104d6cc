package node

import "fmt"

// Scalar is a leaf node holding one of: Missing, null, bool, int64,
// float64, string, []byte, EnumValue, Interpolation, or (for KindEnum
// fields specifically) an EnumValue. The zero value is not usable; build
// instances with NewScalar.
type Scalar struct {
	base
	declKind    Kind
	optional    bool
	value       any
	enumMembers []EnumValue
}

// NewScalar creates a detached Scalar of the given declared kind, holding
// Missing.
func NewScalar(kind Kind, optional bool) *Scalar {
	return &Scalar{declKind: kind, optional: optional, value: Missing{}}
}

// NewEnumScalar creates a detached Scalar restricted to the given
// enumeration members.
func NewEnumScalar(members []EnumValue, optional bool) *Scalar {
	return &Scalar{declKind: KindEnum, optional: optional, value: Missing{}, enumMembers: members}
}

// DeclaredKind returns the kind this scalar's value must conform to.
func (s *Scalar) DeclaredKind() Kind { return s.declKind }

// Optional reports whether null is a permitted value.
func (s *Scalar) Optional() bool { return s.optional }

// EnumMembers returns the valid members when DeclaredKind is KindEnum.
func (s *Scalar) EnumMembers() []EnumValue { return s.enumMembers }

// Value returns the raw runtime value: Missing, nil (null), or a coerced
// scalar/Interpolation value.
func (s *Scalar) Value() any { return s.value }

// IsMissing reports whether this scalar currently holds Missing.
func (s *Scalar) IsMissing() bool { return IsMissing(s.value) }

// IsNull reports whether this scalar currently holds null.
func (s *Scalar) IsNull() bool { return s.value == nil }

// IsInterpolation reports whether this scalar currently holds an
// unresolved interpolation expression.
func (s *Scalar) IsInterpolation() bool {
	_, ok := s.value.(Interpolation)

	return ok
}

// Set assigns raw to this scalar, applying the coercion table in §4.1.
// Missing and null (when Optional) bypass coercion. Interpolation values
// are stored as-is; syntax validation happens in the access layer, which
// has the grammar dependency this package does not.
func (s *Scalar) Set(raw any) error {
	switch t := raw.(type) {
	case Missing:
		s.value = t

		return nil
	case nil:
		if !s.optional {
			return fmt.Errorf("%w: node is not optional, cannot assign null", ErrCoercion)
		}

		s.value = nil

		return nil
	case Interpolation:
		s.value = t

		return nil
	}

	if s.declKind == KindEnum {
		v, err := CoerceEnum(s.enumMembers, raw)
		if err != nil {
			return err
		}

		s.value = v

		return nil
	}

	v, err := Coerce(s.declKind, raw)
	if err != nil {
		return err
	}

	s.value = v

	return nil
}

// Clone returns a detached copy of this scalar.
func (s *Scalar) Clone() Node {
	return &Scalar{
		declKind:    s.declKind,
		optional:    s.optional,
		value:       s.value,
		enumMembers: s.enumMembers,
	}
}
