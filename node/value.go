package node

import (
	"fmt"
	"math"
	"strconv"
)

// Missing is the sentinel value of a scalar that has not yet been given a
// mandatory value. It compares unequal to null and to every other value.
type Missing struct{}

// String implements [fmt.Stringer].
func (Missing) String() string { return "???" }

// IsMissing reports whether v is the [Missing] sentinel.
func IsMissing(v any) bool {
	_, ok := v.(Missing)

	return ok
}

// EnumValue is an enumeration member, identified by name and ordinal.
type EnumValue struct {
	// Name is the member's simple name (e.g. "RED").
	Name string
	// Qualified is the member's fully-qualified name (e.g. "Color.RED"),
	// empty if the enum type has no qualifying prefix.
	Qualified string
	// Ordinal is the member's zero-based position in its enum type.
	Ordinal int
}

func (e EnumValue) String() string { return e.Name }

// Interpolation is the raw, unresolved text of a scalar assigned an
// interpolation-bearing string. Its syntax is validated on assignment; its
// semantics are resolved only on access (see the interp package).
type Interpolation struct {
	Raw string
}

func (i Interpolation) String() string { return i.Raw }

// Equal reports value equality between two scalar runtime values, per the
// rules used by list EXTEND-UNIQUE merges and the "MISSING never overwrites"
// merge rule. Missing never equals anything, including another Missing.
func Equal(a, b any) bool {
	if _, ok := a.(Missing); ok {
		return false
	}

	if _, ok := b.(Missing); ok {
		return false
	}

	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case EnumValue:
		bv, ok := b.(EnumValue)

		return ok && av.Name == bv.Name
	case Interpolation:
		bv, ok := b.(Interpolation)

		return ok && av.Raw == bv.Raw
	case []byte:
		bv, ok := b.([]byte)
		if !ok || len(av) != len(bv) {
			return false
		}

		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}

		return true
	default:
		return a == b
	}
}

// Stringify renders a scalar runtime value as text, using the
// language-neutral representation required by string coercion (§4.1).
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case Missing:
		return "???"
	case bool:
		if t {
			return "true"
		}

		return "false"
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return stringifyFloat(t)
	case string:
		return t
	case []byte:
		return string(t)
	case EnumValue:
		return t.Name
	case Interpolation:
		return t.Raw
	default:
		return fmt.Sprintf("%v", t)
	}
}

func stringifyFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

// LooksNumericOrBool reports whether s would re-parse as an int, float, or
// bool literal, meaning it must be quoted to preserve string intent on
// serialization (§6.1).
func LooksNumericOrBool(s string) bool {
	if s == "" {
		return false
	}

	if _, err := Coerce(KindBool, s); err == nil {
		return true
	}

	if _, err := Coerce(KindInt, s); err == nil {
		return true
	}

	if _, err := Coerce(KindFloat, s); err == nil {
		return true
	}

	return false
}
