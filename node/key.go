package node

import "strconv"

// KeyKind identifies the runtime type of a map container key.
type KeyKind int

const (
	KeyString KeyKind = iota
	KeyInt
	KeyBool
	KeyFloat
	KeyBytes
	KeyEnum
)

// MapKey is a map container key. Exactly one field is meaningful,
// selected by Kind.
type MapKey struct {
	Kind  KeyKind
	Str   string
	Int   int64
	Bool  bool
	Float float64
	Bytes []byte
	Enum  EnumValue
}

// StringKey builds a string-kinded MapKey, the common case for
// YAML/record-style containers.
func StringKey(s string) MapKey { return MapKey{Kind: KeyString, Str: s} }

// IntKey builds an int-kinded MapKey.
func IntKey(i int64) MapKey { return MapKey{Kind: KeyInt, Int: i} }

// index returns a Go-comparable representation of k suitable for use as a
// map index.
func (k MapKey) index() string {
	switch k.Kind {
	case KeyString:
		return "s:" + k.Str
	case KeyInt:
		return "i:" + strconv.FormatInt(k.Int, 10)
	case KeyBool:
		if k.Bool {
			return "b:true"
		}

		return "b:false"
	case KeyFloat:
		return "f:" + strconv.FormatFloat(k.Float, 'g', -1, 64)
	case KeyBytes:
		return "y:" + string(k.Bytes)
	case KeyEnum:
		return "e:" + k.Enum.Name
	default:
		return ""
	}
}

// String renders the key the way it would appear in a dotted path.
func (k MapKey) String() string {
	switch k.Kind {
	case KeyString:
		return k.Str
	case KeyInt:
		return strconv.FormatInt(k.Int, 10)
	case KeyBool:
		if k.Bool {
			return "true"
		}

		return "false"
	case KeyFloat:
		return strconv.FormatFloat(k.Float, 'g', -1, 64)
	case KeyBytes:
		return string(k.Bytes)
	case KeyEnum:
		return k.Enum.Name
	default:
		return ""
	}
}

// IndexKey is a list container index, used as the Node.KeyInParent() value
// for list children.
type IndexKey int
