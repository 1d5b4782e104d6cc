package node

import "fmt"

// FromNative builds a detached Node tree from a language-native Go value:
// map[string]any, []any, or a scalar (bool, int64/int, float64, string,
// []byte, nil, Missing, Interpolation, EnumValue). Only map[string]any and
// []any become containers; any other value, including other map and slice
// types, is stored unchanged in a KindAny scalar. It is used by schema-free construction paths
// (dot-list assignment, resolver results, §6.2 native-literal creation).
func FromNative(v any) (Node, error) {
	switch t := v.(type) {
	case nil:
		s := NewScalar(KindAny, true)

		return s, s.Set(nil)
	case Missing:
		s := NewScalar(KindAny, false)

		return s, nil
	case map[string]any:
		m := NewMapContainer(FlagSet{})
		for _, k := range sortedKeys(t) {
			child, err := FromNative(t[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}

			if err := m.InsertForce(StringKey(k), child); err != nil {
				return nil, err
			}
		}

		return m, nil
	case []any:
		l := NewListContainer(FlagSet{})
		for _, item := range t {
			child, err := FromNative(item)
			if err != nil {
				return nil, err
			}

			l.Append(child)
		}

		return l, nil
	default:
		s := NewScalar(KindAny, true)

		return s, s.Set(v)
	}
}

// sortedKeys is not a sort: map[string]any in Go has no inherent order, so
// FromNative falls back to whatever Go's map iteration gives it for inputs
// that did not come from an ordered parse (YAML loading builds containers
// directly from the AST instead, preserving document order).
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	return keys
}
