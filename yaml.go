package oconf

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/layeredconf/oconf/node"
	"github.com/layeredconf/oconf/resolver"
)

// ErrYAML reports a malformed document: a parse failure, a duplicate key,
// or an AST shape LoadYAML does not recognize.
var ErrYAML = errors.New("oconf: yaml error")

// missingLiteral is the canonical text a MISSING scalar round-trips as
// (§6.1).
const missingLiteral = "???"

// LoadYAML parses a YAML document into a Config (§6.1/§6.2). An empty
// document yields an empty map container. Duplicate keys within a mapping
// are a load error. The reserved literal "???" loads as MISSING
// regardless of quoting.
func LoadYAML(data []byte) (*Config, error) {
	file, err := parser.ParseBytes(data, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrYAML, err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return wrap(node.NewMapContainer(node.FlagSet{}), resolver.NewWithBuiltins()), nil
	}

	root, err := buildFromAST(file.Docs[0].Body)
	if err != nil {
		return nil, err
	}

	return wrap(root, resolver.NewWithBuiltins()), nil
}

// buildFromAST recursively converts a goccy/go-yaml AST node into a
// node.Node tree, mirroring the way package magicschema's generator walks
// the same AST shapes (MappingNode/SequenceNode/scalar leaves) to produce
// a schema instead of a value tree.
func buildFromAST(n ast.Node) (node.Node, error) {
	n = unwrapYAMLNode(n)
	if n == nil {
		s := node.NewScalar(node.KindAny, true)

		return s, s.Set(nil)
	}

	switch t := n.(type) {
	case *ast.MappingNode:
		return buildMapFromAST(t.Values)
	case *ast.MappingValueNode:
		return buildMapFromAST([]*ast.MappingValueNode{t})
	case *ast.SequenceNode:
		l := node.NewListContainer(node.FlagSet{})

		for _, v := range t.Values {
			child, err := buildFromAST(v)
			if err != nil {
				return nil, err
			}

			l.Append(child)
		}

		return l, nil
	case *ast.NullNode:
		s := node.NewScalar(node.KindAny, true)

		return s, s.Set(nil)
	case *ast.BoolNode:
		return newLoadedScalar(t.Value)
	case *ast.IntegerNode:
		return newLoadedScalar(t.Value)
	case *ast.FloatNode:
		return newLoadedScalar(t.Value)
	case *ast.StringNode:
		return newLoadedScalar(t.Value)
	case *ast.LiteralNode:
		return newLoadedScalar(t.Value.Value)
	default:
		return nil, fmt.Errorf("%w: unsupported YAML node %T", ErrYAML, n)
	}
}

func unwrapYAMLNode(n ast.Node) ast.Node {
	for {
		switch t := n.(type) {
		case *ast.TagNode:
			n = t.Value
		case *ast.AnchorNode:
			n = t.Value
		default:
			return n
		}
	}
}

// newLoadedScalar wraps a decoded YAML scalar value, recognizing the
// MISSING literal.
func newLoadedScalar(v any) (node.Node, error) {
	if s, ok := v.(string); ok && s == missingLiteral {
		return node.NewScalar(node.KindAny, false), nil
	}

	s := node.NewScalar(node.KindAny, true)

	switch t := v.(type) {
	case string:
		lit, err := literalize(t)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrYAML, err)
		}

		if err := s.Set(lit); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrYAML, err)
		}
	case int64, float64, bool:
		if err := s.Set(t); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrYAML, err)
		}
	case int:
		if err := s.Set(int64(t)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrYAML, err)
		}
	case uint64:
		if err := s.Set(int64(t)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrYAML, err)
		}
	default:
		if err := s.Set(fmt.Sprint(t)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrYAML, err)
		}
	}

	return s, nil
}

func buildMapFromAST(values []*ast.MappingValueNode) (node.Node, error) {
	m := node.NewMapContainer(node.FlagSet{})

	seen := make(map[string]bool, len(values))

	for _, mvn := range values {
		key := mvn.Key.String()

		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrYAML, key)
		}

		seen[key] = true

		child, err := buildFromAST(mvn.Value)
		if err != nil {
			return nil, err
		}

		if err := m.InsertForce(node.StringKey(key), child); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// SaveYAML renders cfg's tree to canonical YAML text (§6.1): MISSING
// round-trips as "???", interpolation expressions are written verbatim,
// and any string that would re-parse as int/float/bool is force-quoted.
func (c *Config) SaveYAML() ([]byte, error) {
	v, err := c.toYAMLValue(c.root)
	if err != nil {
		return nil, err
	}

	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrYAML, err)
	}

	return out, nil
}

func (c *Config) toYAMLValue(n node.Node) (any, error) {
	switch t := n.(type) {
	case *node.MapContainer:
		out := make(yaml.MapSlice, 0, t.Len())

		for _, k := range t.Keys() {
			child, _ := t.Get(k)

			v, err := c.toYAMLValue(child)
			if err != nil {
				return nil, err
			}

			out = append(out, yaml.MapItem{Key: k.String(), Value: v})
		}

		return out, nil
	case *node.ListContainer:
		out := make([]any, 0, t.Len())

		for _, child := range t.Items() {
			v, err := c.toYAMLValue(child)
			if err != nil {
				return nil, err
			}

			out = append(out, v)
		}

		return out, nil
	case *node.Scalar:
		return scalarToYAMLValue(t), nil
	default:
		return nil, fmt.Errorf("%w: unknown node kind %T", ErrYAML, n)
	}
}

func scalarToYAMLValue(s *node.Scalar) any {
	if s.IsMissing() {
		return forcedScalar(missingLiteral)
	}

	if s.IsNull() {
		return nil
	}

	if s.IsInterpolation() {
		return forcedScalar(s.Value().(node.Interpolation).Raw)
	}

	v := s.Value()

	if str, ok := v.(string); ok && node.LooksNumericOrBool(str) {
		return forcedScalar(strconv.Quote(str))
	}

	return v
}

// forcedScalar wraps raw, already-final YAML scalar text so the encoder
// emits it byte-for-byte instead of re-quoting or re-interpreting it: the
// MISSING literal, a verbatim interpolation expression, or a
// pre-quoted numeric-looking string.
type forcedScalar string

func (f forcedScalar) MarshalYAML() ([]byte, error) { return []byte(f), nil }
