package schemagen

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/layeredconf/oconf"
	"github.com/layeredconf/oconf/node"
	"github.com/layeredconf/oconf/schema"
)

// JSON Schema type constants, matching the teacher's magicschema
// vocabulary.
const (
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
)

// Generator produces JSON Schema from one or more oconf.Config trees,
// adapted from magicschema.Generator (which walked YAML ASTs instead of
// node.Node trees).
type Generator struct {
	title       string
	description string
	id          string
	strict      bool
}

// Option configures a Generator.
type Option func(*Generator)

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// WithTitle sets the schema title.
func WithTitle(title string) Option { return func(g *Generator) { g.title = title } }

// WithDescription sets the schema description.
func WithDescription(desc string) Option { return func(g *Generator) { g.description = desc } }

// WithID sets the schema $id.
func WithID(id string) Option { return func(g *Generator) { g.id = id } }

// WithStrict sets additionalProperties to false on objects not backed by
// a structured-schema binding (a binding's own additionalProperties is
// already false, per schema.Binding.JSONSchema).
func WithStrict(strict bool) Option { return func(g *Generator) { g.strict = strict } }

// Generate produces a JSON Schema from one or more config trees, merging
// them with union semantics when more than one is given (§"Supplemented
// features" in SPEC_FULL.md).
func (g *Generator) Generate(cfgs ...*oconf.Config) (*jsonschema.Schema, error) {
	var result *jsonschema.Schema

	if len(cfgs) == 0 {
		result = &jsonschema.Schema{}
	} else {
		schemas := make([]*jsonschema.Schema, 0, len(cfgs))
		for _, cfg := range cfgs {
			s, err := g.walk(cfg.Root())
			if err != nil {
				return nil, err
			}

			schemas = append(schemas, s)
		}

		result = schemas[0]
		for i := 1; i < len(schemas); i++ {
			result = mergeSchemas(result, schemas[i])
		}
	}

	result.Schema = "http://json-schema.org/draft-07/schema#"

	if g.title != "" {
		result.Title = g.title
	}

	if g.description != "" {
		result.Description = g.description
	}

	if g.id != "" {
		result.ID = g.id
	}

	if (result.Type == typeObject || result.Properties != nil) && result.AdditionalProperties == nil {
		if g.strict {
			result.AdditionalProperties = FalseSchema()
		} else {
			result.AdditionalProperties = TrueSchema()
		}
	}

	return result, nil
}

// walk recursively builds a schema from a node.Node, mirroring
// magicschema.Generator.walkNode's dispatch shape.
func (g *Generator) walk(n node.Node) (*jsonschema.Schema, error) {
	switch t := n.(type) {
	case *node.MapContainer:
		return g.walkMap(t)
	case *node.ListContainer:
		return g.walkList(t)
	case *node.Scalar:
		return g.walkScalar(t), nil
	default:
		return &jsonschema.Schema{}, nil
	}
}

func (g *Generator) walkMap(m *node.MapContainer) (*jsonschema.Schema, error) {
	if b, ok := m.SchemaRef.(*schema.Binding); ok {
		return b.JSONSchema(), nil
	}

	s := &jsonschema.Schema{
		Type:       typeObject,
		Properties: make(map[string]*jsonschema.Schema),
	}

	if g.strict {
		s.AdditionalProperties = FalseSchema()
	} else {
		s.AdditionalProperties = TrueSchema()
	}

	var order []string

	for _, k := range m.Keys() {
		child, _ := m.Get(k)

		childSchema, err := g.walk(child)
		if err != nil {
			return nil, err
		}

		name := k.String()
		s.Properties[name] = childSchema
		order = append(order, name)
	}

	s.PropertyOrder = order

	if len(s.Properties) == 0 {
		s.Properties = nil
		s.PropertyOrder = nil
	}

	return s, nil
}

func (g *Generator) walkList(l *node.ListContainer) (*jsonschema.Schema, error) {
	items, err := g.inferItems(l)
	if err != nil {
		return nil, err
	}

	return &jsonschema.Schema{Type: typeArray, Items: items}, nil
}

func (g *Generator) inferItems(l *node.ListContainer) (*jsonschema.Schema, error) {
	if l.Len() == 0 {
		return nil, nil
	}

	var result *jsonschema.Schema

	for _, item := range l.Items() {
		s, err := g.walk(item)
		if err != nil {
			return nil, err
		}

		if result == nil {
			result = s

			continue
		}

		result = mergeSchemas(result, s)
	}

	return result, nil
}

// walkScalar infers a schema from a scalar node: the declared kind when
// known, falling back to the runtime value's shape for KindAny/unresolved
// fields (the magicschema "structural fallback" principle carried over
// from YAML-value inference to node-value inference).
func (g *Generator) walkScalar(s *node.Scalar) *jsonschema.Schema {
	if t := kindToJSONType(s.DeclaredKind(), s.EnumMembers()); t != nil {
		return t
	}

	return valueToJSONType(s.Value())
}

func kindToJSONType(kind node.Kind, members []node.EnumValue) *jsonschema.Schema {
	switch kind {
	case node.KindBool:
		return &jsonschema.Schema{Type: typeBoolean}
	case node.KindInt:
		return &jsonschema.Schema{Type: typeInteger}
	case node.KindFloat:
		return &jsonschema.Schema{Type: typeNumber}
	case node.KindString, node.KindPath, node.KindBytes:
		return &jsonschema.Schema{Type: typeString}
	case node.KindEnum:
		enum := make([]any, 0, len(members))
		for _, m := range members {
			enum = append(enum, m.Name)
		}

		return &jsonschema.Schema{Type: typeString, Enum: enum}
	default:
		return nil
	}
}

func valueToJSONType(v any) *jsonschema.Schema {
	switch t := v.(type) {
	case bool:
		return &jsonschema.Schema{Type: typeBoolean}
	case int64:
		return &jsonschema.Schema{Type: typeInteger}
	case float64:
		return &jsonschema.Schema{Type: typeNumber}
	case string, node.Interpolation:
		return &jsonschema.Schema{Type: typeString}
	case []byte:
		return &jsonschema.Schema{Type: typeString}
	case node.EnumValue:
		return &jsonschema.Schema{Type: typeString, Enum: []any{t.Name}}
	default:
		// nil (null) and Missing: maximally permissive, no type constraint.
		return &jsonschema.Schema{}
	}
}
