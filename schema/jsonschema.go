package schema

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/layeredconf/oconf/node"
)

// JSON Schema type name constants, matching the teacher's magicschema
// package vocabulary.
const (
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
)

// JSONSchema projects b's Schema to a Draft-7 *jsonschema.Schema (§3
// domain-stack wiring: "schema package uses jsonschema-go as the wire
// format for schema.Binding.JSONSchema()"). Unlike package schemagen's
// best-effort structural inference over a live, possibly unstructured
// Config tree, this is authoritative: every field's declared kind,
// optionality, and default are known statically from the Schema.
func (b *Binding) JSONSchema() *jsonschema.Schema {
	s := fieldsToObjectSchema(b.Schema.Fields)
	s.Schema = "http://json-schema.org/draft-07/schema#"
	s.Title = b.Schema.Name

	return s
}

func fieldsToObjectSchema(fields []Field) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:                 typeObject,
		Properties:           make(map[string]*jsonschema.Schema, len(fields)),
		AdditionalProperties: falseSchema(),
	}

	for _, f := range fields {
		s.Properties[f.Name] = fieldSchema(f)
		s.PropertyOrder = append(s.PropertyOrder, f.Name)

		if f.Required {
			s.Required = append(s.Required, f.Name)
		}
	}

	return s
}

func fieldSchema(f Field) *jsonschema.Schema {
	switch {
	case f.Nested != nil:
		child := fieldsToObjectSchema(f.Nested.Fields)
		child.Title = f.Nested.Name

		return child
	case f.Element != nil:
		return elementFieldSchema(f)
	case f.IsUnion():
		return unionFieldSchema(f)
	default:
		return kindSchema(f.Kind, f.EnumMembers, f.HasDefault, f.Default)
	}
}

func elementFieldSchema(f Field) *jsonschema.Schema {
	var elem *jsonschema.Schema

	switch {
	case f.Element.Nested != nil:
		elem = fieldsToObjectSchema(f.Element.Nested.Fields)
		elem.Title = f.Element.Nested.Name
	default:
		elem = kindSchema(f.Element.Kind, f.Element.EnumMembers, false, nil)
	}

	if f.List {
		return &jsonschema.Schema{Type: typeArray, Items: elem}
	}

	return &jsonschema.Schema{Type: typeObject, AdditionalProperties: elem}
}

func unionFieldSchema(f Field) *jsonschema.Schema {
	arms := make([]*jsonschema.Schema, 0, len(f.Union))
	for _, arm := range f.Union {
		arms = append(arms, kindSchema(arm.Kind, arm.EnumMembers, false, nil))
	}

	return &jsonschema.Schema{OneOf: arms}
}

func kindSchema(kind node.Kind, members []node.EnumValue, hasDefault bool, def any) *jsonschema.Schema {
	s := &jsonschema.Schema{}

	switch kind {
	case node.KindBool:
		s.Type = typeBoolean
	case node.KindInt:
		s.Type = typeInteger
	case node.KindFloat:
		s.Type = typeNumber
	case node.KindString, node.KindPath:
		s.Type = typeString
	case node.KindBytes:
		s.Type = typeString
	case node.KindEnum:
		s.Type = typeString

		enum := make([]any, 0, len(members))
		for _, m := range members {
			enum = append(enum, m.Name)
		}

		s.Enum = enum
	default:
		// node.KindAny and node.KindInterpolation: no constraint.
	}

	if hasDefault && def != nil {
		if b, err := json.Marshal(def); err == nil {
			s.Default = b
		}
	}

	return s
}

// falseSchema returns a schema that validates nothing, used as the
// "unknown keys rejected" additionalProperties for a struct-bound record
// — the JSON Schema mirror of §3 invariant 3 ("mutation attempts that
// would add or remove fields fail").
func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
