package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/layeredconf/oconf/node"
)

// Enumerable is implemented by a named type used as an enum-kinded field
// or element: its zero value reports the full set of valid members. A
// struct field of an Enumerable type is bound as node.KindEnum instead of
// whatever its underlying Go kind would otherwise imply.
type Enumerable interface {
	OconfEnumMembers() []node.EnumValue
}

// FromStruct derives a Schema from a Go struct value (or pointer to one)
// via reflection, the §6.2 "declared schema type, or an instance of one"
// construction input. Exported fields are bound in struct declaration
// order under the key named by their `oconf:"..."` tag (or, absent a tag,
// the field name unchanged); a tag of "-" skips the field. The struct's
// field values double as each field's default (§4.7), matching the source
// ecosystem's convention of a schema being a record instance whose fields
// already hold the defaults; write `oconf:"name,required"` to force a
// field to MISSING regardless of its zero value.
//
// Supported field shapes: bool/int*/uint*/float*/string/[]byte scalars, a
// pointer to one of those (optional), a nested struct or pointer-to-struct
// (a Nested sub-schema), a slice (a List[T] Element field), a map[string]T
// (a Dict[string,T] Element field), and any type implementing Enumerable.
func FromStruct(v any) (*Schema, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv = reflect.New(rv.Type().Elem()).Elem()

			break
		}

		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: FromStruct requires a struct or pointer to struct, got %s", ErrSchema, rv.Kind())
	}

	return structSchema(rv)
}

func structSchema(rv reflect.Value) (*Schema, error) {
	rt := rv.Type()
	s := &Schema{Name: rt.Name()}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		name, opts, skip := parseTag(sf)
		if skip {
			continue
		}

		f, err := fieldFromStructField(name, opts, rv.Field(i))
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", sf.Name, err)
		}

		s.Fields = append(s.Fields, f)
	}

	return s, nil
}

func parseTag(sf reflect.StructField) (name string, opts []string, skip bool) {
	tag, ok := sf.Tag.Lookup("oconf")
	if !ok {
		return sf.Name, nil, false
	}

	parts := strings.Split(tag, ",")
	name = parts[0]

	if name == "-" {
		return "", nil, true
	}

	if name == "" {
		name = sf.Name
	}

	return name, parts[1:], false
}

func hasOpt(opts []string, want string) bool {
	for _, o := range opts {
		if o == want {
			return true
		}
	}

	return false
}

func fieldFromStructField(name string, opts []string, fv reflect.Value) (Field, error) {
	required := hasOpt(opts, "required")
	optional := hasOpt(opts, "optional")

	ft := fv.Type()

	if ft.Kind() == reflect.Pointer {
		optional = true

		if fv.IsNil() {
			fv = reflect.New(ft.Elem()).Elem()
		} else {
			fv = fv.Elem()
		}

		ft = fv.Type()
	}

	if en, ok := asEnumerable(fv); ok {
		f := Field{Name: name, Kind: node.KindEnum, EnumMembers: en.OconfEnumMembers(), Optional: optional, Required: required}
		if !required {
			f.HasDefault = true
			f.Default = fv.Interface()
		}

		return f, nil
	}

	switch ft.Kind() {
	case reflect.Struct:
		nested, err := structSchema(fv)
		if err != nil {
			return Field{}, err
		}

		return Field{Name: name, Nested: nested, Optional: optional, Required: required}, nil
	case reflect.Slice:
		if ft.Elem().Kind() == reflect.Uint8 {
			return scalarField(name, node.KindBytes, optional, required, fv)
		}

		elem, err := elementFromType(ft.Elem())
		if err != nil {
			return Field{}, err
		}

		return Field{Name: name, Element: elem, List: true, Optional: optional, Required: required}, nil
	case reflect.Map:
		if ft.Key().Kind() != reflect.String {
			return Field{}, fmt.Errorf("%w: map fields must be keyed by string, got %s", ErrSchema, ft.Key())
		}

		elem, err := elementFromType(ft.Elem())
		if err != nil {
			return Field{}, err
		}

		return Field{Name: name, Element: elem, Optional: optional, Required: required}, nil
	case reflect.Bool:
		return scalarField(name, node.KindBool, optional, required, fv)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return scalarField(name, node.KindInt, optional, required, fv)
	case reflect.Float32, reflect.Float64:
		return scalarField(name, node.KindFloat, optional, required, fv)
	case reflect.String:
		return scalarField(name, node.KindString, optional, required, fv)
	default:
		return Field{}, fmt.Errorf("%w: unsupported field kind %s", ErrSchema, ft.Kind())
	}
}

func scalarField(name string, kind node.Kind, optional, required bool, fv reflect.Value) (Field, error) {
	f := Field{Name: name, Kind: kind, Optional: optional, Required: required}
	if !required {
		f.HasDefault = true
		f.Default = normalizeScalar(kind, fv)
	}

	return f, nil
}

// normalizeScalar coerces a reflected scalar field value to the Go type
// node.Scalar.Set expects (int64 for ints, float64 for floats).
func normalizeScalar(kind node.Kind, fv reflect.Value) any {
	switch kind {
	case node.KindInt:
		if fv.Kind() >= reflect.Uint && fv.Kind() <= reflect.Uint64 {
			return int64(fv.Uint())
		}

		return fv.Int()
	case node.KindFloat:
		return fv.Float()
	default:
		return fv.Interface()
	}
}

func elementFromType(et reflect.Type) (*Element, error) {
	if en, ok := asEnumerable(reflect.New(et).Elem()); ok {
		return &Element{Kind: node.KindEnum, EnumMembers: en.OconfEnumMembers()}, nil
	}

	if et.Kind() == reflect.Struct {
		nested, err := structSchema(reflect.New(et).Elem())
		if err != nil {
			return nil, err
		}

		return &Element{Nested: nested}, nil
	}

	switch et.Kind() {
	case reflect.Bool:
		return &Element{Kind: node.KindBool}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Element{Kind: node.KindInt}, nil
	case reflect.Float32, reflect.Float64:
		return &Element{Kind: node.KindFloat}, nil
	case reflect.String:
		return &Element{Kind: node.KindString}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported element kind %s", ErrSchema, et.Kind())
	}
}

func asEnumerable(fv reflect.Value) (Enumerable, bool) {
	if !fv.IsValid() || !fv.CanInterface() {
		return nil, false
	}

	en, ok := fv.Interface().(Enumerable)

	return en, ok
}
