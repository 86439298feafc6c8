// Package scalar is the conversion table between Go host types and tagged
// values: one extract, project and schema-type capability per type.
//
// Lookups resolve in this order:
//  1. codecs registered on the Table
//  2. the Extractable / Projectable / Reflectable interfaces on the type
//  3. built-in codecs for primitives, time, uuid, decimal and netip types
//  4. composites derived from the wrapped type: *T (optional), []T (LIST),
//     map[string]T (MAP)
//  5. named types whose underlying kind is a built-in primitive
package scalar

import (
	"fmt"
	"reflect"

	"rowcodec/expr"
	"rowcodec/value"
)

// Extractor stores a tagged value into dst, an addressable value of the
// host type.
type Extractor interface {
	Extract(v value.Value, dst reflect.Value) error
}

// Projector renders a host value as a row expression.
type Projector interface {
	Project(src reflect.Value) expr.Node
}

// Reflector describes the column type of a host type.
type Reflector interface {
	SchemaType() string
	Nullable() bool
}

// Codec provides all three capabilities.
type Codec interface {
	Extractor
	Projector
	Reflector
}

// ConversionError reports a tagged value that does not fit the expected host type.
type ConversionError struct {
	Expected string
	Actual   value.Value
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("could not convert into type %s: %s", e.Expected, value.Describe(e.Actual))
}

func mismatch(t reflect.Type, v value.Value) error {
	return &ConversionError{Expected: t.String(), Actual: v}
}

// Table holds custom codec registrations on top of the built-in table.
// The zero value and a nil *Table are usable and resolve built-ins only.
type Table struct {
	codecs map[reflect.Type]Codec
}

// NewTable creates a table without custom registrations.
func NewTable() *Table {
	return &Table{codecs: make(map[reflect.Type]Codec)}
}

// Register installs c for typ, taking precedence over every other rule.
func (t *Table) Register(typ reflect.Type, c Codec) {
	if t.codecs == nil {
		t.codecs = make(map[reflect.Type]Codec)
	}

	t.codecs[typ] = c
}

// Register installs c for T.
func Register[T any](t *Table, c Codec) {
	t.Register(reflect.TypeFor[T](), c)
}

func (t *Table) registered(typ reflect.Type) (Codec, bool) {
	if t == nil || t.codecs == nil {
		return nil, false
	}

	c, ok := t.codecs[typ]

	return c, ok
}

// Extractor returns the extract capability of typ.
func (t *Table) Extractor(typ reflect.Type) (Extractor, bool) {
	if c, ok := t.registered(typ); ok {
		return c, true
	}

	if e, ok := extractableOf(typ); ok {
		return e, true
	}

	if c, ok := builtin(typ); ok {
		return c, true
	}

	switch typ.Kind() {
	case reflect.Pointer:
		if elem, ok := t.Extractor(typ.Elem()); ok {
			return optional{typ: typ, extract: elem}, true
		}

		return nil, false
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			break
		}

		if elem, ok := t.Extractor(typ.Elem()); ok {
			return list{typ: typ, extract: elem}, true
		}

		return nil, false
	case reflect.Map:
		if typ.Key().Kind() != reflect.String {
			return nil, false
		}

		if elem, ok := t.Extractor(typ.Elem()); ok {
			return mapping{typ: typ, extract: elem}, true
		}

		return nil, false
	}

	if c, ok := underlying(typ); ok {
		return c, true
	}

	return nil, false
}

// Projector returns the project capability of typ.
func (t *Table) Projector(typ reflect.Type) (Projector, bool) {
	if c, ok := t.registered(typ); ok {
		return c, true
	}

	if p, ok := projectableOf(typ); ok {
		return p, true
	}

	if c, ok := builtin(typ); ok {
		return c, true
	}

	switch typ.Kind() {
	case reflect.Pointer:
		if elem, ok := t.Projector(typ.Elem()); ok {
			return optional{typ: typ, project: elem}, true
		}

		return nil, false
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			break
		}

		if elem, ok := t.Projector(typ.Elem()); ok {
			return list{typ: typ, project: elem}, true
		}

		return nil, false
	case reflect.Map:
		if typ.Key().Kind() != reflect.String {
			return nil, false
		}

		if elem, ok := t.Projector(typ.Elem()); ok {
			return mapping{typ: typ, project: elem}, true
		}

		return nil, false
	}

	if c, ok := underlying(typ); ok {
		return c, true
	}

	return nil, false
}

// Reflector returns the reflect capability of typ.
func (t *Table) Reflector(typ reflect.Type) (Reflector, bool) {
	if c, ok := t.registered(typ); ok {
		return c, true
	}

	if r, ok := reflectableOf(typ); ok {
		return r, true
	}

	if c, ok := builtin(typ); ok {
		return c, true
	}

	switch typ.Kind() {
	case reflect.Pointer:
		if elem, ok := t.Reflector(typ.Elem()); ok {
			return optional{typ: typ, describe: elem}, true
		}

		return nil, false
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			break
		}

		if _, ok := t.Reflector(typ.Elem()); ok {
			return list{typ: typ}, true
		}

		return nil, false
	case reflect.Map:
		if typ.Key().Kind() != reflect.String {
			return nil, false
		}

		if _, ok := t.Reflector(typ.Elem()); ok {
			return mapping{typ: typ}, true
		}

		return nil, false
	}

	if c, ok := underlying(typ); ok {
		return c, true
	}

	return nil, false
}

// SchemaTypeWithNullability renders the column clause type, e.g. "INT NOT NULL"
// or "TEXT NULL".
func SchemaTypeWithNullability(r Reflector) string {
	if r.Nullable() {
		return r.SchemaType() + " NULL"
	}

	return r.SchemaType() + " NOT NULL"
}

// Extract converts v into a T using t.
func Extract[T any](t *Table, v value.Value) (T, error) {
	var out T

	typ := reflect.TypeFor[T]()

	e, ok := t.Extractor(typ)
	if !ok {
		return out, fmt.Errorf("type %s has no scalar extract capability", typ)
	}

	err := e.Extract(v, reflect.ValueOf(&out).Elem())

	return out, err
}

// Embed converts x into a row expression using t.
func Embed[T any](t *Table, x T) (expr.Node, error) {
	typ := reflect.TypeFor[T]()

	p, ok := t.Projector(typ)
	if !ok {
		return expr.Node{}, fmt.Errorf("type %s has no scalar project capability", typ)
	}

	return p.Project(reflect.ValueOf(&x).Elem()), nil
}

// SchemaType returns the column type of T with nullability.
func SchemaType[T any](t *Table) (string, error) {
	typ := reflect.TypeFor[T]()

	r, ok := t.Reflector(typ)
	if !ok {
		return "", fmt.Errorf("type %s has no scalar reflect capability", typ)
	}

	return SchemaTypeWithNullability(r), nil
}
