package scalar

import (
	"reflect"

	"rowcodec/expr"
	"rowcodec/value"
)

// Extractable is implemented by host types that decode themselves from a
// tagged value. It is looked up on the pointer receiver.
type Extractable interface {
	ExtractValue(v value.Value) error
}

// Projectable is implemented by host types that render themselves as a row
// expression.
type Projectable interface {
	ProjectValue() expr.Node
}

// Reflectable is implemented by host types that name their own column type.
// Such columns are always NOT NULL; wrap the type in a pointer for NULL.
type Reflectable interface {
	SchemaType() string
}

var (
	extractableType = reflect.TypeFor[Extractable]()
	projectableType = reflect.TypeFor[Projectable]()
	reflectableType = reflect.TypeFor[Reflectable]()
)

type extractable struct{}

func (extractable) Extract(v value.Value, dst reflect.Value) error {
	ptr := reflect.New(dst.Type())
	if err := ptr.Interface().(Extractable).ExtractValue(v); err != nil {
		return err
	}

	dst.Set(ptr.Elem())

	return nil
}

func extractableOf(typ reflect.Type) (Extractor, bool) {
	if typ.Kind() == reflect.Pointer || !reflect.PointerTo(typ).Implements(extractableType) {
		return nil, false
	}

	return extractable{}, true
}

type projectable struct {
	byPointer bool
}

func (p projectable) Project(src reflect.Value) expr.Node {
	if !p.byPointer {
		return src.Interface().(Projectable).ProjectValue()
	}

	if !src.CanAddr() {
		tmp := reflect.New(src.Type())
		tmp.Elem().Set(src)
		src = tmp.Elem()
	}

	return src.Addr().Interface().(Projectable).ProjectValue()
}

func projectableOf(typ reflect.Type) (Projector, bool) {
	if typ.Kind() == reflect.Pointer {
		return nil, false
	}

	switch {
	case typ.Implements(projectableType):
		return projectable{}, true
	case reflect.PointerTo(typ).Implements(projectableType):
		return projectable{byPointer: true}, true
	default:
		return nil, false
	}
}

type reflectable struct {
	typ reflect.Type
}

func (r reflectable) SchemaType() string {
	return reflect.Zero(r.typ).Interface().(Reflectable).SchemaType()
}

func (reflectable) Nullable() bool { return false }

func reflectableOf(typ reflect.Type) (Reflector, bool) {
	if typ.Kind() == reflect.Pointer || typ.Kind() == reflect.Interface || !typ.Implements(reflectableType) {
		return nil, false
	}

	return reflectable{typ: typ}, true
}

// FuncCodec builds a Codec for T out of plain functions.
type FuncCodec[T any] struct {
	Type string
	From func(value.Value) (T, error)
	To   func(T) expr.Node
}

func (c FuncCodec[T]) Extract(v value.Value, dst reflect.Value) error {
	x, err := c.From(v)
	if err != nil {
		return err
	}

	dst.Set(reflect.ValueOf(&x).Elem())

	return nil
}

func (c FuncCodec[T]) Project(src reflect.Value) expr.Node {
	return c.To(src.Interface().(T))
}

func (c FuncCodec[T]) SchemaType() string { return c.Type }

func (FuncCodec[T]) Nullable() bool { return false }
