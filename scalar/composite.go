package scalar

import (
	"reflect"

	"rowcodec/expr"
	"rowcodec/value"
)

// optional serves *T: Null maps to a nil pointer and back.
type optional struct {
	typ      reflect.Type
	extract  Extractor
	project  Projector
	describe Reflector
}

func (o optional) Extract(v value.Value, dst reflect.Value) error {
	if _, null := v.(value.Null); null || v == nil {
		dst.Set(reflect.Zero(o.typ))
		return nil
	}

	elem := reflect.New(o.typ.Elem())
	if err := o.extract.Extract(v, elem.Elem()); err != nil {
		return err
	}

	dst.Set(elem)

	return nil
}

func (o optional) Project(src reflect.Value) expr.Node {
	if src.IsNil() {
		return expr.Null()
	}

	return o.project.Project(src.Elem())
}

func (o optional) SchemaType() string { return o.describe.SchemaType() }

func (o optional) Nullable() bool { return true }

// list serves []T as a LIST value. A nil slice projects as an empty LIST.
type list struct {
	typ     reflect.Type
	extract Extractor
	project Projector
}

func (l list) Extract(v value.Value, dst reflect.Value) error {
	items, ok := v.(value.List)
	if !ok {
		return mismatch(l.typ, v)
	}

	out := reflect.MakeSlice(l.typ, len(items), len(items))
	for i, item := range items {
		if err := l.extract.Extract(item, out.Index(i)); err != nil {
			return err
		}
	}

	dst.Set(out)

	return nil
}

func (l list) Project(src reflect.Value) expr.Node {
	items := make(value.List, src.Len())
	for i := range items {
		items[i] = l.project.Project(src.Index(i)).Value()
	}

	return expr.Of(items)
}

func (list) SchemaType() string { return "LIST" }

func (list) Nullable() bool { return false }

// mapping serves map[string]T as a MAP value.
type mapping struct {
	typ     reflect.Type
	extract Extractor
	project Projector
}

func (m mapping) Extract(v value.Value, dst reflect.Value) error {
	entries, ok := v.(value.Map)
	if !ok {
		return mismatch(m.typ, v)
	}

	out := reflect.MakeMapWithSize(m.typ, len(entries))
	for k, item := range entries {
		elem := reflect.New(m.typ.Elem()).Elem()
		if err := m.extract.Extract(item, elem); err != nil {
			return err
		}

		out.SetMapIndex(reflect.ValueOf(k).Convert(m.typ.Key()), elem)
	}

	dst.Set(out)

	return nil
}

func (m mapping) Project(src reflect.Value) expr.Node {
	entries := make(value.Map, src.Len())

	iter := src.MapRange()
	for iter.Next() {
		entries[iter.Key().String()] = m.project.Project(iter.Value()).Value()
	}

	return expr.Of(entries)
}

func (mapping) SchemaType() string { return "MAP" }

func (mapping) Nullable() bool { return false }
