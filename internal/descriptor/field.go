package descriptor

import (
	"reflect"

	"rowcodec/adapter"
)

// Via is a resolved conversion directive.
type Via struct {
	// Name is the registry name the directive referred to.
	Name    string
	Adapter adapter.Adapter
}

// Field describes one marshalled struct field.
type Field struct {
	// Name is the Go field identifier.
	Name string
	// Path is the reflect index of the field inside its struct.
	Path []int
	// Declared is the static type of the field.
	Declared reflect.Type
	// Index is the position among marshalled fields, assigned by Validate.
	Index int

	Flatten bool
	Rename  *string
	From    *Via
	TryFrom *Via
}

// ColumnName is the rename if present, otherwise the Go field name.
func (f *Field) ColumnName() string {
	if f.Rename != nil {
		return *f.Rename
	}

	return f.Name
}

// Conversion returns the field's adapter, if any. A valid field carries at
// most one of From and TryFrom.
func (f *Field) Conversion() (*Via, bool) {
	switch {
	case f.From != nil:
		return f.From, true
	case f.TryFrom != nil:
		return f.TryFrom, true
	default:
		return nil, false
	}
}

// TargetType is the type the column value is extracted into: the adapter
// input when a conversion is present, the declared type otherwise.
func (f *Field) TargetType() reflect.Type {
	if via, ok := f.Conversion(); ok {
		return via.Adapter.In
	}

	return f.Declared
}

// Record is the descriptor of one record type.
type Record struct {
	Type reflect.Type
	// Name is the display name, including generic type arguments.
	Name   string
	Fields []Field
}
