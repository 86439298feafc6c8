package record

import (
	"fmt"

	"rowcodec/internal/descriptor"
	"rowcodec/internal/diagnostic"
	"rowcodec/internal/requires"
	"rowcodec/scalar"
)

type (
	// ParseError reports unparsable directives; see Build.
	ParseError = descriptor.ParseError
	// ConfigError reports directives that cannot be combined.
	ConfigError = descriptor.ConfigError
	// ConversionError reports a tagged value that does not fit the target type.
	ConversionError = scalar.ConversionError
)

// RequirementError lists every requirement a record's fields fail for one
// contract direction.
type RequirementError struct {
	Record      string
	Direction   string
	Diagnostics *diagnostic.Diagnostics
}

func (e *RequirementError) Error() string {
	return fmt.Sprintf("record %s cannot %s: %s", e.Record, e.Direction, e.Diagnostics.Error())
}

func requirementError(record string, dir requires.Direction, diag *diagnostic.Diagnostics) error {
	return &RequirementError{Record: record, Direction: dir.String(), Diagnostics: diag}
}

// InvalidFieldName reports a label that does not name the expected column
// at its position. Actual is "" when the labels ran out.
type InvalidFieldName struct {
	Index    int
	Expected string
	Actual   string
}

func (e *InvalidFieldName) Error() string {
	return fmt.Sprintf("expected field %d %q, but actual label is %q", e.Index, e.Expected, e.Actual)
}

// InvalidExtract reports a row with fewer values than columns.
type InvalidExtract struct {
	Index  int
	Column string
}

func (e *InvalidExtract) Error() string {
	return fmt.Sprintf("could not extract field: %d %q", e.Index, e.Column)
}

// FieldError gives a conversion failure its field context.
type FieldError struct {
	Record string
	Field  string
	Column string
	Index  int
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s (column %d %q): %v", e.Record, e.Field, e.Index, e.Column, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// AdapterError reports a failing try_from adapter.
type AdapterError struct {
	Index   int
	Column  string
	Adapter string
	Err     error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("adapter %s failed for field %d %q: %v", e.Adapter, e.Index, e.Column, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }

// RowError locates a failure inside ExtractRows.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
