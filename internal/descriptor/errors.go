package descriptor

import (
	"fmt"

	"rowcodec/internal/diagnostic"
)

// ParseError reports directives that could not be parsed. Every problem
// found in the record is listed.
type ParseError struct {
	Record      string
	Diagnostics *diagnostic.Diagnostics
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse record %s: %s", e.Record, e.Diagnostics.Error())
}

// ConfigError reports a field whose directives cannot be combined.
type ConfigError struct {
	Record  string
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("record %s: field %s: %s", e.Record, e.Field, e.Message)
}
