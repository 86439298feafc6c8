package diagnostic

import (
	"fmt"
	"strings"
)

// Diagnostics holds everything found while building one record.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity Severity
	// Code identifies the kind of finding, e.g. "unknown_directive".
	Code    string
	Message string
	// Record is the display name of the record type (if any).
	Record string
	// Field is the Go field name or path (if any).
	Field string
	// Suggestions are close alternatives for misspelt names.
	Suggestions []string
}

// Severity is the level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota + 1
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError adds an error diagnostic and returns it for further decoration.
func (d *Diagnostics) AddError(code, message, record, field string) *Diagnostic {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Record:   record,
		Field:    field,
	})

	return &d.Errors[len(d.Errors)-1]
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, record, field string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Record:   record,
		Field:    field,
	})
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge appends other's findings to d.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// Codes lists the error codes in order, mostly for tests.
func (d *Diagnostics) Codes() []string {
	codes := make([]string, len(d.Errors))
	for i, e := range d.Errors {
		codes[i] = e.Code
	}

	return codes
}

// Error joins all error diagnostics with "; ", or returns "" when there are none.
func (d *Diagnostics) Error() string {
	parts := make([]string, len(d.Errors))
	for i, e := range d.Errors {
		parts[i] = e.String()
	}

	return strings.Join(parts, "; ")
}

func (d Diagnostic) String() string {
	var prefix []string
	if d.Record != "" {
		prefix = append(prefix, "["+d.Record+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(quoteAll(d.Suggestions), " or "))
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}

	return out
}
