// Package schemafile loads YAML files that override record field directives
// without touching struct tags:
//
//	version: "1"
//	records:
//	  - type: billing.Invoice
//	    fields:
//	      - name: Total
//	        rename: total_cents
//	      - name: Notes
//	        skip: true
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"rowcodec/internal/common"
	"rowcodec/internal/descriptor"
	"rowcodec/internal/diagnostic"
)

// File is a parsed schema file.
type File struct {
	Version string   `yaml:"version"`
	Records []Record `yaml:"records"`
}

// Record holds the overrides of one record type.
type Record struct {
	// Type is matched against the record's Go type as "Name",
	// "pkg.Name" or "import/path.Name".
	Type   string  `yaml:"type"`
	Fields []Field `yaml:"fields"`
}

// Field overrides the directives of one Go field. Absent keys keep the
// struct tag's value.
type Field struct {
	Name    string  `yaml:"name"`
	Skip    *bool   `yaml:"skip,omitempty"`
	Flatten *bool   `yaml:"flatten,omitempty"`
	Rename  *string `yaml:"rename,omitempty"`
	From    *string `yaml:"from,omitempty"`
	TryFrom *string `yaml:"try_from,omitempty"`
}

// LoadFile loads and parses a YAML schema file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	applyDefaults(&f)

	if diag := Validate(&f); diag.HasErrors() {
		return nil, fmt.Errorf("invalid schema file: %w", diag)
	}

	return &f, nil
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	for i := range f.Records {
		r := &f.Records[i]
		r.Type = strings.TrimSpace(r.Type)

		for j := range r.Fields {
			r.Fields[j].Name = strings.TrimSpace(r.Fields[j].Name)
		}
	}
}

// Validate reports structural problems: missing names and duplicate entries.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	if f.Version != "1" {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported schema version %q", f.Version), "", "")
	}

	types := make(map[string]struct{}, len(f.Records))

	for i := range f.Records {
		r := &f.Records[i]
		if r.Type == "" {
			res.AddError("missing_type", fmt.Sprintf("record entry %d has no type", i), "", "")
			continue
		}

		if _, dup := types[r.Type]; dup {
			res.AddError("duplicate_record", "record listed twice", r.Type, "")
		}

		types[r.Type] = struct{}{}

		fields := make(map[string]struct{}, len(r.Fields))

		for j := range r.Fields {
			name := r.Fields[j].Name
			if name == "" {
				res.AddError("missing_field_name", fmt.Sprintf("field entry %d has no name", j), r.Type, "")
				continue
			}

			if _, dup := fields[name]; dup {
				res.AddError("duplicate_field", "field listed twice", r.Type, name)
			}

			fields[name] = struct{}{}
		}
	}

	return res
}

// Overrides returns the field overrides for t, keyed by Go field name.
func (f *File) Overrides(t reflect.Type) (map[string]descriptor.Override, bool) {
	if f == nil {
		return nil, false
	}

	for i := range f.Records {
		r := &f.Records[i]
		if !matchesType(r.Type, t) {
			continue
		}

		out := make(map[string]descriptor.Override, len(r.Fields))
		for _, field := range r.Fields {
			out[field.Name] = descriptor.Override{
				Skip:    field.Skip,
				Flatten: field.Flatten,
				Rename:  field.Rename,
				From:    field.From,
				TryFrom: field.TryFrom,
			}
		}

		return out, true
	}

	return nil, false
}

func matchesType(name string, t reflect.Type) bool {
	if t.Name() == "" {
		return false
	}

	switch name {
	case t.Name(), common.PkgAlias(t.PkgPath()) + "." + t.Name(), t.PkgPath() + "." + t.Name():
		return true
	default:
		return false
	}
}
