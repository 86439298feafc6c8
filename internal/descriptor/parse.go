package descriptor

import (
	"fmt"
	"reflect"
	"strings"

	"rowcodec/adapter"
	"rowcodec/internal/diagnostic"
	"rowcodec/internal/match"
)

// DefaultTagKey is the struct tag key directives are read from.
const DefaultTagKey = "row"

const (
	directiveFlatten = "flatten"
	directiveRename  = "rename"
	directiveFrom    = "from"
	directiveTryFrom = "try_from"
)

var directiveNames = []string{directiveFlatten, directiveRename, directiveFrom, directiveTryFrom}

// Override replaces the tag directives of one field. Nil members keep what
// the tag says; an empty From or TryFrom removes the tag's conversion.
type Override struct {
	Skip    *bool
	Flatten *bool
	Rename  *string
	From    *string
	TryFrom *string
}

// Options control how a record type is parsed.
type Options struct {
	TagKey   string
	Adapters *adapter.Registry
	// Overrides are keyed by Go field name.
	Overrides map[string]Override
}

type directives struct {
	skip    bool
	flatten bool
	rename  *string
	from    *string
	tryFrom *string
}

// Parse reads the field descriptors of struct type t. All problems are
// collected and returned together as a *ParseError.
func Parse(t reflect.Type, opts Options) (*Record, error) {
	if opts.TagKey == "" {
		opts.TagKey = DefaultTagKey
	}

	diag := &diagnostic.Diagnostics{}
	name := t.String()

	if t.Kind() != reflect.Struct {
		diag.AddError("non_struct", fmt.Sprintf("record type must be a struct, got %s", t.Kind()), name, "")
		return nil, &ParseError{Record: name, Diagnostics: diag}
	}

	rec := &Record{Type: t, Name: name}
	exported := make([]string, 0, t.NumField())
	seen := make(map[string]struct{}, t.NumField())

	for i := range t.NumField() {
		sf := t.Field(i)
		seen[sf.Name] = struct{}{}

		override, overridden := opts.Overrides[sf.Name]

		if !sf.IsExported() {
			if overridden {
				diag.AddError("unexported_field", "schema file names an unexported field", name, sf.Name)
			}

			continue
		}

		exported = append(exported, sf.Name)

		var d directives
		if tag, ok := sf.Tag.Lookup(opts.TagKey); ok {
			d = parseTag(tag, diag, name, sf.Name)
		}

		if overridden {
			d = d.with(override)
		}

		if d.skip {
			continue
		}

		field := Field{
			Name:     sf.Name,
			Path:     sf.Index,
			Declared: sf.Type,
			Index:    -1,
			Flatten:  d.flatten,
			Rename:   d.rename,
		}

		if d.rename != nil && *d.rename == "" {
			diag.AddError("empty_column", "rename needs a non-empty column name", name, sf.Name)
		}

		field.From = resolve(d.from, directiveFrom, opts.Adapters, diag, name, sf.Name)
		field.TryFrom = resolve(d.tryFrom, directiveTryFrom, opts.Adapters, diag, name, sf.Name)

		rec.Fields = append(rec.Fields, field)
	}

	for fieldName := range opts.Overrides {
		if _, ok := seen[fieldName]; ok {
			continue
		}

		diag.AddError("unknown_field", fmt.Sprintf("schema file names unknown field %q", fieldName), name, fieldName).
			Suggestions = match.Suggest(fieldName, exported, 3)
	}

	if diag.HasErrors() {
		return nil, &ParseError{Record: name, Diagnostics: diag}
	}

	return rec, nil
}

func parseTag(tag string, diag *diagnostic.Diagnostics, record, field string) directives {
	var d directives

	if strings.TrimSpace(tag) == "-" {
		d.skip = true
		return d
	}

	seen := make(map[string]bool)

	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, val, hasVal := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		if seen[key] {
			diag.AddError("duplicate_directive", fmt.Sprintf("directive %q given twice", key), record, field)
			continue
		}

		seen[key] = true

		switch key {
		case directiveFlatten:
			if hasVal {
				diag.AddError("unexpected_value", "flatten takes no value", record, field)
			}

			d.flatten = true

		case directiveRename:
			if !hasVal {
				diag.AddError("missing_value", "rename needs a column name", record, field)
				continue
			}

			d.rename = &val

		case directiveFrom, directiveTryFrom:
			if !hasVal || val == "" {
				diag.AddError("missing_value", key+" needs an adapter name", record, field)
				continue
			}

			if key == directiveFrom {
				d.from = &val
			} else {
				d.tryFrom = &val
			}

		default:
			diag.AddError("unknown_directive", fmt.Sprintf("unknown directive %q", key), record, field).
				Suggestions = match.Suggest(key, directiveNames, 1)
		}
	}

	return d
}

func (d directives) with(o Override) directives {
	if o.Skip != nil {
		d.skip = *o.Skip
	}

	if o.Flatten != nil {
		d.flatten = *o.Flatten
	}

	if o.Rename != nil {
		d.rename = o.Rename
	}

	if o.From != nil {
		d.from = nonEmpty(o.From)
	}

	if o.TryFrom != nil {
		d.tryFrom = nonEmpty(o.TryFrom)
	}

	return d
}

func nonEmpty(s *string) *string {
	if *s == "" {
		return nil
	}

	return s
}

func resolve(
	name *string,
	directive string,
	adapters *adapter.Registry,
	diag *diagnostic.Diagnostics,
	record, field string,
) *Via {
	if name == nil {
		return nil
	}

	a, ok := adapters.Lookup(*name)
	if !ok {
		diag.AddError("unknown_adapter", fmt.Sprintf("%s refers to unknown adapter %q", directive, *name), record, field).
			Suggestions = match.Suggest(*name, adapters.Names(), 3)

		return nil
	}

	return &Via{Name: *name, Adapter: a}
}
