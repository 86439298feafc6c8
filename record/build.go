// Package record builds the three row contracts of a Go struct type:
// extraction from labeled tagged-value rows, projection into row
// expressions, and reflection into columns and DDL.
//
// Contracts are built once, checked up front, and are safe for concurrent
// use afterwards:
//
//	users := record.Must[User]()
//	u, err := users.ExtractRow(labels, row)
package record

import (
	"errors"
	"reflect"

	"rowcodec/internal/descriptor"
	"rowcodec/internal/requires"
)

// Record bundles the three contracts of T.
type Record[T any] struct {
	*Extractor[T]
	*Projector[T]
	*Reflector[T]
}

// Build parses, validates and checks T and returns all three contracts.
// Errors are *ParseError, *ConfigError or *RequirementError.
func Build[T any](opts ...Option) (*Record[T], error) {
	b, err := newBuilder(opts)
	if err != nil {
		return nil, err
	}

	typ := reflect.TypeFor[T]()

	ext, err := b.extractPlan(typ)
	if err != nil {
		return nil, err
	}

	proj, err := b.projectPlan(typ)
	if err != nil {
		return nil, err
	}

	refl, err := b.reflectPlan(typ)
	if err != nil {
		return nil, err
	}

	return &Record[T]{
		Extractor: &Extractor[T]{plan: ext, log: b.cfg.Logger},
		Projector: &Projector[T]{plan: proj},
		Reflector: &Reflector[T]{plan: refl},
	}, nil
}

// Must is Build for package-level declarations; it panics on error.
func Must[T any](opts ...Option) *Record[T] {
	r, err := Build[T](opts...)
	if err != nil {
		panic(err)
	}

	return r
}

type builder struct {
	cfg Config

	records  map[reflect.Type]*descriptor.Record
	extracts map[reflect.Type]*extractPlan
	projects map[reflect.Type]*projectPlan
	reflects map[reflect.Type]*reflectPlan

	// first parse or config error met in a nested record
	fatal error
}

func newBuilder(opts []Option) (*builder, error) {
	cfg := newConfig(opts)
	if cfg.schemaErr != nil {
		return nil, cfg.schemaErr
	}

	return &builder{
		cfg:      cfg,
		records:  make(map[reflect.Type]*descriptor.Record),
		extracts: make(map[reflect.Type]*extractPlan),
		projects: make(map[reflect.Type]*projectPlan),
		reflects: make(map[reflect.Type]*reflectPlan),
	}, nil
}

// describe parses and validates typ once per builder.
func (b *builder) describe(typ reflect.Type) (*descriptor.Record, error) {
	if rec, ok := b.records[typ]; ok {
		return rec, nil
	}

	overrides, _ := b.cfg.schema.Overrides(typ)

	rec, err := descriptor.Parse(typ, descriptor.Options{
		TagKey:    b.cfg.TagKey,
		Adapters:  b.cfg.Adapters,
		Overrides: overrides,
	})
	if err != nil {
		return nil, err
	}

	if err := descriptor.Validate(rec); err != nil {
		return nil, err
	}

	b.records[typ] = rec

	return rec, nil
}

// prepare describes typ and checks every field requirement of dir. Nested
// records of flatten fields are planned recursively through the check.
func (b *builder) prepare(dir requires.Direction, typ reflect.Type) (*descriptor.Record, error) {
	rec, err := b.describe(typ)
	if err != nil {
		return nil, err
	}

	var reqs []requires.Requirement
	for i := range rec.Fields {
		reqs = append(reqs, requires.For(&rec.Fields[i], dir)...)
	}

	env := requires.Env{
		Scalars: b.cfg.Codecs,
		Records: b.nested,
	}

	diag := requires.Check(reqs, env, rec.Name)
	if b.fatal != nil {
		return nil, b.fatal
	}

	if diag.HasErrors() {
		return nil, requirementError(rec.Name, dir, diag)
	}

	return rec, nil
}

func (b *builder) nested(dir requires.Direction, typ reflect.Type) error {
	var err error

	switch dir {
	case requires.Extract:
		_, err = b.extractPlan(typ)
	case requires.Project:
		_, err = b.projectPlan(typ)
	case requires.Reflect:
		_, err = b.reflectPlan(typ)
	}

	var (
		parseErr  *ParseError
		configErr *ConfigError
	)

	if b.fatal == nil && (errors.As(err, &parseErr) || errors.As(err, &configErr)) {
		b.fatal = err
	}

	return err
}

// checkColumns rejects two fields, possibly from flattened records, that
// resolve to the same column.
func checkColumns(record string, columns, owners []string) error {
	seen := make(map[string]string, len(columns))

	for i, col := range columns {
		if other, taken := seen[col]; taken {
			return descriptor.DuplicateColumn(record, owners[i], col, other)
		}

		seen[col] = owners[i]
	}

	return nil
}

func (b *builder) logBuilt(dir requires.Direction, name string, columns []string) {
	b.cfg.Logger.Debug().
		Str("record", name).
		Stringer("direction", dir).
		Strs("columns", columns).
		Msg("record contract built")
}
