package record

import (
	"reflect"

	"github.com/rs/zerolog"

	"rowcodec/internal/descriptor"
	"rowcodec/internal/requires"
	"rowcodec/scalar"
	"rowcodec/value"
)

// Extractor builds T values from labeled rows.
type Extractor[T any] struct {
	plan *extractPlan
	log  zerolog.Logger
}

// NewExtractor builds only the extract contract of T, for types whose
// fields cannot be projected or reflected.
func NewExtractor[T any](opts ...Option) (*Extractor[T], error) {
	b, err := newBuilder(opts)
	if err != nil {
		return nil, err
	}

	plan, err := b.extractPlan(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}

	return &Extractor[T]{plan: plan, log: b.cfg.Logger}, nil
}

// ExtractRow builds a T from one row. The label at each position must name
// the column expected there; values beyond the last column are ignored.
// No partially filled T is ever returned.
func (e *Extractor[T]) ExtractRow(labels []string, row []value.Value) (T, error) {
	var out T

	dst := reflect.New(e.plan.typ).Elem()
	if _, err := e.plan.run(labels, row, 0, dst); err != nil {
		return out, err
	}

	out = dst.Interface().(T)

	return out, nil
}

// ExtractRows applies ExtractRow to every row and stops at the first
// failure, reported as a *RowError.
func (e *Extractor[T]) ExtractRows(labels []string, rows [][]value.Value) ([]T, error) {
	out := make([]T, 0, len(rows))

	for i, row := range rows {
		x, err := e.ExtractRow(labels, row)
		if err != nil {
			e.log.Debug().Str("record", e.plan.record).Int("row", i).Err(err).Msg("row extraction failed")
			return nil, &RowError{Row: i, Err: err}
		}

		out = append(out, x)
	}

	return out, nil
}

type extractStep struct {
	field  string
	column string
	path   []int
	// target is the type extracted into before any adapter runs
	target reflect.Type
	scalar scalar.Extractor
	nested *extractPlan
	via    *descriptor.Via
}

type extractPlan struct {
	record  string
	typ     reflect.Type
	steps   []extractStep
	columns []string
}

func (b *builder) extractPlan(typ reflect.Type) (*extractPlan, error) {
	if plan, ok := b.extracts[typ]; ok {
		return plan, nil
	}

	rec, err := b.prepare(requires.Extract, typ)
	if err != nil {
		return nil, err
	}

	plan := &extractPlan{record: rec.Name, typ: typ}

	var owners []string

	for i := range rec.Fields {
		f := &rec.Fields[i]
		step := extractStep{
			field:  f.Name,
			column: f.ColumnName(),
			path:   f.Path,
			target: f.TargetType(),
		}

		step.via, _ = f.Conversion()

		if f.Flatten {
			step.nested = b.extracts[step.target]
			plan.columns = append(plan.columns, step.nested.columns...)

			for range step.nested.columns {
				owners = append(owners, f.Name)
			}
		} else {
			step.scalar, _ = b.cfg.Codecs.Extractor(step.target)
			plan.columns = append(plan.columns, step.column)
			owners = append(owners, f.Name)
		}

		plan.steps = append(plan.steps, step)
	}

	if err := checkColumns(rec.Name, plan.columns, owners); err != nil {
		return nil, err
	}

	b.extracts[typ] = plan
	b.logBuilt(requires.Extract, rec.Name, plan.columns)

	return plan, nil
}

// run fills dst from the row starting at position pos and returns the
// position after the last consumed column.
func (p *extractPlan) run(labels []string, row []value.Value, pos int, dst reflect.Value) (int, error) {
	for i := range p.steps {
		s := &p.steps[i]
		start := pos

		target := dst.FieldByIndex(s.path)
		if s.via != nil {
			target = reflect.New(s.target).Elem()
		}

		if s.nested != nil {
			next, err := s.nested.run(labels, row, pos, target)
			if err != nil {
				return start, err
			}

			pos = next
		} else {
			if pos >= len(labels) || labels[pos] != s.column {
				actual := ""
				if pos < len(labels) {
					actual = labels[pos]
				}

				return start, &InvalidFieldName{Index: pos, Expected: s.column, Actual: actual}
			}

			if pos >= len(row) {
				return start, &InvalidExtract{Index: pos, Column: s.column}
			}

			if err := s.scalar.Extract(row[pos], target); err != nil {
				return start, &FieldError{Record: p.record, Field: s.field, Column: s.column, Index: pos, Err: err}
			}

			pos++
		}

		if s.via == nil {
			continue
		}

		out, err := s.via.Adapter.Apply(target)
		if err != nil {
			return start, &AdapterError{Index: start, Column: s.column, Adapter: s.via.Name, Err: err}
		}

		dst.FieldByIndex(s.path).Set(out)
	}

	return pos, nil
}
