package record

import (
	"reflect"

	"rowcodec/expr"
	"rowcodec/internal/requires"
	"rowcodec/scalar"
)

// Projector turns T values into insertable rows.
type Projector[T any] struct {
	plan *projectPlan
}

// NewProjector builds only the project contract of T.
func NewProjector[T any](opts ...Option) (*Projector[T], error) {
	b, err := newBuilder(opts)
	if err != nil {
		return nil, err
	}

	plan, err := b.projectPlan(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}

	return &Projector[T]{plan: plan}, nil
}

// ProjectRow renders every column of r, in column order. Conversions are
// not applied: each field is embedded through its declared type.
func (p *Projector[T]) ProjectRow(r *T) []expr.Node {
	if r == nil {
		return nil
	}

	return p.plan.run(reflect.ValueOf(r).Elem(), make([]expr.Node, 0, len(p.plan.names)))
}

type projectStep struct {
	path   []int
	scalar scalar.Projector
	nested *projectPlan
}

type projectPlan struct {
	steps []projectStep
	names []string
}

func (b *builder) projectPlan(typ reflect.Type) (*projectPlan, error) {
	if plan, ok := b.projects[typ]; ok {
		return plan, nil
	}

	rec, err := b.prepare(requires.Project, typ)
	if err != nil {
		return nil, err
	}

	plan := &projectPlan{}

	var columns, owners []string

	for i := range rec.Fields {
		f := &rec.Fields[i]
		step := projectStep{path: f.Path}

		if f.Flatten {
			step.nested = b.projects[f.Declared]

			for _, col := range step.nested.names {
				columns = append(columns, col)
				owners = append(owners, f.Name)
			}
		} else {
			step.scalar, _ = b.cfg.Codecs.Projector(f.Declared)
			columns = append(columns, f.ColumnName())
			owners = append(owners, f.Name)
		}

		plan.steps = append(plan.steps, step)
	}

	if err := checkColumns(rec.Name, columns, owners); err != nil {
		return nil, err
	}

	plan.names = columns
	b.projects[typ] = plan
	b.logBuilt(requires.Project, rec.Name, columns)

	return plan, nil
}

func (p *projectPlan) run(src reflect.Value, out []expr.Node) []expr.Node {
	for i := range p.steps {
		s := &p.steps[i]
		field := src.FieldByIndex(s.path)

		if s.nested != nil {
			out = s.nested.run(field, out)
			continue
		}

		out = append(out, s.scalar.Project(field))
	}

	return out
}
