package record

import (
	"reflect"
	"strings"

	"rowcodec/internal/requires"
)

// Column describes one column of a record.
type Column struct {
	Name     string
	Type     string
	Nullable bool
}

// Clause renders the column as it appears in CREATE TABLE.
func (c Column) Clause() string {
	if c.Nullable {
		return c.Name + " " + c.Type + " NULL"
	}

	return c.Name + " " + c.Type + " NOT NULL"
}

// Reflector describes the table shape of T.
type Reflector[T any] struct {
	plan *reflectPlan
}

// NewReflector builds only the reflect contract of T.
func NewReflector[T any](opts ...Option) (*Reflector[T], error) {
	b, err := newBuilder(opts)
	if err != nil {
		return nil, err
	}

	plan, err := b.reflectPlan(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}

	return &Reflector[T]{plan: plan}, nil
}

// Columns lists column names in declaration order, with renames applied and
// flattened records inlined.
func (r *Reflector[T]) Columns() []string {
	out := make([]string, len(r.plan.columns))
	for i, c := range r.plan.columns {
		out[i] = c.Name
	}

	return out
}

// Schema lists the columns with their types.
func (r *Reflector[T]) Schema() []Column {
	out := make([]Column, len(r.plan.columns))
	copy(out, r.plan.columns)

	return out
}

// DDL renders a CREATE TABLE IF NOT EXISTS statement for table, one column
// per line.
func (r *Reflector[T]) DDL(table string) string {
	var b strings.Builder

	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(table)
	b.WriteString(" (\n")

	for i, c := range r.plan.columns {
		b.WriteString("    ")
		b.WriteString(c.Clause())

		if i < len(r.plan.columns)-1 {
			b.WriteByte(',')
		}

		b.WriteByte('\n')
	}

	b.WriteString(");")

	return b.String()
}

type reflectPlan struct {
	columns []Column
}

func (b *builder) reflectPlan(typ reflect.Type) (*reflectPlan, error) {
	if plan, ok := b.reflects[typ]; ok {
		return plan, nil
	}

	rec, err := b.prepare(requires.Reflect, typ)
	if err != nil {
		return nil, err
	}

	plan := &reflectPlan{}

	var names, owners []string

	for i := range rec.Fields {
		f := &rec.Fields[i]

		if f.Flatten {
			for _, c := range b.reflects[f.TargetType()].columns {
				plan.columns = append(plan.columns, c)
				names = append(names, c.Name)
				owners = append(owners, f.Name)
			}

			continue
		}

		r, _ := b.cfg.Codecs.Reflector(f.TargetType())
		plan.columns = append(plan.columns, Column{
			Name:     f.ColumnName(),
			Type:     r.SchemaType(),
			Nullable: r.Nullable(),
		})
		names = append(names, f.ColumnName())
		owners = append(owners, f.Name)
	}

	if err := checkColumns(rec.Name, names, owners); err != nil {
		return nil, err
	}

	b.reflects[typ] = plan
	b.logBuilt(requires.Reflect, rec.Name, names)

	return plan, nil
}
