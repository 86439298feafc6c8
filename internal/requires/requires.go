// Package requires derives, per field and direction, the capabilities the
// field's types must offer, and checks them before a contract is built.
package requires

import (
	"fmt"
	"reflect"

	"rowcodec/adapter"
	"rowcodec/internal/descriptor"
	"rowcodec/internal/diagnostic"
	"rowcodec/scalar"
)

// Direction is one of the three record contracts.
type Direction int

const (
	_ Direction = iota

	Extract
	Project
	Reflect
)

func (d Direction) String() string {
	switch d {
	case Extract:
		return "extract"
	case Project:
		return "project"
	case Reflect:
		return "reflect"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Capability is what a requirement asks of a type.
type Capability int

const (
	_ Capability = iota

	ScalarExtract
	ScalarProject
	ScalarReflect
	RecordExtract
	RecordProject
	RecordReflect
	ConvertFrom    // declared type built infallibly from the target type
	ConvertTryFrom // declared type built fallibly from the target type
	ErrorInto      // adapter error type usable as an error
)

var capabilityNames = map[Capability]string{
	ScalarExtract:  "scalar extract",
	ScalarProject:  "scalar project",
	ScalarReflect:  "scalar reflect",
	RecordExtract:  "record extract",
	RecordProject:  "record project",
	RecordReflect:  "record reflect",
	ConvertFrom:    "from",
	ConvertTryFrom: "try_from",
	ErrorInto:      "error",
}

func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}

	return fmt.Sprintf("Capability(%d)", int(c))
}

// Requirement is one capability demanded of Type by Field.
type Requirement struct {
	Direction  Direction
	Capability Capability
	Type       reflect.Type
	Field      string
	// Source is the conversion input type, set for ConvertFrom and ConvertTryFrom.
	Source reflect.Type
	// Via is the adapter a conversion requirement refers to.
	Via *descriptor.Via
}

func (r Requirement) String() string {
	switch r.Capability {
	case ConvertFrom, ConvertTryFrom:
		return fmt.Sprintf("%s: %s %s <- %s", r.Field, r.Capability, r.Type, r.Source)
	default:
		return fmt.Sprintf("%s: %s %s", r.Field, r.Capability, r.Type)
	}
}

// For lists what field f needs for direction dir.
func For(f *descriptor.Field, dir Direction) []Requirement {
	req := func(c Capability, t reflect.Type) Requirement {
		return Requirement{Direction: dir, Capability: c, Type: t, Field: f.Name}
	}

	switch dir {
	case Extract:
		var out []Requirement
		if f.Flatten {
			out = append(out, req(RecordExtract, f.TargetType()))
		} else {
			out = append(out, req(ScalarExtract, f.TargetType()))
		}

		if f.From != nil {
			r := req(ConvertFrom, f.Declared)
			r.Source, r.Via = f.TargetType(), f.From
			out = append(out, r)
		}

		if f.TryFrom != nil {
			r := req(ConvertTryFrom, f.Declared)
			r.Source, r.Via = f.TargetType(), f.TryFrom
			out = append(out, r)

			if f.TryFrom.Adapter.Err != nil {
				out = append(out, req(ErrorInto, f.TryFrom.Adapter.Err))
			}
		}

		return out

	case Project:
		if f.Flatten {
			return []Requirement{req(RecordProject, f.TargetType())}
		}

		return []Requirement{req(ScalarProject, f.Declared)}

	case Reflect:
		if f.Flatten {
			return []Requirement{req(RecordReflect, f.TargetType())}
		}

		return []Requirement{req(ScalarReflect, f.TargetType())}

	default:
		return nil
	}
}

// Env answers requirement checks.
type Env struct {
	Scalars *scalar.Table
	// Records builds the contract of a nested record for a direction.
	Records func(dir Direction, t reflect.Type) error
}

var errorType = reflect.TypeFor[error]()

// Check evaluates every requirement and records each unsatisfied one.
func Check(reqs []Requirement, env Env, record string) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	for _, r := range reqs {
		if reason := env.unsatisfied(r); reason != "" {
			res.AddError("unsatisfied_requirement", fmt.Sprintf("%s (%s)", r, reason), record, r.Field)
		}
	}

	return res
}

func (env Env) unsatisfied(r Requirement) string {
	switch r.Capability {
	case ScalarExtract:
		if _, ok := env.Scalars.Extractor(r.Type); !ok {
			return "no scalar conversion from a tagged value"
		}
	case ScalarProject:
		if _, ok := env.Scalars.Projector(r.Type); !ok {
			return "no row expression for the type"
		}
	case ScalarReflect:
		if _, ok := env.Scalars.Reflector(r.Type); !ok {
			return "no schema type for the type"
		}
	case RecordExtract, RecordProject, RecordReflect:
		if env.Records == nil {
			return "nested records are not supported here"
		}

		if err := env.Records(r.Direction, r.Type); err != nil {
			return err.Error()
		}
	case ConvertFrom:
		return convertible(r, adapter.KindFrom)
	case ConvertTryFrom:
		return convertible(r, adapter.KindTryFrom)
	case ErrorInto:
		if !r.Type.Implements(errorType) {
			return "adapter error does not implement error"
		}
	}

	return ""
}

func convertible(r Requirement, want adapter.Kind) string {
	a := r.Via.Adapter

	if a.Kind != want {
		return fmt.Sprintf("adapter %q is a %s adapter", r.Via.Name, a.Kind)
	}

	if !a.Out.AssignableTo(r.Type) {
		return fmt.Sprintf("adapter %q returns %s", r.Via.Name, a.Out)
	}

	return ""
}
