// Package adapter holds the conversion functions a record field can route
// its column value through: `from` adapters are infallible func(S) D,
// `try_from` adapters are func(S) (D, error).
package adapter

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"

	"rowcodec/utils"
)

var (
	ErrNotAnAdapter        = errors.New("provided function is not a recognizable adapter")
	ErrAdapterNotAFunction = errors.New("provided adapter is not a function")
	ErrDoublePointer       = errors.New("adapter function does not support double pointers")
)

// Kind tells how an adapter may fail.
type Kind int

const (
	_ Kind = iota

	KindFrom    // func(S) D
	KindTryFrom // func(S) (D, E) with E implementing error
)

func (k Kind) String() string {
	switch k {
	case KindFrom:
		return "from"
	case KindTryFrom:
		return "try_from"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Adapter is a parsed conversion function.
type Adapter struct {
	In, Out      reflect.Type
	Err          reflect.Type // error result type, TryFrom only
	Kind         Kind
	PackageAlias string
	Name         string

	fn reflect.Value
}

// Parse inspects fn and returns its Adapter description.
//
// Supports:
//   - func(src S) (dst D)
//   - func(src S) (dst D, err E), E implements error
func Parse(fn any) (Adapter, error) {
	if fn == nil {
		return Adapter{}, ErrAdapterNotAFunction
	}

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		return Adapter{}, ErrAdapterNotAFunction
	}

	if fnType.NumIn() != 1 || fnType.IsVariadic() {
		return Adapter{}, ErrNotAnAdapter
	}

	in := fnType.In(0)
	if isDoublePointer(in) {
		return Adapter{}, ErrDoublePointer
	}

	a := Adapter{In: in, fn: fnVal}

	switch fnType.NumOut() {
	default:
		return Adapter{}, ErrNotAnAdapter

	case 1:
		a.Kind = KindFrom

	case 2:
		if !isError(fnType.Out(1)) {
			return Adapter{}, ErrNotAnAdapter
		}

		a.Kind = KindTryFrom
		a.Err = fnType.Out(1)
	}

	a.Out = fnType.Out(0)
	if isDoublePointer(a.Out) {
		return Adapter{}, ErrDoublePointer
	}

	if pc := runtime.FuncForPC(fnVal.Pointer()); pc != nil {
		_, file := path.Split(pc.Name())
		a.PackageAlias, a.Name = utils.Unpack2(strings.SplitN(file, ".", 2))
	}

	return a, nil
}

// From wraps an infallible conversion.
func From[S, D any](fn func(S) D) Adapter {
	return must(Parse(fn))
}

// TryFrom wraps a fallible conversion.
func TryFrom[S, D any](fn func(S) (D, error)) Adapter {
	return must(Parse(fn))
}

func must(a Adapter, err error) Adapter {
	if err != nil {
		panic(err)
	}

	return a
}

// QualifiedName is the package-qualified function name, e.g. "strconv.Itoa".
func (a Adapter) QualifiedName() string {
	if a.PackageAlias == "" {
		return a.Name
	}

	return a.PackageAlias + "." + a.Name
}

// Apply runs the adapter on in, which must be assignable to a.In.
func (a Adapter) Apply(in reflect.Value) (reflect.Value, error) {
	if !a.fn.IsValid() {
		return reflect.Value{}, ErrNotAnAdapter
	}

	out := a.fn.Call([]reflect.Value{in})
	if a.Kind == KindTryFrom {
		if errVal := out[1]; !isNil(errVal) {
			return reflect.Value{}, errVal.Interface().(error)
		}
	}

	return out[0], nil
}

func (a Adapter) String() string {
	return fmt.Sprintf("%s %s(%s) %s", a.Kind, a.QualifiedName(), a.In, a.Out)
}

func isDoublePointer(t reflect.Type) bool {
	return t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Pointer
}

var errorType = reflect.TypeFor[error]()

func isError(t reflect.Type) bool {
	return t != nil && t.Implements(errorType)
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
