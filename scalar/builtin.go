package scalar

import (
	"net/netip"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rowcodec/expr"
	"rowcodec/value"
)

// prim is a built-in codec for exactly one host type T.
type prim[T any] struct {
	sqlType string
	from    func(value.Value) (T, bool)
	to      func(T) expr.Node
}

func (c prim[T]) Extract(v value.Value, dst reflect.Value) error {
	x, ok := c.from(v)
	if !ok {
		return mismatch(dst.Type(), v)
	}

	dst.Set(reflect.ValueOf(&x).Elem())

	return nil
}

func (c prim[T]) Project(src reflect.Value) expr.Node {
	return c.to(src.Interface().(T))
}

func (c prim[T]) SchemaType() string { return c.sqlType }

func (c prim[T]) Nullable() bool { return false }

var builtins = map[reflect.Type]Codec{
	reflect.TypeFor[bool](): prim[bool]{
		sqlType: "BOOLEAN",
		from:    match[value.Bool, bool],
		to:      expr.Bool,
	},
	reflect.TypeFor[int8](): prim[int8]{
		sqlType: "INT8",
		from:    match[value.I8, int8],
		to:      literal[int8, value.I8],
	},
	reflect.TypeFor[int16](): prim[int16]{
		sqlType: "INT16",
		from:    match[value.I16, int16],
		to:      literal[int16, value.I16],
	},
	reflect.TypeFor[int32](): prim[int32]{
		sqlType: "INT32",
		from:    match[value.I32, int32],
		to:      literal[int32, value.I32],
	},
	reflect.TypeFor[int64](): prim[int64]{
		sqlType: "INT",
		from:    match[value.I64, int64],
		to:      literal[int64, value.I64],
	},
	reflect.TypeFor[int](): prim[int]{
		sqlType: "INT",
		from:    ranged[value.I64, int],
		to:      literal[int, value.I64],
	},
	reflect.TypeFor[uint8](): prim[uint8]{
		sqlType: "UINT8",
		from:    match[value.U8, uint8],
		to:      literal[uint8, value.U8],
	},
	reflect.TypeFor[uint16](): prim[uint16]{
		sqlType: "UINT16",
		from:    match[value.U16, uint16],
		to:      literal[uint16, value.U16],
	},
	reflect.TypeFor[uint32](): prim[uint32]{
		sqlType: "UINT32",
		from:    match[value.U32, uint32],
		to:      literal[uint32, value.U32],
	},
	reflect.TypeFor[uint64](): prim[uint64]{
		sqlType: "UINT64",
		from:    match[value.U64, uint64],
		to:      literal[uint64, value.U64],
	},
	reflect.TypeFor[uint](): prim[uint]{
		sqlType: "UINT64",
		from:    ranged[value.U64, uint],
		to:      literal[uint, value.U64],
	},
	reflect.TypeFor[float32](): prim[float32]{
		sqlType: "FLOAT",
		from:    match[value.F32, float32],
		to:      literal[float32, value.F32],
	},
	reflect.TypeFor[float64](): prim[float64]{
		sqlType: "FLOAT",
		from:    match[value.F64, float64],
		to:      literal[float64, value.F64],
	},
	reflect.TypeFor[string](): prim[string]{
		sqlType: "TEXT",
		from:    match[value.Str, string],
		to:      expr.Text,
	},
	reflect.TypeFor[[]byte](): prim[[]byte]{
		sqlType: "BYTEA",
		from:    match[value.Bytea, []byte],
		to:      func(b []byte) expr.Node { return expr.Of(value.Bytea(b)) },
	},
	reflect.TypeFor[decimal.Decimal](): prim[decimal.Decimal]{
		sqlType: "DECIMAL",
		from:    decimalFrom,
		to:      func(d decimal.Decimal) expr.Node { return expr.Of(value.Decimal{Decimal: d}) },
	},
	reflect.TypeFor[time.Time](): prim[time.Time]{
		sqlType: "TIMESTAMP",
		from:    timestampFrom,
		to:      expr.Timestamp,
	},
	reflect.TypeFor[value.Date](): prim[value.Date]{
		sqlType: "DATE",
		from:    dateFrom,
		to:      func(d value.Date) expr.Node { return expr.Of(d) },
	},
	reflect.TypeFor[value.Time](): prim[value.Time]{
		sqlType: "TIME",
		from:    timeOfDayFrom,
		to:      func(t value.Time) expr.Node { return expr.Of(t) },
	},
	reflect.TypeFor[time.Duration](): prim[time.Duration]{
		sqlType: "INTERVAL",
		from:    durationFrom,
		to: func(d time.Duration) expr.Node {
			return expr.Of(value.Micros(d.Microseconds()))
		},
	},
	reflect.TypeFor[uuid.UUID](): prim[uuid.UUID]{
		sqlType: "UUID",
		from:    uuidFrom,
		to:      func(u uuid.UUID) expr.Node { return expr.Of(value.UUID(u)) },
	},
	reflect.TypeFor[netip.Addr](): prim[netip.Addr]{
		sqlType: "INET",
		from:    inetFrom,
		to:      func(a netip.Addr) expr.Node { return expr.Of(value.Inet{Addr: a}) },
	},
}

func builtin(typ reflect.Type) (Codec, bool) {
	c, ok := builtins[typ]
	return c, ok
}

// match accepts exactly the tagged variant V and converts its payload to T.
func match[V interface {
	value.Value
	~bool | ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~string | ~[]byte
}, T ~bool | ~int8 | ~int16 | ~int32 | ~int64 | ~int | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint |
	~float32 | ~float64 | ~string | ~[]byte](v value.Value) (T, bool) {
	x, ok := v.(V)
	if !ok {
		var zero T
		return zero, false
	}

	return convert[V, T](x), true
}

// ranged is match for the platform sized int and uint, rejecting values
// that do not survive the conversion.
func ranged[V value.I64 | value.U64, T int | uint](v value.Value) (T, bool) {
	x, ok := v.(V)
	if !ok {
		return 0, false
	}

	out := T(x)
	if V(out) != x {
		return 0, false
	}

	return out, true
}

func literal[T any, V value.Value](x T) expr.Node {
	return expr.Of(convert[T, V](x))
}

// convert is a Go conversion between two types that share an underlying
// primitive kind; it is resolved once per instantiation through reflect.
func convert[From, To any](x From) To {
	var out To

	reflect.ValueOf(&out).Elem().Set(reflect.ValueOf(x).Convert(reflect.TypeFor[To]()))

	return out
}

func decimalFrom(v value.Value) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case value.Decimal:
		return x.Decimal, true
	case value.Str:
		d, err := decimal.NewFromString(string(x))
		return d, err == nil
	case value.I64:
		return decimal.NewFromInt(int64(x)), true
	default:
		return decimal.Decimal{}, false
	}
}

func timestampFrom(v value.Value) (time.Time, bool) {
	switch x := v.(type) {
	case value.Timestamp:
		return x.UTC(), true
	case value.Date:
		return x.UTC(), true
	case value.I64:
		return time.UnixMicro(int64(x)).UTC(), true
	default:
		return time.Time{}, false
	}
}

func dateFrom(v value.Value) (value.Date, bool) {
	switch x := v.(type) {
	case value.Date:
		return x, true
	case value.Timestamp:
		return value.DateOf(x.Time), true
	case value.Str:
		t, err := time.Parse(time.DateOnly, string(x))
		if err != nil {
			return value.Date{}, false
		}

		return value.DateOf(t), true
	default:
		return value.Date{}, false
	}
}

func timeOfDayFrom(v value.Value) (value.Time, bool) {
	switch x := v.(type) {
	case value.Time:
		return x, true
	case value.Str:
		t, err := time.Parse("15:04:05.999999999", string(x))
		if err != nil {
			return 0, false
		}

		return value.NewTime(t.Hour(), t.Minute(), t.Second(), t.Nanosecond()), true
	default:
		return 0, false
	}
}

func durationFrom(v value.Value) (time.Duration, bool) {
	switch x := v.(type) {
	case value.Interval:
		if x.Months != 0 {
			return 0, false
		}

		return time.Duration(x.Micros) * time.Microsecond, true
	case value.I64:
		return time.Duration(x) * time.Microsecond, true
	default:
		return 0, false
	}
}

func uuidFrom(v value.Value) (uuid.UUID, bool) {
	switch x := v.(type) {
	case value.UUID:
		return uuid.UUID(x), true
	case value.Str:
		id, err := uuid.Parse(string(x))
		return id, err == nil
	case value.Bytea:
		id, err := uuid.FromBytes(x)
		return id, err == nil
	default:
		return uuid.UUID{}, false
	}
}

func inetFrom(v value.Value) (netip.Addr, bool) {
	switch x := v.(type) {
	case value.Inet:
		return x.Addr, true
	case value.Str:
		addr, err := netip.ParseAddr(string(x))
		return addr, err == nil
	default:
		return netip.Addr{}, false
	}
}

// baseTypes maps reflect kinds to the built-in type serving named types of
// that kind, e.g. `type Status string` is served by the string codec.
var baseTypes = map[reflect.Kind]reflect.Type{
	reflect.Bool:    reflect.TypeFor[bool](),
	reflect.Int:     reflect.TypeFor[int](),
	reflect.Int8:    reflect.TypeFor[int8](),
	reflect.Int16:   reflect.TypeFor[int16](),
	reflect.Int32:   reflect.TypeFor[int32](),
	reflect.Int64:   reflect.TypeFor[int64](),
	reflect.Uint:    reflect.TypeFor[uint](),
	reflect.Uint8:   reflect.TypeFor[uint8](),
	reflect.Uint16:  reflect.TypeFor[uint16](),
	reflect.Uint32:  reflect.TypeFor[uint32](),
	reflect.Uint64:  reflect.TypeFor[uint64](),
	reflect.Float32: reflect.TypeFor[float32](),
	reflect.Float64: reflect.TypeFor[float64](),
	reflect.String:  reflect.TypeFor[string](),
}

// underlying serves named primitive types (and named byte slices) through the
// built-in codec of their underlying type.
func underlying(typ reflect.Type) (Codec, bool) {
	base, ok := baseTypes[typ.Kind()]
	if typ.Kind() == reflect.Slice && typ.Elem().Kind() == reflect.Uint8 {
		base, ok = reflect.TypeFor[[]byte](), true
	}

	if !ok || base == typ {
		return nil, false
	}

	c, ok := builtin(base)
	if !ok {
		return nil, false
	}

	return named{typ: typ, base: base, inner: c}, true
}

type named struct {
	typ, base reflect.Type
	inner     Codec
}

func (n named) Extract(v value.Value, dst reflect.Value) error {
	tmp := reflect.New(n.base).Elem()
	if err := n.inner.Extract(v, tmp); err != nil {
		return mismatch(n.typ, v)
	}

	dst.Set(tmp.Convert(n.typ))

	return nil
}

func (n named) Project(src reflect.Value) expr.Node {
	return n.inner.Project(src.Convert(n.base))
}

func (n named) SchemaType() string { return n.inner.SchemaType() }

func (n named) Nullable() bool { return false }
