// Package value models the tagged cell values an embedded SQL engine hands
// out for a result row and accepts back as literals.
//
// Every variant is a distinct Go type implementing Value, so callers switch
// on the concrete type (or on Kind) instead of probing an untyped any.
package value

import (
	"bytes"
	"fmt"
	"net/netip"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Value is one tagged cell.
type Value interface {
	Kind() Kind
}

type (
	Null struct{}
	Bool bool
	I8   int8
	I16  int16
	I32  int32
	I64  int64
	U8   uint8
	U16  uint16
	U32  uint32
	U64  uint64
	F32  float32
	F64  float64
	Str  string

	Bytea []byte

	Decimal struct{ decimal.Decimal }
	Inet    struct{ netip.Addr }

	// Date is a calendar date, stored as midnight UTC.
	Date struct{ time.Time }
	// Timestamp is a zone-less instant, stored in UTC.
	Timestamp struct{ time.Time }
	// Time is a time of day, as the offset from midnight.
	Time time.Duration

	// Interval is either a month count or a microsecond count; the engine
	// never mixes both in one value.
	Interval struct {
		Months int32
		Micros int64
	}

	UUID uuid.UUID

	Map  map[string]Value
	List []Value
)

func (Null) Kind() Kind      { return KindNull }
func (Bool) Kind() Kind      { return KindBool }
func (I8) Kind() Kind        { return KindI8 }
func (I16) Kind() Kind       { return KindI16 }
func (I32) Kind() Kind       { return KindI32 }
func (I64) Kind() Kind       { return KindI64 }
func (U8) Kind() Kind        { return KindU8 }
func (U16) Kind() Kind       { return KindU16 }
func (U32) Kind() Kind       { return KindU32 }
func (U64) Kind() Kind       { return KindU64 }
func (F32) Kind() Kind       { return KindF32 }
func (F64) Kind() Kind       { return KindF64 }
func (Str) Kind() Kind       { return KindStr }
func (Bytea) Kind() Kind     { return KindBytea }
func (Decimal) Kind() Kind   { return KindDecimal }
func (Inet) Kind() Kind      { return KindInet }
func (Date) Kind() Kind      { return KindDate }
func (Timestamp) Kind() Kind { return KindTimestamp }
func (Time) Kind() Kind      { return KindTime }
func (Interval) Kind() Kind  { return KindInterval }
func (UUID) Kind() Kind      { return KindUUID }
func (Map) Kind() Kind       { return KindMap }
func (List) Kind() Kind      { return KindList }

// NewDate returns the Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Date())
}

// NewTimestamp normalises t to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC()}
}

// NewTime returns the time of day h:m:s.ns.
func NewTime(h, m, s, ns int) Time {
	return Time(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(ns))
}

// Micros returns a microsecond interval.
func Micros(us int64) Interval {
	return Interval{Micros: us}
}

func (d Date) String() string { return d.Format(time.DateOnly) }

func (t Timestamp) String() string { return t.Format("2006-01-02 15:04:05.999999") }

func (t Time) String() string {
	d := time.Duration(t)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second

	if d == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}

	return fmt.Sprintf("%02d:%02d:%02d.%06d", h, m, s, d/time.Microsecond)
}

func (u UUID) String() string { return uuid.UUID(u).String() }

// Describe renders v as Kind(payload), the form used in error messages.
func Describe(v Value) string {
	if v == nil {
		return "<nil>"
	}

	switch x := v.(type) {
	case Null:
		return "Null"
	case Str:
		return fmt.Sprintf("Str(%q)", string(x))
	case Bytea:
		return fmt.Sprintf("Bytea(%x)", []byte(x))
	case Decimal:
		return "Decimal(" + x.Decimal.String() + ")"
	case Inet:
		return "Inet(" + x.Addr.String() + ")"
	case Interval:
		if x.Months != 0 {
			return fmt.Sprintf("Interval(%d months)", x.Months)
		}

		return fmt.Sprintf("Interval(%dus)", x.Micros)
	case List:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = Describe(item)
		}

		return "List[" + strings.Join(parts, ", ") + "]"
	case Map:
		keys := sortedKeys(x)
		parts := make([]string, len(keys))

		for i, k := range keys {
			parts[i] = fmt.Sprintf("%q: %s", k, Describe(x[k]))
		}

		return "Map{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%s(%v)", v.Kind(), v)
	}
}

// Equal reports whether a and b are the same variant carrying the same payload.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case Bytea:
		return bytes.Equal(x, b.(Bytea))
	case Decimal:
		return x.Decimal.Equal(b.(Decimal).Decimal)
	case Date:
		return x.Equal(b.(Date).Time)
	case Timestamp:
		return x.Equal(b.(Timestamp).Time)
	case List:
		y := b.(List)
		if len(x) != len(y) {
			return false
		}

		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}

		return true
	case Map:
		y := b.(Map)
		if len(x) != len(y) {
			return false
		}

		for k, v := range x {
			w, ok := y[k]
			if !ok || !Equal(v, w) {
				return false
			}
		}

		return true
	default:
		return a == b
	}
}

func sortedKeys(m Map) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
