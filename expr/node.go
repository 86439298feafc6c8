// Package expr provides the literal expression nodes a statement builder
// accepts as insertable values.
//
// A Node remembers the tagged value it denotes, so it can be rendered as SQL
// text, bound as a database/sql argument, or evaluated back to a value.Value.
package expr

import (
	"database/sql/driver"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"rowcodec/value"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind classifies a Node by the literal syntax it renders to.
type Kind int

const (
	_ Kind = iota

	KindNull
	KindNumber
	KindText
	KindBool
	KindDecimal
	KindBytes
	KindDate
	KindTimestamp
	KindTime
	KindInterval
	KindUUID
	KindInet
	KindEncoded // list and map literals, carried as msgpack
)

var ErrMixedInterval = errors.New("interval with both months and microseconds")

// Node is one row expression.
type Node struct {
	kind Kind
	lit  value.Value
}

// Null returns the NULL literal.
func Null() Node {
	return Node{kind: KindNull, lit: value.Null{}}
}

// Text returns a string literal.
func Text(s string) Node {
	return Node{kind: KindText, lit: value.Str(s)}
}

// Bool returns a boolean literal.
func Bool(b bool) Node {
	return Node{kind: KindBool, lit: value.Bool(b)}
}

// Timestamp returns a TIMESTAMP literal for t in UTC.
func Timestamp(t time.Time) Node {
	return Node{kind: KindTimestamp, lit: value.NewTimestamp(t)}
}

// Of returns the literal node denoting v.
func Of(v value.Value) Node {
	if v == nil {
		return Null()
	}

	return Node{kind: kindOf(v.Kind()), lit: v}
}

func kindOf(k value.Kind) Kind {
	switch {
	case k.IsInteger(), k.IsFloat():
		return KindNumber
	case k.IsComposite():
		return KindEncoded
	}

	switch k {
	case value.KindBool:
		return KindBool
	case value.KindStr:
		return KindText
	case value.KindDecimal:
		return KindDecimal
	case value.KindBytea:
		return KindBytes
	case value.KindDate:
		return KindDate
	case value.KindTimestamp:
		return KindTimestamp
	case value.KindTime:
		return KindTime
	case value.KindInterval:
		return KindInterval
	case value.KindUUID:
		return KindUUID
	case value.KindInet:
		return KindInet
	default:
		return KindNull
	}
}

// Kind returns the literal class of n.
func (n Node) Kind() Kind {
	if n.kind == 0 {
		return KindNull
	}

	return n.kind
}

// Value evaluates n to the tagged value it denotes.
func (n Node) Value() value.Value {
	if n.lit == nil {
		return value.Null{}
	}

	return n.lit
}

// IsNull reports whether n is the NULL literal.
func (n Node) IsNull() bool {
	return n.Kind() == KindNull
}

// String implements fmt.Stringer using the SQL rendering.
func (n Node) String() string {
	return n.SQL()
}

// SQL renders n as an SQL literal.
func (n Node) SQL() string {
	switch x := n.Value().(type) {
	case value.Null:
		return "NULL"
	case value.Bool:
		if x {
			return "TRUE"
		}

		return "FALSE"
	case value.I8:
		return strconv.FormatInt(int64(x), 10)
	case value.I16:
		return strconv.FormatInt(int64(x), 10)
	case value.I32:
		return strconv.FormatInt(int64(x), 10)
	case value.I64:
		return strconv.FormatInt(int64(x), 10)
	case value.U8:
		return strconv.FormatUint(uint64(x), 10)
	case value.U16:
		return strconv.FormatUint(uint64(x), 10)
	case value.U32:
		return strconv.FormatUint(uint64(x), 10)
	case value.U64:
		return strconv.FormatUint(uint64(x), 10)
	case value.F32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case value.F64:
		return strconv.FormatFloat(float64(x), 'g', -1, 64)
	case value.Str:
		return quote(string(x))
	case value.Decimal:
		return x.Decimal.String()
	case value.Bytea:
		return "X'" + hex.EncodeToString(x) + "'"
	case value.Date:
		return "DATE " + quote(x.String())
	case value.Timestamp:
		return "TIMESTAMP " + quote(x.String())
	case value.Time:
		return "TIME " + quote(x.String())
	case value.Interval:
		if x.Months != 0 {
			return fmt.Sprintf("INTERVAL '%d' MONTH", x.Months)
		}

		return fmt.Sprintf("INTERVAL '%d' MICROSECOND", x.Micros)
	case value.UUID:
		return quote(x.String())
	case value.Inet:
		return quote(x.Addr.String())
	default:
		data, err := value.Encode(x)
		if err != nil {
			return "NULL"
		}

		return "X'" + hex.EncodeToString(data) + "'"
	}
}

// Arg converts n into a database/sql argument.
func (n Node) Arg() (driver.Value, error) {
	switch x := n.Value().(type) {
	case value.Null:
		return nil, nil
	case value.Bool:
		return bool(x), nil
	case value.I8:
		return int64(x), nil
	case value.I16:
		return int64(x), nil
	case value.I32:
		return int64(x), nil
	case value.I64:
		return int64(x), nil
	case value.U8:
		return int64(x), nil
	case value.U16:
		return int64(x), nil
	case value.U32:
		return int64(x), nil
	case value.U64:
		// database/sql rejects uint64 with the high bit set; keep the bits
		return int64(x), nil
	case value.F32:
		return float64(x), nil
	case value.F64:
		return float64(x), nil
	case value.Str:
		return string(x), nil
	case value.Decimal:
		return x.Decimal.String(), nil
	case value.Bytea:
		return []byte(x), nil
	case value.Date:
		return x.String(), nil
	case value.Timestamp:
		return x.Time, nil
	case value.Time:
		return x.String(), nil
	case value.Interval:
		if x.Months != 0 {
			if x.Micros != 0 {
				return nil, ErrMixedInterval
			}

			return nil, fmt.Errorf("month interval %d cannot be bound as an argument", x.Months)
		}

		return x.Micros, nil
	case value.UUID:
		return x.String(), nil
	case value.Inet:
		return x.Addr.String(), nil
	default:
		return value.Encode(x)
	}
}

// Values evaluates every node of a row.
func Values(row []Node) []value.Value {
	out := make([]value.Value, len(row))
	for i, n := range row {
		out[i] = n.Value()
	}

	return out
}

// Args binds every node of a row.
func Args(row []Node) ([]any, error) {
	out := make([]any, len(row))

	for i, n := range row {
		arg, err := n.Arg()
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}

		out[i] = arg
	}

	return out, nil
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
