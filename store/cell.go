package store

import (
	"fmt"
	"math"
	"net/netip"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rowcodec/record"
	"rowcodec/utils"
	"rowcodec/value"
)

// Cell turns a scanned driver value into the tagged value the column's
// schema type extracts from. NULL cells become value.Null whatever the type.
//
// Columns with a schema type this package does not know, such as those of
// custom codecs, fall back to the variant matching the driver type.
func Cell(col record.Column, cell any) (value.Value, error) {
	if cell == nil {
		return value.Null{}, nil
	}

	conv, ok := cellTypes[col.Type]
	if !ok {
		conv = driverCell
	}

	v, err := conv(cell)
	if err != nil {
		return nil, fmt.Errorf("column %s %s: %w", col.Name, col.Type, err)
	}

	return v, nil
}

var cellTypes = map[string]func(any) (value.Value, error){
	"BOOLEAN": boolCell,
	"INT8":    signedCell(math.MinInt8, math.MaxInt8, func(n int64) value.Value { return value.I8(n) }),
	"INT16":   signedCell(math.MinInt16, math.MaxInt16, func(n int64) value.Value { return value.I16(n) }),
	"INT32":   signedCell(math.MinInt32, math.MaxInt32, func(n int64) value.Value { return value.I32(n) }),
	"INT":     signedCell(math.MinInt64, math.MaxInt64, func(n int64) value.Value { return value.I64(n) }),
	"UINT8":   signedCell(0, math.MaxUint8, func(n int64) value.Value { return value.U8(n) }),
	"UINT16":  signedCell(0, math.MaxUint16, func(n int64) value.Value { return value.U16(n) }),
	"UINT32":  signedCell(0, math.MaxUint32, func(n int64) value.Value { return value.U32(n) }),
	"UINT64":  uint64Cell,
	"FLOAT":   floatCell,
	"DECIMAL": decimalCell,
	"TEXT":    textCell,
	"BYTEA":   byteaCell,
	"TIMESTAMP": func(cell any) (value.Value, error) {
		t, err := timeCell(cell, "2006-01-02 15:04:05.999999999-07:00")
		return value.NewTimestamp(t), err
	},
	"DATE": func(cell any) (value.Value, error) {
		t, err := timeCell(cell, time.DateOnly)
		return value.DateOf(t), err
	},
	"TIME": func(cell any) (value.Value, error) {
		t, err := timeCell(cell, "15:04:05.999999999")
		return value.NewTime(t.Hour(), t.Minute(), t.Second(), t.Nanosecond()), err
	},
	"INTERVAL": signedCell(math.MinInt64, math.MaxInt64, func(n int64) value.Value { return value.Micros(n) }),
	"UUID":     uuidCell,
	"INET":     inetCell,
	"LIST":     encodedCell,
	"MAP":      encodedCell,
}

func unexpected(cell any) error {
	return fmt.Errorf("unexpected driver value %T", cell)
}

func boolCell(cell any) (value.Value, error) {
	switch x := cell.(type) {
	case bool:
		return value.Bool(x), nil
	case int64:
		return value.Bool(x != 0), nil
	default:
		return nil, unexpected(cell)
	}
}

func signedCell(lo, hi int64, wrap func(int64) value.Value) func(any) (value.Value, error) {
	return func(cell any) (value.Value, error) {
		var n int64

		switch x := cell.(type) {
		case int64:
			n = x
		case string:
			var err error
			if n, err = strconv.ParseInt(x, 10, 64); err != nil {
				return nil, err
			}
		default:
			return nil, unexpected(cell)
		}

		if !utils.IsInRange(lo, n, hi) {
			return nil, fmt.Errorf("%d out of range [%d, %d]", n, lo, hi)
		}

		return wrap(n), nil
	}
}

// uint64Cell reads back the int64 bit pattern UINT64 values are bound with.
func uint64Cell(cell any) (value.Value, error) {
	switch x := cell.(type) {
	case int64:
		return value.U64(uint64(x)), nil
	case string:
		n, err := strconv.ParseUint(x, 10, 64)
		if err != nil {
			return nil, err
		}

		return value.U64(n), nil
	default:
		return nil, unexpected(cell)
	}
}

// floatCell always yields F64; FLOAT does not tell float32 from float64.
func floatCell(cell any) (value.Value, error) {
	switch x := cell.(type) {
	case float64:
		return value.F64(x), nil
	case int64:
		return value.F64(x), nil
	default:
		return nil, unexpected(cell)
	}
}

func decimalCell(cell any) (value.Value, error) {
	switch x := cell.(type) {
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return nil, err
		}

		return value.Decimal{Decimal: d}, nil
	case int64:
		return value.Decimal{Decimal: decimal.NewFromInt(x)}, nil
	case float64:
		return value.Decimal{Decimal: decimal.NewFromFloat(x)}, nil
	default:
		return nil, unexpected(cell)
	}
}

func textCell(cell any) (value.Value, error) {
	switch x := cell.(type) {
	case string:
		return value.Str(x), nil
	case []byte:
		return value.Str(x), nil
	default:
		return nil, unexpected(cell)
	}
}

func byteaCell(cell any) (value.Value, error) {
	switch x := cell.(type) {
	case []byte:
		return value.Bytea(x), nil
	case string:
		return value.Bytea(x), nil
	default:
		return nil, unexpected(cell)
	}
}

// timeCell accepts a time.Time, which modernc.org/sqlite returns for
// columns declared with a temporal type, or text in layout.
func timeCell(cell any, layout string) (time.Time, error) {
	switch x := cell.(type) {
	case time.Time:
		return x, nil
	case string:
		return time.Parse(layout, x)
	default:
		return time.Time{}, unexpected(cell)
	}
}

func uuidCell(cell any) (value.Value, error) {
	switch x := cell.(type) {
	case string:
		id, err := uuid.Parse(x)
		return value.UUID(id), err
	case []byte:
		id, err := uuid.FromBytes(x)
		return value.UUID(id), err
	default:
		return nil, unexpected(cell)
	}
}

func inetCell(cell any) (value.Value, error) {
	s, ok := cell.(string)
	if !ok {
		return nil, unexpected(cell)
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return nil, err
	}

	return value.Inet{Addr: addr}, nil
}

func encodedCell(cell any) (value.Value, error) {
	data, ok := cell.([]byte)
	if !ok {
		return nil, unexpected(cell)
	}

	return value.Decode(data)
}

func driverCell(cell any) (value.Value, error) {
	switch x := cell.(type) {
	case bool:
		return value.Bool(x), nil
	case int64:
		return value.I64(x), nil
	case float64:
		return value.F64(x), nil
	case string:
		return value.Str(x), nil
	case []byte:
		return value.Bytea(x), nil
	case time.Time:
		return value.NewTimestamp(x), nil
	default:
		return nil, unexpected(cell)
	}
}
