package value_test

import (
	"fmt"
	"net/netip"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowcodec/value"
)

func ExampleDescribe() {
	fmt.Println(value.Describe(value.I64(1)))
	fmt.Println(value.Describe(value.Str("x")))
	fmt.Println(value.Describe(value.Null{}))
	fmt.Println(value.Describe(value.Bool(true)))
	fmt.Println(value.Describe(value.NewDate(2021, time.March, 4)))
	fmt.Println(value.Describe(value.NewTime(13, 5, 0, 0)))
	fmt.Println(value.Describe(value.List{value.U8(1), value.Null{}}))
	fmt.Println(value.Describe(value.Map{"b": value.F64(0.5), "a": value.Str("z")}))
	// Output:
	// I64(1)
	// Str("x")
	// Null
	// Bool(true)
	// Date(2021-03-04)
	// Time(13:05:00)
	// List[U8(1), Null]
	// Map{"a": Str("z"), "b": F64(0.5)}
}

func TestKind_Classes(t *testing.T) {
	assert.True(t, value.KindI32.IsInteger())
	assert.True(t, value.KindI32.IsSigned())
	assert.False(t, value.KindU32.IsSigned())
	assert.True(t, value.KindF32.IsFloat())
	assert.True(t, value.KindF64.IsNumber())
	assert.False(t, value.KindStr.IsNumber())
	assert.True(t, value.KindList.IsComposite())
	assert.Equal(t, 16, value.KindU16.Bits())
	assert.Equal(t, "Timestamp", value.KindTimestamp.String())
	assert.Panics(t, func() { value.KindStr.Bits() })
}

func TestEqual(t *testing.T) {
	assert.True(t, value.Equal(value.Bytea{1}, value.Bytea{1}))
	assert.False(t, value.Equal(value.I32(1), value.I64(1)))
	assert.True(t, value.Equal(
		value.Decimal{Decimal: decimal.RequireFromString("1.50")},
		value.Decimal{Decimal: decimal.RequireFromString("1.5")},
	))
	assert.True(t, value.Equal(
		value.Map{"l": value.List{value.Null{}}},
		value.Map{"l": value.List{value.Null{}}},
	))
	assert.False(t, value.Equal(value.Map{"a": value.I8(1)}, value.Map{"b": value.I8(1)}))
	assert.True(t, value.Equal(nil, nil))
	assert.False(t, value.Equal(value.Null{}, nil))
}

func TestCodec_RoundTrip(t *testing.T) {
	at := time.Date(2022, time.July, 1, 10, 30, 0, 123000, time.UTC)

	values := []value.Value{
		value.Null{},
		value.Bool(true),
		value.I8(-8),
		value.I16(-16),
		value.I32(-32),
		value.I64(-64),
		value.U8(8),
		value.U16(16),
		value.U32(32),
		value.U64(1 << 63),
		value.F32(1.5),
		value.F64(-2.25),
		value.Str("text"),
		value.Bytea{0xde, 0xad},
		value.Decimal{Decimal: decimal.RequireFromString("12.345")},
		value.Inet{Addr: netip.MustParseAddr("::1")},
		value.NewDate(1999, time.December, 31),
		value.NewTimestamp(at),
		value.NewTime(23, 59, 59, 1000),
		value.Interval{Months: 14},
		value.Micros(-5),
		value.UUID(uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")),
		value.List{value.I64(1), value.List{value.Str("nested")}},
		value.Map{"k": value.Map{"inner": value.Bool(false)}, "z": value.Null{}},
	}

	for _, v := range values {
		t.Run(v.Kind().String(), func(t *testing.T) {
			data, err := value.Encode(v)
			require.NoError(t, err)

			got, err := value.Decode(data)
			require.NoError(t, err)
			assert.True(t, value.Equal(v, got), "want %s\ngot %s", spew.Sdump(v), spew.Sdump(got))
		})
	}
}

func TestCodec_Errors(t *testing.T) {
	_, err := value.Decode([]byte{0x92, 0x7f, 0xc0})
	require.ErrorIs(t, err, value.ErrUnknownKind)

	_, err = value.Decode([]byte{0x91, 0x01})
	require.EqualError(t, err, "malformed tagged value: expected 2 elements, got 1")
}
