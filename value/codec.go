package value

import (
	"bytes"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"
)

var ErrUnknownKind = errors.New("unknown value kind")

// Encode serialises v as msgpack, keeping the variant tag of every nested
// value so that Decode restores exactly the same kinds.
//
// Each value is written as a two element array [kind, payload].
func Encode(v Value) ([]byte, error) {
	var buf bytes.Buffer

	enc := msgpack.NewEncoder(&buf)
	if err := encode(enc, v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode is the inverse of Encode.
func Decode(data []byte) (Value, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	return decode(dec)
}

func encode(enc *msgpack.Encoder, v Value) error {
	if v == nil {
		v = Null{}
	}

	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}

	if err := enc.EncodeInt(int64(v.Kind())); err != nil {
		return err
	}

	switch x := v.(type) {
	case Null:
		return enc.EncodeNil()
	case Bool:
		return enc.EncodeBool(bool(x))
	case I8:
		return enc.EncodeInt(int64(x))
	case I16:
		return enc.EncodeInt(int64(x))
	case I32:
		return enc.EncodeInt(int64(x))
	case I64:
		return enc.EncodeInt(int64(x))
	case U8:
		return enc.EncodeUint(uint64(x))
	case U16:
		return enc.EncodeUint(uint64(x))
	case U32:
		return enc.EncodeUint(uint64(x))
	case U64:
		return enc.EncodeUint(uint64(x))
	case F32:
		return enc.EncodeFloat32(float32(x))
	case F64:
		return enc.EncodeFloat64(float64(x))
	case Str:
		return enc.EncodeString(string(x))
	case Bytea:
		return enc.EncodeBytes(x)
	case Decimal:
		return enc.EncodeString(x.Decimal.String())
	case Inet:
		return enc.EncodeString(x.Addr.String())
	case Date:
		return enc.EncodeTime(x.Time)
	case Timestamp:
		return enc.EncodeTime(x.Time)
	case Time:
		return enc.EncodeInt(int64(x))
	case Interval:
		if err := enc.EncodeArrayLen(2); err != nil {
			return err
		}

		if err := enc.EncodeInt(int64(x.Months)); err != nil {
			return err
		}

		return enc.EncodeInt(x.Micros)
	case UUID:
		return enc.EncodeBytes(x[:])
	case List:
		if err := enc.EncodeArrayLen(len(x)); err != nil {
			return err
		}

		for _, item := range x {
			if err := encode(enc, item); err != nil {
				return err
			}
		}

		return nil
	case Map:
		keys := sortedKeys(x)
		if err := enc.EncodeMapLen(len(keys)); err != nil {
			return err
		}

		for _, k := range keys {
			if err := enc.EncodeString(k); err != nil {
				return err
			}

			if err := encode(enc, x[k]); err != nil {
				return err
			}
		}

		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownKind, v)
	}
}

func decode(dec *msgpack.Decoder) (Value, error) {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}

	if n != 2 {
		return nil, fmt.Errorf("malformed tagged value: expected 2 elements, got %d", n)
	}

	tag, err := dec.DecodeInt64()
	if err != nil {
		return nil, err
	}

	switch kind := Kind(tag); kind {
	case KindNull:
		return Null{}, dec.DecodeNil()
	case KindBool:
		b, err := dec.DecodeBool()
		return Bool(b), err
	case KindI8, KindI16, KindI32, KindI64:
		i, err := dec.DecodeInt64()
		if err != nil {
			return nil, err
		}

		return signed(kind, i), nil
	case KindU8, KindU16, KindU32, KindU64:
		u, err := dec.DecodeUint64()
		if err != nil {
			return nil, err
		}

		return unsigned(kind, u), nil
	case KindF32:
		f, err := dec.DecodeFloat32()
		return F32(f), err
	case KindF64:
		f, err := dec.DecodeFloat64()
		return F64(f), err
	case KindStr:
		s, err := dec.DecodeString()
		return Str(s), err
	case KindBytea:
		b, err := dec.DecodeBytes()
		return Bytea(b), err
	case KindDecimal:
		s, err := dec.DecodeString()
		if err != nil {
			return nil, err
		}

		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, err
		}

		return Decimal{d}, nil
	case KindInet:
		s, err := dec.DecodeString()
		if err != nil {
			return nil, err
		}

		addr, err := netip.ParseAddr(s)
		if err != nil {
			return nil, err
		}

		return Inet{addr}, nil
	case KindDate:
		t, err := dec.DecodeTime()
		return Date{t.UTC()}, err
	case KindTimestamp:
		t, err := dec.DecodeTime()
		return Timestamp{t.UTC()}, err
	case KindTime:
		i, err := dec.DecodeInt64()
		return Time(time.Duration(i)), err
	case KindInterval:
		return decodeInterval(dec)
	case KindUUID:
		b, err := dec.DecodeBytes()
		if err != nil {
			return nil, err
		}

		id, err := uuid.FromBytes(b)
		if err != nil {
			return nil, err
		}

		return UUID(id), nil
	case KindList:
		l, err := dec.DecodeArrayLen()
		if err != nil {
			return nil, err
		}

		list := make(List, 0, max(l, 0))
		for range l {
			item, err := decode(dec)
			if err != nil {
				return nil, err
			}

			list = append(list, item)
		}

		return list, nil
	case KindMap:
		l, err := dec.DecodeMapLen()
		if err != nil {
			return nil, err
		}

		m := make(Map, max(l, 0))
		for range l {
			k, err := dec.DecodeString()
			if err != nil {
				return nil, err
			}

			item, err := decode(dec)
			if err != nil {
				return nil, err
			}

			m[k] = item
		}

		return m, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, tag)
	}
}

func decodeInterval(dec *msgpack.Decoder) (Value, error) {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}

	if n != 2 {
		return nil, fmt.Errorf("malformed interval: expected 2 elements, got %d", n)
	}

	months, err := dec.DecodeInt32()
	if err != nil {
		return nil, err
	}

	micros, err := dec.DecodeInt64()
	if err != nil {
		return nil, err
	}

	return Interval{Months: months, Micros: micros}, nil
}

func signed(kind Kind, i int64) Value {
	switch kind {
	case KindI8:
		return I8(i)
	case KindI16:
		return I16(i)
	case KindI32:
		return I32(i)
	default:
		return I64(i)
	}
}

func unsigned(kind Kind, u uint64) Value {
	switch kind {
	case KindU8:
		return U8(u)
	case KindU16:
		return U16(u)
	case KindU32:
		return U32(u)
	default:
		return U64(u)
	}
}
