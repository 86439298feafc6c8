package value

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind is the variant tag of a Value.
type Kind int

const (
	_ Kind = iota // skip zero value, use it as a default (invalid) value for Kind

	KindNull
	KindBool
	KindI8
	KindI16
	KindI32
	KindI64
	KindU8
	KindU16
	KindU32
	KindU64
	KindF32
	KindF64
	KindDecimal
	KindStr
	KindBytea
	KindInet
	KindDate
	KindTimestamp
	KindTime
	KindInterval
	KindUUID
	KindMap
	KindList

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k Kind) IsInteger() bool {
	switch k {
	default:
		return false
	case KindI8, KindI16, KindI32, KindI64,
		KindU8, KindU16, KindU32, KindU64:
		return true
	}
}

func (k Kind) IsFloat() bool {
	switch k {
	default:
		return false
	case KindF32, KindF64:
		return true
	}
}

func (k Kind) IsNumber() bool {
	return k.IsInteger() || k.IsFloat() || k == KindDecimal
}

func (k Kind) IsSigned() bool {
	switch k {
	default:
		return false
	case KindI8, KindI16, KindI32, KindI64:
		return true
	}
}

func (k Kind) IsComposite() bool {
	return k == KindMap || k == KindList
}

// Bits returns the width of integer and float kinds.
func (k Kind) Bits() int {
	switch k {
	default:
		panic("only numeric kinds has meaningful bits amount, but requested for: " + k.String())
	case KindI8, KindU8:
		return 8
	case KindI16, KindU16:
		return 16
	case KindI32, KindU32, KindF32:
		return 32
	case KindI64, KindU64, KindF64:
		return 64
	}
}
