package entities

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// Value is a runtime value. The set of implementations is closed.
type Value interface {
	isValue()
}

type (
	Bool bool
	U8   uint8
	U16  uint16
	U32  uint32
	U64  uint64
)

func (Bool) isValue() {}
func (U8) isValue()   {}
func (U16) isValue()  {}
func (U32) isValue()  {}
func (U64) isValue()  {}

// U128 is an unsigned 128-bit integer. The upper two limbs of Int are zero.
type U128 struct {
	Int uint256.Int
}

// NewU128 builds a U128 from its low and high 64-bit halves.
func NewU128(lo, hi uint64) U128 {
	return U128{Int: uint256.Int{lo, hi, 0, 0}}
}

// U128FromBig converts b, failing if it does not fit in 128 bits.
func U128FromBig(b *big.Int) (U128, error) {
	if b.Sign() < 0 || b.BitLen() > 128 {
		return U128{}, fmt.Errorf("value %s does not fit in u128", b)
	}
	v, _ := uint256.FromBig(b)
	return U128{Int: *v}, nil
}

func (U128) isValue() {}

// U256 is an unsigned 256-bit integer.
type U256 struct {
	Int uint256.Int
}

// NewU256 builds a U256 from a uint64.
func NewU256(v uint64) U256 {
	return U256{Int: *uint256.NewInt(v)}
}

// U256FromBig converts b, failing if it does not fit in 256 bits.
func U256FromBig(b *big.Int) (U256, error) {
	v, overflow := uint256.FromBig(b)
	if overflow || b.Sign() < 0 {
		return U256{}, fmt.Errorf("value %s does not fit in u256", b)
	}
	return U256{Int: *v}, nil
}

func (U256) isValue() {}

// Signer is the capability to act on behalf of an address.
type Signer struct {
	Address AccountAddress
}

func (Signer) isValue() {}

// Vector is a growable container. A *Vector passed to a native stands for
// both owned vectors and references to vectors.
type Vector struct {
	Elems []Value
}

// NewVector returns a vector holding elems.
func NewVector(elems ...Value) *Vector {
	return &Vector{Elems: elems}
}

// BytesVector returns a vector<u8> holding a copy of b.
func BytesVector(b []byte) *Vector {
	elems := make([]Value, len(b))
	for i, c := range b {
		elems[i] = U8(c)
	}
	return &Vector{Elems: elems}
}

// Bytes returns the contents of a vector<u8>.
func (v *Vector) Bytes() ([]byte, bool) {
	out := make([]byte, len(v.Elems))
	for i, e := range v.Elems {
		b, ok := e.(U8)
		if !ok {
			return nil, false
		}
		out[i] = byte(b)
	}
	return out, true
}

// Len returns the element count.
func (v *Vector) Len() int {
	return len(v.Elems)
}

func (*Vector) isValue() {}

// Struct is a struct value with positional fields.
type Struct struct {
	Fields []Value
}

// NewStruct returns a struct holding fields.
func NewStruct(fields ...Value) *Struct {
	return &Struct{Fields: fields}
}

func (*Struct) isValue() {}

// CopyValue returns a deep copy of v. Containers are duplicated so the copy
// does not alias v.
func CopyValue(v Value) Value {
	switch x := v.(type) {
	case *Vector:
		elems := make([]Value, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = CopyValue(e)
		}
		return &Vector{Elems: elems}
	case *Struct:
		fields := make([]Value, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = CopyValue(f)
		}
		return &Struct{Fields: fields}
	default:
		return v
	}
}

// FormatValue renders v for diagnostics.
func FormatValue(v Value) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case Bool:
		return fmt.Sprintf("%t", bool(x))
	case U8:
		return fmt.Sprintf("%du8", uint8(x))
	case U16:
		return fmt.Sprintf("%du16", uint16(x))
	case U32:
		return fmt.Sprintf("%du32", uint32(x))
	case U64:
		return fmt.Sprintf("%du64", uint64(x))
	case U128:
		return x.Int.Dec() + "u128"
	case U256:
		return x.Int.Dec() + "u256"
	case AccountAddress:
		return "@" + x.String()
	case Signer:
		return "signer(@" + x.Address.String() + ")"
	case *Vector:
		parts := make([]string, len(x.Elems))
		for i, e := range x.Elems {
			parts[i] = FormatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Struct:
		parts := make([]string, len(x.Fields))
		for i, f := range x.Fields {
			parts[i] = FormatValue(f)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}
