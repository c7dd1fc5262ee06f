// Package wireformat implements the canonical binary encoding of runtime
// values (BCS). The encoding is deterministic: a value and its layout always
// produce the same bytes, which makes it suitable for hashing and for the
// event log.
//
//   - integers are fixed-width little endian
//   - bool is one byte, 0 or 1
//   - address and signer are the 32 raw address bytes
//   - vectors are a ULEB128 length followed by the elements
//   - structs are their fields in declaration order
package wireformat

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/reglet-dev/nativevm/domain/entities"
	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
)

// MaxSequenceLength is the longest vector the encoding accepts.
const MaxSequenceLength = math.MaxInt32

// Encode serializes v according to layout. A value that does not match its
// layout fails with VALUE_SERIALIZATION_ERROR.
func Encode(layout entities.TypeLayout, v entities.Value) ([]byte, error) {
	return Append(nil, layout, v)
}

// Append is Encode writing onto buf.
func Append(buf []byte, layout entities.TypeLayout, v entities.Value) ([]byte, error) {
	switch layout.Kind {
	case entities.KindBool:
		b, ok := v.(entities.Bool)
		if !ok {
			return nil, mismatch(layout, v)
		}
		if b {
			return append(buf, 1), nil
		}
		return append(buf, 0), nil
	case entities.KindU8:
		n, ok := v.(entities.U8)
		if !ok {
			return nil, mismatch(layout, v)
		}
		return append(buf, byte(n)), nil
	case entities.KindU16:
		n, ok := v.(entities.U16)
		if !ok {
			return nil, mismatch(layout, v)
		}
		return binary.LittleEndian.AppendUint16(buf, uint16(n)), nil
	case entities.KindU32:
		n, ok := v.(entities.U32)
		if !ok {
			return nil, mismatch(layout, v)
		}
		return binary.LittleEndian.AppendUint32(buf, uint32(n)), nil
	case entities.KindU64:
		n, ok := v.(entities.U64)
		if !ok {
			return nil, mismatch(layout, v)
		}
		return binary.LittleEndian.AppendUint64(buf, uint64(n)), nil
	case entities.KindU128:
		n, ok := v.(entities.U128)
		if !ok {
			return nil, mismatch(layout, v)
		}
		return appendLimbs(buf, n.Int[:2]), nil
	case entities.KindU256:
		n, ok := v.(entities.U256)
		if !ok {
			return nil, mismatch(layout, v)
		}
		return appendLimbs(buf, n.Int[:]), nil
	case entities.KindAddress:
		a, ok := v.(entities.AccountAddress)
		if !ok {
			return nil, mismatch(layout, v)
		}
		return append(buf, a[:]...), nil
	case entities.KindSigner:
		s, ok := v.(entities.Signer)
		if !ok {
			return nil, mismatch(layout, v)
		}
		return append(buf, s.Address[:]...), nil
	case entities.KindVector:
		vec, ok := v.(*entities.Vector)
		if !ok || layout.Elem == nil {
			return nil, mismatch(layout, v)
		}
		if vec.Len() > MaxSequenceLength {
			return nil, vmerrors.Newf(vmerrors.ValueSerialization, "vector of %d elements exceeds the sequence limit", vec.Len())
		}
		buf = AppendULEB128(buf, uint64(vec.Len()))
		var err error
		for _, elem := range vec.Elems {
			if buf, err = Append(buf, *layout.Elem, elem); err != nil {
				return nil, err
			}
		}
		return buf, nil
	case entities.KindStruct:
		st, ok := v.(*entities.Struct)
		if !ok || len(st.Fields) != len(layout.Fields) {
			return nil, mismatch(layout, v)
		}
		var err error
		for i, field := range st.Fields {
			if buf, err = Append(buf, layout.Fields[i], field); err != nil {
				return nil, err
			}
		}
		return buf, nil
	default:
		return nil, vmerrors.Newf(vmerrors.ValueSerialization, "layout %s cannot be serialized", layout)
	}
}

func appendLimbs(buf []byte, limbs []uint64) []byte {
	for _, l := range limbs {
		buf = binary.LittleEndian.AppendUint64(buf, l)
	}
	return buf
}

func mismatch(layout entities.TypeLayout, v entities.Value) error {
	return vmerrors.Newf(vmerrors.ValueSerialization, "value %T does not match layout %s", v, layout)
}

// AppendULEB128 appends n as an unsigned LEB128 number.
func AppendULEB128(buf []byte, n uint64) []byte {
	for n >= 0x80 {
		buf = append(buf, byte(n)|0x80)
		n >>= 7
	}
	return append(buf, byte(n))
}

// ReadULEB128 decodes an unsigned LEB128 number from the start of data and
// returns it with the number of bytes consumed. Non-canonical encodings are
// rejected.
func ReadULEB128(data []byte) (uint64, int, error) {
	var n uint64
	for i, b := range data {
		if i == 10 || (i == 9 && b > 1) {
			return 0, 0, fmt.Errorf("uleb128 overflows u64")
		}
		n |= uint64(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			if b == 0 && i > 0 {
				return 0, 0, fmt.Errorf("non-canonical uleb128")
			}
			return n, i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("truncated uleb128")
}
