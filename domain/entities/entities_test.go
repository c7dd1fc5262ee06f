package entities

import (
	"math/big"
	"strings"
	"testing"

	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AccountAddress
		wantErr bool
	}{
		{name: "short", input: "0x1", want: AddressOne},
		{name: "no prefix", input: "1", want: AddressOne},
		{name: "zero", input: "0x0", want: AddressZero},
		{name: "odd length", input: "0xabc", want: AccountAddress{30: 0x0a, 31: 0xbc}},
		{name: "empty", input: "0x", wantErr: true},
		{name: "not hex", input: "0xzz", wantErr: true},
		{name: "too long", input: "0x1" + strings.Repeat("0", 64), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAddress(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccountAddress_String(t *testing.T) {
	assert.Equal(t, "0x1", AddressOne.String())
	assert.Equal(t, "0x0", AddressZero.String())
	assert.Equal(t, "0x"+strings.Repeat("0", 63)+"1", AddressOne.HexLiteral())
	assert.Equal(t, "0xcafe", MustParseAddress("0xCAFE").String())
}

func TestIsValidIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"vector", true},
		{"push_back", true},
		{"A1", true},
		{"_x", true},
		{"__", true},
		{"<SELF>", true},
		{"", false},
		{"_", false},
		{"1abc", false},
		{"has-dash", false},
		{"has space", false},
		{"émoji", false},
		{"<OTHER>", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidIdentifier(tt.input))
		})
	}
}

func TestNewIdentifier(t *testing.T) {
	id, err := NewIdentifier("length")
	require.NoError(t, err)
	assert.Equal(t, "length", id.String())
	assert.False(t, id.IsZero())

	_, err = NewIdentifier("bad name")
	require.Error(t, err)
	code, ok := vmerrors.StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, vmerrors.InvalidIdentifier, code)

	assert.Panics(t, func() { MustIdentifier("") })
}

func TestType_Subst(t *testing.T) {
	generic := VectorOf(StructType(3, TyParam(0), TyParam(1)))

	got, err := generic.Subst([]Type{U64Type, AddressType})
	require.NoError(t, err)
	assert.Equal(t, VectorOf(StructType(3, U64Type, AddressType)), got)
	assert.Equal(t, "vector<struct#3<u64, address>>", got.String())

	_, err = TyParam(2).Subst([]Type{U8Type})
	require.Error(t, err)
}

func TestTypeTag_String(t *testing.T) {
	coin := StructTag{
		Address:    AddressOne,
		Module:     MustIdentifier("coin"),
		Name:       MustIdentifier("Coin"),
		TypeParams: []TypeTag{{Kind: KindU64}, VectorTag(TypeTag{Kind: KindU8})},
	}
	assert.Equal(t, "0x1::coin::Coin<u64, vector<u8>>", StructTypeTag(coin).String())
	assert.Equal(t, "vector<address>", VectorTag(TypeTag{Kind: KindAddress}).String())
}

func TestTypeLayout_String(t *testing.T) {
	l := StructLayout(PrimitiveLayout(KindU64), VectorLayout(PrimitiveLayout(KindU8)))
	assert.Equal(t, "{u64, vector<u8>}", l.String())
}

func TestVector_Bytes(t *testing.T) {
	v := BytesVector([]byte("abc"))
	assert.Equal(t, 3, v.Len())

	b, ok := v.Bytes()
	require.True(t, ok)
	assert.Equal(t, []byte("abc"), b)

	_, ok = NewVector(U64(1)).Bytes()
	assert.False(t, ok)
}

func TestCopyValue_DoesNotAlias(t *testing.T) {
	inner := NewVector(U64(1))
	outer := NewStruct(inner, Bool(true))

	cp := CopyValue(outer).(*Struct)
	cp.Fields[0].(*Vector).Elems = append(cp.Fields[0].(*Vector).Elems, U64(2))

	assert.Equal(t, 1, inner.Len())
	assert.Equal(t, 2, cp.Fields[0].(*Vector).Len())
}

func TestU128FromBig(t *testing.T) {
	max128 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	v, err := U128FromBig(max128)
	require.NoError(t, err)
	assert.Equal(t, NewU128(^uint64(0), ^uint64(0)), v)

	_, err = U128FromBig(new(big.Int).Lsh(big.NewInt(1), 128))
	require.Error(t, err)

	_, err = U256FromBig(big.NewInt(-1))
	require.Error(t, err)
}

func TestFormatValue(t *testing.T) {
	v := NewStruct(U64(3), NewVector(U8(1), U8(2)), Signer{Address: AddressOne}, NewU256(9))
	assert.Equal(t, "{3u64, [1u8, 2u8], signer(@0x1), 9u256}", FormatValue(v))
}
