package entities

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressLength is the number of bytes in an AccountAddress.
const AddressLength = 32

// AccountAddress identifies an account and the modules published under it.
type AccountAddress [AddressLength]byte

// Well-known addresses.
var (
	AddressZero = AccountAddress{}
	AddressOne  = AccountAddress{AddressLength - 1: 1}
)

// ParseAddress parses a hex literal with or without the 0x prefix.
// Short literals are left-padded with zeroes, so "0x1" is AddressOne.
func ParseAddress(s string) (AccountAddress, error) {
	var addr AccountAddress
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if digits == "" {
		return addr, fmt.Errorf("invalid address %q: no hex digits", s)
	}
	if len(digits) > AddressLength*2 {
		return addr, fmt.Errorf("invalid address %q: longer than %d bytes", s, AddressLength)
	}
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return addr, fmt.Errorf("invalid address %q: %w", s, err)
	}
	copy(addr[AddressLength-len(raw):], raw)
	return addr, nil
}

// MustParseAddress is like ParseAddress but panics on error.
func MustParseAddress(s string) AccountAddress {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// String renders the address with leading zeroes trimmed, e.g. "0x1".
func (a AccountAddress) String() string {
	s := strings.TrimLeft(hex.EncodeToString(a[:]), "0")
	if s == "" {
		s = "0"
	}
	return "0x" + s
}

// HexLiteral renders all 32 bytes.
func (a AccountAddress) HexLiteral() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Bytes returns a copy of the raw address bytes.
func (a AccountAddress) Bytes() []byte {
	b := make([]byte, AddressLength)
	copy(b, a[:])
	return b
}

func (AccountAddress) isValue() {}
