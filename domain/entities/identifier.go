package entities

import (
	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
)

// SelfIdentifier is the special name a module uses to refer to itself.
const SelfIdentifier = "<SELF>"

// Identifier is a syntactically valid module, function or struct name.
// The zero value is not valid; construct with NewIdentifier.
type Identifier struct {
	name string
}

// NewIdentifier validates s and returns it as an Identifier.
func NewIdentifier(s string) (Identifier, error) {
	if !IsValidIdentifier(s) {
		return Identifier{}, vmerrors.Newf(vmerrors.InvalidIdentifier, "%q is not a valid identifier", s)
	}
	return Identifier{name: s}, nil
}

// MustIdentifier is like NewIdentifier but panics on error.
func MustIdentifier(s string) Identifier {
	id, err := NewIdentifier(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsValidIdentifier reports whether s is a legal identifier:
// <SELF>, or [A-Za-z][A-Za-z0-9_]*, or _[A-Za-z0-9_]+.
func IsValidIdentifier(s string) bool {
	if s == SelfIdentifier {
		return true
	}
	if s == "" {
		return false
	}
	first := s[0]
	switch {
	case isAlpha(first):
	case first == '_':
		if len(s) == 1 {
			return false
		}
	default:
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9') || c == '_'
}

func (id Identifier) String() string {
	return id.name
}

// IsZero reports whether id was never initialized.
func (id Identifier) IsZero() bool {
	return id.name == ""
}
