package entities

import (
	"fmt"
	"strings"
)

// TypeKind enumerates the shapes of runtime types, tags and layouts.
type TypeKind uint8

const (
	KindBool TypeKind = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindU256
	KindAddress
	KindSigner
	KindVector
	KindStruct
	KindReference
	KindMutableReference
	KindTyParam
)

var kindNames = [...]string{
	KindBool:             "bool",
	KindU8:               "u8",
	KindU16:              "u16",
	KindU32:              "u32",
	KindU64:              "u64",
	KindU128:             "u128",
	KindU256:             "u256",
	KindAddress:          "address",
	KindSigner:           "signer",
	KindVector:           "vector",
	KindStruct:           "struct",
	KindReference:        "&",
	KindMutableReference: "&mut",
	KindTyParam:          "typaram",
}

func (k TypeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// IsPrimitive reports whether k has no inner type.
func (k TypeKind) IsPrimitive() bool {
	return k <= KindSigner
}

// Type is a loaded runtime type.
//
// Struct types refer to the loader's struct table by index; Elem is set for
// vectors and references; Index is the parameter position for KindTyParam.
type Type struct {
	Elem        *Type
	TypeArgs    []Type
	StructIndex int
	Index       uint16
	Kind        TypeKind
}

// Primitive runtime types.
var (
	BoolType    = Type{Kind: KindBool}
	U8Type      = Type{Kind: KindU8}
	U16Type     = Type{Kind: KindU16}
	U32Type     = Type{Kind: KindU32}
	U64Type     = Type{Kind: KindU64}
	U128Type    = Type{Kind: KindU128}
	U256Type    = Type{Kind: KindU256}
	AddressType = Type{Kind: KindAddress}
	SignerType  = Type{Kind: KindSigner}
)

// VectorOf returns vector<elem>.
func VectorOf(elem Type) Type {
	return Type{Kind: KindVector, Elem: &elem}
}

// RefOf returns &inner.
func RefOf(inner Type) Type {
	return Type{Kind: KindReference, Elem: &inner}
}

// MutRefOf returns &mut inner.
func MutRefOf(inner Type) Type {
	return Type{Kind: KindMutableReference, Elem: &inner}
}

// TyParam returns the type parameter at position idx.
func TyParam(idx uint16) Type {
	return Type{Kind: KindTyParam, Index: idx}
}

// StructType returns an instantiation of the struct at index.
func StructType(index int, typeArgs ...Type) Type {
	return Type{Kind: KindStruct, StructIndex: index, TypeArgs: typeArgs}
}

// Subst replaces type parameters in t with the given arguments.
func (t Type) Subst(args []Type) (Type, error) {
	switch t.Kind {
	case KindTyParam:
		if int(t.Index) >= len(args) {
			return Type{}, fmt.Errorf("type parameter %d out of range (%d arguments)", t.Index, len(args))
		}
		return args[t.Index], nil
	case KindVector, KindReference, KindMutableReference:
		inner, err := t.Elem.Subst(args)
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: t.Kind, Elem: &inner}, nil
	case KindStruct:
		if len(t.TypeArgs) == 0 {
			return t, nil
		}
		sub := make([]Type, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			s, err := a.Subst(args)
			if err != nil {
				return Type{}, err
			}
			sub[i] = s
		}
		return Type{Kind: KindStruct, StructIndex: t.StructIndex, TypeArgs: sub}, nil
	default:
		return t, nil
	}
}

// String renders the type for diagnostics. Struct types print their index
// because names live in the loader.
func (t Type) String() string {
	switch t.Kind {
	case KindVector:
		return "vector<" + t.Elem.String() + ">"
	case KindReference:
		return "&" + t.Elem.String()
	case KindMutableReference:
		return "&mut " + t.Elem.String()
	case KindTyParam:
		return fmt.Sprintf("T%d", t.Index)
	case KindStruct:
		s := fmt.Sprintf("struct#%d", t.StructIndex)
		if len(t.TypeArgs) > 0 {
			parts := make([]string, len(t.TypeArgs))
			for i, a := range t.TypeArgs {
				parts[i] = a.String()
			}
			s += "<" + strings.Join(parts, ", ") + ">"
		}
		return s
	default:
		return t.Kind.String()
	}
}
