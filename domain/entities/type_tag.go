package entities

import "strings"

// StructTag is the fully qualified, serializable name of a struct instantiation.
type StructTag struct {
	Module     Identifier
	Name       Identifier
	TypeParams []TypeTag
	Address    AccountAddress
}

func (s StructTag) String() string {
	var b strings.Builder
	b.WriteString(s.Address.String())
	b.WriteString("::")
	b.WriteString(s.Module.String())
	b.WriteString("::")
	b.WriteString(s.Name.String())
	if len(s.TypeParams) > 0 {
		b.WriteByte('<')
		for i, p := range s.TypeParams {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteByte('>')
	}
	return b.String()
}

// TypeTag is the serializable identity of a fully instantiated type.
// It never contains references or type parameters.
type TypeTag struct {
	Elem   *TypeTag
	Struct *StructTag
	Kind   TypeKind
}

// VectorTag returns vector<elem>.
func VectorTag(elem TypeTag) TypeTag {
	return TypeTag{Kind: KindVector, Elem: &elem}
}

// StructTypeTag wraps a struct tag.
func StructTypeTag(s StructTag) TypeTag {
	return TypeTag{Kind: KindStruct, Struct: &s}
}

func (t TypeTag) String() string {
	switch t.Kind {
	case KindVector:
		return "vector<" + t.Elem.String() + ">"
	case KindStruct:
		return t.Struct.String()
	default:
		return t.Kind.String()
	}
}
