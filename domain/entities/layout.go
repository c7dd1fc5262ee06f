package entities

import "strings"

// TypeLayout describes how a value of a type is serialized.
type TypeLayout struct {
	Elem   *TypeLayout
	Fields []TypeLayout
	Kind   TypeKind
}

// PrimitiveLayout returns the layout for a primitive kind.
func PrimitiveLayout(k TypeKind) TypeLayout {
	return TypeLayout{Kind: k}
}

// VectorLayout returns the layout of vector<elem>.
func VectorLayout(elem TypeLayout) TypeLayout {
	return TypeLayout{Kind: KindVector, Elem: &elem}
}

// StructLayout returns the layout of a struct with the given field layouts.
func StructLayout(fields ...TypeLayout) TypeLayout {
	return TypeLayout{Kind: KindStruct, Fields: fields}
}

func (l TypeLayout) String() string {
	switch l.Kind {
	case KindVector:
		return "vector<" + l.Elem.String() + ">"
	case KindStruct:
		parts := make([]string, len(l.Fields))
		for i, f := range l.Fields {
			parts[i] = f.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return l.Kind.String()
	}
}
