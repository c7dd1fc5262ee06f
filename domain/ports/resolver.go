package ports

import "github.com/reglet-dev/nativevm/domain/entities"

// Loader translates loaded runtime types into their serializable forms.
type Loader interface {
	// TypeToTypeTag returns the identity tag of a fully instantiated type.
	TypeToTypeTag(ty entities.Type) (entities.TypeTag, error)

	// TypeToTypeLayout returns the serialization layout of ty.
	TypeToTypeLayout(ty entities.Type) (entities.TypeLayout, error)
}

// Resolver is the loader handle scoped to the function being executed.
type Resolver interface {
	Loader() Loader
	TypeToTypeLayout(ty entities.Type) (entities.TypeLayout, error)
}
