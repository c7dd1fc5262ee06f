package loader

import (
	"github.com/reglet-dev/nativevm/domain/entities"
	"github.com/reglet-dev/nativevm/domain/ports"
)

// Resolver is the per-session view of a shared Loader.
type Resolver struct {
	loader *Loader
}

var _ ports.Resolver = (*Resolver)(nil)

// NewResolver returns a resolver over l.
func NewResolver(l *Loader) *Resolver {
	return &Resolver{loader: l}
}

func (r *Resolver) Loader() ports.Loader {
	return r.loader
}

func (r *Resolver) TypeToTypeLayout(ty entities.Type) (entities.TypeLayout, error) {
	return r.loader.TypeToTypeLayout(ty)
}
