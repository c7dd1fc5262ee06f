// Package loader keeps the struct definitions of loaded modules and converts
// runtime types into tags and layouts.
package loader

import (
	"sync"

	"github.com/reglet-dev/nativevm/domain/entities"
	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
	"github.com/reglet-dev/nativevm/domain/ports"
)

// DefaultMaxTypeDepth bounds the nesting of vectors and structs in a layout.
const DefaultMaxTypeDepth = 128

// StructDef is a struct declaration. Fields may refer to the struct's own
// type parameters with entities.TyParam.
type StructDef struct {
	Module     entities.Identifier
	Name       entities.Identifier
	Fields     []entities.Type
	TypeParams int
	Address    entities.AccountAddress
}

// Option configures a Loader.
type Option func(*Loader)

// WithMaxTypeDepth sets the deepest layout the loader computes.
func WithMaxTypeDepth(depth int) Option {
	return func(l *Loader) {
		l.maxDepth = depth
	}
}

// Loader is safe for concurrent use. Structs are usually defined before the
// first session starts, but defining more later is allowed.
type Loader struct {
	layouts  map[string]entities.TypeLayout
	structs  []StructDef
	maxDepth int
	mu       sync.RWMutex
}

var _ ports.Loader = (*Loader)(nil)

// New returns an empty loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		layouts:  make(map[string]entities.TypeLayout),
		maxDepth: DefaultMaxTypeDepth,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DefineStruct adds def and returns the index used by entities.StructType.
func (l *Loader) DefineStruct(def StructDef) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.structs = append(l.structs, def)
	return len(l.structs) - 1
}

// Struct returns the definition at index.
func (l *Loader) Struct(index int) (StructDef, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if index < 0 || index >= len(l.structs) {
		return StructDef{}, false
	}
	return l.structs[index], true
}

func (l *Loader) structFor(ty entities.Type) (StructDef, error) {
	def, ok := l.Struct(ty.StructIndex)
	if !ok {
		return StructDef{}, vmerrors.Newf(vmerrors.UnknownStructType, "no struct at index %d", ty.StructIndex)
	}
	if len(ty.TypeArgs) != def.TypeParams {
		return StructDef{}, vmerrors.Newf(vmerrors.InternalTypeError,
			"%s::%s takes %d type arguments, got %d", def.Module, def.Name, def.TypeParams, len(ty.TypeArgs))
	}
	return def, nil
}

// TypeToTypeTag converts a fully instantiated type to its tag. Type
// parameters and references have no tag; asking for one is an invariant
// violation.
func (l *Loader) TypeToTypeTag(ty entities.Type) (entities.TypeTag, error) {
	switch {
	case ty.Kind.IsPrimitive():
		return entities.TypeTag{Kind: ty.Kind}, nil
	case ty.Kind == entities.KindVector:
		elem, err := l.TypeToTypeTag(*ty.Elem)
		if err != nil {
			return entities.TypeTag{}, err
		}
		return entities.VectorTag(elem), nil
	case ty.Kind == entities.KindStruct:
		def, err := l.structFor(ty)
		if err != nil {
			return entities.TypeTag{}, err
		}
		params := make([]entities.TypeTag, len(ty.TypeArgs))
		for i, arg := range ty.TypeArgs {
			if params[i], err = l.TypeToTypeTag(arg); err != nil {
				return entities.TypeTag{}, err
			}
		}
		return entities.StructTypeTag(entities.StructTag{
			Address:    def.Address,
			Module:     def.Module,
			Name:       def.Name,
			TypeParams: params,
		}), nil
	default:
		return entities.TypeTag{}, vmerrors.Newf(vmerrors.UnknownInvariantViolationError, "no type tag for %s", ty)
	}
}

// TypeToTypeLayout computes the layout of ty.
//
// A type parameter has no layout (TYPE_LAYOUT_UNAVAILABLE) and a type nested
// deeper than the configured limit fails with VM_MAX_TYPE_DEPTH_REACHED.
// Both are ordinary failures. References and unknown structs are invariant
// violations.
func (l *Loader) TypeToTypeLayout(ty entities.Type) (entities.TypeLayout, error) {
	key := ty.String()
	l.mu.RLock()
	cached, ok := l.layouts[key]
	l.mu.RUnlock()
	if ok {
		return cached, nil
	}

	layout, err := l.layout(ty, 1)
	if err != nil {
		return entities.TypeLayout{}, err
	}
	l.mu.Lock()
	l.layouts[key] = layout
	l.mu.Unlock()
	return layout, nil
}

func (l *Loader) layout(ty entities.Type, depth int) (entities.TypeLayout, error) {
	if depth > l.maxDepth {
		return entities.TypeLayout{}, vmerrors.Newf(vmerrors.VMMaxTypeDepthReached, "type nested deeper than %d", l.maxDepth)
	}
	switch ty.Kind {
	case entities.KindVector:
		elem, err := l.layout(*ty.Elem, depth+1)
		if err != nil {
			return entities.TypeLayout{}, err
		}
		return entities.VectorLayout(elem), nil
	case entities.KindStruct:
		def, err := l.structFor(ty)
		if err != nil {
			return entities.TypeLayout{}, err
		}
		fields := make([]entities.TypeLayout, len(def.Fields))
		for i, f := range def.Fields {
			inst, err := f.Subst(ty.TypeArgs)
			if err != nil {
				return entities.TypeLayout{}, vmerrors.Wrap(vmerrors.InternalTypeError, err)
			}
			if fields[i], err = l.layout(inst, depth+1); err != nil {
				return entities.TypeLayout{}, err
			}
		}
		return entities.StructLayout(fields...), nil
	case entities.KindTyParam:
		return entities.TypeLayout{}, vmerrors.Newf(vmerrors.TypeLayoutUnavailable, "type parameter %s has no layout", ty)
	case entities.KindReference, entities.KindMutableReference:
		return entities.TypeLayout{}, vmerrors.Newf(vmerrors.UnknownInvariantViolationError, "reference type %s has no layout", ty)
	default:
		return entities.PrimitiveLayout(ty.Kind), nil
	}
}
