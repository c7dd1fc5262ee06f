package natives

import (
	"reflect"

	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
)

// ExtensionReader is read access to the host extensions of a call.
type ExtensionReader interface {
	// Lookup returns the extension registered under t. If t is an interface
	// type, the first registered extension implementing it is returned.
	Lookup(t reflect.Type) (any, bool)
	Len() int
}

// Extensions is a set of host-supplied values keyed by their dynamic type.
// The set of types is fixed at construction; values may be replaced.
type Extensions struct {
	byType map[reflect.Type]any
	order  []reflect.Type
}

// NewExtensions registers values under their dynamic types. Nil values and
// two values of the same type are rejected.
func NewExtensions(values ...any) (*Extensions, error) {
	e := &Extensions{byType: make(map[reflect.Type]any, len(values))}
	for _, v := range values {
		if v == nil {
			return nil, vmerrors.Newf(vmerrors.UnknownExtension, "nil extension")
		}
		t := reflect.TypeOf(v)
		if _, exists := e.byType[t]; exists {
			return nil, vmerrors.Newf(vmerrors.DuplicateExtension, "extension %s registered twice", t)
		}
		e.byType[t] = v
		e.order = append(e.order, t)
	}
	return e, nil
}

// Lookup returns the value registered under t, or for an interface type the
// first registered value implementing it.
func (e *Extensions) Lookup(t reflect.Type) (any, bool) {
	if v, ok := e.byType[t]; ok {
		return v, true
	}
	if t == nil || t.Kind() != reflect.Interface {
		return nil, false
	}
	for _, rt := range e.order {
		if rt.Implements(t) {
			return e.byType[rt], true
		}
	}
	return nil, false
}

// Len returns the number of registered extensions.
func (e *Extensions) Len() int {
	return len(e.order)
}

// Replace swaps the value stored under the dynamic type of v.
func (e *Extensions) Replace(v any) error {
	if v == nil {
		return vmerrors.Newf(vmerrors.UnknownExtension, "nil extension")
	}
	t := reflect.TypeOf(v)
	if _, ok := e.byType[t]; !ok {
		return vmerrors.Newf(vmerrors.UnknownExtension, "extension %s is not registered", t)
	}
	e.byType[t] = v
	return nil
}

// readOnly hides the mutating methods of Extensions.
type readOnly struct {
	e *Extensions
}

func (r readOnly) Lookup(t reflect.Type) (any, bool) { return r.e.Lookup(t) }
func (r readOnly) Len() int                          { return r.e.Len() }

// Extension returns the extension of type T.
func Extension[T any](r ExtensionReader) (T, bool) {
	var zero T
	v, ok := r.Lookup(reflect.TypeFor[T]())
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
