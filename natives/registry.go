package natives

import (
	"cmp"
	"slices"

	"github.com/reglet-dev/nativevm/domain/entities"
	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
)

// Registry is an immutable address → module → function lookup of native
// functions. Once created via NewRegistry nothing can be added or removed,
// so concurrent lookups need no locking.
type Registry struct {
	funcs map[entities.AccountAddress]map[string]map[string]NativeFunction
	ids   []FunctionID
}

// RegistryOption is a functional option for configuring a Registry.
type RegistryOption func(*registryBuilder)

// registryBuilder accumulates configuration during registry construction.
type registryBuilder struct {
	tables     []Table
	middleware []Middleware
}

// NewRegistry builds a registry from table plus any tables added with
// WithTable. The first (address, module, function) triple seen twice fails
// the whole build with DUPLICATE_NATIVE_FUNCTION and no registry is returned.
//
// Example usage:
//
//	registry, err := NewRegistry(stdlib.Table(entities.AddressOne),
//	    WithMiddleware(PanicRecoveryMiddleware(), LoggingMiddleware(logger)),
//	)
func NewRegistry(table Table, opts ...RegistryOption) (*Registry, error) {
	b := &registryBuilder{tables: []Table{table}}
	for _, opt := range opts {
		opt(b)
	}

	funcs := make(map[entities.AccountAddress]map[string]map[string]NativeFunction)
	var ids []FunctionID
	for _, t := range b.tables {
		for _, e := range t {
			if e.Func == nil {
				return nil, vmerrors.Newf(vmerrors.InvalidNativeFunction,
					"native function %s has no implementation", e.FunctionID)
			}
			modules, ok := funcs[e.Address]
			if !ok {
				modules = make(map[string]map[string]NativeFunction)
				funcs[e.Address] = modules
			}
			fns, ok := modules[e.Module.String()]
			if !ok {
				fns = make(map[string]NativeFunction)
				modules[e.Module.String()] = fns
			}
			if _, exists := fns[e.Function.String()]; exists {
				return nil, vmerrors.Newf(vmerrors.DuplicateNativeFunction,
					"native function %s registered twice", e.FunctionID)
			}
			fns[e.Function.String()] = wrap(e.Func, b.middleware)
			ids = append(ids, e.FunctionID)
		}
	}

	slices.SortFunc(ids, compareIDs)
	return &Registry{funcs: funcs, ids: ids}, nil
}

// wrap applies middleware in reverse so the first one wraps outermost.
func wrap(fn NativeFunction, middleware []Middleware) NativeFunction {
	for i := len(middleware) - 1; i >= 0; i-- {
		fn = middleware[i](fn)
	}
	return fn
}

func compareIDs(a, b FunctionID) int {
	if c := slices.Compare(a.Address[:], b.Address[:]); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Module.String(), b.Module.String()); c != 0 {
		return c
	}
	return cmp.Compare(a.Function.String(), b.Function.String())
}

// Resolve returns the native registered under the triple. A miss is reported
// with false; whether that is an error is up to the caller.
func (r *Registry) Resolve(addr entities.AccountAddress, module, function string) (NativeFunction, bool) {
	fn, ok := r.funcs[addr][module][function]
	return fn, ok
}

// Len returns the number of registered natives.
func (r *Registry) Len() int {
	return len(r.ids)
}

// Entries returns the registered identities in sorted order.
func (r *Registry) Entries() []FunctionID {
	return slices.Clone(r.ids)
}

// WithTable adds another table to the registry. Duplicates across tables are
// detected like duplicates within one.
func WithTable(t Table) RegistryOption {
	return func(b *registryBuilder) {
		b.tables = append(b.tables, t)
	}
}

// WithMiddleware adds middleware to the registry.
// Middleware executes in FIFO order (first added wraps first).
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}
