// Package natives is the boundary between the interpreter and natively
// implemented functions.
//
// # Registry
//
// A Registry maps (address, module, function) to a NativeFunction. It is
// built once from a Table and never changes afterwards, so lookups need no
// locking:
//
//	table := natives.MustMakeTable(entities.AddressOne, []natives.RawEntry{
//	    {Module: "vector", Function: "length", Func: vectorLength},
//	})
//	registry, err := natives.NewRegistry(table,
//	    natives.WithMiddleware(natives.PanicRecoveryMiddleware()),
//	)
//
// # Context
//
// Every native receives a *NativeContext for the duration of one call. The
// context exposes the active cost table, the event log, type conversion and
// the host extensions. SaveEvent and TypeToTypeLayout fold ordinary
// collaborator failures into soft results and propagate only invariant
// violations. A context is expired when Invoke returns.
package natives
