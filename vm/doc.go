// Package vm drives native calls the way the interpreter does: it resolves
// the native in a Registry, pushes a call frame, runs the native with a fresh
// context and charges the reported cost.
//
// A Runtime is shared and immutable. Each execution gets its own Session,
// which is used from a single goroutine.
package vm
