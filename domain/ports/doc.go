// Package ports defines the collaborator seams of the native boundary.
// The execution context depends only on these abstractions; the interpreter,
// loader and data store implementations live elsewhere and satisfy them.
package ports
