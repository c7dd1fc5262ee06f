// Package entities provides the VM data model shared by the native boundary:
// account addresses, identifiers, runtime types, type tags and layouts,
// runtime values and event records.
package entities
