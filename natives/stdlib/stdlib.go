// Package stdlib provides the standard native functions: vector operations,
// hashing, BCS serialization, events, signers, type names and debugging.
//
// Natives are registered with Table under the standard library address and
// price themselves from the cost table of the calling context.
package stdlib

import (
	"github.com/reglet-dev/nativevm/domain/entities"
	"github.com/reglet-dev/nativevm/natives"
)

// Abort codes raised by the standard natives.
const (
	// EIndexOutOfBounds is raised by vector natives on a bad index and by
	// pop_back on an empty vector.
	EIndexOutOfBounds uint64 = 0x20000
	// ENotEmpty is raised by destroy_empty on a non-empty vector.
	ENotEmpty uint64 = 0x20001
	// EBCSSerializationFailure is raised by to_bytes when a value has no
	// layout or does not match it.
	EBCSSerializationFailure uint64 = 0x1C5
	// EEventRejected is raised by write_to_event_store when the store
	// declines the event.
	EEventRejected uint64 = 0
)

// Entries returns the raw registration list of the standard natives.
func Entries() []natives.RawEntry {
	return []natives.RawEntry{
		{Module: "vector", Function: "empty", Func: vectorEmpty},
		{Module: "vector", Function: "length", Func: vectorLength},
		{Module: "vector", Function: "borrow", Func: vectorBorrow},
		{Module: "vector", Function: "push_back", Func: vectorPushBack},
		{Module: "vector", Function: "pop_back", Func: vectorPopBack},
		{Module: "vector", Function: "destroy_empty", Func: vectorDestroyEmpty},
		{Module: "vector", Function: "swap", Func: vectorSwap},
		{Module: "hash", Function: "sha2_256", Func: sha2256},
		{Module: "hash", Function: "sha3_256", Func: sha3256},
		{Module: "bcs", Function: "to_bytes", Func: bcsToBytes},
		{Module: "event", Function: "write_to_event_store", Func: writeToEventStore},
		{Module: "signer", Function: "borrow_address", Func: signerBorrowAddress},
		{Module: "type_name", Function: "get", Func: typeNameGet},
		{Module: "debug", Function: "print", Func: debugPrint},
		{Module: "debug", Function: "print_stack_trace", Func: debugPrintStackTrace},
	}
}

// Table returns the standard natives registered under addr.
func Table(addr entities.AccountAddress) natives.Table {
	return natives.MustMakeTable(addr, Entries())
}
