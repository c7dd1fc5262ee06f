// Package wazero backs native functions with exports of a WebAssembly module
// run by the wazero runtime.
//
// Two shapes of export are supported:
//
//   - numeric exports taking and returning only i64 values, exposed with
//     Native; each parameter is a u64 argument and each result a u64 value
//   - byte exports of type (i64) -> i64, exposed with BytesNative; the
//     argument and result are vector<u8> passed through guest memory as a
//     packed pointer and length (upper 32 bits pointer, lower 32 bits length)
//
// Byte exports need the guest to export "memory" and an "allocate" function
// returning a buffer of the requested size.
//
// # Basic Usage
//
//	runtime := wazero.NewRuntime(ctx)
//	mod, err := nvwazero.LoadModule(ctx, runtime, wasmBytes)
//	if err != nil {
//	    return err
//	}
//	add, err := mod.Native("add", gas.NativeWasmCall)
//	if err != nil {
//	    return err
//	}
//	table := natives.MustMakeTable(addr, []natives.RawEntry{
//	    {Module: "math", Function: "add", Func: add},
//	})
//
// A trap inside the guest is reported as WASM_EXECUTION_FAILURE, an invariant
// violation: a host-supplied implementation failed.
package wazero
