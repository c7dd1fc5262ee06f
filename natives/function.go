package natives

import (
	"fmt"

	"github.com/reglet-dev/nativevm/domain/entities"
)

// NativeFunction is a natively implemented function. Implementations hold no
// state of their own; everything they touch goes through ctx.
//
// A returned error is fatal to the calling execution. Conditions the calling
// code should observe are reported with Abort.
type NativeFunction func(ctx *NativeContext, tyArgs []entities.Type, args *Args) (NativeResult, error)

// FunctionID names a native function.
type FunctionID struct {
	Module   entities.Identifier
	Function entities.Identifier
	Address  entities.AccountAddress
}

func (id FunctionID) String() string {
	return fmt.Sprintf("%s::%s::%s", id.Address, id.Module, id.Function)
}

// NativeResult is what a native reports back to the interpreter.
type NativeResult struct {
	Values    []entities.Value
	AbortCode *uint64
	Cost      uint64
}

// Ok is a successful result returning values.
func Ok(cost uint64, values ...entities.Value) NativeResult {
	return NativeResult{Cost: cost, Values: values}
}

// Abort is a native-level abort with code. The calling code observes it as
// an ordinary abort.
func Abort(cost uint64, code uint64) NativeResult {
	return NativeResult{Cost: cost, AbortCode: &code}
}

// Aborted returns the abort code, if any.
func (r NativeResult) Aborted() (uint64, bool) {
	if r.AbortCode == nil {
		return 0, false
	}
	return *r.AbortCode, true
}
