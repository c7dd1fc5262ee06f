package stdlib

import (
	"github.com/reglet-dev/nativevm/domain/entities"
	"github.com/reglet-dev/nativevm/gas"
	"github.com/reglet-dev/nativevm/natives"
	"github.com/reglet-dev/nativevm/wireformat"
)

func bcsToBytes(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args) (natives.NativeResult, error) {
	if err := natives.CheckArity(tyArgs, args, 1, 1); err != nil {
		return natives.NativeResult{}, err
	}
	val, _ := args.PopBack()

	layout, err := ctx.TypeToTypeLayout(tyArgs[0])
	if err != nil {
		return natives.NativeResult{}, err
	}
	cost := gas.NativeGasCost(ctx.CostTable(), gas.NativeBCSToBytes, 1)
	if layout == nil {
		return natives.Abort(cost, EBCSSerializationFailure), nil
	}

	out, err := wireformat.Encode(*layout, val)
	if err != nil {
		return natives.Abort(cost, EBCSSerializationFailure), nil
	}
	cost = gas.NativeGasCost(ctx.CostTable(), gas.NativeBCSToBytes, len(out))
	return natives.Ok(cost, entities.BytesVector(out)), nil
}
