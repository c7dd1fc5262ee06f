package stdlib

import (
	"github.com/reglet-dev/nativevm/domain/entities"
	"github.com/reglet-dev/nativevm/gas"
	"github.com/reglet-dev/nativevm/natives"
)

// typeNameGet returns the canonical tag string of its type argument, e.g.
// "0x1::coin::Coin<u64>".
func typeNameGet(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args) (natives.NativeResult, error) {
	if err := natives.CheckArity(tyArgs, args, 1, 0); err != nil {
		return natives.NativeResult{}, err
	}
	tag, err := ctx.TypeToTypeTag(tyArgs[0])
	if err != nil {
		return natives.NativeResult{}, err
	}
	name := tag.String()
	cost := gas.NativeGasCost(ctx.CostTable(), gas.NativeTypeName, len(name))
	return natives.Ok(cost, entities.BytesVector([]byte(name))), nil
}
