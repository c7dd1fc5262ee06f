package stdlib

import (
	"github.com/reglet-dev/nativevm/domain/entities"
	"github.com/reglet-dev/nativevm/gas"
	"github.com/reglet-dev/nativevm/natives"
)

func signerBorrowAddress(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args) (natives.NativeResult, error) {
	if err := natives.CheckArity(tyArgs, args, 0, 1); err != nil {
		return natives.NativeResult{}, err
	}
	s, err := natives.PopBackAs[entities.Signer](args)
	if err != nil {
		return natives.NativeResult{}, err
	}
	cost := gas.NativeGasCost(ctx.CostTable(), gas.NativeSignerBorrow, 1)
	return natives.Ok(cost, s.Address), nil
}
