package stdlib

import (
	"github.com/reglet-dev/nativevm/domain/entities"
	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
	"github.com/reglet-dev/nativevm/gas"
	"github.com/reglet-dev/nativevm/natives"
)

func writeToEventStore(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args) (natives.NativeResult, error) {
	if err := natives.CheckArity(tyArgs, args, 1, 3); err != nil {
		return natives.NativeResult{}, err
	}
	msg, _ := args.PopBack()
	seq, err := natives.PopBackAs[entities.U64](args)
	if err != nil {
		return natives.NativeResult{}, err
	}
	guidVec, err := natives.PopBackAs[*entities.Vector](args)
	if err != nil {
		return natives.NativeResult{}, err
	}
	guid, ok := guidVec.Bytes()
	if !ok {
		return natives.NativeResult{}, vmerrors.Newf(vmerrors.InternalTypeError, "event guid is not vector<u8>")
	}

	cost := gas.NativeGasCost(ctx.CostTable(), gas.NativeEmitEvent, len(guid))
	saved, err := ctx.SaveEvent(guid, uint64(seq), tyArgs[0], msg)
	if err != nil {
		return natives.NativeResult{}, err
	}
	if !saved {
		return natives.Abort(cost, EEventRejected), nil
	}
	return natives.Ok(cost), nil
}
