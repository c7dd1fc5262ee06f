package stdlib

import (
	"github.com/reglet-dev/nativevm/domain/entities"
	"github.com/reglet-dev/nativevm/gas"
	"github.com/reglet-dev/nativevm/natives"
)

func vectorEmpty(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args) (natives.NativeResult, error) {
	if err := natives.CheckArity(tyArgs, args, 1, 0); err != nil {
		return natives.NativeResult{}, err
	}
	cost := gas.NativeGasCost(ctx.CostTable(), gas.NativeEmpty, 1)
	return natives.Ok(cost, entities.NewVector()), nil
}

// vectorLength accepts the element type argument but does not need it, so
// callers may omit it.
func vectorLength(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args) (natives.NativeResult, error) {
	if err := natives.CheckArity(tyArgs, args, min(len(tyArgs), 1), 1); err != nil {
		return natives.NativeResult{}, err
	}
	vec, err := natives.PopBackAs[*entities.Vector](args)
	if err != nil {
		return natives.NativeResult{}, err
	}
	cost := gas.NativeGasCost(ctx.CostTable(), gas.NativeLength, 1)
	return natives.Ok(cost, entities.U64(vec.Len())), nil
}

func vectorBorrow(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args) (natives.NativeResult, error) {
	if err := natives.CheckArity(tyArgs, args, 1, 2); err != nil {
		return natives.NativeResult{}, err
	}
	idx, err := natives.PopBackAs[entities.U64](args)
	if err != nil {
		return natives.NativeResult{}, err
	}
	vec, err := natives.PopBackAs[*entities.Vector](args)
	if err != nil {
		return natives.NativeResult{}, err
	}

	cost := gas.NativeGasCost(ctx.CostTable(), gas.NativeBorrow, 1)
	if uint64(idx) >= uint64(vec.Len()) {
		return natives.Abort(cost, EIndexOutOfBounds), nil
	}
	return natives.Ok(cost, entities.CopyValue(vec.Elems[idx])), nil
}

func vectorPushBack(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args) (natives.NativeResult, error) {
	if err := natives.CheckArity(tyArgs, args, 1, 2); err != nil {
		return natives.NativeResult{}, err
	}
	elem, _ := args.PopBack()
	vec, err := natives.PopBackAs[*entities.Vector](args)
	if err != nil {
		return natives.NativeResult{}, err
	}

	vec.Elems = append(vec.Elems, elem)
	return natives.Ok(gas.NativeGasCost(ctx.CostTable(), gas.NativePushBack, 1)), nil
}

func vectorPopBack(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args) (natives.NativeResult, error) {
	if err := natives.CheckArity(tyArgs, args, 1, 1); err != nil {
		return natives.NativeResult{}, err
	}
	vec, err := natives.PopBackAs[*entities.Vector](args)
	if err != nil {
		return natives.NativeResult{}, err
	}

	cost := gas.NativeGasCost(ctx.CostTable(), gas.NativePopBack, 1)
	if vec.Len() == 0 {
		return natives.Abort(cost, EIndexOutOfBounds), nil
	}
	last := vec.Len() - 1
	elem := vec.Elems[last]
	vec.Elems[last] = nil
	vec.Elems = vec.Elems[:last]
	return natives.Ok(cost, elem), nil
}

func vectorDestroyEmpty(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args) (natives.NativeResult, error) {
	if err := natives.CheckArity(tyArgs, args, 1, 1); err != nil {
		return natives.NativeResult{}, err
	}
	vec, err := natives.PopBackAs[*entities.Vector](args)
	if err != nil {
		return natives.NativeResult{}, err
	}

	cost := gas.NativeGasCost(ctx.CostTable(), gas.NativeDestroyEmpty, 1)
	if vec.Len() != 0 {
		return natives.Abort(cost, ENotEmpty), nil
	}
	return natives.Ok(cost), nil
}

func vectorSwap(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args) (natives.NativeResult, error) {
	if err := natives.CheckArity(tyArgs, args, 1, 3); err != nil {
		return natives.NativeResult{}, err
	}
	j, err := natives.PopBackAs[entities.U64](args)
	if err != nil {
		return natives.NativeResult{}, err
	}
	i, err := natives.PopBackAs[entities.U64](args)
	if err != nil {
		return natives.NativeResult{}, err
	}
	vec, err := natives.PopBackAs[*entities.Vector](args)
	if err != nil {
		return natives.NativeResult{}, err
	}

	cost := gas.NativeGasCost(ctx.CostTable(), gas.NativeSwap, 1)
	n := uint64(vec.Len())
	if uint64(i) >= n || uint64(j) >= n {
		return natives.Abort(cost, EIndexOutOfBounds), nil
	}
	vec.Elems[i], vec.Elems[j] = vec.Elems[j], vec.Elems[i]
	return natives.Ok(cost), nil
}
