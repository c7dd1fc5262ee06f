package stdlib

import (
	"crypto/sha256"

	"golang.org/x/crypto/sha3"

	"github.com/reglet-dev/nativevm/domain/entities"
	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
	"github.com/reglet-dev/nativevm/gas"
	"github.com/reglet-dev/nativevm/natives"
)

func sha2256(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args) (natives.NativeResult, error) {
	return hashNative(ctx, tyArgs, args, gas.NativeSha2256, func(b []byte) []byte {
		sum := sha256.Sum256(b)
		return sum[:]
	})
}

func sha3256(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args) (natives.NativeResult, error) {
	return hashNative(ctx, tyArgs, args, gas.NativeSha3256, func(b []byte) []byte {
		sum := sha3.Sum256(b)
		return sum[:]
	})
}

// hashNative charges per input byte.
func hashNative(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args,
	idx gas.NativeCostIndex, sum func([]byte) []byte,
) (natives.NativeResult, error) {
	if err := natives.CheckArity(tyArgs, args, 0, 1); err != nil {
		return natives.NativeResult{}, err
	}
	vec, err := natives.PopBackAs[*entities.Vector](args)
	if err != nil {
		return natives.NativeResult{}, err
	}
	input, ok := vec.Bytes()
	if !ok {
		return natives.NativeResult{}, vmerrors.Newf(vmerrors.InternalTypeError, "hash input is not vector<u8>")
	}

	cost := gas.NativeGasCost(ctx.CostTable(), idx, len(input))
	return natives.Ok(cost, entities.BytesVector(sum(input))), nil
}
