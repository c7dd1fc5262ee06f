package natives

import (
	"fmt"
	"log/slog"

	"github.com/reglet-dev/nativevm/domain/entities"
	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
)

// Middleware wraps a NativeFunction to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
//
// Example usage:
//
//	tracing := func(next NativeFunction) NativeFunction {
//	    return func(ctx *NativeContext, tyArgs []entities.Type, args *Args) (NativeResult, error) {
//	        slog.Debug("calling native", "function", ctx.Function())
//	        return next(ctx, tyArgs, args)
//	    }
//	}
type Middleware func(next NativeFunction) NativeFunction

// PanicRecoveryMiddleware converts a panicking native into a
// NATIVE_FUNCTION_PANICKED invariant violation instead of crashing the host.
func PanicRecoveryMiddleware() Middleware {
	return func(next NativeFunction) NativeFunction {
		return func(ctx *NativeContext, tyArgs []entities.Type, args *Args) (res NativeResult, err error) {
			defer func() {
				if r := recover(); r != nil {
					res = NativeResult{}
					err = vmerrors.Wrap(vmerrors.NativeFunctionPanicked,
						fmt.Errorf("native %s panicked: %v", ctx.Function(), r))
				}
			}()
			return next(ctx, tyArgs, args)
		}
	}
}

// LoggingMiddleware logs native invocations to logger. Calls are logged at
// debug, aborts at info and errors at error level.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next NativeFunction) NativeFunction {
		return func(ctx *NativeContext, tyArgs []entities.Type, args *Args) (NativeResult, error) {
			fn := ctx.Function().String()
			logger.Debug("invoking native function", "function", fn, "args", args.Len())

			res, err := next(ctx, tyArgs, args)
			switch code, aborted := res.Aborted(); {
			case err != nil:
				logger.Error("native function failed", "function", fn, "error", err)
			case aborted:
				logger.Info("native function aborted", "function", fn, "abort_code", code, "cost", res.Cost)
			default:
				logger.Debug("native function completed", "function", fn, "cost", res.Cost)
			}
			return res, err
		}
	}
}
