package stdlib

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/reglet-dev/nativevm/domain/entities"
	"github.com/reglet-dev/nativevm/gas"
	"github.com/reglet-dev/nativevm/natives"
)

// DebugSink is the host extension receiving debug output. Without one the
// debug natives do nothing.
type DebugSink struct {
	w  io.Writer
	mu sync.Mutex
}

// NewDebugSink returns a sink writing to w.
func NewDebugSink(w io.Writer) *DebugSink {
	return &DebugSink{w: w}
}

// Printf writes one formatted line.
func (d *DebugSink) Printf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, format+"\n", args...)
}

func (d *DebugSink) write(p []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, _ = d.w.Write(p)
}

func debugPrint(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args) (natives.NativeResult, error) {
	if err := natives.CheckArity(tyArgs, args, 1, 1); err != nil {
		return natives.NativeResult{}, err
	}
	val, _ := args.PopBack()
	if sink, ok := natives.Extension[*DebugSink](ctx.Extensions()); ok {
		sink.Printf("[debug] %s", entities.FormatValue(val))
	}
	return natives.Ok(gas.NativeGasCost(ctx.CostTable(), gas.NativeDebugPrint, 1)), nil
}

func debugPrintStackTrace(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args) (natives.NativeResult, error) {
	if err := natives.CheckArity(tyArgs, args, 0, 0); err != nil {
		return natives.NativeResult{}, err
	}
	cost := gas.NativeGasCost(ctx.CostTable(), gas.NativeDebugPrintStackTrace, 1)
	sink, ok := natives.Extension[*DebugSink](ctx.Extensions())
	if !ok {
		return natives.Ok(cost), nil
	}

	var buf bytes.Buffer
	if err := ctx.PrintStackTrace(&buf); err != nil {
		return natives.NativeResult{}, err
	}
	sink.write(buf.Bytes())
	return natives.Ok(cost), nil
}
