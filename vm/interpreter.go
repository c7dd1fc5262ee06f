package vm

import (
	"fmt"
	"io"
	"strings"

	"github.com/reglet-dev/nativevm/domain/entities"
	"github.com/reglet-dev/nativevm/domain/ports"
	"github.com/reglet-dev/nativevm/natives"
)

// Frame is one entry of the call stack.
type Frame struct {
	TypeArgs []entities.Type
	Function natives.FunctionID
}

// Interpreter holds the call stack of a session.
type Interpreter struct {
	frames []Frame
}

var _ ports.Interpreter = (*Interpreter)(nil)

// PushFrame enters a call.
func (i *Interpreter) PushFrame(f Frame) {
	i.frames = append(i.frames, f)
}

// PopFrame leaves the innermost call.
func (i *Interpreter) PopFrame() {
	if len(i.frames) > 0 {
		i.frames = i.frames[:len(i.frames)-1]
	}
}

// Depth returns the number of active frames.
func (i *Interpreter) Depth() int {
	return len(i.frames)
}

// DebugPrintStackTrace writes one line per frame, innermost first:
//
//	#0 0x1::vector::length<u64>
//	#1 0x2::app::main
func (i *Interpreter) DebugPrintStackTrace(w io.Writer, loader ports.Loader) error {
	for depth := 0; depth < len(i.frames); depth++ {
		f := i.frames[len(i.frames)-1-depth]
		line := f.Function.String()
		if len(f.TypeArgs) > 0 {
			tags := make([]string, len(f.TypeArgs))
			for j, ty := range f.TypeArgs {
				tag, err := loader.TypeToTypeTag(ty)
				if err != nil {
					return err
				}
				tags[j] = tag.String()
			}
			line += "<" + strings.Join(tags, ", ") + ">"
		}
		if _, err := fmt.Fprintf(w, "#%d %s\n", depth, line); err != nil {
			return err
		}
	}
	return nil
}
