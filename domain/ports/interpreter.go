package ports

import "io"

// Interpreter is the part of the bytecode interpreter a native may observe.
type Interpreter interface {
	// DebugPrintStackTrace writes the current call stack to w, innermost
	// frame first. The output is diagnostic and never part of a result.
	DebugPrintStackTrace(w io.Writer, loader Loader) error
}
