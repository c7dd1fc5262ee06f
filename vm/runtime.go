package vm

import (
	"log/slog"

	"github.com/reglet-dev/nativevm/domain/entities"
	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
	"github.com/reglet-dev/nativevm/domain/ports"
	"github.com/reglet-dev/nativevm/natives"
)

// GasMeter is the gas status of a session. It prices natives through the
// cost table and is charged with what they report.
type GasMeter interface {
	ports.GasStatus
	Charge(units uint64) error
}

// Runtime pairs a native registry with the type resolver of the loaded code.
type Runtime struct {
	registry *natives.Registry
	resolver ports.Resolver
	logger   *slog.Logger
}

// NewRuntime returns a runtime dispatching to registry.
func NewRuntime(registry *natives.Registry, resolver ports.Resolver, opts ...Option) *Runtime {
	r := &Runtime{registry: registry, resolver: resolver}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Registry returns the registry natives are resolved in.
func (r *Runtime) Registry() *natives.Registry {
	return r.registry
}

// NewSession starts an execution. A nil extension set is treated as empty.
func (r *Runtime) NewSession(store ports.DataStore, meter GasMeter, ext *natives.Extensions) *Session {
	if ext == nil {
		ext, _ = natives.NewExtensions()
	}
	return &Session{
		runtime:     r,
		store:       store,
		meter:       meter,
		extensions:  ext,
		interpreter: &Interpreter{},
	}
}

// Outcome is the result of one native call.
type Outcome struct {
	AbortCode *uint64
	Values    []entities.Value
	GasUsed   uint64
}

// Aborted returns the abort code, if any.
func (o *Outcome) Aborted() (uint64, bool) {
	if o.AbortCode == nil {
		return 0, false
	}
	return *o.AbortCode, true
}

// Session is one execution against a Runtime. It is not safe for concurrent
// use.
type Session struct {
	runtime     *Runtime
	store       ports.DataStore
	meter       GasMeter
	extensions  *natives.Extensions
	interpreter *Interpreter
}

// Interpreter returns the call stack of the session.
func (s *Session) Interpreter() *Interpreter {
	return s.interpreter
}

// Extensions returns the host extensions of the session.
func (s *Session) Extensions() *natives.Extensions {
	return s.extensions
}

// Events returns the events emitted so far.
func (s *Session) Events() []entities.Event {
	return s.store.Events()
}

// CallNative calls the native registered under addr::module::function.
//
// An unregistered function fails with FUNCTION_RESOLUTION_FAILURE. A native
// abort is reported in the Outcome, not as an error; the cost of an aborted
// call is still charged.
func (s *Session) CallNative(
	addr entities.AccountAddress,
	module, function string,
	tyArgs []entities.Type,
	args []entities.Value,
) (*Outcome, error) {
	fn, ok := s.runtime.registry.Resolve(addr, module, function)
	if !ok {
		return nil, vmerrors.Newf(vmerrors.FunctionResolutionFailure,
			"no native function %s::%s::%s", addr, module, function)
	}
	id := natives.FunctionID{
		Address:  addr,
		Module:   entities.MustIdentifier(module),
		Function: entities.MustIdentifier(function),
	}

	s.interpreter.PushFrame(Frame{Function: id, TypeArgs: tyArgs})
	defer s.interpreter.PopFrame()

	ctx := natives.NewContext(natives.ContextConfig{
		Interpreter: s.interpreter,
		DataStore:   s.store,
		GasStatus:   s.meter,
		Resolver:    s.runtime.resolver,
		Extensions:  s.extensions,
		Function:    id,
	})
	res, err := ctx.Invoke(fn, tyArgs, natives.NewArgs(args...))
	if err != nil {
		s.runtime.logger.Error("native call failed",
			"function", id.String(),
			"fatal", vmerrors.IsInvariantViolation(err),
			"error", err)
		return nil, err
	}
	if err := s.meter.Charge(res.Cost); err != nil {
		return nil, err
	}

	return &Outcome{Values: res.Values, GasUsed: res.Cost, AbortCode: res.AbortCode}, nil
}
