package natives

import (
	"errors"
	"io"
	"slices"

	"github.com/reglet-dev/nativevm/domain/entities"
	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
	"github.com/reglet-dev/nativevm/domain/ports"
	"github.com/reglet-dev/nativevm/gas"
)

// ContextConfig holds the collaborators of one native call. All fields
// except Extensions are required.
type ContextConfig struct {
	Interpreter ports.Interpreter
	DataStore   ports.DataStore
	GasStatus   ports.GasStatus
	Resolver    ports.Resolver
	Extensions  *Extensions
	Function    FunctionID
}

// NativeContext is the view of VM state handed to a native for one call.
// It is not safe for concurrent use.
type NativeContext struct {
	interpreter ports.Interpreter
	dataStore   ports.DataStore
	gasStatus   ports.GasStatus
	resolver    ports.Resolver
	extensions  *Extensions
	function    FunctionID
	expired     bool
}

// NewContext returns a live context over cfg.
func NewContext(cfg ContextConfig) *NativeContext {
	ext := cfg.Extensions
	if ext == nil {
		ext, _ = NewExtensions()
	}
	return &NativeContext{
		interpreter: cfg.Interpreter,
		dataStore:   cfg.DataStore,
		gasStatus:   cfg.GasStatus,
		resolver:    cfg.Resolver,
		extensions:  ext,
		function:    cfg.Function,
	}
}

// Invoke runs fn with the context and expires it afterwards, also when fn
// panics. A non-status error returned by fn is reported as an invariant
// violation.
func (c *NativeContext) Invoke(fn NativeFunction, tyArgs []entities.Type, args *Args) (NativeResult, error) {
	if err := c.live(); err != nil {
		return NativeResult{}, err
	}
	defer func() { c.expired = true }()

	res, err := fn(c, tyArgs, args)
	if err != nil {
		return NativeResult{}, classified(err)
	}
	return res, nil
}

func (c *NativeContext) live() error {
	if c.expired {
		return vmerrors.Newf(vmerrors.NativeContextExpired, "context of %s used after its call returned", c.function)
	}
	return nil
}

func (c *NativeContext) mustBeLive() {
	if err := c.live(); err != nil {
		panic(err)
	}
}

// Function returns the identity of the native being run.
func (c *NativeContext) Function() FunctionID {
	return c.function
}

// PrintStackTrace writes the interpreter call stack to w. It is a
// diagnostic and has no effect on execution.
func (c *NativeContext) PrintStackTrace(w io.Writer) error {
	if err := c.live(); err != nil {
		return err
	}
	if err := c.interpreter.DebugPrintStackTrace(w, c.resolver.Loader()); err != nil {
		return classified(err)
	}
	return nil
}

// CostTable returns the active gas schedule.
func (c *NativeContext) CostTable() *gas.CostTable {
	c.mustBeLive()
	return c.gasStatus.CostTable()
}

// SaveEvent appends an event to the log. It returns true when the store
// accepted the event and false when the store rejected it for an ordinary
// reason. Only invariant violations are returned as errors.
func (c *NativeContext) SaveEvent(guid []byte, seqNum uint64, ty entities.Type, val entities.Value) (bool, error) {
	if err := c.live(); err != nil {
		return false, err
	}
	if err := c.dataStore.EmitEvent(guid, seqNum, ty, val); err != nil {
		return false, fatalError(err)
	}
	return true, nil
}

// Events returns a copy of the event log in append order.
func (c *NativeContext) Events() []entities.Event {
	c.mustBeLive()
	return slices.Clone(c.dataStore.Events())
}

// TypeToTypeTag converts ty to its serializable identity. Every failure is
// returned.
func (c *NativeContext) TypeToTypeTag(ty entities.Type) (entities.TypeTag, error) {
	if err := c.live(); err != nil {
		return entities.TypeTag{}, err
	}
	tag, err := c.resolver.Loader().TypeToTypeTag(ty)
	if err != nil {
		return entities.TypeTag{}, classified(err)
	}
	return tag, nil
}

// TypeToTypeLayout returns the memory layout of ty. A nil layout with a nil
// error means ty has no layout; only invariant violations are returned as
// errors.
func (c *NativeContext) TypeToTypeLayout(ty entities.Type) (*entities.TypeLayout, error) {
	if err := c.live(); err != nil {
		return nil, err
	}
	layout, err := c.resolver.TypeToTypeLayout(ty)
	if err != nil {
		return nil, fatalError(err)
	}
	return &layout, nil
}

// Extensions returns read access to the host extensions.
func (c *NativeContext) Extensions() ExtensionReader {
	c.mustBeLive()
	return readOnly{e: c.extensions}
}

// ExtensionsMut returns the host extensions for replacement.
func (c *NativeContext) ExtensionsMut() *Extensions {
	c.mustBeLive()
	return c.extensions
}

// classified returns err unchanged if it carries a VM status and wraps it as
// an invariant violation otherwise.
func classified(err error) error {
	var vmErr *vmerrors.PartialVMError
	if errors.As(err, &vmErr) {
		return err
	}
	return vmerrors.Wrap(vmerrors.UnknownInvariantViolationError, err)
}

// fatalError returns the error to propagate when err must abort the whole
// execution and nil when err is an ordinary condition.
func fatalError(err error) error {
	err = classified(err)
	if vmerrors.IsInvariantViolation(err) {
		return err
	}
	return nil
}
