package wazero

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/reglet-dev/nativevm/domain/entities"
	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
	"github.com/reglet-dev/nativevm/gas"
	"github.com/reglet-dev/nativevm/natives"
)

// DefaultMaxResultSize limits the bytes a byte export may return.
const DefaultMaxResultSize = 1 << 20

// ModuleConfig holds configuration for a loaded module.
type ModuleConfig struct {
	// Name is the instance name (default: "nativevm_natives").
	Name string

	// MaxResultSize limits the result of a byte export. Default is 1MB.
	MaxResultSize uint32
}

// ModuleOption configures LoadModule.
type ModuleOption func(*ModuleConfig)

// WithModuleName sets the instance name.
func WithModuleName(name string) ModuleOption {
	return func(c *ModuleConfig) {
		c.Name = name
	}
}

// WithMaxResultSize sets the largest result a byte export may return.
func WithMaxResultSize(size uint32) ModuleOption {
	return func(c *ModuleConfig) {
		c.MaxResultSize = size
	}
}

func defaultModuleConfig() ModuleConfig {
	return ModuleConfig{
		Name:          "nativevm_natives",
		MaxResultSize: DefaultMaxResultSize,
	}
}

// Module is an instantiated guest whose exports back natives. Calls into the
// guest are serialized, so natives from one Module may be shared by
// concurrent sessions.
type Module struct {
	ctx context.Context
	mod api.Module
	cfg ModuleConfig
	mu  sync.Mutex
}

// LoadModule compiles and instantiates wasmBytes in runtime. ctx is kept for
// every later call into the guest, as natives receive no context of their
// own.
func LoadModule(ctx context.Context, runtime wazero.Runtime, wasmBytes []byte, opts ...ModuleOption) (*Module, error) {
	cfg := defaultModuleConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	mod, err := runtime.InstantiateWithConfig(ctx, wasmBytes, wazero.NewModuleConfig().WithName(cfg.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}
	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(ctx); err != nil {
			_ = mod.Close(ctx)
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}
	return &Module{ctx: ctx, mod: mod, cfg: cfg}, nil
}

// Close releases the guest instance.
func (m *Module) Close(ctx context.Context) error {
	return m.mod.Close(ctx)
}

func (m *Module) export(name string, params, results int) (api.Function, error) {
	fn := m.mod.ExportedFunction(name)
	if fn == nil {
		return nil, fmt.Errorf("module %s has no export %q", m.cfg.Name, name)
	}
	def := fn.Definition()
	if err := allI64(def.ParamTypes(), params); err != nil {
		return nil, fmt.Errorf("export %q parameters: %w", name, err)
	}
	if err := allI64(def.ResultTypes(), results); err != nil {
		return nil, fmt.Errorf("export %q results: %w", name, err)
	}
	return fn, nil
}

// allI64 checks that every type is i64 and, when want is not negative, that
// there are want of them.
func allI64(types []api.ValueType, want int) error {
	if want >= 0 && len(types) != want {
		return fmt.Errorf("got %d values, want %d", len(types), want)
	}
	for _, t := range types {
		if t != api.ValueTypeI64 {
			return fmt.Errorf("unsupported value type %s", api.ValueTypeName(t))
		}
	}
	return nil
}

func (m *Module) call(fn api.Function, params ...uint64) ([]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn.Call(m.ctx, params...)
}

func (m *Module) failure(export string, err error) error {
	slog.ErrorContext(m.ctx, "wazero: guest call failed", "module", m.cfg.Name, "export", export, "error", err)
	return vmerrors.Wrap(vmerrors.WasmExecutionFailure, fmt.Errorf("wasm export %s: %w", export, err))
}

// Native exposes a numeric export. Each call costs one unit of costIdx.
func (m *Module) Native(export string, costIdx gas.NativeCostIndex) (natives.NativeFunction, error) {
	fn, err := m.export(export, -1, -1)
	if err != nil {
		return nil, err
	}
	nparams := len(fn.Definition().ParamTypes())

	return func(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args) (natives.NativeResult, error) {
		if err := natives.CheckArity(tyArgs, args, 0, nparams); err != nil {
			return natives.NativeResult{}, err
		}
		params := make([]uint64, nparams)
		for i := nparams - 1; i >= 0; i-- {
			v, err := natives.PopBackAs[entities.U64](args)
			if err != nil {
				return natives.NativeResult{}, err
			}
			params[i] = uint64(v)
		}

		results, err := m.call(fn, params...)
		if err != nil {
			return natives.NativeResult{}, m.failure(export, err)
		}
		values := make([]entities.Value, len(results))
		for i, r := range results {
			values[i] = entities.U64(r)
		}
		return natives.Ok(gas.NativeGasCost(ctx.CostTable(), costIdx, 1), values...), nil
	}, nil
}

// BytesNative exposes a byte export. Each call costs one unit of costIdx per
// input byte.
func (m *Module) BytesNative(export string, costIdx gas.NativeCostIndex) (natives.NativeFunction, error) {
	fn, err := m.export(export, 1, 1)
	if err != nil {
		return nil, err
	}
	allocate := m.mod.ExportedFunction("allocate")
	if allocate == nil {
		return nil, fmt.Errorf("module %s has no \"allocate\" export", m.cfg.Name)
	}
	if m.mod.Memory() == nil {
		return nil, fmt.Errorf("module %s exports no memory", m.cfg.Name)
	}

	return func(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args) (natives.NativeResult, error) {
		if err := natives.CheckArity(tyArgs, args, 0, 1); err != nil {
			return natives.NativeResult{}, err
		}
		vec, err := natives.PopBackAs[*entities.Vector](args)
		if err != nil {
			return natives.NativeResult{}, err
		}
		input, ok := vec.Bytes()
		if !ok {
			return natives.NativeResult{}, vmerrors.Newf(vmerrors.InternalTypeError, "wasm input is not vector<u8>")
		}

		out, err := m.callBytes(fn, allocate, input)
		if err != nil {
			return natives.NativeResult{}, m.failure(export, err)
		}
		cost := gas.NativeGasCost(ctx.CostTable(), costIdx, len(input))
		return natives.Ok(cost, entities.BytesVector(out)), nil
	}, nil
}

func (m *Module) callBytes(fn, allocate api.Function, input []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := allocate.Call(m.ctx, uint64(len(input)))
	if err != nil {
		return nil, fmt.Errorf("allocate: %w", err)
	}
	ptr := uint32(res[0]) //nolint:gosec // G115: WASM32 pointers are always 32-bit
	mem := m.mod.Memory()
	if !mem.Write(ptr, input) {
		return nil, fmt.Errorf("failed to write %d bytes to guest memory at %d", len(input), ptr)
	}

	res, err = fn.Call(m.ctx, packPtrLen(ptr, uint32(len(input)))) //nolint:gosec // G115: bounded by guest memory
	if err != nil {
		return nil, err
	}
	outPtr, outLen := unpackPtrLen(res[0])
	if outLen > m.cfg.MaxResultSize {
		return nil, fmt.Errorf("result size %d exceeds maximum %d bytes", outLen, m.cfg.MaxResultSize)
	}
	data, ok := mem.Read(outPtr, outLen)
	if !ok {
		return nil, fmt.Errorf("failed to read result from guest memory")
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// packPtrLen packs a pointer and length into a single i64.
// Upper 32 bits: pointer, lower 32 bits: length.
func packPtrLen(ptr, length uint32) uint64 {
	return (uint64(ptr) << 32) | uint64(length)
}

// unpackPtrLen unpacks a pointer and length from a packed i64.
func unpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> 32)           //nolint:gosec // G115: Packed format stores 32-bit values
	length = uint32(packed & 0xFFFFFFFF) //nolint:gosec // G115: Packed format stores 32-bit values
	return ptr, length
}
