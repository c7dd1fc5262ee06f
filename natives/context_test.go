package natives

import (
	"bytes"
	"errors"
	"testing"

	"github.com/reglet-dev/nativevm/domain/entities"
	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
	"github.com/reglet-dev/nativevm/gas"
	"github.com/reglet-dev/nativevm/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(store *testutil.DataStore, resolver *testutil.Resolver) *NativeContext {
	if store == nil {
		store = &testutil.DataStore{}
	}
	if resolver == nil {
		resolver = testutil.NewResolver()
	}
	return NewContext(ContextConfig{
		Interpreter: &testutil.Interpreter{Trace: "#0 0x1::m::f\n"},
		DataStore:   store,
		GasStatus:   testutil.GasStatus{Table: gas.DefaultCostTable()},
		Resolver:    resolver,
		Function: FunctionID{
			Address:  entities.AddressOne,
			Module:   entities.MustIdentifier("m"),
			Function: entities.MustIdentifier("f"),
		},
	})
}

func TestNativeContext_SaveEvent(t *testing.T) {
	errOpaque := errors.New("disk on fire")
	fatal := vmerrors.Newf(vmerrors.UnknownInvariantViolationError, "store corrupted")

	tests := []struct {
		emitErr   error
		wantErrIs error
		name      string
		wantSaved bool
		wantFatal bool
	}{
		{name: "accepted", wantSaved: true},
		{name: "soft execution error", emitErr: vmerrors.New(vmerrors.EventLimitExceeded)},
		{name: "soft verification error", emitErr: vmerrors.New(vmerrors.TypeLayoutUnavailable)},
		{name: "soft error wrapped", emitErr: vmerrors.Wrap(vmerrors.OutOfGas, errOpaque)},
		{name: "invariant violation", emitErr: fatal, wantFatal: true, wantErrIs: fatal},
		{name: "unclassified", emitErr: errOpaque, wantFatal: true, wantErrIs: errOpaque},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := entities.Event{GUID: []byte("seed"), SeqNum: 0, Type: entities.BoolType, Value: entities.Bool(true)}
			store := &testutil.DataStore{EmitErr: tt.emitErr, Log: []entities.Event{seed}}
			ctx := newTestContext(store, nil)

			saved, err := ctx.SaveEvent([]byte("guid"), 1, entities.U64Type, entities.U64(5))
			assert.Equal(t, tt.wantSaved, saved)
			if tt.wantFatal {
				testutil.RequireInvariantViolation(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
			} else {
				require.NoError(t, err)
			}

			events := ctx.Events()
			if !tt.wantSaved {
				assert.Equal(t, []entities.Event{seed}, events)
				return
			}
			require.Len(t, events, 2)
			assert.Equal(t, seed, events[0])
			assert.Equal(t, []byte("guid"), events[1].GUID)
			assert.Equal(t, uint64(1), events[1].SeqNum)
			assert.Equal(t, entities.U64(5), events[1].Value)
		})
	}
}

func TestNativeContext_SaveEvent_InvariantUnmodified(t *testing.T) {
	fatal := vmerrors.Newf(vmerrors.UnknownStructType, "no struct 9")
	ctx := newTestContext(&testutil.DataStore{EmitErr: fatal}, nil)

	_, err := ctx.SaveEvent(nil, 0, entities.U64Type, entities.U64(1))
	assert.Same(t, fatal, err)
}

func TestNativeContext_Events(t *testing.T) {
	store := &testutil.DataStore{}
	ctx := newTestContext(store, nil)

	for i := range 3 {
		saved, err := ctx.SaveEvent([]byte{byte(i)}, uint64(i), entities.U64Type, entities.U64(i))
		require.NoError(t, err)
		require.True(t, saved)
	}

	events := ctx.Events()
	require.Len(t, events, 3)
	for i, ev := range events {
		assert.Equal(t, uint64(i), ev.SeqNum)
		assert.Equal(t, entities.U64(i), ev.Value)
	}

	events[0] = entities.Event{}
	assert.Equal(t, []byte{0}, ctx.Events()[0].GUID)
}

func TestNativeContext_TypeToTypeLayout(t *testing.T) {
	errOpaque := errors.New("loader broken")

	tests := []struct {
		layoutErr error
		want      *entities.TypeLayout
		name      string
		ty        entities.Type
		wantFatal bool
	}{
		{
			name: "vector",
			ty:   entities.VectorOf(entities.U8Type),
			want: ptr(entities.VectorLayout(entities.PrimitiveLayout(entities.KindU8))),
		},
		{name: "depth limit", ty: entities.U64Type, layoutErr: vmerrors.New(vmerrors.VMMaxTypeDepthReached)},
		{name: "unavailable", ty: entities.U64Type, layoutErr: vmerrors.New(vmerrors.TypeLayoutUnavailable)},
		{name: "invariant", ty: entities.U64Type, layoutErr: vmerrors.New(vmerrors.UnknownStructType), wantFatal: true},
		{name: "unclassified", ty: entities.U64Type, layoutErr: errOpaque, wantFatal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &testutil.Resolver{L: &testutil.Loader{LayoutErr: tt.layoutErr}}
			ctx := newTestContext(nil, resolver)

			layout, err := ctx.TypeToTypeLayout(tt.ty)
			if tt.wantFatal {
				testutil.RequireInvariantViolation(t, err)
				assert.Nil(t, layout)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, layout)
		})
	}
}

func TestNativeContext_TypeToTypeTag(t *testing.T) {
	ctx := newTestContext(nil, nil)
	tag, err := ctx.TypeToTypeTag(entities.VectorOf(entities.AddressType))
	require.NoError(t, err)
	assert.Equal(t, "vector<address>", tag.String())

	soft := vmerrors.New(vmerrors.VMMaxTypeDepthReached)
	ctx = newTestContext(nil, &testutil.Resolver{L: &testutil.Loader{TagErr: soft}})
	_, err = ctx.TypeToTypeTag(entities.U64Type)
	assert.Same(t, soft, err)

	ctx = newTestContext(nil, &testutil.Resolver{L: &testutil.Loader{TagErr: errors.New("boom")}})
	_, err = ctx.TypeToTypeTag(entities.U64Type)
	testutil.RequireInvariantViolation(t, err)
}

func TestNativeContext_PrintStackTrace(t *testing.T) {
	ctx := newTestContext(nil, nil)
	var buf bytes.Buffer
	require.NoError(t, ctx.PrintStackTrace(&buf))
	assert.Equal(t, "#0 0x1::m::f\n", buf.String())

	interp := &testutil.Interpreter{Err: errors.New("no frames")}
	ctx = NewContext(ContextConfig{
		Interpreter: interp,
		DataStore:   &testutil.DataStore{},
		GasStatus:   testutil.GasStatus{Table: gas.DefaultCostTable()},
		Resolver:    testutil.NewResolver(),
	})
	testutil.RequireInvariantViolation(t, ctx.PrintStackTrace(&buf))
	assert.Equal(t, 1, interp.Calls)
}

func TestNativeContext_CostTable(t *testing.T) {
	ctx := newTestContext(nil, nil)
	assert.Equal(t, gas.DefaultCostTable().NativeCost(gas.NativeLength), ctx.CostTable().NativeCost(gas.NativeLength))
}

func TestNativeContext_Invoke(t *testing.T) {
	ctx := newTestContext(nil, nil)
	var seen FunctionID
	res, err := ctx.Invoke(func(c *NativeContext, tyArgs []entities.Type, args *Args) (NativeResult, error) {
		seen = c.Function()
		v, err := PopBackAs[entities.U64](args)
		if err != nil {
			return NativeResult{}, err
		}
		return Ok(3, v+1), nil
	}, nil, NewArgs(entities.U64(41)))

	require.NoError(t, err)
	assert.Equal(t, []entities.Value{entities.U64(42)}, res.Values)
	assert.Equal(t, uint64(3), res.Cost)
	assert.Equal(t, "0x1::m::f", seen.String())
}

func TestNativeContext_InvokeClassifiesErrors(t *testing.T) {
	errOpaque := errors.New("opaque")
	_, err := newTestContext(nil, nil).Invoke(func(*NativeContext, []entities.Type, *Args) (NativeResult, error) {
		return NativeResult{}, errOpaque
	}, nil, NewArgs())
	testutil.RequireInvariantViolation(t, err)
	assert.ErrorIs(t, err, errOpaque)

	soft := vmerrors.New(vmerrors.ArithmeticError)
	_, err = newTestContext(nil, nil).Invoke(func(*NativeContext, []entities.Type, *Args) (NativeResult, error) {
		return NativeResult{}, soft
	}, nil, NewArgs())
	assert.Same(t, soft, err)
}

func TestNativeContext_Expired(t *testing.T) {
	var leaked *NativeContext
	ctx := newTestContext(nil, nil)
	_, err := ctx.Invoke(func(c *NativeContext, _ []entities.Type, _ *Args) (NativeResult, error) {
		leaked = c
		return Ok(0), nil
	}, nil, NewArgs())
	require.NoError(t, err)

	_, err = leaked.SaveEvent(nil, 0, entities.U64Type, entities.U64(1))
	testutil.RequireStatus(t, err, vmerrors.NativeContextExpired)
	_, err = leaked.TypeToTypeTag(entities.U64Type)
	testutil.RequireStatus(t, err, vmerrors.NativeContextExpired)
	_, err = leaked.TypeToTypeLayout(entities.U64Type)
	testutil.RequireStatus(t, err, vmerrors.NativeContextExpired)
	testutil.RequireStatus(t, leaked.PrintStackTrace(&bytes.Buffer{}), vmerrors.NativeContextExpired)
	_, err = leaked.Invoke(constNative(1), nil, NewArgs())
	testutil.RequireStatus(t, err, vmerrors.NativeContextExpired)

	assert.Panics(t, func() { leaked.CostTable() })
	assert.Panics(t, func() { leaked.Events() })
	assert.Panics(t, func() { leaked.Extensions() })
	assert.Panics(t, func() { leaked.ExtensionsMut() })
	assert.NotPanics(t, func() { leaked.Function() })
}

func TestNativeContext_ExpiredAfterPanic(t *testing.T) {
	ctx := newTestContext(nil, nil)
	assert.Panics(t, func() {
		_, _ = ctx.Invoke(func(*NativeContext, []entities.Type, *Args) (NativeResult, error) {
			panic("boom")
		}, nil, NewArgs())
	})
	_, err := ctx.SaveEvent(nil, 0, entities.U64Type, entities.U64(1))
	testutil.RequireStatus(t, err, vmerrors.NativeContextExpired)
}

func TestNativeContext_Extensions(t *testing.T) {
	ext, err := NewExtensions(&counter{})
	require.NoError(t, err)

	ctx := NewContext(ContextConfig{
		Interpreter: &testutil.Interpreter{},
		DataStore:   &testutil.DataStore{},
		GasStatus:   testutil.GasStatus{Table: gas.DefaultCostTable()},
		Resolver:    testutil.NewResolver(),
		Extensions:  ext,
	})

	c, ok := Extension[*counter](ctx.Extensions())
	require.True(t, ok)
	c.n++

	_, isMut := ctx.Extensions().(*Extensions)
	assert.False(t, isMut)

	require.NoError(t, ctx.ExtensionsMut().Replace(&counter{n: 10}))
	c, ok = Extension[*counter](ctx.Extensions())
	require.True(t, ok)
	assert.Equal(t, 10, c.n)

	assert.Equal(t, 0, newTestContext(nil, nil).Extensions().Len())
}

func ptr[T any](v T) *T {
	return &v
}
