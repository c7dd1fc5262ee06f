package natives

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/reglet-dev/nativevm/domain/entities"
	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
	"github.com/reglet-dev/nativevm/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicRecoveryMiddleware(t *testing.T) {
	panicking := func(*NativeContext, []entities.Type, *Args) (NativeResult, error) {
		panic("index out of range")
	}
	wrapped := PanicRecoveryMiddleware()(panicking)

	var res NativeResult
	var err error
	assert.NotPanics(t, func() {
		res, err = newTestContext(nil, nil).Invoke(wrapped, nil, NewArgs())
	})
	testutil.RequireStatus(t, err, vmerrors.NativeFunctionPanicked)
	testutil.RequireInvariantViolation(t, err)
	assert.Contains(t, err.Error(), "0x1::m::f")
	assert.Contains(t, err.Error(), "index out of range")
	assert.Empty(t, res.Values)
}

func TestPanicRecoveryMiddleware_PassThrough(t *testing.T) {
	wrapped := PanicRecoveryMiddleware()(constNative(9))
	res, err := newTestContext(nil, nil).Invoke(wrapped, nil, NewArgs())
	require.NoError(t, err)
	assert.Equal(t, []entities.Value{entities.U64(9)}, res.Values)
}

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		fn   NativeFunction
		name string
		want string
	}{
		{name: "ok", fn: constNative(1), want: "native function completed"},
		{
			name: "abort",
			fn: func(*NativeContext, []entities.Type, *Args) (NativeResult, error) {
				return Abort(2, 0x20000), nil
			},
			want: "abort_code=131072",
		},
		{
			name: "error",
			fn: func(*NativeContext, []entities.Type, *Args) (NativeResult, error) {
				return NativeResult{}, errors.New("bad")
			},
			want: "native function failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			_, _ = newTestContext(nil, nil).Invoke(LoggingMiddleware(logger)(tt.fn), nil, NewArgs())
			assert.Contains(t, buf.String(), "invoking native function")
			assert.Contains(t, buf.String(), "function=0x1::m::f")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}
