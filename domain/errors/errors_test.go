package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode_StatusType(t *testing.T) {
	tests := []struct {
		code StatusCode
		want StatusType
	}{
		{UnknownValidationStatus, StatusTypeValidation},
		{DuplicateNativeFunction, StatusTypeVerification},
		{FunctionResolutionFailure, StatusTypeVerification},
		{TypeLayoutUnavailable, StatusTypeVerification},
		{UnknownInvariantViolationError, StatusTypeInvariantViolation},
		{InternalTypeError, StatusTypeInvariantViolation},
		{ValueSerialization, StatusTypeDeserialization},
		{OutOfGas, StatusTypeExecution},
		{EventLimitExceeded, StatusTypeExecution},
		{StatusCode(9000), StatusTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.StatusType())
		})
	}
}

func TestStatusCode_String(t *testing.T) {
	assert.Equal(t, "DUPLICATE_NATIVE_FUNCTION", DuplicateNativeFunction.String())
	assert.Equal(t, "STATUS_4999", StatusCode(4999).String())
}

func TestPartialVMError_Error(t *testing.T) {
	err := Newf(InvalidIdentifier, "%q is not a valid identifier", "1abc")
	assert.Equal(t, `INVALID_IDENTIFIER: "1abc" is not a valid identifier`, err.Error())

	withSub := New(Aborted).WithSubStatus(7)
	assert.Equal(t, "ABORTED (sub status 7)", withSub.Error())

	base := fmt.Errorf("disk on fire")
	wrapped := Wrap(UnknownInvariantViolationError, base)
	assert.Equal(t, "UNKNOWN_INVARIANT_VIOLATION_ERROR: disk on fire", wrapped.Error())
	assert.True(t, errors.Is(wrapped, base))
}

func TestPartialVMError_WithMessageCopies(t *testing.T) {
	orig := New(OutOfGas)
	msg := orig.WithMessage("limit 10")

	assert.Empty(t, orig.Message)
	assert.Equal(t, "limit 10", msg.Message)
	assert.Equal(t, OutOfGas, msg.MajorStatus())
}

func TestPartialVMError_IsByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", Newf(OutOfGas, "limit 10"))
	assert.True(t, errors.Is(err, New(OutOfGas)))
	assert.False(t, errors.Is(err, New(Aborted)))
}

func TestClassify(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, Classify(nil))
		assert.False(t, IsInvariantViolation(nil))
	})

	t.Run("classified error passes through", func(t *testing.T) {
		orig := New(EventLimitExceeded)
		got := Classify(fmt.Errorf("ctx: %w", orig))
		assert.Same(t, orig, got)
		assert.False(t, IsInvariantViolation(orig))
	})

	t.Run("unclassified error is fatal", func(t *testing.T) {
		base := errors.New("opaque")
		got := Classify(base)
		require.NotNil(t, got)
		assert.Equal(t, UnknownInvariantViolationError, got.Code)
		assert.True(t, errors.Is(got, base))
		assert.True(t, IsInvariantViolation(base))
	})

	t.Run("invariant violation", func(t *testing.T) {
		assert.True(t, IsInvariantViolation(New(InternalTypeError)))
	})
}

func TestStatusOf(t *testing.T) {
	code, ok := StatusOf(New(OutOfGas))
	assert.True(t, ok)
	assert.Equal(t, OutOfGas, code)

	_, ok = StatusOf(nil)
	assert.False(t, ok)
}
