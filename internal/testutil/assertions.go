package testutil

import (
	"testing"

	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
	"github.com/stretchr/testify/require"
)

// RequireStatus fails the test unless err carries code.
func RequireStatus(t *testing.T, err error, code vmerrors.StatusCode, msgAndArgs ...interface{}) {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
	got, ok := vmerrors.StatusOf(err)
	require.True(t, ok, msgAndArgs...)
	require.Equal(t, code.String(), got.String(), msgAndArgs...)
}

// RequireInvariantViolation fails the test unless err is fatal.
func RequireInvariantViolation(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
	require.True(t, vmerrors.IsInvariantViolation(err), msgAndArgs...)
}
