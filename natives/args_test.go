package natives

import (
	"testing"

	"github.com/reglet-dev/nativevm/domain/entities"
	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
	"github.com/reglet-dev/nativevm/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgs_Deque(t *testing.T) {
	args := NewArgs(entities.U64(1), entities.U64(2))
	args.PushBack(entities.U64(3))
	args.PushFront(entities.U64(0))
	assert.Equal(t, 4, args.Len())

	v, ok := args.PopBack()
	require.True(t, ok)
	assert.Equal(t, entities.U64(3), v)

	v, ok = args.PopFront()
	require.True(t, ok)
	assert.Equal(t, entities.U64(0), v)

	v, _ = args.PopFront()
	assert.Equal(t, entities.U64(1), v)
	v, _ = args.PopBack()
	assert.Equal(t, entities.U64(2), v)

	_, ok = args.PopBack()
	assert.False(t, ok)
	_, ok = args.PopFront()
	assert.False(t, ok)
}

func TestNewArgs_DoesNotAliasInput(t *testing.T) {
	vals := []entities.Value{entities.U64(1)}
	args := NewArgs(vals...)
	args.PopBack()
	args.PushBack(entities.U64(5))
	assert.Equal(t, entities.U64(1), vals[0])
}

func TestPopBackAs(t *testing.T) {
	vec := entities.NewVector(entities.U8(1))
	args := NewArgs(vec, entities.U64(4))

	n, err := PopBackAs[entities.U64](args)
	require.NoError(t, err)
	assert.Equal(t, entities.U64(4), n)

	_, err = PopBackAs[entities.U64](args)
	testutil.RequireStatus(t, err, vmerrors.InternalTypeError)

	_, err = PopBackAs[*entities.Vector](args)
	testutil.RequireStatus(t, err, vmerrors.InternalTypeError)
}

func TestCheckArity(t *testing.T) {
	args := NewArgs(entities.U64(1))
	require.NoError(t, CheckArity([]entities.Type{entities.U8Type}, args, 1, 1))
	testutil.RequireStatus(t, CheckArity(nil, args, 1, 1), vmerrors.InternalTypeError)
	testutil.RequireStatus(t, CheckArity(nil, args, 0, 2), vmerrors.InternalTypeError)
}
