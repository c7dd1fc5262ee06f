package memstore

import (
	"errors"
	"testing"

	"github.com/reglet-dev/nativevm/domain/entities"
	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
	"github.com/reglet-dev/nativevm/infrastructure/loader"
	"github.com/reglet-dev/nativevm/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_EmitEvent(t *testing.T) {
	s := New(loader.NewResolver(loader.New()))

	val := entities.NewVector(entities.U64(1))
	require.NoError(t, s.EmitEvent([]byte("g"), 0, entities.VectorOf(entities.U64Type), val))
	require.NoError(t, s.EmitEvent([]byte("g"), 1, entities.BoolType, entities.Bool(true)))

	val.Elems[0] = entities.U64(99)

	events := s.Events()
	require.Len(t, events, 2)
	assert.Equal(t, uint64(0), events[0].SeqNum)
	assert.Equal(t, "vector<u64>", events[0].Layout.String())
	assert.Equal(t, entities.NewVector(entities.U64(1)), events[0].Value)
	assert.Equal(t, entities.Bool(true), events[1].Value)
	assert.Equal(t, 2, s.Len())
}

func TestStore_Limits(t *testing.T) {
	s := New(loader.NewResolver(loader.New()), WithMaxEvents(1), WithMaxGUIDLength(2))

	err := s.EmitEvent([]byte("long"), 0, entities.U8Type, entities.U8(1))
	testutil.RequireStatus(t, err, vmerrors.EventLimitExceeded)
	assert.False(t, vmerrors.IsInvariantViolation(err))

	require.NoError(t, s.EmitEvent([]byte("ok"), 0, entities.U8Type, entities.U8(1)))
	err = s.EmitEvent([]byte("ok"), 1, entities.U8Type, entities.U8(2))
	testutil.RequireStatus(t, err, vmerrors.EventLimitExceeded)
	assert.Equal(t, 1, s.Len())
}

func TestStore_LayoutErrors(t *testing.T) {
	s := New(loader.NewResolver(loader.New()))

	err := s.EmitEvent(nil, 0, entities.TyParam(0), entities.U8(1))
	testutil.RequireStatus(t, err, vmerrors.TypeLayoutUnavailable)

	err = s.EmitEvent(nil, 0, entities.StructType(3), entities.NewStruct())
	testutil.RequireInvariantViolation(t, err)

	opaque := errors.New("resolver down")
	s = New(&testutil.Resolver{L: &testutil.Loader{LayoutErr: opaque}})
	assert.ErrorIs(t, s.EmitEvent(nil, 0, entities.U8Type, entities.U8(1)), opaque)
	assert.Empty(t, s.Events())
}
