package natives

import (
	"fmt"
	"testing"

	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
	"github.com/reglet-dev/nativevm/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	n int
}

func (c *counter) String() string { return fmt.Sprintf("counter(%d)", c.n) }

type label string

func TestNewExtensions(t *testing.T) {
	ext, err := NewExtensions(&counter{n: 1}, label("host"))
	require.NoError(t, err)
	assert.Equal(t, 2, ext.Len())

	c, ok := Extension[*counter](ext)
	require.True(t, ok)
	assert.Equal(t, 1, c.n)

	l, ok := Extension[label](ext)
	require.True(t, ok)
	assert.Equal(t, label("host"), l)

	_, ok = Extension[int](ext)
	assert.False(t, ok)
}

func TestExtensions_InterfaceLookup(t *testing.T) {
	ext, err := NewExtensions(label("x"), &counter{n: 4})
	require.NoError(t, err)

	s, ok := Extension[fmt.Stringer](ext)
	require.True(t, ok)
	assert.Equal(t, "counter(4)", s.String())

	_, ok = Extension[error](ext)
	assert.False(t, ok)
}

func TestNewExtensions_Rejects(t *testing.T) {
	_, err := NewExtensions(&counter{}, &counter{})
	testutil.RequireStatus(t, err, vmerrors.DuplicateExtension)

	_, err = NewExtensions(nil)
	testutil.RequireStatus(t, err, vmerrors.UnknownExtension)
}

func TestExtensions_Replace(t *testing.T) {
	ext, err := NewExtensions(&counter{n: 1})
	require.NoError(t, err)

	require.NoError(t, ext.Replace(&counter{n: 2}))
	c, _ := Extension[*counter](ext)
	assert.Equal(t, 2, c.n)

	testutil.RequireStatus(t, ext.Replace(label("new")), vmerrors.UnknownExtension)
	testutil.RequireStatus(t, ext.Replace(nil), vmerrors.UnknownExtension)
	assert.Equal(t, 1, ext.Len())
}
