package mmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAnon(t *testing.T) {
	m, err := MapAnon(4096)
	require.NoError(t, err)
	assert.Equal(t, 4096, m.Size())

	data := m.Bytes()
	require.Len(t, data, 4096)
	for _, b := range data {
		require.Zero(t, b)
	}

	data[0] = 42
	data[4095] = 7
	assert.Equal(t, byte(42), m.Bytes()[0])
	assert.Equal(t, byte(7), m.Bytes()[4095])

	require.NoError(t, m.Advise(AccessSequential))
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.Nil(t, m.Bytes())
	assert.ErrorIs(t, m.Advise(AccessRandom), ErrClosed)
}

func TestMapAnon_InvalidSize(t *testing.T) {
	_, err := MapAnon(0)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = MapAnon(-1)
	assert.ErrorIs(t, err, ErrInvalidSize)
}
