package device

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_Order(t *testing.T) {
	s := NewStream(4)
	defer s.Close()

	var (
		mu  sync.Mutex
		got []int
	)
	for i := range 100 {
		require.NoError(t, s.Enqueue(t.Context(), func() error {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			return nil
		}))
	}

	require.NoError(t, s.Synchronize(t.Context()))
	assert.Zero(t, s.Pending())

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestStream_StickyError(t *testing.T) {
	s := NewStream(0)
	defer s.Close()

	errFirst := errors.New("first")
	errSecond := errors.New("second")

	ran := false
	require.NoError(t, s.Enqueue(t.Context(), func() error { return errFirst }))
	require.NoError(t, s.Enqueue(t.Context(), func() error { return errSecond }))
	require.NoError(t, s.Enqueue(t.Context(), func() error { ran = true; return nil }))

	assert.ErrorIs(t, s.Synchronize(t.Context()), errFirst)
	assert.True(t, ran, "operations after a failure still run")

	// The error is reported once.
	assert.NoError(t, s.Synchronize(t.Context()))
}

func TestStream_Close(t *testing.T) {
	s := NewStream(0)

	ran := false
	require.NoError(t, s.Enqueue(t.Context(), func() error { ran = true; return nil }))
	require.NoError(t, s.Close())
	assert.True(t, ran, "close drains queued work")

	assert.ErrorIs(t, s.Enqueue(t.Context(), func() error { return nil }), ErrStreamClosed)
	assert.NoError(t, s.Synchronize(t.Context()))
	assert.NoError(t, s.Close())
}

func TestStream_CancelledSynchronize(t *testing.T) {
	s := NewStream(1)
	defer s.Close()

	block := make(chan struct{})
	require.NoError(t, s.Enqueue(t.Context(), func() error { <-block; return nil }))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.ErrorIs(t, s.Synchronize(ctx), context.Canceled)

	close(block)
	require.NoError(t, s.Synchronize(t.Context()))
}
