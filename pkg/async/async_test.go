package async_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/safeaction/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("returns function result", func(t *testing.T) {
		t.Parallel()
		fut := async.Async(context.Background(), 42, func(_ context.Context, num int) (string, error) {
			time.Sleep(10 * time.Millisecond)
			return fmt.Sprintf("Number: %d", num), nil
		})

		res, err := fut.Await()
		require.NoError(t, err)
		assert.Equal(t, "Number: 42", res)
		assert.True(t, fut.IsComplete())
	})

	t.Run("returns function error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		fut := async.Async(context.Background(), 1, func(context.Context, int) (int, error) {
			return 0, boom
		})

		_, err := fut.Await()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("pre-cancelled context skips the function", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		fut := async.Async(ctx, 1, func(context.Context, int) (int, error) {
			called = true
			return 1, nil
		})

		_, err := fut.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})

	t.Run("recovers panics", func(t *testing.T) {
		t.Parallel()
		fut := async.Go(context.Background(), func(context.Context) (int, error) {
			panic("kaboom")
		})

		res, err := fut.Await()
		assert.ErrorIs(t, err, async.ErrPanic)
		assert.Contains(t, err.Error(), "kaboom")
		assert.Zero(t, res)
	})
}

func TestIsComplete(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	fut := async.Go(context.Background(), func(context.Context) (bool, error) {
		<-release
		return true, nil
	})

	assert.False(t, fut.IsComplete())
	close(release)

	res, err := fut.Await()
	require.NoError(t, err)
	assert.True(t, res)
	assert.True(t, fut.IsComplete())
}

func TestResolvedAndRejected(t *testing.T) {
	t.Parallel()

	res, err := async.Resolved("ok").Await()
	require.NoError(t, err)
	assert.Equal(t, "ok", res)

	boom := errors.New("boom")
	_, err = async.Rejected[string](boom).Await()
	assert.ErrorIs(t, err, boom)
}

func TestNilFuture(t *testing.T) {
	t.Parallel()

	var fut *async.Future[int]
	_, err := fut.Await()
	assert.ErrorIs(t, err, async.ErrNilFuture)
	assert.False(t, fut.IsComplete())
}
