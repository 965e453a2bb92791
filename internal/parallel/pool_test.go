package parallel

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool(t *testing.T) {
	t.Run("runs every submitted task", func(t *testing.T) {
		pool := NewWorkerPool(4)
		var ran atomic.Int32
		for i := 0; i < 100; i++ {
			require.NoError(t, pool.Submit(context.Background(), func() {
				ran.Add(1)
			}))
		}
		pool.Close()
		assert.Equal(t, int32(100), ran.Load())
	})

	t.Run("close waits for in-flight tasks", func(t *testing.T) {
		pool := NewWorkerPool(1)
		done := make(chan struct{})
		require.NoError(t, pool.Submit(context.Background(), func() {
			close(done)
		}))
		pool.Close()
		select {
		case <-done:
		default:
			t.Fatal("Close returned before the task finished")
		}
	})

	t.Run("submit after close fails", func(t *testing.T) {
		pool := NewWorkerPool(1)
		pool.Close()
		err := pool.Submit(context.Background(), func() {})
		assert.ErrorIs(t, err, ErrPoolClosed)
	})

	t.Run("cancelled context refuses the task", func(t *testing.T) {
		pool := NewWorkerPool(1)
		defer pool.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := pool.Submit(ctx, func() {})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("double close is safe", func(t *testing.T) {
		pool := NewWorkerPool(2)
		pool.Close()
		pool.Close()
	})
}
