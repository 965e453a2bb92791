package gridcsp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrecomputeTables(t *testing.T) {
	t.Run("warms every requested table", func(t *testing.T) {
		requests := []TableRequest{
			{Kind: TablePermutations, MinValue: 1, MaxValue: 5, Size: 5},
			{Kind: TableSumCombinations, MinValue: 1, MaxValue: 9, Size: 3, Clue: 15},
			{Kind: TableSkyscraperSequences, MinValue: 1, MaxValue: 5, Size: 5, Clue: 3},
		}
		require.NoError(t, PrecomputeTables(context.Background(), 4, requests))

		// The warmed entries are served back verbatim.
		perms, err := Permutations(1, 5, 5)
		require.NoError(t, err)
		assert.Len(t, perms, 120)
	})

	t.Run("surfaces validation errors", func(t *testing.T) {
		requests := []TableRequest{
			{Kind: TablePermutations, MinValue: 1, MaxValue: 3, Size: 9},
		}
		assert.Error(t, PrecomputeTables(context.Background(), 1, requests))
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		requests := []TableRequest{{Kind: TableKind(99), MinValue: 1, MaxValue: 3, Size: 2}}
		assert.Error(t, PrecomputeTables(context.Background(), 1, requests))
	})

	t.Run("cancelled context stops submission", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		requests := make([]TableRequest, 64)
		for i := range requests {
			requests[i] = TableRequest{Kind: TablePermutations, MinValue: 1, MaxValue: 6, Size: 3}
		}
		err := PrecomputeTables(ctx, 1, requests)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWorkerPoolBackpressure(t *testing.T) {
	// A single worker must still drain a burst larger than its queue.
	requests := make([]TableRequest, 32)
	for i := range requests {
		requests[i] = TableRequest{
			Kind: TableSumCombinations, MinValue: 1, MaxValue: 9, Size: 2, Clue: 5 + i%8,
		}
	}
	assert.NoError(t, PrecomputeTables(context.Background(), 1, requests))
}
