package memo

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGet(t *testing.T) {
	t.Run("builds once per key", func(t *testing.T) {
		cache := NewCache[string, int]()
		builds := 0

		first := cache.Get("a", func() int { builds++; return 42 })
		second := cache.Get("a", func() int { builds++; return 99 })

		assert.Equal(t, 42, first)
		assert.Equal(t, 42, second, "second call must see the cached value")
		assert.Equal(t, 1, builds)
	})

	t.Run("distinct keys build independently", func(t *testing.T) {
		cache := NewCache[int, string]()
		assert.Equal(t, "one", cache.Get(1, func() string { return "one" }))
		assert.Equal(t, "two", cache.Get(2, func() string { return "two" }))
		assert.Equal(t, 2, cache.Len())
	})

	t.Run("concurrent callers share one build", func(t *testing.T) {
		cache := NewCache[string, []int]()
		var builds atomic.Int32

		const goroutines = 32
		results := make([][]int, goroutines)
		var wg sync.WaitGroup
		wg.Add(goroutines)
		for i := 0; i < goroutines; i++ {
			go func(i int) {
				defer wg.Done()
				results[i] = cache.Get("key", func() []int {
					builds.Add(1)
					return []int{1, 2, 3}
				})
			}(i)
		}
		wg.Wait()

		require.Equal(t, int32(1), builds.Load())
		for i := 1; i < goroutines; i++ {
			// All callers receive the same slice, not copies.
			assert.True(t, &results[0][0] == &results[i][0])
		}
		assert.Equal(t, 1, cache.Len())
	})
}
