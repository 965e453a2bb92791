// Package gridcsp: ahead-of-time warming of the generator caches.
package gridcsp

import (
	"context"
	"fmt"
	"sync"

	"github.com/solverkit/gridcsp/internal/parallel"
)

// TableKind selects which generator a TableRequest warms.
type TableKind int

const (
	TablePermutations TableKind = iota
	TableSumCombinations
	TableSandwichSequences
	TableSkyscraperSequences
)

// TableRequest names one generator invocation to precompute. Clue carries
// the generator-specific extra parameter: the target for sum combinations,
// the clue for sandwich and skyscraper sequences; Permutations ignores it.
type TableRequest struct {
	Kind     TableKind
	MinValue int
	MaxValue int
	Size     int
	Clue     int
}

// build runs the generator, populating its cache as a side effect.
func (r TableRequest) build() error {
	var err error
	switch r.Kind {
	case TablePermutations:
		_, err = Permutations(r.MinValue, r.MaxValue, r.Size)
	case TableSumCombinations:
		_, err = SumCombinations(r.MinValue, r.MaxValue, r.Size, r.Clue)
	case TableSandwichSequences:
		_, err = SandwichSequences(r.MinValue, r.MaxValue, r.Size, r.Clue)
	case TableSkyscraperSequences:
		_, err = SkyscraperSequences(r.MinValue, r.MaxValue, r.Size, r.Clue)
	default:
		err = fmt.Errorf("precompute: unknown table kind %d", r.Kind)
	}
	return err
}

// PrecomputeTables builds the requested generator tables concurrently so
// that later solves hit warm caches. workers <= 0 means one per CPU core.
//
// Enumeration cannot be interrupted once started; cancelling ctx stops
// unstarted requests and returns the context error. Otherwise the first
// validation error encountered is returned, after every request has run.
func PrecomputeTables(ctx context.Context, workers int, requests []TableRequest) error {
	pool := parallel.NewWorkerPool(workers)
	defer pool.Close()

	var mu sync.Mutex
	var firstErr error
	var wg sync.WaitGroup

	for _, request := range requests {
		wg.Add(1)
		err := pool.Submit(ctx, func() {
			defer wg.Done()
			if err := request.build(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return err
		}
	}
	wg.Wait()
	return firstErr
}
