// Package parallel provides a small fixed-size worker pool used to warm the
// combinatorial generator caches concurrently. It is internal plumbing: the
// solver itself is strictly sequential, only ahead-of-time precomputation
// fans out.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// ErrPoolClosed is returned when submitting to a closed pool.
var ErrPoolClosed = fmt.Errorf("worker pool has been closed")

// WorkerPool runs submitted tasks on a bounded set of goroutines. The task
// channel is buffered, so submission applies backpressure once every worker
// is busy and the buffer is full.
type WorkerPool struct {
	tasks  chan func()
	wg     sync.WaitGroup
	closed chan struct{}
	once   sync.Once
}

// NewWorkerPool starts a pool with the given number of workers.
// Zero or negative means one worker per CPU core.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	pool := &WorkerPool{
		tasks:  make(chan func(), workers*2),
		closed: make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.run()
	}
	return pool
}

func (p *WorkerPool) run() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Submit hands a task to the pool, blocking while the pool is saturated.
// Returns the context error if ctx ends first, or ErrPoolClosed after Close.
func (p *WorkerPool) Submit(ctx context.Context, task func()) error {
	select {
	case <-p.closed:
		return ErrPoolClosed
	default:
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.closed:
		return ErrPoolClosed
	}
}

// Close stops accepting tasks and waits for the submitted ones to finish.
// Safe to call more than once, but must not run concurrently with Submit.
func (p *WorkerPool) Close() {
	p.once.Do(func() {
		close(p.closed)
		close(p.tasks)
		p.wg.Wait()
	})
}
