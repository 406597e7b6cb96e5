// Package iobuf provides the bounded worker pool and chunked-read streaming
// primitive the static-file engine uses to turn blocking pread calls into a
// backpressured byte-chunk sequence.
package iobuf

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool bounds how many blocking file-IO operations run through Do may
// execute concurrently. ChunkReader's ReadAt calls go through it; the
// Stat, Open and ReadDir calls of the serve and browse stages do not. spec.md §5 calls for "one pool of fixed size
// (default 1)"; Go has no single-threaded CPU-pool equivalent, so this is
// built as a counting semaphore that any number of goroutines can acquire,
// capping real concurrency at Size regardless of how many requests are
// in flight.
type Pool struct {
	sem  *semaphore.Weighted
	size int64
}

// NewPool builds a worker pool of the given size. size <= 0 is treated as 1,
// matching spec.md's default.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), size: int64(size)}
}

// Do runs fn on the pool, blocking until a slot is free or ctx is done.
func (p *Pool) Do(ctx context.Context, fn func()) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)
	fn()
	return nil
}

// Size reports the configured concurrency limit.
func (p *Pool) Size() int {
	return int(p.size)
}
