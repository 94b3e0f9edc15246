package search

import (
	"context"
	"sync"
	"time"
)

// maxAttempts is the query attempt budget: the original query plus one retry.
const maxAttempts = 2

// Bounded wraps an oracle with a per-query timeout and a single bounded
// retry. The pipeline must never block indefinitely on the oracle.
type Bounded struct {
	inner   Oracle
	timeout time.Duration
}

// NewBounded wraps inner with the given per-query timeout.
func NewBounded(inner Oracle, timeout time.Duration) *Bounded {
	return &Bounded{inner: inner, timeout: timeout}
}

// Search runs the query with a deadline, retrying once on failure. A
// cancelled parent context is never retried.
func (b *Bounded) Search(ctx context.Context, query string) ([]Hit, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		attemptCtx, cancel := context.WithTimeout(ctx, b.timeout)
		hits, err := b.inner.Search(attemptCtx, query)
		cancel()
		if err == nil {
			return hits, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// Cached memoizes query results for the duration of one pipeline run. The
// cache is run-local by construction: each run builds its own instance.
type Cached struct {
	inner Oracle

	mu      sync.Mutex
	hits    map[string][]Hit
	errored map[string]error
}

// NewCached wraps inner with a run-scoped memo.
func NewCached(inner Oracle) *Cached {
	return &Cached{
		inner:   inner,
		hits:    make(map[string][]Hit),
		errored: make(map[string]error),
	}
}

// Search returns the memoized result when the query was already issued in
// this run, including memoized failures.
func (c *Cached) Search(ctx context.Context, query string) ([]Hit, error) {
	c.mu.Lock()
	if hits, ok := c.hits[query]; ok {
		c.mu.Unlock()
		return hits, nil
	}
	if err, ok := c.errored[query]; ok {
		c.mu.Unlock()
		return nil, err
	}
	c.mu.Unlock()

	hits, err := c.inner.Search(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.errored[query] = err
		return nil, err
	}
	c.hits[query] = hits
	return hits, nil
}
