// Package search provides the search oracle used to corroborate name
// candidates. Two implementations are available: the Google Custom Search
// API and an HTML results-page scraper. Both are wrapped by Bounded, which
// enforces the per-query timeout and single-retry policy, and by Cached,
// which memoizes hits for the duration of one run.
package search

import (
	"context"
	"fmt"
)

// MaxHits bounds the number of hits any oracle returns per query.
const MaxHits = 5

// Hit is one search result usable as corroborating evidence.
type Hit struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Oracle answers name queries with a bounded set of hits. An empty slice
// with a nil error means the query ran but found nothing.
type Oracle interface {
	Search(ctx context.Context, query string) ([]Hit, error)
}

// Error represents a per-query oracle failure. Oracle errors are non-fatal:
// the validator scores the affected criterion as not met.
type Error struct {
	Query   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("search error for %q: %s: %v", e.Query, e.Message, e.Cause)
	}
	return fmt.Sprintf("search error for %q: %s", e.Query, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
