package search

import (
	"context"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// GoogleOracle answers queries through the Google Custom Search API.
type GoogleOracle struct {
	svc *customsearch.Service
	cx  string
}

// NewGoogleOracle creates a Custom Search backed oracle.
func NewGoogleOracle(ctx context.Context, apiKey, cx string) (*GoogleOracle, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &Error{Message: "failed to create customsearch service", Cause: err}
	}
	return &GoogleOracle{svc: svc, cx: cx}, nil
}

// Search returns up to MaxHits results for the query.
func (o *GoogleOracle) Search(ctx context.Context, query string) ([]Hit, error) {
	resp, err := o.svc.Cse.List().Context(ctx).Cx(o.cx).Q(query).Num(MaxHits).Do()
	if err != nil {
		return nil, &Error{Query: query, Message: "custom search request failed", Cause: err}
	}

	hits := make([]Hit, 0, len(resp.Items))
	for _, item := range resp.Items {
		hits = append(hits, Hit{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
		if len(hits) == MaxHits {
			break
		}
	}
	return hits, nil
}
