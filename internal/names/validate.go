package names

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/andrehq/vidnotes/internal/search"
	"github.com/andrehq/vidnotes/internal/types"
)

// minCriteria is the acceptance gate of the Anti-Error Protocol: a candidate
// needs at least this many independent corroboration signals.
const minCriteria = 2

// maxConcurrentQueries bounds the validation worker pool. Per-candidate
// validations share no mutable state, so they run concurrently.
const maxConcurrentQueries = 4

// Validator applies the Anti-Error Protocol to candidates.
type Validator struct {
	// Oracle answers corroboration queries. Callers wrap it with
	// search.NewBounded so each query carries the timeout and retry budget.
	Oracle search.Oracle
	// Topic is the declared topic context appended to oracle queries and
	// matched against hit snippets, normally the video title.
	Topic string
	// Channel adds disambiguation context to oracle queries.
	Channel string
	// RepetitionThreshold is the single-source mention count needed for the
	// repetition criterion.
	RepetitionThreshold int
}

// Accepted is the pure acceptance predicate over a criterion set.
func Accepted(criteria []types.CriterionKind) bool {
	return len(criteria) >= minCriteria
}

// ValidateAll validates every candidate concurrently and returns results
// sorted by candidate key. A cancelled context aborts the whole batch:
// partially validated sets are never returned.
func (v *Validator) ValidateAll(ctx context.Context, candidates []types.NameCandidate) ([]types.ValidationResult, error) {
	results := make([]types.ValidationResult, len(candidates))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQueries)

	for i, candidate := range candidates {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = v.validate(gCtx, candidate)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// validate scores one candidate against the fixed criteria set. Oracle
// failures score the search criterion as not met, never as met.
func (v *Validator) validate(ctx context.Context, candidate types.NameCandidate) types.ValidationResult {
	var met []types.CriterionKind

	if len(candidate.SourceTags()) >= 2 {
		met = append(met, types.CriterionMultiSource)
	}

	if v.searchCorroborates(ctx, candidate) {
		met = append(met, types.CriterionSearch)
	}

	if v.RepetitionThreshold > 0 && candidate.MaxSingleSourceCount() >= v.RepetitionThreshold {
		met = append(met, types.CriterionRepetition)
	}

	return types.ValidationResult{
		Candidate:   candidate,
		CriteriaMet: met,
		Accepted:    Accepted(met),
	}
}

// searchCorroborates queries the oracle for the candidate and checks whether
// any hit snippet carries a topic term from the video context.
func (v *Validator) searchCorroborates(ctx context.Context, candidate types.NameCandidate) bool {
	if v.Oracle == nil {
		return false
	}

	query := candidate.Text
	if v.Channel != "" {
		query += " " + v.Channel
	}

	hits, err := v.Oracle.Search(ctx, query)
	if err != nil || len(hits) == 0 {
		return false
	}

	terms := TopicTerms(v.Topic)
	if len(terms) == 0 {
		// No usable topic context: any hit mentioning the candidate by name
		// counts as corroboration.
		terms = []string{NormalizeKey(candidate.Text)}
	}

	for _, hit := range hits {
		haystack := strings.ToLower(hit.Title + " " + hit.Snippet)
		for _, term := range terms {
			if strings.Contains(haystack, term) {
				return true
			}
		}
	}
	return false
}

// TopicTerms extracts the significant lowercase terms of a topic string,
// used to test snippet consistency.
func TopicTerms(topic string) []string {
	var terms []string
	for _, tok := range strings.Fields(strings.ToLower(topic)) {
		tok = strings.Trim(tok, ".,!?:;\"'()[]|")
		if len([]rune(tok)) < 4 || stopWords[tok] {
			continue
		}
		terms = append(terms, tok)
	}
	return terms
}

// AcceptedResults filters a result set down to the accepted candidates.
func AcceptedResults(results []types.ValidationResult) []types.ValidationResult {
	var accepted []types.ValidationResult
	for _, r := range results {
		if r.Accepted {
			accepted = append(accepted, r)
		}
	}
	return accepted
}
