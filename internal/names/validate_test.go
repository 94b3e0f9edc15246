package names

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrehq/vidnotes/internal/search"
	"github.com/andrehq/vidnotes/internal/types"
)

// fakeOracle returns canned hits per query and counts calls.
type fakeOracle struct {
	calls atomic.Int32
	hits  map[string][]search.Hit
	err   error
}

func (o *fakeOracle) Search(_ context.Context, query string) ([]search.Hit, error) {
	o.calls.Add(1)
	if o.err != nil {
		return nil, o.err
	}
	return o.hits[query], nil
}

func candidate(text string, sources map[types.Source]int) types.NameCandidate {
	return types.NameCandidate{
		Text:          text,
		NormalizedKey: NormalizeKey(text),
		Sources:       sources,
	}
}

func TestAccepted(t *testing.T) {
	assert.False(t, Accepted(nil))
	assert.False(t, Accepted([]types.CriterionKind{types.CriterionSearch}))
	assert.True(t, Accepted([]types.CriterionKind{types.CriterionSearch, types.CriterionMultiSource}))
	assert.True(t, Accepted([]types.CriterionKind{
		types.CriterionSearch, types.CriterionMultiSource, types.CriterionRepetition,
	}))
}

func TestValidate_MultiSourceAndRepetition(t *testing.T) {
	// Oracle unreachable: C2 can never be met, C1+C3 still accept.
	v := &Validator{
		Oracle:              &fakeOracle{err: &search.Error{Message: "unreachable"}},
		Topic:               "Market Crash Analysis",
		RepetitionThreshold: 3,
	}

	c := candidate("John Silva", map[types.Source]int{
		types.SourceTitle:       1,
		types.SourceDescription: 1,
		types.SourceTranscript:  5,
	})

	results, err := v.ValidateAll(context.Background(), []types.NameCandidate{c})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.True(t, r.Met(types.CriterionMultiSource))
	assert.False(t, r.Met(types.CriterionSearch))
	assert.True(t, r.Met(types.CriterionRepetition))
	assert.True(t, r.Accepted)
}

func TestValidate_SearchAloneIsNotEnough(t *testing.T) {
	oracle := &fakeOracle{hits: map[string][]search.Hit{
		"Maria Costa": {{Snippet: "Maria Costa discusses market crash analysis"}},
	}}
	v := &Validator{Oracle: oracle, Topic: "Market Crash Analysis", RepetitionThreshold: 3}

	c := candidate("Maria Costa", map[types.Source]int{types.SourceOCR: 1})

	results, err := v.ValidateAll(context.Background(), []types.NameCandidate{c})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, []types.CriterionKind{types.CriterionSearch}, r.CriteriaMet)
	assert.False(t, r.Accepted)
}

func TestValidate_ZeroHitsSingleSource(t *testing.T) {
	v := &Validator{
		Oracle:              &fakeOracle{hits: map[string][]search.Hit{}},
		Topic:               "Market Crash",
		RepetitionThreshold: 3,
	}

	c := candidate("Noise Word", map[types.Source]int{types.SourceOCR: 1})

	results, err := v.ValidateAll(context.Background(), []types.NameCandidate{c})
	require.NoError(t, err)
	assert.False(t, results[0].Accepted)
	assert.Empty(t, results[0].CriteriaMet)
}

func TestValidate_SnippetMustMatchTopic(t *testing.T) {
	oracle := &fakeOracle{hits: map[string][]search.Hit{
		"John Silva": {{Snippet: "a completely unrelated page about gardening"}},
	}}
	v := &Validator{Oracle: oracle, Topic: "Market Crash Analysis", RepetitionThreshold: 3}

	c := candidate("John Silva", map[types.Source]int{types.SourceTitle: 1})

	results, err := v.ValidateAll(context.Background(), []types.NameCandidate{c})
	require.NoError(t, err)
	assert.False(t, results[0].Met(types.CriterionSearch))
}

func TestValidate_ChannelAddedToQuery(t *testing.T) {
	oracle := &fakeOracle{hits: map[string][]search.Hit{
		"John Silva Finance Talks": {{Snippet: "John Silva on the market crash"}},
	}}
	v := &Validator{Oracle: oracle, Topic: "Market Crash", Channel: "Finance Talks", RepetitionThreshold: 3}

	c := candidate("John Silva", map[types.Source]int{types.SourceTitle: 1})

	results, err := v.ValidateAll(context.Background(), []types.NameCandidate{c})
	require.NoError(t, err)
	assert.True(t, results[0].Met(types.CriterionSearch))
}

func TestValidateAll_CancelledContextReturnsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := &Validator{Oracle: &fakeOracle{}, RepetitionThreshold: 3}
	candidates := []types.NameCandidate{
		candidate("John Silva", map[types.Source]int{types.SourceTitle: 1}),
		candidate("Maria Costa", map[types.Source]int{types.SourceTitle: 1}),
	}

	results, err := v.ValidateAll(ctx, candidates)
	require.Error(t, err)
	assert.Nil(t, results)
}

func TestTopicTerms(t *testing.T) {
	terms := TopicTerms("The Market Crash of 2024, explained!")
	assert.Contains(t, terms, "market")
	assert.Contains(t, terms, "crash")
	assert.Contains(t, terms, "2024")
	assert.Contains(t, terms, "explained")
	assert.NotContains(t, terms, "the")
	assert.NotContains(t, terms, "of")
}

func TestAcceptedResults(t *testing.T) {
	results := []types.ValidationResult{
		{Accepted: true, Candidate: candidate("A B", nil)},
		{Accepted: false, Candidate: candidate("C D", nil)},
		{Accepted: true, Candidate: candidate("E F", nil)},
	}
	accepted := AcceptedResults(results)
	require.Len(t, accepted, 2)
	assert.True(t, accepted[0].Accepted)
	assert.True(t, accepted[1].Accepted)
}
