package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrehq/vidnotes/internal/types"
)

func acceptedResult(text string, sources map[types.Source]int) types.ValidationResult {
	return types.ValidationResult{
		Candidate: candidate(text, sources),
		CriteriaMet: []types.CriterionKind{
			types.CriterionMultiSource, types.CriterionRepetition,
		},
		Accepted: true,
	}
}

func newCanonicalizer() *Canonicalizer {
	return &Canonicalizer{SimilarityThreshold: 0.85}
}

func TestCanonicalize_ExactFoldVariantsShareAKey(t *testing.T) {
	// Extraction already merges exact case-fold duplicates; canonicalization
	// keeps them as a single group.
	accepted := []types.ValidationResult{
		acceptedResult("John Silva", map[types.Source]int{types.SourceTitle: 1, types.SourceTranscript: 4}),
	}

	canonical := newCanonicalizer().Canonicalize(accepted, types.EvidenceBundle{})
	require.Len(t, canonical, 1)
	assert.Equal(t, "John Silva", canonical[0].Name)
	require.Len(t, canonical[0].MergedFrom, 1)
}

func TestCanonicalize_FirstNameMergesIntoFullName(t *testing.T) {
	accepted := []types.ValidationResult{
		acceptedResult("John Silva", map[types.Source]int{types.SourceTitle: 1, types.SourceDescription: 1}),
		acceptedResult("John", map[types.Source]int{types.SourceTranscript: 6, types.SourceOCR: 1}),
	}

	canonical := newCanonicalizer().Canonicalize(accepted, types.EvidenceBundle{})
	require.Len(t, canonical, 1)
	assert.Equal(t, "John Silva", canonical[0].Name)
	assert.Len(t, canonical[0].MergedFrom, 2)
}

func TestCanonicalize_SpellingVariantsMerge(t *testing.T) {
	accepted := []types.ValidationResult{
		acceptedResult("Maria Gonzales", map[types.Source]int{types.SourceTitle: 1, types.SourceDescription: 2}),
		acceptedResult("Maria Gonzalez", map[types.Source]int{types.SourceOCR: 1, types.SourceTranscript: 3}),
	}

	canonical := newCanonicalizer().Canonicalize(accepted, types.EvidenceBundle{})
	require.Len(t, canonical, 1)
}

func TestCanonicalize_DistinctPeopleStaySeparate(t *testing.T) {
	accepted := []types.ValidationResult{
		acceptedResult("John Silva", map[types.Source]int{types.SourceTitle: 1, types.SourceDescription: 1}),
		acceptedResult("Maria Costa", map[types.Source]int{types.SourceTitle: 1, types.SourceTranscript: 4}),
	}

	canonical := newCanonicalizer().Canonicalize(accepted, types.EvidenceBundle{})
	require.Len(t, canonical, 2)
	assert.Equal(t, "John Silva", canonical[0].Name)
	assert.Equal(t, "Maria Costa", canonical[1].Name)
}

func TestCanonicalize_Idempotent(t *testing.T) {
	accepted := []types.ValidationResult{
		acceptedResult("John Silva", map[types.Source]int{types.SourceTitle: 1, types.SourceDescription: 1}),
		acceptedResult("John", map[types.Source]int{types.SourceTranscript: 6}),
		acceptedResult("Maria Costa", map[types.Source]int{types.SourceTitle: 1, types.SourceOCR: 2}),
	}

	c := newCanonicalizer()
	first := c.Canonicalize(accepted, types.EvidenceBundle{})

	// Re-run on the already-canonical set.
	var again []types.ValidationResult
	for _, cn := range first {
		again = append(again, acceptedResult(cn.Name, map[types.Source]int{types.SourceTitle: 1, types.SourceDescription: 1}))
	}
	second := c.Canonicalize(again, types.EvidenceBundle{})

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
	}
}

func TestCanonicalize_Partition(t *testing.T) {
	accepted := []types.ValidationResult{
		acceptedResult("John Silva", map[types.Source]int{types.SourceTitle: 1, types.SourceDescription: 1}),
		acceptedResult("John", map[types.Source]int{types.SourceTranscript: 6}),
		acceptedResult("Maria Costa", map[types.Source]int{types.SourceTitle: 1, types.SourceOCR: 2}),
	}

	canonical := newCanonicalizer().Canonicalize(accepted, types.EvidenceBundle{})

	seen := make(map[string]int)
	total := 0
	for _, cn := range canonical {
		for _, merged := range cn.MergedFrom {
			seen[merged.NormalizedKey]++
			total++
		}
	}

	// Every accepted candidate in exactly one group.
	assert.Equal(t, len(accepted), total)
	for key, count := range seen {
		assert.Equal(t, 1, count, "candidate %q in %d groups", key, count)
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("john silva", "john silva"))
	assert.Greater(t, Similarity("maria gonzales", "maria gonzalez"), 0.9)
	assert.Less(t, Similarity("john silva", "maria costa"), 0.5)
	assert.Equal(t, 1.0, Similarity("", ""))
}

func TestDeriveBio(t *testing.T) {
	bundle := types.EvidenceBundle{
		types.SourceDescription: "John Silva, economist and market analyst, joins the show.",
	}

	bio := DeriveBio("John Silva", bundle)
	assert.Contains(t, bio, "economist")
	lenWords := len(bio)
	assert.NotZero(t, lenWords)
}

func TestDeriveBio_NoRoleContext(t *testing.T) {
	bundle := types.EvidenceBundle{
		types.SourceDescription: "John Silva joins the show to chat.",
	}
	assert.Equal(t, "", DeriveBio("John Silva", bundle))
}

func TestDeriveBio_FallsBackToTranscript(t *testing.T) {
	bundle := types.EvidenceBundle{
		types.SourceTranscript: "our guest John Silva is an investor focused on commodities",
	}
	bio := DeriveBio("John Silva", bundle)
	assert.Contains(t, bio, "investor")
}
