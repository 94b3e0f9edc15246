package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrehq/vidnotes/internal/types"
)

func TestExtractCandidates(t *testing.T) {
	bundle := types.EvidenceBundle{
		types.SourceTitle:       "Market Crash with John Silva",
		types.SourceDescription: "John Silva joins us. Also featuring Maria Costa.",
		types.SourceTranscript:  "john silva talks a lot but John Silva is mentioned twice here John Silva",
	}

	candidates := ExtractCandidates(bundle)

	byKey := make(map[string]types.NameCandidate)
	for _, c := range candidates {
		byKey[c.NormalizedKey] = c
	}

	john, ok := byKey["john silva"]
	require.True(t, ok, "expected john silva candidate")
	assert.Equal(t, "John Silva", john.Text)
	assert.Equal(t, 1, john.Sources[types.SourceTitle])
	assert.Equal(t, 1, john.Sources[types.SourceDescription])
	assert.Equal(t, 2, john.Sources[types.SourceTranscript])

	maria, ok := byKey["maria costa"]
	require.True(t, ok, "expected maria costa candidate")
	assert.Equal(t, []types.Source{types.SourceDescription}, maria.SourceTags())
}

func TestExtractCandidates_Deterministic(t *testing.T) {
	bundle := types.EvidenceBundle{
		types.SourceTitle: "Ana Maria and Bruno Dias and Carla Souza",
		types.SourceOCR:   "BRUNO Dias\nAna Maria",
	}

	first := ExtractCandidates(bundle)
	second := ExtractCandidates(bundle)
	assert.Equal(t, first, second)

	// Sorted by normalized key
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].NormalizedKey, first[i].NormalizedKey)
	}
}

func TestExtractCandidates_DiscardsNoise(t *testing.T) {
	bundle := types.EvidenceBundle{
		types.SourceTitle:       "This Episode Today Now",
		types.SourceDescription: "What When",
	}

	candidates := ExtractCandidates(bundle)
	assert.Empty(t, candidates)
}

func TestExtractCandidates_MarkerSingleToken(t *testing.T) {
	bundle := types.EvidenceBundle{
		types.SourceDescription: "a conversation with Serena about tennis",
	}

	candidates := ExtractCandidates(bundle)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Serena", candidates[0].Text)
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "john silva", NormalizeKey("John  Silva"))
	assert.Equal(t, "john silva", NormalizeKey("  JOHN SILVA  "))
}

func TestPlausibleName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"John Silva", true},
		{"J", false},
		{"The This", false},
		{"Today Now", false},
		{"The Silva", true}, // one non-stop-word token rescues it
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plausibleName(tt.name))
		})
	}
}
