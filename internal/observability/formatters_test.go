package observability

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrehq/vidnotes/internal/types"
)

func TestPrintEvidence(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintEvidence(types.EvidenceBundle{
		types.SourceTitle:      "Market Crash",
		types.SourceTranscript: "a long transcript here",
	})

	out := buf.String()
	assert.Contains(t, out, "EVIDENCE BUNDLE")
	assert.Contains(t, out, "title:")
	assert.Contains(t, out, "transcript:")
	assert.NotContains(t, out, "ocr:")
}

func TestPrintEvidence_EmptyBundleWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintEvidence(types.EvidenceBundle{})
	assert.Empty(t, buf.String())
}

func TestPrintCandidates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCandidates([]types.NameCandidate{
		{
			Text:          "John Silva",
			NormalizedKey: "john silva",
			Sources:       map[types.Source]int{types.SourceTitle: 1, types.SourceTranscript: 4},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "NAME CANDIDATES")
	assert.Contains(t, out, "John Silva")
	assert.Contains(t, out, "mentions: 5")
}

func TestPrintValidation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidation([]types.ValidationResult{
		{
			Candidate:   types.NameCandidate{Text: "John Silva"},
			CriteriaMet: []types.CriterionKind{types.CriterionMultiSource, types.CriterionRepetition},
			Accepted:    true,
		},
		{
			Candidate: types.NameCandidate{Text: "Noise Word"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "ACCEPTED")
	assert.Contains(t, out, "rejected")
	assert.Contains(t, out, "1 of 2 accepted")
}

func TestPrintCanonicalNames(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCanonicalNames([]types.CanonicalName{
		{
			Name: "John Silva",
			Bio:  "economist",
			MergedFrom: []types.NameCandidate{
				{Text: "John Silva"},
				{Text: "John"},
			},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "CANONICAL NAMES")
	assert.Contains(t, out, "bio: economist")
	assert.Contains(t, out, "merged: John Silva, John")
}

func TestPrintContent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintContent(&types.ContentBundle{
		Summary: "a short summary of the episode",
		Chapters: []types.Chapter{
			{Start: 0, Title: "Introduction"},
			{Start: 4 * time.Minute, Title: "Part 2"},
		},
		Keywords: []string{"market", "crash"},
	})

	out := buf.String()
	assert.Contains(t, out, "CONTENT BUNDLE")
	assert.Contains(t, out, "Chapters: 2")
	assert.Contains(t, out, "00:00 Introduction")
	assert.Contains(t, out, "market, crash")
}

func TestPrintContent_NilIsNoop(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintContent(nil)
	assert.Empty(t, buf.String())
}
