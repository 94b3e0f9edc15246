// Package content synthesizes the summary, chapter outline and keyword set
// from the evidence bundle and the canonical participant names.
package content

import (
	"regexp"
	"sort"
	"strings"

	"github.com/andrehq/vidnotes/internal/types"
)

// minSentenceWords filters out fragments when splitting source text into
// candidate sentences.
const minSentenceWords = 5

var sentenceBoundary = regexp.MustCompile(`[.!?\n]+`)

// Summarize builds an extractive summary from the description and transcript,
// hard-capped at maxWords. Source text already within the cap passes through
// cleaned and verbatim; otherwise sentences are scored against the title and
// participant names and selected until the cap, so truncation always lands on
// a sentence boundary.
func Summarize(bundle types.EvidenceBundle, participants []types.CanonicalName, maxWords int) string {
	source := joinSources(bundle.Get(types.SourceDescription), bundle.Get(types.SourceTranscript))
	if source == "" {
		return ""
	}

	cleaned := strings.Join(strings.Fields(source), " ")
	if wordCount(cleaned) <= maxWords {
		return cleaned
	}

	title := bundle.Get(types.SourceTitle)
	sentences := splitSentences(source)
	if len(sentences) == 0 {
		return truncateWords(cleaned, maxWords)
	}

	scored := scoreSentences(sentences, title, participants)

	var parts []string
	used := 0
	for _, s := range scored {
		n := wordCount(s.text)
		if used+n > maxWords {
			continue
		}
		parts = append(parts, s.text)
		used += n
		if used == maxWords {
			break
		}
	}

	if len(parts) == 0 {
		// Every sentence is longer than the cap; fall back to a word-boundary cut.
		return truncateWords(scored[0].text, maxWords)
	}

	// Keep the selected sentences in their original order.
	sort.Slice(parts, func(i, j int) bool {
		return strings.Index(source, parts[i]) < strings.Index(source, parts[j])
	})

	summary := strings.Join(parts, ". ") + "."
	return summary
}

type scoredSentence struct {
	text     string
	score    float64
	position int
}

// scoreSentences ranks sentences by title-word overlap, participant mentions,
// position and length.
func scoreSentences(sentences []string, title string, participants []types.CanonicalName) []scoredSentence {
	titleWords := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(title)) {
		titleWords[w] = true
	}

	scored := make([]scoredSentence, 0, len(sentences))
	for i, sentence := range sentences {
		lower := strings.ToLower(sentence)
		score := 0.0

		for _, w := range strings.Fields(lower) {
			if titleWords[w] {
				score += 2.0
			}
		}

		for _, p := range participants {
			if strings.Contains(lower, strings.ToLower(p.Name)) {
				score += 3.0
			}
		}

		// Earlier sentences carry slightly more context.
		score -= float64(i) * 0.1

		if n := wordCount(sentence); n >= 10 && n <= 30 {
			score += 1.0
		}

		scored = append(scored, scoredSentence{text: sentence, score: score, position: i})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].position < scored[j].position
	})
	return scored
}

func splitSentences(text string) []string {
	raw := sentenceBoundary.Split(text, -1)
	var sentences []string
	for _, s := range raw {
		s = strings.Join(strings.Fields(s), " ")
		if wordCount(s) >= minSentenceWords {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func joinSources(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(p))
		}
	}
	return strings.Join(nonEmpty, "\n")
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func truncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:maxWords], " ")
}

// WordCount reports the number of whitespace-separated words, used by the
// pipeline to enforce the summary cap invariant.
func WordCount(s string) int {
	return wordCount(s)
}
