package content

import (
	"sort"
	"strings"
	"unicode"

	"github.com/andrehq/vidnotes/internal/types"
)

// Source weights for keyword scoring. Title words name the topic and OCR
// words come from on-screen graphics, so both outrank body text.
const (
	titleWeight      = 3.0
	ocrWeight        = 2.0
	bodyWeight       = 1.0
	minKeywordLength = 3
)

var keywordStopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "have": true, "has": true, "are": true,
	"was": true, "were": true, "will": true, "would": true, "could": true,
	"should": true, "about": true, "into": true, "over": true, "under": true,
	"what": true, "when": true, "where": true, "which": true, "while": true,
	"their": true, "there": true, "here": true, "they": true, "them": true,
	"then": true, "than": true, "your": true, "you": true, "our": true,
	"his": true, "her": true, "its": true, "not": true, "but": true,
	"all": true, "also": true, "just": true, "like": true, "more": true,
	"most": true, "some": true, "such": true, "very": true, "can": true,
	"get": true, "got": true, "how": true, "why": true, "who": true,
	"one": true, "two": true, "out": true, "now": true, "new": true,
	"today": true, "video": true, "episode": true, "watch": true,
	"subscribe": true, "channel": true, "don": true, "going": true,
	"know": true, "think": true, "really": true, "well": true, "yeah": true,
	"because": true, "been": true, "being": true, "before": true,
	"after": true, "other": true, "only": true, "right": true, "want": true,
	"way": true, "thing": true, "things": true, "lot": true, "say": true,
	"said": true, "people": true, "time": true,
}

// Keywords extracts up to maxKeywords salient terms from the evidence bundle.
// Terms are scored by frequency weighted per source, title and OCR terms
// counting more. Canonical participant names always make the list, displacing
// the lowest-scored terms when the cap is tight. Output is lowercase and
// deduplicated.
func Keywords(bundle types.EvidenceBundle, participants []types.CanonicalName, maxKeywords int) []string {
	if maxKeywords <= 0 {
		return nil
	}

	scores := make(map[string]float64)
	accumulate(scores, bundle.Get(types.SourceTitle), titleWeight)
	accumulate(scores, bundle.Get(types.SourceOCR), ocrWeight)
	accumulate(scores, bundle.Get(types.SourceDescription), bodyWeight)
	accumulate(scores, bundle.Get(types.SourceTranscript), bodyWeight)

	// Participant names are keywords regardless of score.
	reserved := make([]string, 0, len(participants))
	reservedSet := make(map[string]bool)
	for _, p := range participants {
		name := strings.ToLower(strings.Join(strings.Fields(p.Name), " "))
		if name == "" || reservedSet[name] {
			continue
		}
		reserved = append(reserved, name)
		reservedSet[name] = true
		for _, tok := range strings.Fields(name) {
			delete(scores, tok)
		}
	}

	type scoredTerm struct {
		term  string
		score float64
	}
	terms := make([]scoredTerm, 0, len(scores))
	for term, score := range scores {
		terms = append(terms, scoredTerm{term, score})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].score != terms[j].score {
			return terms[i].score > terms[j].score
		}
		return terms[i].term < terms[j].term
	})

	keywords := reserved
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	for _, t := range terms {
		if len(keywords) >= maxKeywords {
			break
		}
		keywords = append(keywords, t.term)
	}
	return keywords
}

func accumulate(scores map[string]float64, text string, weight float64) {
	for _, raw := range strings.Fields(strings.ToLower(text)) {
		term := strings.TrimFunc(raw, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len([]rune(term)) < minKeywordLength || keywordStopWords[term] {
			continue
		}
		scores[term] += weight
	}
}
