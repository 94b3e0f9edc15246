// Package names implements the name-resolution core: candidate extraction
// from noisy evidence, cross-source validation against the search oracle,
// and canonicalization of accepted candidates.
package names

import (
	"regexp"
	"strings"

	"github.com/andrehq/vidnotes/internal/types"
)

// capitalizedRun matches sequences of 2-5 capitalized words, the base
// heuristic for person names in titles, descriptions and OCR text.
var capitalizedRun = regexp.MustCompile(`\b(?:[A-ZÀ-Ü][a-zà-ü]+\b[ \t]*){2,5}`)

// markerRun matches a name introduced by a guest marker ("with", "feat.").
// Markers are strong enough signals to accept single-token names.
var markerRun = regexp.MustCompile(`\b(?:[Ww]ith|[Ff]eat\.?|[Ff]t\.?|[Ff]eaturing)\s+((?:[A-ZÀ-Ü][a-zà-ü]+\b[ \t]*){1,5})`)

// stopWords are words that start sentences capitalized without being names.
// A candidate made only of these is discarded.
var stopWords = map[string]bool{
	"the": true, "this": true, "that": true, "these": true, "those": true,
	"today": true, "tonight": true, "now": true, "here": true, "there": true,
	"what": true, "when": true, "where": true, "why": true, "how": true, "who": true,
	"and": true, "but": true, "for": true, "not": true, "all": true, "new": true,
	"full": true, "live": true, "episode": true, "video": true, "watch": true,
	"part": true, "welcome": true, "thanks": true, "subscribe": true,
	"breaking": true, "exclusive": true, "official": true, "best": true,
}

// ExtractCandidates scans every source in the bundle and returns the
// deduplicated candidate set, sorted by normalized key. The result depends
// only on the bundle contents: extracting twice yields identical candidates
// and counts.
func ExtractCandidates(bundle types.EvidenceBundle) []types.NameCandidate {
	byKey := make(map[string]*types.NameCandidate)

	for _, src := range types.AllSources {
		text := bundle.Get(src)
		if text == "" {
			continue
		}
		for _, raw := range scanSource(text) {
			name := strings.TrimSpace(raw)
			if !plausibleName(name) {
				continue
			}
			key := NormalizeKey(name)

			candidate, ok := byKey[key]
			if !ok {
				candidate = &types.NameCandidate{
					Text:          name,
					NormalizedKey: key,
					Sources:       make(map[types.Source]int),
				}
				byKey[key] = candidate
			}
			candidate.Sources[src]++
		}
	}

	candidates := make([]types.NameCandidate, 0, len(byKey))
	for _, c := range byKey {
		candidates = append(candidates, *c)
	}
	types.SortCandidates(candidates)
	return candidates
}

// scanSource returns every raw name occurrence in a source text, one entry
// per mention so that callers can aggregate counts. Marker matches that
// overlap a capitalized run are skipped to avoid counting a mention twice.
func scanSource(text string) []string {
	matches := capitalizedRun.FindAllString(text, -1)
	covered := capitalizedRun.FindAllStringIndex(text, -1)

	for _, loc := range markerRun.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[2], loc[3] // first capture group
		if overlapsAny(start, end, covered) {
			continue
		}
		matches = append(matches, text[start:end])
	}
	return matches
}

func overlapsAny(start, end int, spans [][]int) bool {
	for _, span := range spans {
		if start < span[1] && end > span[0] {
			return true
		}
	}
	return false
}

// plausibleName rejects matches that cannot be person names: too short,
// single characters, or made up entirely of capitalized stop words.
func plausibleName(name string) bool {
	if len([]rune(name)) < 2 {
		return false
	}

	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if !stopWords[strings.ToLower(tok)] {
			return true
		}
	}
	return false
}

// NormalizeKey is the dedup key for candidate names: case-folded with
// collapsed whitespace.
func NormalizeKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
