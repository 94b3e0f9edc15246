//nolint:revive // types is a standard Go package name pattern
package types

import "sort"

// NameCandidate is an unvalidated person-name string extracted from evidence.
// Uniqueness is by NormalizedKey; Text keeps the display casing of the first
// occurrence.
type NameCandidate struct {
	Text          string         `json:"text"`
	NormalizedKey string         `json:"normalized_key"`
	Sources       map[Source]int `json:"sources"` // source tag -> mention count within that source
}

// MentionCount returns the total number of mentions across all sources.
func (c NameCandidate) MentionCount() int {
	total := 0
	for _, n := range c.Sources {
		total += n
	}
	return total
}

// MaxSingleSourceCount returns the highest mention count within any one source.
func (c NameCandidate) MaxSingleSourceCount() int {
	max := 0
	for _, n := range c.Sources {
		if n > max {
			max = n
		}
	}
	return max
}

// SourceTags returns the tags of the sources that mentioned the candidate,
// in canonical order.
func (c NameCandidate) SourceTags() []Source {
	var tags []Source
	for _, src := range AllSources {
		if c.Sources[src] > 0 {
			tags = append(tags, src)
		}
	}
	return tags
}

// CriterionKind tags one independent corroboration signal of the
// Anti-Error Protocol.
type CriterionKind string

// Corroboration criteria.
const (
	CriterionMultiSource CriterionKind = "multi_source" // present in >= 2 distinct sources
	CriterionSearch      CriterionKind = "search"       // search hit consistent with the video topic
	CriterionRepetition  CriterionKind = "repetition"   // repeated within a single source
)

// ValidationResult records which criteria a candidate met and whether it was
// accepted. Produced once per candidate and immutable afterward.
type ValidationResult struct {
	Candidate   NameCandidate   `json:"candidate"`
	CriteriaMet []CriterionKind `json:"criteria_met"`
	Accepted    bool            `json:"accepted"`
}

// Met reports whether the given criterion is in the met set.
func (r ValidationResult) Met(kind CriterionKind) bool {
	for _, k := range r.CriteriaMet {
		if k == kind {
			return true
		}
	}
	return false
}

// CanonicalName is the deduplicated, display-ready form of one accepted
// candidate group, with merged provenance.
type CanonicalName struct {
	Name       string          `json:"name"`
	Bio        string          `json:"bio,omitempty"`
	MergedFrom []NameCandidate `json:"merged_from"`
}

// SortCandidates orders candidates by normalized key so that downstream
// processing is independent of extraction order.
func SortCandidates(candidates []NameCandidate) {
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].NormalizedKey < candidates[j].NormalizedKey
	})
}
