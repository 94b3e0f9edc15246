package names

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/andrehq/vidnotes/internal/types"
)

// Canonicalizer merges accepted candidates that refer to the same person.
type Canonicalizer struct {
	// SimilarityThreshold is the minimum normalized-string similarity for a
	// near-match merge (exact case-fold matches merge regardless).
	SimilarityThreshold float64
}

// Canonicalize partitions the accepted results into canonical names. Every
// accepted candidate lands in exactly one group. The operation is
// idempotent: an already-canonical set maps to itself.
func (c *Canonicalizer) Canonicalize(accepted []types.ValidationResult, bundle types.EvidenceBundle) []types.CanonicalName {
	candidates := make([]types.NameCandidate, 0, len(accepted))
	for _, r := range accepted {
		candidates = append(candidates, r.Candidate)
	}

	// Stable processing order: strongest candidates first so they anchor
	// groups, with the key as the final tiebreak.
	sort.Slice(candidates, func(i, j int) bool {
		ci, cj := candidates[i], candidates[j]
		if ci.MentionCount() != cj.MentionCount() {
			return ci.MentionCount() > cj.MentionCount()
		}
		if len(ci.Text) != len(cj.Text) {
			return len(ci.Text) > len(cj.Text)
		}
		return ci.NormalizedKey < cj.NormalizedKey
	})

	var groups [][]types.NameCandidate
	for _, candidate := range candidates {
		assigned := false
		for gi, group := range groups {
			if c.sameEntity(group[0], candidate) {
				groups[gi] = append(groups[gi], candidate)
				assigned = true
				break
			}
		}
		if !assigned {
			groups = append(groups, []types.NameCandidate{candidate})
		}
	}

	canonical := make([]types.CanonicalName, 0, len(groups))
	for _, group := range groups {
		display := pickDisplayName(group)
		merged := make([]types.NameCandidate, len(group))
		copy(merged, group)
		types.SortCandidates(merged)

		canonical = append(canonical, types.CanonicalName{
			Name:       display,
			Bio:        DeriveBio(display, bundle),
			MergedFrom: merged,
		})
	}

	sort.Slice(canonical, func(i, j int) bool {
		return NormalizeKey(canonical[i].Name) < NormalizeKey(canonical[j].Name)
	})
	return canonical
}

// sameEntity reports whether two candidates refer to the same person: exact
// case-fold match, token containment (first-name-only vs. full name), or
// string similarity above the threshold.
func (c *Canonicalizer) sameEntity(a, b types.NameCandidate) bool {
	if a.NormalizedKey == b.NormalizedKey {
		return true
	}
	if tokenSubset(a.NormalizedKey, b.NormalizedKey) {
		return true
	}
	return Similarity(a.NormalizedKey, b.NormalizedKey) >= c.SimilarityThreshold
}

// pickDisplayName prefers the longer variant, then the higher mention count.
func pickDisplayName(group []types.NameCandidate) string {
	best := group[0]
	for _, candidate := range group[1:] {
		if len(candidate.Text) > len(best.Text) {
			best = candidate
			continue
		}
		if len(candidate.Text) == len(best.Text) && candidate.MentionCount() > best.MentionCount() {
			best = candidate
		}
	}
	return best.Text
}

// tokenSubset reports whether every token of the shorter name appears in the
// longer one ("john" vs "john silva").
func tokenSubset(a, b string) bool {
	short, long := strings.Fields(a), strings.Fields(b)
	if len(short) > len(long) {
		short, long = long, short
	}

	longSet := make(map[string]bool, len(long))
	for _, tok := range long {
		longSet[tok] = true
	}
	for _, tok := range short {
		if !longSet[tok] {
			return false
		}
	}
	return true
}

// Similarity is a normalized Levenshtein ratio in [0, 1]: 1 for identical
// strings, 0 for entirely different ones.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// roleTerms are occupation words that, found adjacent to a name in the
// description or transcript, seed the mini-bio.
var roleTerms = []string{
	"economist", "journalist", "investor", "trader", "analyst", "entrepreneur",
	"professor", "doctor", "lawyer", "engineer", "scientist", "researcher",
	"author", "writer", "host", "presenter", "founder", "ceo", "athlete",
	"comedian", "influencer", "consultant", "strategist", "historian",
}

const bioMaxWords = 8

// DeriveBio extracts a short role phrase adjacent to the name in the
// description or transcript. Absent such context the bio is empty; the
// renderer tolerates that.
func DeriveBio(name string, bundle types.EvidenceBundle) string {
	for _, src := range []types.Source{types.SourceDescription, types.SourceTranscript} {
		if bio := bioFromText(name, bundle.Get(src)); bio != "" {
			return bio
		}
	}
	return ""
}

func bioFromText(name, text string) string {
	if text == "" {
		return ""
	}

	// A window of words following each occurrence of the name.
	pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name) + `[,:\s—-]+((?:\S+\s*){1,` + strconv.Itoa(bioMaxWords) + `})`)
	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		window := strings.ToLower(m[1])
		for _, role := range roleTerms {
			if strings.Contains(window, role) {
				return trimBioPhrase(m[1])
			}
		}
	}
	return ""
}

// trimBioPhrase tidies the extracted window into a display phrase.
func trimBioPhrase(window string) string {
	phrase := window
	if idx := strings.IndexAny(phrase, ".!?\n"); idx >= 0 {
		phrase = phrase[:idx]
	}
	words := strings.Fields(phrase)
	if len(words) > bioMaxWords {
		words = words[:bioMaxWords]
	}
	return strings.Trim(strings.Join(words, " "), " ,;:-")
}
