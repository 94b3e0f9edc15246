//nolint:revive // types is a standard Go package name pattern
package types

// Source identifies where a piece of text evidence came from.
type Source string

// Evidence source tags. These are the only valid keys of an EvidenceBundle.
const (
	SourceTitle       Source = "title"
	SourceDescription Source = "description"
	SourceTranscript  Source = "transcript"
	SourceOCR         Source = "ocr"
)

// AllSources lists the source tags in their canonical order.
var AllSources = []Source{SourceTitle, SourceDescription, SourceTranscript, SourceOCR}

// EvidenceBundle maps each source tag to its normalized raw text.
// It is built once per run by the evidence collector and read-only afterward.
type EvidenceBundle map[Source]string

// Get returns the text for a source tag, or "" when the source is absent.
func (b EvidenceBundle) Get(src Source) string {
	return b[src]
}
