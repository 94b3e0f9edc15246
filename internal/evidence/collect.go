// Package evidence normalizes the raw per-source texts into the immutable
// bundle consumed by name extraction and content synthesis.
package evidence

import (
	"regexp"
	"strings"

	"github.com/andrehq/vidnotes/internal/types"
)

var multiSpace = regexp.MustCompile(`[ \t]+`)

// Collect builds the evidence bundle for one run. Source texts are
// normalized (line endings, collapsed spaces, trimmed) but otherwise kept
// verbatim; empty sources stay absent from the bundle.
func Collect(video *types.VideoData, ocrText string) types.EvidenceBundle {
	bundle := make(types.EvidenceBundle, 4)

	add := func(src types.Source, text string) {
		text = Normalize(text)
		if text != "" {
			bundle[src] = text
		}
	}

	add(types.SourceTitle, video.Title)
	add(types.SourceDescription, video.Description)
	add(types.SourceTranscript, video.Transcript.Text)
	add(types.SourceOCR, ocrText)

	return bundle
}

// Normalize canonicalizes line endings and collapses runs of horizontal
// whitespace, preserving line structure.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(multiSpace.ReplaceAllString(line, " "))
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
