package content

import (
	"time"

	"github.com/andrehq/vidnotes/internal/types"
)

// Options controls content synthesis limits.
type Options struct {
	SummaryMaxWords int
	ChapterInterval time.Duration
	MaxKeywords     int
}

// Synthesize produces the full content bundle for a video: summary, chapter
// outline and keyword set.
func Synthesize(video *types.VideoData, bundle types.EvidenceBundle, participants []types.CanonicalName, opts Options) types.ContentBundle {
	return types.ContentBundle{
		Summary:  Summarize(bundle, participants, opts.SummaryMaxWords),
		Chapters: BuildChapters(video, opts.ChapterInterval),
		Keywords: Keywords(bundle, participants, opts.MaxKeywords),
	}
}
