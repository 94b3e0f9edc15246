package content

import (
	"fmt"
	"time"

	"github.com/andrehq/vidnotes/internal/types"
)

// BuildChapters returns the chapter outline for the video. Authoritative
// chapters from the platform pass through verbatim, in order. Without them,
// the video is segmented at exact multiples of interval: ceil(duration /
// interval) chapters starting at 0:00, the first titled "Introduction" and
// the rest "Part N".
func BuildChapters(video *types.VideoData, interval time.Duration) []types.Chapter {
	if len(video.Chapters) > 0 {
		out := make([]types.Chapter, len(video.Chapters))
		copy(out, video.Chapters)
		return out
	}

	if video.Duration <= 0 || interval <= 0 {
		return nil
	}

	count := int((video.Duration + interval - 1) / interval)
	chapters := make([]types.Chapter, 0, count)
	for i := 0; i < count; i++ {
		title := "Introduction"
		if i > 0 {
			title = fmt.Sprintf("Part %d", i+1)
		}
		chapters = append(chapters, types.Chapter{
			Start: time.Duration(i) * interval,
			Title: title,
		})
	}
	return chapters
}
