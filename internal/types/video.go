// Package types provides type definitions for structured data used throughout the vidnotes system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// TranscriptSegment is a single timed span of transcript text.
type TranscriptSegment struct {
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
	Text  string        `json:"text"`
}

// Transcript holds the full transcript text and, when the subtitle source
// carried them, per-segment timestamps.
type Transcript struct {
	Text         string              `json:"text"`
	Segments     []TranscriptSegment `json:"segments,omitempty"`
	ASRGenerated bool                `json:"asr_generated"`
}

// VideoData is everything the media extractor returns for one video reference.
type VideoData struct {
	VideoID       string        `json:"video_id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	UploadDate    string        `json:"upload_date,omitempty"` // YYYY-MM-DD
	Channel       string        `json:"channel,omitempty"`
	ChannelURL    string        `json:"channel_url,omitempty"`
	ThumbnailURL  string        `json:"thumbnail_url,omitempty"`
	ThumbnailPath string        `json:"thumbnail_path,omitempty"`
	Duration      time.Duration `json:"duration"`
	Chapters      []Chapter     `json:"chapters,omitempty"` // authoritative markers, may be empty
	Tags          []string      `json:"tags,omitempty"`
	Transcript    Transcript    `json:"transcript"`
}
