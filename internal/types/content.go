//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"time"
)

// Chapter is one entry of the chapter outline. Start offsets are strictly
// increasing and the first chapter starts at zero.
type Chapter struct {
	Start time.Duration `json:"start"`
	Title string        `json:"title"`
}

// Timestamp renders the chapter start as MM:SS, or HH:MM:SS past one hour.
func (c Chapter) Timestamp() string {
	total := int(c.Start / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// ContentBundle is the synthesized content consumed by the renderer.
type ContentBundle struct {
	Summary  string    `json:"summary"` // <= 150 words
	Chapters []Chapter `json:"chapters"`
	Keywords []string  `json:"keywords"`
}

// Description is the final structured output of one pipeline run. It carries
// the same data as the rendered text, field by field.
type Description struct {
	VideoID      string          `json:"video_id"`
	Title        string          `json:"title"`
	Topic        string          `json:"topic"`
	Channel      string          `json:"channel,omitempty"`
	UploadDate   string          `json:"upload_date,omitempty"`
	OCRText      string          `json:"ocr_text,omitempty"`
	Participants []CanonicalName `json:"participants"`
	Content      ContentBundle   `json:"content"`
	Hashtags     []string        `json:"hashtags,omitempty"`
	ASRGenerated bool            `json:"asr_generated"`
	Rendered     string          `json:"rendered"`
}
