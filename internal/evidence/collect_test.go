package evidence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrehq/vidnotes/internal/types"
)

func TestCollect(t *testing.T) {
	video := &types.VideoData{
		Title:       "Market  Outlook\t2024",
		Description: "A talk about markets.\r\nWith John Silva.",
		Transcript:  types.Transcript{Text: "welcome back everyone"},
	}

	bundle := Collect(video, "JOHN SILVA")

	assert.Equal(t, "Market Outlook 2024", bundle.Get(types.SourceTitle))
	assert.Equal(t, "A talk about markets.\nWith John Silva.", bundle.Get(types.SourceDescription))
	assert.Equal(t, "welcome back everyone", bundle.Get(types.SourceTranscript))
	assert.Equal(t, "JOHN SILVA", bundle.Get(types.SourceOCR))
}

func TestCollect_OmitsEmptySources(t *testing.T) {
	video := &types.VideoData{Title: "Only a title"}

	bundle := Collect(video, "   ")

	assert.Len(t, bundle, 1)
	assert.Equal(t, "", bundle.Get(types.SourceOCR))
	assert.Equal(t, "", bundle.Get(types.SourceDescription))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"collapses spaces", "a   b\tc", "a b c"},
		{"normalizes line endings", "a\r\nb\rc", "a\nb\nc"},
		{"trims outer whitespace", "  \n a \n  ", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}
