package extract

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVTT(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "subs.en.vtt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseVTTFile(t *testing.T) {
	vtt := `WEBVTT
Kind: captions
Language: en

1
00:00:00.160 --> 00:00:02.350
Welcome back to the <c>show</c>

2
00:00:02.350 --> 00:00:05.000
today we talk about markets

3
00:00:05.000 --> 00:00:07.500
today we talk about markets
`
	transcript, err := ParseVTTFile(writeVTT(t, vtt))
	require.NoError(t, err)

	// Duplicate consecutive cue collapsed, inline tags stripped
	require.Len(t, transcript.Segments, 2)
	assert.Equal(t, "Welcome back to the show", transcript.Segments[0].Text)
	assert.Equal(t, 160*time.Millisecond, transcript.Segments[0].Start)
	assert.Equal(t, 2350*time.Millisecond, transcript.Segments[0].End)
	assert.Equal(t, "today we talk about markets", transcript.Segments[1].Text)
	assert.Equal(t, "Welcome back to the show today we talk about markets", transcript.Text)
}

func TestParseVTTFile_MultilineCue(t *testing.T) {
	vtt := `WEBVTT

00:00:00.000 --> 00:00:03.000
first line
second line
`
	transcript, err := ParseVTTFile(writeVTT(t, vtt))
	require.NoError(t, err)
	require.Len(t, transcript.Segments, 1)
	assert.Equal(t, "first line second line", transcript.Segments[0].Text)
}

func TestParseVTTFile_Missing(t *testing.T) {
	_, err := ParseVTTFile(filepath.Join(t.TempDir(), "missing.vtt"))
	require.Error(t, err)
	var extractErr *Error
	assert.ErrorAs(t, err, &extractErr)
}

func TestParseVTTTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"00:00:00.000", 0},
		{"00:04:00.000", 4 * time.Minute},
		{"01:02:03.450", time.Hour + 2*time.Minute + 3*time.Second + 450*time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseVTTTime(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-07-15", formatDate("20240715"))
	assert.Equal(t, "2024-07", formatDate("2024-07"))
	assert.Equal(t, "", formatDate(""))
	assert.Equal(t, "notadate", formatDate("notadate"))
}
