package ocr

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromImage_EmptyPath(t *testing.T) {
	result, err := FromImage(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, result.FullText)
	assert.Empty(t, result.ShortText)
}

func TestFromImage_MissingFile(t *testing.T) {
	result, err := FromImage(context.Background(), "/nonexistent/thumb.jpg")
	require.Error(t, err)
	assert.Empty(t, result.FullText)

	var ocrErr *Error
	assert.ErrorAs(t, err, &ocrErr)
}

func TestCleanText(t *testing.T) {
	raw := "JOHN   SILVA\n\n|\nx\nMARKET  CRASH 2024\n---\n"
	cleaned := CleanText(raw)

	assert.Equal(t, "JOHN SILVA\nMARKET CRASH 2024", cleaned)
}

func TestCleanText_Empty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("  \n | \n . \n"))
}

func TestShorten(t *testing.T) {
	t.Run("short text passes through", func(t *testing.T) {
		assert.Equal(t, "JOHN SILVA | CRASH", Shorten("JOHN SILVA\nCRASH", 120))
	})

	t.Run("long text truncates at word boundary", func(t *testing.T) {
		long := strings.Repeat("word ", 50)
		short := Shorten(long, 40)
		assert.LessOrEqual(t, len(short), 40)
		assert.True(t, strings.HasSuffix(short, "..."))
		assert.NotContains(t, strings.TrimSuffix(short, "..."), "wor ")
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", Shorten("", 120))
	})
}
