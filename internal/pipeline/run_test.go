package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrehq/vidnotes/internal/ocr"
	"github.com/andrehq/vidnotes/internal/search"
	"github.com/andrehq/vidnotes/internal/types"
)

// unreachableOracle fails every query, simulating a down search backend.
type unreachableOracle struct{}

func (unreachableOracle) Search(context.Context, string) ([]search.Hit, error) {
	return nil, &search.Error{Message: "oracle unreachable"}
}

// emptyOracle returns zero hits for every query.
type emptyOracle struct{}

func (emptyOracle) Search(context.Context, string) ([]search.Hit, error) {
	return nil, nil
}

func testOptions(oracle search.Oracle) RunOptions {
	return RunOptions{
		Oracle:              oracle,
		OracleTimeout:       time.Second,
		RepetitionThreshold: 3,
		SimilarityThreshold: 0.85,
		ChapterInterval:     4 * time.Minute,
		MaxKeywords:         15,
		SummaryMaxWords:     150,
		MaxHashtags:         8,
	}
}

func TestDescribe_AcceptsMultiSourceRepeatedName(t *testing.T) {
	// Name in title+description plus five transcript mentions is accepted
	// even with the oracle down.
	video := &types.VideoData{
		VideoID:     "vid1",
		Title:       "Market Crash with John Silva",
		Description: "John Silva explains what happened to the markets this week.",
		Channel:     "Finance Talks",
		Duration:    12 * time.Minute,
		Transcript: types.Transcript{
			Text: "John Silva thinks markets fell. John Silva says. John Silva warns. John Silva adds. John Silva closes.",
		},
	}

	desc, err := Describe(context.Background(), video, ocr.Result{}, testOptions(unreachableOracle{}), nil, nil, uuid.Nil)
	require.NoError(t, err)

	require.Len(t, desc.Participants, 1)
	assert.Equal(t, "John Silva", desc.Participants[0].Name)
	assert.Contains(t, desc.Rendered, "• John Silva")
}

func TestDescribe_RejectsSingleOCRMention(t *testing.T) {
	// One OCR mention with zero search hits never reaches two criteria.
	video := &types.VideoData{
		VideoID:     "vid2",
		Title:       "Weekly Market Recap",
		Description: "A look back at the week in the markets.",
		Duration:    8 * time.Minute,
	}
	thumb := ocr.Result{FullText: "Random Person", ShortText: "Random Person"}

	desc, err := Describe(context.Background(), video, thumb, testOptions(emptyOracle{}), nil, nil, uuid.Nil)
	require.NoError(t, err)

	assert.Empty(t, desc.Participants)
	assert.NotContains(t, desc.Rendered, "• Random Person")
	// Section header survives the empty participant list.
	assert.Contains(t, desc.Rendered, "Participants")
}

func TestDescribe_AutoSegmentsChapters(t *testing.T) {
	video := &types.VideoData{
		VideoID:     "vid3",
		Title:       "Long Discussion",
		Description: "An in-depth discussion covering many subjects over twelve minutes.",
		Duration:    12 * time.Minute,
	}

	desc, err := Describe(context.Background(), video, ocr.Result{}, testOptions(emptyOracle{}), nil, nil, uuid.Nil)
	require.NoError(t, err)

	require.Len(t, desc.Content.Chapters, 3)
	assert.Contains(t, desc.Rendered, "00:00 Introduction")
	assert.Contains(t, desc.Rendered, "04:00 Part 2")
	assert.Contains(t, desc.Rendered, "08:00 Part 3")
}

func TestDescribe_AuthoritativeChaptersPreserved(t *testing.T) {
	video := &types.VideoData{
		VideoID:  "vid4",
		Title:    "Interview",
		Duration: 30 * time.Minute,
		Chapters: []types.Chapter{
			{Start: 0, Title: "Welcome"},
			{Start: 11*time.Minute + 30*time.Second, Title: "Main segment"},
		},
	}

	desc, err := Describe(context.Background(), video, ocr.Result{}, testOptions(emptyOracle{}), nil, nil, uuid.Nil)
	require.NoError(t, err)

	require.Len(t, desc.Content.Chapters, 2)
	assert.Contains(t, desc.Rendered, "00:00 Welcome")
	assert.Contains(t, desc.Rendered, "11:30 Main segment")
}

func TestDescribe_CancelledContextProducesNoOutput(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	video := &types.VideoData{
		VideoID:     "vid5",
		Title:       "Market Crash with John Silva",
		Description: "John Silva explains the crash.",
		Duration:    8 * time.Minute,
	}

	desc, err := Describe(ctx, video, ocr.Result{}, testOptions(unreachableOracle{}), nil, nil, uuid.Nil)
	require.Error(t, err)
	assert.Nil(t, desc)
}

func TestDescribe_ASRNoticeRendered(t *testing.T) {
	video := &types.VideoData{
		VideoID:     "vid6",
		Title:       "Quick Update",
		Description: "A short update on the week with nothing special happening today.",
		Duration:    4 * time.Minute,
		Transcript:  types.Transcript{Text: "hello everyone welcome back", ASRGenerated: true},
	}

	desc, err := Describe(context.Background(), video, ocr.Result{}, testOptions(emptyOracle{}), nil, nil, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, desc.ASRGenerated)
	assert.Contains(t, desc.Rendered, "generated automatically")
}

func TestBuildOracle_WrapsInjectedOracle(t *testing.T) {
	opts := testOptions(emptyOracle{})
	oracle, err := buildOracle(context.Background(), &opts)
	require.NoError(t, err)

	_, isCached := oracle.(*search.Cached)
	assert.True(t, isCached, "injected oracle should be wrapped with the run-local cache")
}
