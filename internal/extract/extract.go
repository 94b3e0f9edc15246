// Package extract retrieves video metadata, transcripts and thumbnails via
// yt-dlp. It is the media-extractor collaborator of the pipeline: its
// failures are fatal to a run, and nothing here is retried.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"github.com/andrehq/vidnotes/internal/fetch"
	"github.com/andrehq/vidnotes/internal/types"
)

// CommandTimeout bounds each yt-dlp invocation.
const CommandTimeout = 120 * time.Second

// subtitleLangs lists the subtitle languages requested from yt-dlp, in
// preference order.
const subtitleLangs = "en,en-US,pt,pt-BR"

// rawMetadata mirrors the yt-dlp --dump-json fields we consume.
type rawMetadata struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	UploadDate  string       `json:"upload_date"`
	Channel     string       `json:"channel"`
	Uploader    string       `json:"uploader"`
	ChannelURL  string       `json:"channel_url"`
	Thumbnail   string       `json:"thumbnail"`
	Duration    float64      `json:"duration"`
	Tags        []string     `json:"tags"`
	Chapters    []rawChapter `json:"chapters"`
}

type rawChapter struct {
	StartTime float64 `json:"start_time"`
	Title     string  `json:"title"`
}

// VideoData extracts metadata, transcript, and thumbnail for a video
// reference. workDir receives downloaded assets; a temporary directory is
// created when it is empty.
func VideoData(ctx context.Context, reference, workDir string) (*types.VideoData, error) {
	if workDir == "" {
		dir, err := os.MkdirTemp("", "vidnotes_")
		if err != nil {
			return nil, &Error{Reference: reference, Message: "failed to create work directory", Cause: err}
		}
		workDir = dir
	} else if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, &Error{Reference: reference, Message: "failed to create work directory", Cause: err}
	}

	meta, err := fetchMetadata(ctx, reference)
	if err != nil {
		return nil, err
	}

	data := &types.VideoData{
		VideoID:      meta.ID,
		Title:        meta.Title,
		Description:  meta.Description,
		UploadDate:   formatDate(meta.UploadDate),
		Channel:      channelName(meta),
		ChannelURL:   meta.ChannelURL,
		ThumbnailURL: meta.Thumbnail,
		Duration:     time.Duration(meta.Duration * float64(time.Second)),
		Tags:         meta.Tags,
		Chapters:     convertChapters(meta.Chapters),
	}

	// Thumbnail download failure is tolerated: OCR degrades to empty text.
	if data.ThumbnailURL != "" {
		dest := filepath.Join(workDir, data.VideoID+"_thumb.jpg")
		if err := fetch.Download(ctx, data.ThumbnailURL, dest, nil); err == nil {
			data.ThumbnailPath = dest
		}
	}

	transcript, err := fetchTranscript(ctx, reference, workDir)
	if err == nil {
		data.Transcript = *transcript
	}

	return data, nil
}

// fetchMetadata runs yt-dlp --dump-json and parses the result.
func fetchMetadata(ctx context.Context, reference string) (*rawMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "yt-dlp",
		"--dump-json",
		"--no-download",
		"--no-warnings",
		reference,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &Error{
			Reference: reference,
			Message:   fmt.Sprintf("yt-dlp metadata failed: %s", bytes.TrimSpace(stderr.Bytes())),
			Cause:     err,
		}
	}

	var meta rawMetadata
	if err := json.Unmarshal(stdout.Bytes(), &meta); err != nil {
		return nil, &Error{Reference: reference, Message: "failed to parse yt-dlp metadata", Cause: err}
	}

	return &meta, nil
}

// fetchTranscript downloads subtitles as WebVTT, preferring manual subtitles
// over auto-generated (ASR) ones, and parses them into a transcript.
func fetchTranscript(ctx context.Context, reference, workDir string) (*types.Transcript, error) {
	attempts := []struct {
		flag string
		asr  bool
	}{
		{"--write-subs", false},
		{"--write-auto-subs", true},
	}

	for _, attempt := range attempts {
		runCtx, cancel := context.WithTimeout(ctx, CommandTimeout)
		cmd := exec.CommandContext(runCtx, "yt-dlp",
			attempt.flag,
			"--sub-langs", subtitleLangs,
			"--sub-format", "vtt",
			"--skip-download",
			"--no-warnings",
			"-o", filepath.Join(workDir, "%(id)s.%(ext)s"),
			reference,
		)
		err := cmd.Run()
		cancel()
		if err != nil {
			continue
		}

		vttFiles, _ := filepath.Glob(filepath.Join(workDir, "*.vtt"))
		if len(vttFiles) == 0 {
			continue
		}
		sort.Strings(vttFiles)

		transcript, err := ParseVTTFile(vttFiles[0])
		if err != nil || transcript.Text == "" {
			continue
		}
		transcript.ASRGenerated = attempt.asr
		return transcript, nil
	}

	return nil, &Error{Reference: reference, Message: "no transcript available"}
}

func channelName(meta *rawMetadata) string {
	if meta.Channel != "" {
		return meta.Channel
	}
	return meta.Uploader
}

func convertChapters(raw []rawChapter) []types.Chapter {
	if len(raw) == 0 {
		return nil
	}
	chapters := make([]types.Chapter, 0, len(raw))
	for _, ch := range raw {
		chapters = append(chapters, types.Chapter{
			Start: time.Duration(ch.StartTime * float64(time.Second)),
			Title: ch.Title,
		})
	}
	return chapters
}

// formatDate converts yt-dlp's YYYYMMDD upload date to YYYY-MM-DD.
func formatDate(raw string) string {
	if len(raw) != 8 {
		return raw
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return raw
		}
	}
	return raw[:4] + "-" + raw[4:6] + "-" + raw[6:]
}
