package extract

import (
	"bufio"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/andrehq/vidnotes/internal/types"
)

var (
	cueTimeRegex = regexp.MustCompile(`(\d{2}:\d{2}:\d{2}\.\d{3})\s+-->\s+(\d{2}:\d{2}:\d{2}\.\d{3})`)
	inlineTag    = regexp.MustCompile(`<[^>]+>`)
)

// ParseVTTFile parses a WebVTT subtitle file into a transcript with
// per-segment timestamps. Consecutive duplicate lines (common in
// auto-generated captions) are collapsed.
func ParseVTTFile(path string) (*types.Transcript, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &Error{Reference: path, Message: "failed to open subtitle file", Cause: err}
	}
	defer func() { _ = file.Close() }()

	var (
		segments []types.TranscriptSegment
		texts    []string
		current  *types.TranscriptSegment
		prevText string
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.TrimSpace(current.Text)
		if current.Text != "" && current.Text != prevText {
			segments = append(segments, *current)
			texts = append(texts, current.Text)
			prevText = current.Text
		}
		current = nil
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "" || strings.HasPrefix(line, "WEBVTT") ||
			strings.HasPrefix(line, "Kind:") || strings.HasPrefix(line, "Language:") ||
			strings.HasPrefix(line, "NOTE"):
			continue
		case cueTimeRegex.MatchString(line):
			flush()
			matches := cueTimeRegex.FindStringSubmatch(line)
			start, err1 := parseVTTTime(matches[1])
			end, err2 := parseVTTTime(matches[2])
			if err1 != nil || err2 != nil {
				continue
			}
			current = &types.TranscriptSegment{Start: start, End: end}
		case isCueNumber(line):
			continue
		default:
			if current == nil {
				continue
			}
			clean := inlineTag.ReplaceAllString(line, "")
			clean = strings.TrimSpace(clean)
			if clean == "" {
				continue
			}
			if current.Text != "" {
				current.Text += " "
			}
			current.Text += clean
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, &Error{Reference: path, Message: "failed to read subtitle file", Cause: err}
	}

	return &types.Transcript{
		Text:     strings.Join(texts, " "),
		Segments: segments,
	}, nil
}

// parseVTTTime parses a cue timestamp like "00:04:02.350".
func parseVTTTime(timeStr string) (time.Duration, error) {
	parts := strings.SplitN(timeStr, ":", 3)
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	secParts := strings.SplitN(parts[2], ".", 2)
	seconds, err := strconv.Atoi(secParts[0])
	if err != nil {
		return 0, err
	}
	millis := 0
	if len(secParts) == 2 {
		millis, err = strconv.Atoi(secParts[1])
		if err != nil {
			return 0, err
		}
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

func isCueNumber(line string) bool {
	if line == "" {
		return false
	}
	for _, r := range line {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
