// Package ocr reads text from thumbnail images using the tesseract binary.
// OCR failures never abort a run: callers receive empty text and the OCR
// template line degrades to blank.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// CommandTimeout bounds each tesseract invocation.
const CommandTimeout = 30 * time.Second

// ShortTextMaxChars caps the compact display version of the OCR text.
const ShortTextMaxChars = 120

// Error represents a non-fatal OCR failure.
type Error struct {
	ImagePath string
	Message   string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ocr error for %s: %s: %v", e.ImagePath, e.Message, e.Cause)
	}
	return fmt.Sprintf("ocr error for %s: %s", e.ImagePath, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Result holds the recognized text in full and compact form.
type Result struct {
	FullText  string `json:"full_text"`
	ShortText string `json:"short_text"`
}

// FromImage runs OCR on an image file. A missing image path yields an empty
// result without error; a missing or failing tesseract binary yields an
// empty result plus an *Error the caller may log and ignore.
func FromImage(ctx context.Context, imagePath string) (Result, error) {
	if imagePath == "" {
		return Result{}, nil
	}
	if _, err := os.Stat(imagePath); err != nil {
		return Result{}, &Error{ImagePath: imagePath, Message: "image not found", Cause: err}
	}

	raw, err := runTesseract(ctx, imagePath)
	if err != nil {
		return Result{}, err
	}

	full := CleanText(raw)
	return Result{FullText: full, ShortText: Shorten(full, ShortTextMaxChars)}, nil
}

func runTesseract(ctx context.Context, imagePath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "tesseract",
		imagePath,
		"stdout",
		"-l", "eng+por",
		"--psm", "3",
	)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return "", &Error{ImagePath: imagePath, Message: "tesseract failed", Cause: err}
	}

	return stdout.String(), nil
}

var horizontalSpace = regexp.MustCompile(`[ \t]+`)

// CleanText removes OCR noise: collapsed whitespace, dropped single-character
// and symbol-only lines.
func CleanText(raw string) string {
	text := horizontalSpace.ReplaceAllString(raw, " ")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len([]rune(line)) <= 1 {
			continue
		}
		if !hasLetterOrDigit(line) {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Shorten joins the OCR lines into a single compact display string,
// truncating at a word boundary when over maxChars.
func Shorten(full string, maxChars int) string {
	if full == "" {
		return ""
	}
	oneLine := strings.Join(strings.Split(full, "\n"), " | ")
	if len(oneLine) <= maxChars {
		return oneLine
	}
	cut := oneLine[:maxChars-3]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') || r > 127 {
			return true
		}
	}
	return false
}
