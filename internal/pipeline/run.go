// Package pipeline provides the high-level orchestration for the description generation process.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/andrehq/vidnotes/internal/content"
	"github.com/andrehq/vidnotes/internal/db"
	"github.com/andrehq/vidnotes/internal/evidence"
	"github.com/andrehq/vidnotes/internal/extract"
	"github.com/andrehq/vidnotes/internal/names"
	"github.com/andrehq/vidnotes/internal/observability"
	"github.com/andrehq/vidnotes/internal/ocr"
	"github.com/andrehq/vidnotes/internal/render"
	"github.com/andrehq/vidnotes/internal/search"
	"github.com/andrehq/vidnotes/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Reference           string
	WorkDir             string
	Topic               string // optional override; defaults to the video title
	SearchAPIKey        string
	SearchCX            string
	UseBrowser          bool
	OracleTimeout       time.Duration
	RepetitionThreshold int
	SimilarityThreshold float64
	ChapterInterval     time.Duration
	MaxKeywords         int
	SummaryMaxWords     int
	MaxHashtags         int
	Verbose             bool
	DatabaseURL         string
	Oracle              search.Oracle // optional injection; built from config when nil
	OnProgress          ProgressCallback
}

// Result holds the outputs of a completed pipeline run
type Result struct {
	Video       *types.VideoData   `json:"video"`
	Description *types.Description `json:"description"`
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

// buildOracle picks the search oracle for this run: an injected fake, the
// Custom Search API when credentials are configured, or the HTML scrape
// fallback. Every oracle is wrapped with the per-query timeout/retry bound
// and a run-local cache so repeated candidate queries hit the network once.
func buildOracle(ctx context.Context, opts *RunOptions) (search.Oracle, error) {
	inner := opts.Oracle
	if inner == nil {
		if opts.SearchAPIKey != "" && opts.SearchCX != "" {
			google, err := search.NewGoogleOracle(ctx, opts.SearchAPIKey, opts.SearchCX)
			if err != nil {
				return nil, fmt.Errorf("search oracle setup failed: %w", err)
			}
			inner = google
		} else {
			inner = search.NewScrapeOracle(opts.UseBrowser)
		}
	}
	return search.NewCached(search.NewBounded(inner, opts.OracleTimeout)), nil
}

// RunPipeline orchestrates the full description generation pipeline
func RunPipeline(ctx context.Context, opts RunOptions) (*Result, error) {

	// Initialize observability printer for verbose output
	printer := observability.NewPrinter(os.Stdout)

	// Initialize database connection if configured
	var database *db.DB
	var runID uuid.UUID
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Connected to database\n")
			}
		}
	}

	// Step 1: Extract video data. Extraction failure is fatal: no partial
	// output is produced without metadata.
	fmt.Printf("Step 1/8: Extracting video data for %s...\n", opts.Reference)
	video, err := extract.VideoData(ctx, opts.Reference, opts.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("video extraction failed: %w", err)
	}
	emitProgress(&opts, db.StepVideoData, fmt.Sprintf("Extracted %q (%s)", video.Title, video.Duration), nil)

	if database != nil {
		runID, err = database.CreateRun(ctx, video.VideoID, video.Title, opts.Reference)
		if err != nil {
			fmt.Printf("Warning: Failed to create database run: %v\n", err)
		} else {
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Created database run: %s\n", runID)
			}
			_ = database.SaveArtifact(ctx, runID, db.StepVideoData, video)
		}
	}

	// Step 2: OCR the thumbnail. Failure degrades to empty text, never fatal.
	fmt.Printf("Step 2/8: Reading thumbnail text...\n")
	ocrResult, err := ocr.FromImage(ctx, video.ThumbnailPath)
	if err != nil {
		fmt.Printf("Warning: Thumbnail OCR failed: %v\n", err)
		ocrResult = ocr.Result{}
	}

	description, err := Describe(ctx, video, ocrResult, opts, printer, database, runID)
	if err != nil {
		return nil, err
	}

	if database != nil && runID != uuid.Nil {
		if err := database.CompleteRun(ctx, runID, "completed"); err != nil {
			fmt.Printf("Warning: Failed to complete database run: %v\n", err)
		}
	}

	return &Result{Video: video, Description: description}, nil
}

// Describe runs the core stages on already-extracted inputs: evidence
// collection, candidate extraction, validation, canonicalization, content
// synthesis and rendering. Separate from RunPipeline so callers with their
// own extraction (or tests with synthetic video data) can reuse it.
func Describe(ctx context.Context, video *types.VideoData, ocrResult ocr.Result, opts RunOptions, printer *observability.Printer, database *db.DB, runID uuid.UUID) (*types.Description, error) {
	if printer == nil {
		printer = observability.NewPrinter(os.Stdout)
	}

	// Step 3: Collect the evidence bundle.
	fmt.Printf("Step 3/8: Collecting evidence...\n")
	bundle := evidence.Collect(video, ocrResult.FullText)
	if opts.Verbose {
		printer.PrintEvidence(bundle)
	}
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepEvidence, bundle)
	}

	// Step 4: Extract name candidates.
	fmt.Printf("Step 4/8: Extracting name candidates...\n")
	candidates := names.ExtractCandidates(bundle)
	fmt.Printf("  Found %d candidates\n", len(candidates))
	if opts.Verbose {
		printer.PrintCandidates(candidates)
	}
	emitProgress(&opts, db.StepCandidates, fmt.Sprintf("Extracted %d name candidates", len(candidates)), candidates)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepCandidates, candidates)
	}

	topic := opts.Topic
	if topic == "" {
		topic = video.Title
	}

	// Step 5: Validate candidates against the search oracle.
	fmt.Printf("Step 5/8: Validating candidates...\n")
	oracle, err := buildOracle(ctx, &opts)
	if err != nil {
		return nil, err
	}
	validator := &names.Validator{
		Oracle:              oracle,
		Topic:               topic,
		Channel:             video.Channel,
		RepetitionThreshold: opts.RepetitionThreshold,
	}
	results, err := validator.ValidateAll(ctx, candidates)
	if err != nil {
		// Cancellation mid-validation yields no output at all.
		return nil, fmt.Errorf("candidate validation failed: %w", err)
	}
	accepted := names.AcceptedResults(results)
	fmt.Printf("  Accepted %d of %d candidates\n", len(accepted), len(results))
	if opts.Verbose {
		printer.PrintValidation(results)
	}
	emitProgress(&opts, db.StepValidation, fmt.Sprintf("Accepted %d of %d candidates", len(accepted), len(results)), nil)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepValidation, results)
	}

	// Step 6: Canonicalize accepted names.
	fmt.Printf("Step 6/8: Canonicalizing names...\n")
	canonicalizer := &names.Canonicalizer{SimilarityThreshold: opts.SimilarityThreshold}
	canonical := canonicalizer.Canonicalize(accepted, bundle)
	if opts.Verbose {
		printer.PrintCanonicalNames(canonical)
	}
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepCanonical, canonical)
	}

	// Step 7: Synthesize summary, chapters and keywords.
	fmt.Printf("Step 7/8: Synthesizing content...\n")
	contentBundle := content.Synthesize(video, bundle, canonical, content.Options{
		SummaryMaxWords: opts.SummaryMaxWords,
		ChapterInterval: opts.ChapterInterval,
		MaxKeywords:     opts.MaxKeywords,
	})
	if words := content.WordCount(contentBundle.Summary); words > opts.SummaryMaxWords {
		return nil, fmt.Errorf("internal error: summary exceeds %d words (%d)", opts.SummaryMaxWords, words)
	}
	if opts.Verbose {
		printer.PrintContent(&contentBundle)
	}
	emitProgress(&opts, db.StepContent, fmt.Sprintf("Synthesized content: %d chapters, %d keywords",
		len(contentBundle.Chapters), len(contentBundle.Keywords)), nil)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepContent, contentBundle)
	}

	// Step 8: Render the description template.
	fmt.Printf("Step 8/8: Rendering description...\n")
	description := &types.Description{
		VideoID:      video.VideoID,
		Title:        video.Title,
		Topic:        topic,
		Channel:      video.Channel,
		UploadDate:   video.UploadDate,
		OCRText:      ocrResult.ShortText,
		Participants: canonical,
		Content:      contentBundle,
		Hashtags:     render.BuildHashtags(contentBundle.Keywords, opts.MaxHashtags),
		ASRGenerated: video.Transcript.ASRGenerated,
	}
	rendered, err := render.Render(description)
	if err != nil {
		return nil, fmt.Errorf("description rendering failed: %w", err)
	}
	description.Rendered = rendered

	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepDescription, description)
		_ = database.SaveTextArtifact(ctx, runID, db.StepRenderedText, rendered)
	}
	emitProgress(&opts, db.StepDescription, "Rendered description", description)

	return description, nil
}
