package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrehq/vidnotes/internal/config"
	"github.com/andrehq/vidnotes/internal/pipeline"
	"github.com/andrehq/vidnotes/internal/schemas"
)

var (
	generateConfigPath string

	generateTopic      string
	generateOutput     string
	generateJSON       bool
	generateWorkDir    string
	generateUseBrowser bool
	generateVerbose    bool

	generateSearchAPIKey string
	generateSearchCX     string
	generateDatabaseURL  string

	generateOracleTimeout       int
	generateRepetitionThreshold int
	generateSimilarityThreshold float64
	generateChapterInterval     int
	generateMaxKeywords         int
	generateSummaryMaxWords     int
	generateMaxHashtags         int
)

var generateCmd = &cobra.Command{
	Use:   "generate <reference>",
	Short: "Generate a structured description for a video reference",
	Long: `Generate runs the full pipeline on a video URL or identifier:
metadata extraction, thumbnail OCR, name candidate validation,
content synthesis and template rendering.

By default the rendered description text is written to stdout.
Use --json for the structured document and --output to write to a file.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "Path to JSON config file")

	generateCmd.Flags().StringVar(&generateTopic, "topic", "", "Topic override (default: the video title)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file path (default: stdout)")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Emit the structured JSON document instead of rendered text")
	generateCmd.Flags().StringVar(&generateWorkDir, "work-dir", "", "Working directory for downloaded assets (default: a temp dir)")
	generateCmd.Flags().BoolVar(&generateUseBrowser, "use-browser", false, "Render search result pages with a headless browser")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print per-step details")

	generateCmd.Flags().StringVar(&generateSearchAPIKey, "search-api-key", "", "Google Custom Search API key (default: SEARCH_API_KEY env)")
	generateCmd.Flags().StringVar(&generateSearchCX, "search-cx", "", "Google Custom Search engine ID (default: SEARCH_CX env)")
	generateCmd.Flags().StringVar(&generateDatabaseURL, "db-url", "", "PostgreSQL URL for run persistence (default: DATABASE_URL env)")

	generateCmd.Flags().IntVar(&generateOracleTimeout, "oracle-timeout", 0, "Per-query search timeout in seconds")
	generateCmd.Flags().IntVar(&generateRepetitionThreshold, "repetition-threshold", 0, "Mentions needed for the repetition criterion")
	generateCmd.Flags().Float64Var(&generateSimilarityThreshold, "similarity-threshold", 0, "Near-match merge threshold (0.0-1.0)")
	generateCmd.Flags().IntVar(&generateChapterInterval, "chapter-interval", 0, "Auto-segmentation interval in minutes")
	generateCmd.Flags().IntVar(&generateMaxKeywords, "max-keywords", 0, "Maximum number of keywords")
	generateCmd.Flags().IntVar(&generateSummaryMaxWords, "summary-max-words", 0, "Maximum summary length in words")
	generateCmd.Flags().IntVar(&generateMaxHashtags, "max-hashtags", 0, "Maximum number of hashtags")
}

// resolveGenerateConfig merges config file values, CLI flag overrides,
// defaults and environment fallbacks into the effective configuration.
func resolveGenerateConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if generateConfigPath != "" {
		loaded, err := config.LoadConfig(generateConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	// Explicit flags override config file values.
	if cmd.Flags().Changed("output") {
		cfg.Output = generateOutput
	}
	if cmd.Flags().Changed("json") {
		cfg.JSONOutput = generateJSON
	}
	if cmd.Flags().Changed("work-dir") {
		cfg.WorkDir = generateWorkDir
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = generateUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = generateVerbose
	}
	if cmd.Flags().Changed("search-api-key") {
		cfg.SearchAPIKey = generateSearchAPIKey
	}
	if cmd.Flags().Changed("search-cx") {
		cfg.SearchCX = generateSearchCX
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = generateDatabaseURL
	}
	if cmd.Flags().Changed("oracle-timeout") {
		cfg.OracleTimeoutSeconds = generateOracleTimeout
	}
	if cmd.Flags().Changed("repetition-threshold") {
		cfg.RepetitionThreshold = generateRepetitionThreshold
	}
	if cmd.Flags().Changed("similarity-threshold") {
		cfg.SimilarityThreshold = generateSimilarityThreshold
	}
	if cmd.Flags().Changed("chapter-interval") {
		cfg.ChapterIntervalMin = generateChapterInterval
	}
	if cmd.Flags().Changed("max-keywords") {
		cfg.MaxKeywords = generateMaxKeywords
	}
	if cmd.Flags().Changed("summary-max-words") {
		cfg.SummaryMaxWords = generateSummaryMaxWords
	}
	if cmd.Flags().Changed("max-hashtags") {
		cfg.MaxHashtags = generateMaxHashtags
	}

	// Environment fallbacks for credentials and persistence.
	if cfg.SearchAPIKey == "" {
		cfg.SearchAPIKey = os.Getenv("SEARCH_API_KEY")
	}
	if cfg.SearchCX == "" {
		cfg.SearchCX = os.Getenv("SEARCH_CX")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	reference := args[0]

	cfg, err := resolveGenerateConfig(cmd)
	if err != nil {
		return err
	}

	opts := pipeline.RunOptions{
		Reference:           reference,
		WorkDir:             cfg.WorkDir,
		Topic:               generateTopic,
		SearchAPIKey:        cfg.SearchAPIKey,
		SearchCX:            cfg.SearchCX,
		UseBrowser:          cfg.UseBrowser,
		OracleTimeout:       cfg.OracleTimeout(),
		RepetitionThreshold: cfg.RepetitionThreshold,
		SimilarityThreshold: cfg.SimilarityThreshold,
		ChapterInterval:     cfg.ChapterInterval(),
		MaxKeywords:         cfg.MaxKeywords,
		SummaryMaxWords:     cfg.SummaryMaxWords,
		MaxHashtags:         cfg.MaxHashtags,
		Verbose:             cfg.Verbose,
		DatabaseURL:         cfg.DatabaseURL,
	}

	result, err := pipeline.RunPipeline(cmd.Context(), opts)
	if err != nil {
		return err
	}

	output := result.Description.Rendered
	if cfg.JSONOutput {
		if err := schemas.ValidateDescription(result.Description); err != nil {
			return fmt.Errorf("generated description failed schema validation: %w", err)
		}
		data, err := json.MarshalIndent(result.Description, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal description: %w", err)
		}
		output = string(data) + "\n"
	}

	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Description written to %s\n", cfg.Output)
		return nil
	}

	fmt.Print(output)
	return nil
}
