// Package main provides the entry point for the vidnotes CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vidnotes",
	Short: "Video description generator",
	Long:  "vidnotes turns a video reference into a structured description: validated participant names, a bounded summary, a chapter outline, keywords and hashtags, rendered in a fixed template.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
