package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrehq/vidnotes/internal/config"
	"github.com/andrehq/vidnotes/internal/server"
)

var (
	serveConfigPath string
	servePort       int
	serveAuth       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve starts the HTTP API: POST /generate queues a description job,
GET /jobs tracks progress, and /runs exposes persisted run history
when a database is configured.

With --auth, requests must carry a bearer token signed with JWT_SECRET.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: PORT env or 8080)")
	serveCmd.Flags().BoolVar(&serveAuth, "auth", false, "Require bearer-token authentication")
}

func runServe(cmd *cobra.Command, args []string) error {
	var cfg config.Config
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

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
		return err
	}

	port := servePort
	if !cmd.Flags().Changed("port") {
		port = 8080
		if v := os.Getenv("PORT"); v != "" {
			if p, err := strconv.Atoi(v); err == nil {
				port = p
			}
		}
	}

	srv, err := server.New(server.Config{
		Port:        port,
		App:         cfg,
		RequireAuth: serveAuth,
	})
	if err != nil {
		return err
	}

	return srv.Start()
}
