package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/expert-finder/internal/server"
)

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for expert search, profile lookup, and credibility statistics.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to config file (JSON)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// Get database URL from environment
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	// Get API key from environment
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	fileCfg, err := loadMergedConfig(serveConfig)
	if err != nil {
		return err
	}

	cfg := server.Config{
		Port:           servePort,
		DatabaseURL:    databaseURL,
		ChromaURL:      fileCfg.ChromaURL,
		EmbeddingHost:  fileCfg.EmbeddingHost,
		EmbeddingModel: fileCfg.EmbeddingModel,
		Collection:     fileCfg.Collection,
		StatsFile:      fileCfg.StatsFile,
		APIKey:         apiKey,
		TopK:           fileCfg.TopK,
		InitialK:       fileCfg.InitialK,
	}

	srv, err := server.New(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
