// Package main provides the entry point for the expert finder CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "expert_finder",
	Short: "Professional profile search with credibility scoring",
	Long:  "Expert Finder ingests professional profiles, scores their credibility against the stored population, embeds them into a vector store and answers natural-language expert searches via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
