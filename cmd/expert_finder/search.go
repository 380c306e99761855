package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/expert-finder/internal/agent"
	"github.com/jonathan/expert-finder/internal/credibility"
	"github.com/jonathan/expert-finder/internal/db"
	"github.com/jonathan/expert-finder/internal/llm"
	"github.com/jonathan/expert-finder/internal/observability"
	"github.com/jonathan/expert-finder/internal/vectorstore"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for experts matching a natural-language query",
	Long:  "Parse the query with the LLM, retrieve candidates from the vector store, annotate credibility, rerank and print the top experts.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var (
	searchConfigPath string
	searchDBURL      string
	searchAPIKey     string
	searchTopK       int
	searchInitialK   int
	searchJSON       bool
	searchSummary    bool
	searchVerbose    bool
)

func init() {
	searchCmd.Flags().StringVar(&searchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	searchCmd.Flags().StringVar(&searchDBURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	searchCmd.Flags().StringVar(&searchAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var)")
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "Number of experts to return")
	searchCmd.Flags().IntVar(&searchInitialK, "initial-k", 0, "Number of candidates to retrieve before reranking")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print results as JSON instead of formatted output")
	searchCmd.Flags().BoolVar(&searchSummary, "summary", false, "Generate a natural-language summary of the results")
	searchCmd.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := strings.Join(args, " ")

	cfg, err := loadMergedConfig(searchConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("top-k") {
		cfg.TopK = searchTopK
	}
	if cmd.Flags().Changed("initial-k") {
		cfg.InitialK = searchInitialK
	}

	databaseURL, err := requireDatabaseURL(searchDBURL)
	if err != nil {
		return err
	}
	apiKey, err := requireAPIKey(searchAPIKey)
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	store, err := vectorstore.New(vectorstore.Config{
		ChromaURL:      cfg.ChromaURL,
		EmbeddingHost:  cfg.EmbeddingHost,
		EmbeddingModel: cfg.EmbeddingModel,
		Collection:     cfg.Collection,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to vector store: %w", err)
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	statsStore, _ := credibility.Open(cfg.StatsFile)
	cred := credibility.NewOnDemandCalculator(statsStore, database)

	finder := agent.New(store, client, cred,
		agent.WithK(cfg.InitialK, cfg.TopK),
		agent.WithVerbose(searchVerbose),
	)

	results, err := finder.FindExperts(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintSearchResults(results)

	if searchSummary && len(results) > 0 {
		summary, err := finder.GenerateResponse(ctx, query, results)
		if err != nil {
			return fmt.Errorf("summary generation failed: %w", err)
		}
		fmt.Println()
		fmt.Println(summary)
	}

	return nil
}
