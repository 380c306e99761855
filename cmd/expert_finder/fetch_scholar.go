package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/expert-finder/internal/db"
	"github.com/jonathan/expert-finder/internal/extraction"
	"github.com/jonathan/expert-finder/internal/fetch"
	"github.com/jonathan/expert-finder/internal/llm"
)

var fetchScholarCmd = &cobra.Command{
	Use:   "fetch-scholar",
	Short: "Fetch a public scholar page and store the extracted profile",
	Long:  "Fetch a public scholar or author page, extract a structured profile from the page text with the LLM, and persist it alongside the processed profiles.",
	RunE:  runFetchScholar,
}

var (
	scholarURL        string
	scholarDBURL      string
	scholarAPIKey     string
	scholarUseBrowser bool
	scholarSkipCache  bool
)

func init() {
	fetchScholarCmd.Flags().StringVarP(&scholarURL, "url", "u", "", "Scholar page URL (required)")
	fetchScholarCmd.Flags().StringVar(&scholarDBURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	fetchScholarCmd.Flags().StringVar(&scholarAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var)")
	fetchScholarCmd.Flags().BoolVar(&scholarUseBrowser, "use-browser", false, "Use headless browser for client-rendered pages (requires Chrome)")
	fetchScholarCmd.Flags().BoolVar(&scholarSkipCache, "skip-cache", false, "Bypass the page cache and fetch fresh")

	_ = fetchScholarCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(fetchScholarCmd)
}

func runFetchScholar(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	databaseURL, err := requireDatabaseURL(scholarDBURL)
	if err != nil {
		return err
	}
	apiKey, err := requireAPIKey(scholarAPIKey)
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	fetcher := fetch.NewCachedFetcher(database, &fetch.CachedFetcherConfig{
		SkipCache: scholarSkipCache,
	})

	page, err := fetcher.Fetch(ctx, scholarURL)
	if err != nil {
		return fmt.Errorf("failed to fetch page: %w", err)
	}
	if page.FromCache {
		fmt.Printf("Using cached page for %s\n", scholarURL)
	}

	pageText := page.Text
	if scholarUseBrowser || fetch.ShouldUseBrowser(pageText) {
		html, err := fetch.WithBrowser(ctx, scholarURL, 60*time.Second, false)
		if err != nil {
			return fmt.Errorf("failed to render page in browser: %w", err)
		}
		platform := fetch.DetectPlatform(scholarURL)
		text, err := fetch.ExtractMainText(html,
			fetch.PlatformContentSelectors(platform), fetch.PlatformNoiseSelectors(platform)...)
		if err == nil && text != "" {
			pageText = text
		}
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	profile, err := extraction.ScholarProfile(ctx, client, pageText, scholarURL)
	if err != nil {
		return fmt.Errorf("failed to extract profile: %w", err)
	}

	if err := database.UpsertProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to store profile: %w", err)
	}

	fmt.Printf("Stored scholar profile %s (%s)\n", profile.URNID, profile.FullName)
	return nil
}
