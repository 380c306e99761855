package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/expert-finder/internal/db"
	"github.com/jonathan/expert-finder/internal/types"
	"github.com/jonathan/expert-finder/internal/vectorstore"
)

var vectorizeCmd = &cobra.Command{
	Use:   "vectorize",
	Short: "Embed stored profiles into the vector store",
	Long:  "Read processed profiles from Postgres and embed them into the Chroma collection used for semantic search.",
	RunE:  runVectorize,
}

var (
	vectorizeConfigPath string
	vectorizeDBURL      string
	vectorizeChromaURL  string
	vectorizeCollection string
	vectorizePoolSize   int
)

func init() {
	vectorizeCmd.Flags().StringVar(&vectorizeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	vectorizeCmd.Flags().StringVar(&vectorizeDBURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	vectorizeCmd.Flags().StringVar(&vectorizeChromaURL, "chroma-url", "", "Chroma server URL")
	vectorizeCmd.Flags().StringVar(&vectorizeCollection, "collection", "", "Chroma collection name")
	vectorizeCmd.Flags().IntVar(&vectorizePoolSize, "pool-size", 4, "Concurrent embedding batches (0 for sequential)")

	rootCmd.AddCommand(vectorizeCmd)
}

func runVectorize(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(vectorizeConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("chroma-url") {
		cfg.ChromaURL = vectorizeChromaURL
	}
	if cmd.Flags().Changed("collection") {
		cfg.Collection = vectorizeCollection
	}

	databaseURL, err := requireDatabaseURL(vectorizeDBURL)
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
		PoolSize:       vectorizePoolSize,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to vector store: %w", err)
	}

	// Page through the full table; profiles are embedded in batches.
	const pageSize = 500
	total := 0
	for offset := 0; ; offset += pageSize {
		var page []*types.Profile
		page, err = database.ListProfiles(ctx, pageSize, offset)
		if err != nil {
			return fmt.Errorf("failed to list profiles: %w", err)
		}
		if len(page) == 0 {
			break
		}

		added, err := store.AddProfiles(ctx, page)
		total += added
		if err != nil {
			return fmt.Errorf("failed to embed profiles: %w", err)
		}
	}

	fmt.Printf("Vectorized %d profiles into collection %q\n", total, store.Collection())
	return nil
}
