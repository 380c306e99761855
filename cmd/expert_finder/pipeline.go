package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/expert-finder/internal/pipeline"
	"github.com/jonathan/expert-finder/internal/schemas"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the full ingestion pipeline end-to-end",
	Long:  "Orchestrates the entire ingestion process: extraction -> batch credibility scoring -> persistence -> vectorization and statistics refresh (the last two run concurrently).",
	RunE:  runPipelineCmd,
}

var (
	pipelineConfigPath string
	pipelineDataDir    string
	pipelineDBURL      string
	pipelinePoolSize   int
	pipelineContinue   bool
	pipelineVerbose    bool
)

func init() {
	pipelineCmd.Flags().StringVar(&pipelineConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	pipelineCmd.Flags().StringVarP(&pipelineDataDir, "data-dir", "d", "", "Directory containing raw profile JSON exports")
	pipelineCmd.Flags().StringVar(&pipelineDBURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	pipelineCmd.Flags().IntVar(&pipelinePoolSize, "pool-size", 4, "Concurrent embedding batches (0 for sequential)")
	pipelineCmd.Flags().BoolVar(&pipelineContinue, "continue-on-error", false, "Continue past vectorization or stats failures")
	pipelineCmd.Flags().BoolVarP(&pipelineVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(pipelineCmd)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(pipelineConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = pipelineDataDir
	}

	databaseURL, err := requireDatabaseURL(pipelineDBURL)
	if err != nil {
		return err
	}

	opts := pipeline.RunOptions{
		DataDir:         cfg.DataDir,
		SchemaPath:      schemas.ResolveSchemaPath("schemas/profile.schema.json"),
		DatabaseURL:     databaseURL,
		ChromaURL:       cfg.ChromaURL,
		EmbeddingHost:   cfg.EmbeddingHost,
		EmbeddingModel:  cfg.EmbeddingModel,
		Collection:      cfg.Collection,
		StatsFile:       cfg.StatsFile,
		PoolSize:        pipelinePoolSize,
		ContinueOnError: pipelineContinue,
		Verbose:         pipelineVerbose,
	}
	if pipelineVerbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			fmt.Printf("[%s] %s\n", event.Step, event.Message)
		}
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Pipeline run %s: extracted=%d upserted=%d vectorized=%d stats_refreshed=%v\n",
		result.RunID, result.Extracted, result.Upserted, result.Vectorized, result.StatsRefreshed)
	return nil
}
