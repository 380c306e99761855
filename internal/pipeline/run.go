// Package pipeline provides the high-level orchestration for the profile
// ingestion process: extraction, batch credibility scoring, persistence,
// vectorization and statistics refresh.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/expert-finder/internal/credibility"
	"github.com/jonathan/expert-finder/internal/db"
	"github.com/jonathan/expert-finder/internal/extraction"
	"github.com/jonathan/expert-finder/internal/observability"
	"github.com/jonathan/expert-finder/internal/schemas"
	"github.com/jonathan/expert-finder/internal/vectorstore"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	DataDir         string
	SchemaPath      string // optional, validates raw exports before extraction
	DatabaseURL     string
	ChromaURL       string
	EmbeddingHost   string
	EmbeddingModel  string
	Collection      string
	StatsFile       string
	PoolSize        int
	ContinueOnError bool
	Verbose         bool
	OnProgress      ProgressCallback
}

// Result summarizes a completed pipeline run.
type Result struct {
	RunID            uuid.UUID
	Extracted        int
	Upserted         int
	Vectorized       int
	StatsRefreshed   bool
	LevelCounts      map[int]int
	SkippedBadSchema int
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, message, runID string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			RunID:   runID,
		})
	}
}

// Run orchestrates the full ingestion pipeline: raw exports are extracted
// and scored as a batch, persisted to Postgres, then embedded into the
// vector store while the population statistics refresh in parallel.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	printer := observability.NewPrinter(os.Stdout)
	result := &Result{}

	if opts.DataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}

	// Step 1: extract raw profile exports
	emitProgress(&opts, "extract", "Extracting raw profiles", "")
	if opts.SchemaPath != "" {
		skipped, err := countSchemaFailures(opts.DataDir, opts.SchemaPath)
		if err != nil {
			return nil, err
		}
		result.SkippedBadSchema = skipped
	}

	profiles, err := extraction.ExtractDir(opts.DataDir)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no profiles found in %s", opts.DataDir)
	}
	result.Extracted = len(profiles)

	// Step 2: batch credibility ranking within this run
	emitProgress(&opts, "score", "Scoring batch credibility", "")
	calc := credibility.NewBatchCalculator()
	calc.ProcessProfiles(profiles)
	result.LevelCounts = credibility.LevelDistribution(profiles)

	// Step 3: persist to Postgres with a processing-run record
	emitProgress(&opts, "persist", "Writing profiles to database", "")
	database, err := db.Connect(ctx, opts.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	runID, err := database.CreateRun(ctx, "pipeline")
	if err != nil {
		return nil, fmt.Errorf("failed to create processing run: %w", err)
	}
	result.RunID = runID
	emitProgress(&opts, "persist", "Processing run created", runID.String())

	upserted, err := database.UpsertProfiles(ctx, profiles)
	result.Upserted = upserted
	if err != nil {
		_ = database.CompleteRun(ctx, runID, db.RunStatusFailed, len(profiles), upserted)
		return result, fmt.Errorf("failed to store profiles: %w", err)
	}

	// Step 4: vectorize and refresh stats concurrently. Both read what step 3
	// wrote and do not depend on each other.
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		emitProgress(&opts, "vectorize", "Embedding profiles into vector store", runID.String())
		store, err := vectorstore.New(vectorstore.Config{
			ChromaURL:      opts.ChromaURL,
			EmbeddingHost:  opts.EmbeddingHost,
			EmbeddingModel: opts.EmbeddingModel,
			Collection:     opts.Collection,
			PoolSize:       opts.PoolSize,
		})
		if err != nil {
			return stepError(&opts, "vectorize", fmt.Errorf("failed to connect to vector store: %w", err))
		}

		added, err := store.AddProfiles(gCtx, profiles)
		result.Vectorized = added
		if err != nil {
			return stepError(&opts, "vectorize", fmt.Errorf("failed to embed profiles: %w", err))
		}
		return nil
	})

	g.Go(func() error {
		emitProgress(&opts, "stats", "Refreshing population statistics", runID.String())
		statsStore, loadResult := credibility.Open(opts.StatsFile)
		if loadResult == credibility.DefaultedCorrupt {
			log.Printf("pipeline: stats file %s was corrupt, rebuilding from scratch", opts.StatsFile)
		}
		cred := credibility.NewOnDemandCalculator(statsStore, database)
		if !cred.RefreshStats(gCtx) {
			return stepError(&opts, "stats", fmt.Errorf("stats refresh failed: population could not be read"))
		}
		result.StatsRefreshed = true
		return nil
	})

	pipelineErr := g.Wait()

	status := db.RunStatusCompleted
	if pipelineErr != nil {
		status = db.RunStatusFailed
	}
	if err := database.CompleteRun(ctx, runID, status, len(profiles), upserted); err != nil {
		log.Printf("pipeline: failed to record run completion: %v", err)
	}

	if opts.Verbose {
		printer.PrintProcessingSummary("pipeline", len(profiles), upserted)
		printLevelDistribution(result.LevelCounts)
	}

	return result, pipelineErr
}

// stepError downgrades a step failure to a logged warning when the run is
// configured to continue past recoverable errors.
func stepError(opts *RunOptions, step string, err error) error {
	if opts.ContinueOnError {
		log.Printf("pipeline: %s step failed, continuing: %v", step, err)
		return nil
	}
	return fmt.Errorf("%s: %w", step, err)
}

// countSchemaFailures validates each raw export against the profile schema
// and reports how many fail. Invalid files are logged; extraction skips
// unparseable files on its own, so validation never aborts the run.
func countSchemaFailures(dir, schemaPath string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return 0, fmt.Errorf("failed to list profile files in %s: %w", dir, err)
	}

	skipped := 0
	for _, path := range paths {
		if err := schemas.ValidateJSON(schemaPath, path); err != nil {
			log.Printf("pipeline: %s fails schema validation: %v", path, err)
			skipped++
		}
	}
	return skipped, nil
}

func printLevelDistribution(counts map[int]int) {
	for level := 5; level >= 1; level-- {
		if counts[level] > 0 {
			fmt.Printf("  Level %d: %d profiles\n", level, counts[level])
		}
	}
}
