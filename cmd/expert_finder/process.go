package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/expert-finder/internal/credibility"
	"github.com/jonathan/expert-finder/internal/db"
	"github.com/jonathan/expert-finder/internal/extraction"
	"github.com/jonathan/expert-finder/internal/observability"
	"github.com/jonathan/expert-finder/internal/schemas"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process raw profile exports into the database",
	Long:  "Extract raw profile JSON exports, score batch credibility, and persist the normalized profiles to Postgres with a processing-run record.",
	RunE:  runProcess,
}

var (
	processConfigPath string
	processDataDir    string
	processDBURL      string
	processSchemaPath string
	processVerbose    bool
)

func init() {
	processCmd.Flags().StringVar(&processConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	processCmd.Flags().StringVarP(&processDataDir, "data-dir", "d", "", "Directory containing raw profile JSON exports")
	processCmd.Flags().StringVar(&processDBURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	processCmd.Flags().StringVar(&processSchemaPath, "schema", "", "Path to profile JSON schema (optional, reports invalid exports)")
	processCmd.Flags().BoolVarP(&processVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(processConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = processDataDir
	}

	databaseURL, err := requireDatabaseURL(processDBURL)
	if err != nil {
		return err
	}

	if processSchemaPath == "" {
		processSchemaPath = schemas.ResolveSchemaPath("schemas/profile.schema.json")
	}

	profiles, err := extraction.ExtractDir(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if len(profiles) == 0 {
		return fmt.Errorf("no profiles found in %s", cfg.DataDir)
	}

	if processSchemaPath != "" {
		reportSchemaFailures(cfg.DataDir, processSchemaPath)
	}

	calc := credibility.NewBatchCalculator()
	calc.ProcessProfiles(profiles)

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	runID, err := database.CreateRun(ctx, "process")
	if err != nil {
		return fmt.Errorf("failed to create processing run: %w", err)
	}

	upserted, err := database.UpsertProfiles(ctx, profiles)
	if err != nil {
		_ = database.CompleteRun(ctx, runID, db.RunStatusFailed, len(profiles), upserted)
		return fmt.Errorf("failed to store profiles: %w", err)
	}
	if err := database.CompleteRun(ctx, runID, db.RunStatusCompleted, len(profiles), upserted); err != nil {
		return fmt.Errorf("failed to record run completion: %w", err)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintProcessingSummary("process", len(profiles), upserted)

	distribution := credibility.LevelDistribution(profiles)
	fmt.Println("Credibility level distribution:")
	for level := 5; level >= 1; level-- {
		fmt.Printf("  Level %d: %d\n", level, distribution[level])
	}

	if processVerbose {
		for _, profile := range profiles {
			if profile.Credibility != nil {
				printer.PrintCredibility(profile.FullName, profile.Credibility)
			}
		}
	}

	return nil
}

// reportSchemaFailures logs raw exports that fail schema validation; they
// are still skipped by extraction if they cannot be parsed at all.
func reportSchemaFailures(dataDir, schemaPath string) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dataDir, entry.Name())
		if err := schemas.ValidateJSON(schemaPath, path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s fails schema validation: %v\n", entry.Name(), err)
		}
	}
}
