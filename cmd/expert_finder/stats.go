package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/expert-finder/internal/credibility"
	"github.com/jonathan/expert-finder/internal/db"
	"github.com/jonathan/expert-finder/internal/observability"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show or refresh the population credibility statistics",
	Long:  "Print the persisted population statistics used for on-demand credibility scoring. With --refresh, rebuild them from the profiles stored in Postgres first.",
	RunE:  runStats,
}

var (
	statsConfigPath string
	statsDBURL      string
	statsRefresh    bool
)

func init() {
	statsCmd.Flags().StringVar(&statsConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	statsCmd.Flags().StringVar(&statsDBURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	statsCmd.Flags().BoolVar(&statsRefresh, "refresh", false, "Rebuild statistics from the database before printing")

	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(statsConfigPath)
	if err != nil {
		return err
	}

	statsStore, loadResult := credibility.Open(cfg.StatsFile)
	if loadResult == credibility.DefaultedCorrupt {
		fmt.Fprintf(os.Stderr, "Warning: stats file %s was corrupt, starting from defaults\n", cfg.StatsFile)
	}

	if statsRefresh {
		databaseURL, err := requireDatabaseURL(statsDBURL)
		if err != nil {
			return err
		}

		database, err := db.Connect(ctx, databaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		cred := credibility.NewOnDemandCalculator(statsStore, database)
		if !cred.RefreshStats(ctx) {
			return fmt.Errorf("stats refresh failed: population could not be read")
		}
		fmt.Printf("Statistics refreshed and saved to %s\n", statsStore.Path())
	} else if !statsStore.FileExists() {
		return fmt.Errorf("no statistics file at %s; run with --refresh to build one", cfg.StatsFile)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintStats(statsStore.Snapshot())
	return nil
}
