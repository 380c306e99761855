package credibility

import (
	"context"
	"log"

	"github.com/jonathan/expert-finder/internal/types"
)

// PopulationSource provides the full population of stored profile records,
// typically the metadata rows held by the profile store. The calculator
// only ever reads from it.
type PopulationSource interface {
	AllRecords(ctx context.Context) ([]map[string]any, error)
}

// RawScore is the metric aggregation for a single record.
type RawScore struct {
	Total           float64
	PerMetric       map[string]float64
	YearsExperience float64
}

// OnDemandCalculator scores a single record against the persisted
// database-wide statistics rather than against other records in hand.
// Refreshing those statistics from the population source is a separate,
// explicitly invoked maintenance operation; Credibility never triggers it.
type OnDemandCalculator struct {
	metrics    []Metric
	thresholds map[int]float64
	store      *Store
	source     PopulationSource
}

// OnDemandOption configures an OnDemandCalculator.
type OnDemandOption func(*OnDemandCalculator)

// WithMetrics replaces the default metric set.
func WithMetrics(metrics ...Metric) OnDemandOption {
	return func(c *OnDemandCalculator) { c.metrics = metrics }
}

// WithThresholds replaces the default percentile-to-level table.
func WithThresholds(thresholds map[int]float64) OnDemandOption {
	return func(c *OnDemandCalculator) { c.thresholds = thresholds }
}

// NewOnDemandCalculator creates a calculator backed by the given stats
// store and population source.
func NewOnDemandCalculator(store *Store, source PopulationSource, opts ...OnDemandOption) *OnDemandCalculator {
	c := &OnDemandCalculator{
		metrics:    DefaultMetrics(),
		thresholds: DefaultThresholds(),
		store:      store,
		source:     source,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RawScore runs every metric over the record and aggregates the weighted
// scores. Years of experience is read from the years_experience field or
// the metadata sub-record, so both fresh profiles and vector store rows
// resolve; a record carrying neither scores zero years here.
func (c *OnDemandCalculator) RawScore(rec map[string]any) RawScore {
	scores := make(map[string]float64, len(c.metrics))
	total := 0.0
	for _, metric := range c.metrics {
		weighted := metric.Score(rec) * metric.Weight()
		scores[metric.Name()] = weighted
		total += weighted
	}

	years := 0.0
	if y, ok := fieldFloat(rec, "years_experience"); ok {
		years = y
	} else if meta, ok := subRecord(rec, "metadata"); ok {
		if y, ok := fieldFloat(meta, "years_experience"); ok {
			years = y
		}
	}

	return RawScore{Total: total, PerMetric: scores, YearsExperience: years}
}

// Credibility computes the full credibility block for a record using the
// current database-wide statistics. The block is returned, not written back
// onto the record; attaching it is the caller's concern.
func (c *OnDemandCalculator) Credibility(rec map[string]any) types.Credibility {
	raw := c.RawScore(rec)
	percentile := c.store.PercentileFromYears(raw.YearsExperience)

	return types.Credibility{
		RawScores:       raw.PerMetric,
		TotalRawScore:   raw.Total,
		Percentile:      percentile,
		Level:           LevelFromPercentile(percentile, c.thresholds),
		YearsExperience: raw.YearsExperience,
	}
}

// RefreshStats pulls the full population from the source and rebuilds the
// stats store from it. Returns false when the fetch fails or yields no
// records; an empty fetch never zeroes out previously good statistics.
func (c *OnDemandCalculator) RefreshStats(ctx context.Context) bool {
	if c.source == nil {
		return false
	}

	records, err := c.source.AllRecords(ctx)
	if err != nil {
		log.Printf("credibility: failed to fetch population for stats refresh: %v", err)
		return false
	}
	if len(records) == 0 {
		log.Printf("credibility: no profiles found, keeping existing stats")
		return false
	}

	c.store.UpdateFromRecords(records)
	return true
}

// RefreshStatsIfNeeded refreshes only when the stats file is missing or
// force is set. Reports whether a refresh ran.
func (c *OnDemandCalculator) RefreshStatsIfNeeded(ctx context.Context, force bool) bool {
	if c.store.FileExists() && !force {
		return false
	}
	return c.RefreshStats(ctx)
}
