package credibility

import (
	"github.com/jonathan/expert-finder/internal/types"
)

// BatchCalculator assigns credibility blocks to a batch of freshly
// processed profiles, ranking them only against each other. It is the right
// tool immediately after a processing run, before database-wide statistics
// exist or can be trusted; it never consults the stats store.
type BatchCalculator struct {
	metrics    []Metric
	thresholds map[int]float64
}

// NewBatchCalculator creates a batch calculator. With no metrics given it
// uses DefaultMetrics.
func NewBatchCalculator(metrics ...Metric) *BatchCalculator {
	if len(metrics) == 0 {
		metrics = DefaultMetrics()
	}
	return &BatchCalculator{metrics: metrics, thresholds: DefaultThresholds()}
}

// ProcessProfiles computes weighted raw scores for every profile, ranks the
// batch by total score, and stamps a credibility block onto each profile in
// place. The percentile is the fraction of batch scores at or below the
// profile's own score, except that a batch of identical scores pins
// everyone to 50.0 rather than the 100.0 the counting formula would give.
// An empty batch is returned unchanged.
func (c *BatchCalculator) ProcessProfiles(profiles []*types.Profile) []*types.Profile {
	if len(profiles) == 0 {
		return profiles
	}

	totals := make([]float64, len(profiles))
	rawScores := make([]map[string]float64, len(profiles))
	years := make([]float64, len(profiles))

	for i, p := range profiles {
		rec := p.Record()

		scores := make(map[string]float64, len(c.metrics))
		total := 0.0
		for _, metric := range c.metrics {
			weighted := metric.Score(rec) * metric.Weight()
			scores[metric.Name()] = weighted
			total += weighted
		}

		totals[i] = total
		rawScores[i] = scores
		// Batch ranking only trusts the precomputed tenure field; unlike the
		// experience metric it does not fall back to the experiences list.
		if p.TotalYearsExperience != nil {
			years[i] = *p.TotalYearsExperience
		}
	}

	allEqual := true
	for _, t := range totals[1:] {
		if t != totals[0] {
			allEqual = false
			break
		}
	}

	for i, p := range profiles {
		percentile := 50.0
		if !allEqual {
			atOrBelow := 0
			for _, t := range totals {
				if t <= totals[i] {
					atOrBelow++
				}
			}
			percentile = float64(atOrBelow) / float64(len(totals)) * 100.0
		}

		p.Credibility = &types.Credibility{
			RawScores:       rawScores[i],
			TotalRawScore:   totals[i],
			Percentile:      percentile,
			Level:           LevelFromPercentile(percentile, c.thresholds),
			YearsExperience: years[i],
		}
	}

	return profiles
}

// LevelDistribution counts profiles per credibility level, for reporting
// after a processing run. Profiles without a credibility block count as
// level 1.
func LevelDistribution(profiles []*types.Profile) map[int]int {
	dist := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, p := range profiles {
		level := 1
		if p.Credibility != nil {
			level = p.Credibility.Level
		}
		dist[level]++
	}
	return dist
}
