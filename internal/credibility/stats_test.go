package credibility

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioStatsJSON is a 100-profile population with a known experience
// histogram, used by the percentile tests below.
const scenarioStatsJSON = `{
  "total_profiles": 100,
  "metrics": {
    "experience": {
      "max_years": 25,
      "distribution": {"0-5": 30, "5-10": 40, "10-15": 20, "15+": 10}
    },
    "education": {
      "distribution": {"bachelor": 40, "master": 30, "phd": 20, "other": 10}
    }
  }
}`

func openScenarioStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credibility_stats.json")
	require.NoError(t, os.WriteFile(path, []byte(scenarioStatsJSON), 0644))

	store, result := Open(path)
	require.Equal(t, LoadedFromFile, result)
	return store
}

func TestOpen_MissingFileDefaults(t *testing.T) {
	store, result := Open(filepath.Join(t.TempDir(), "nope.json"))

	assert.Equal(t, DefaultedMissing, result)
	snap := store.Snapshot()
	assert.Equal(t, 0, snap.TotalProfiles)
	assert.Equal(t, 0.0, snap.MaxYears)
	assert.Equal(t, 0, snap.ExperienceDistribution[Bracket0to5])
	assert.Equal(t, 0, snap.EducationDistribution[CategoryPhD])
}

func TestOpen_CorruptFileDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credibility_stats.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store, result := Open(path)
	assert.Equal(t, DefaultedCorrupt, result)
	assert.Equal(t, 0, store.Snapshot().TotalProfiles)
}

func TestSaveThenOpenRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "stats.json")
	store, _ := Open(path)

	store.UpdateFromRecords([]map[string]any{
		{"years_experience": 3.0, "education_level": "Bachelors"},
		{"years_experience": 12.0, "education_level": "PhD"},
		{"years_experience": 20.0},
	})

	reloaded, result := Open(path)
	require.Equal(t, LoadedFromFile, result)
	assert.Equal(t, store.Snapshot(), reloaded.Snapshot())
}

func TestSave_ReportsFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("cannot provoke permission errors as root")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

	store, _ := Open(filepath.Join(dir, "stats.json"))
	assert.False(t, store.Save())
}

func TestUpdateFromRecords_Distributions(t *testing.T) {
	store, _ := Open(filepath.Join(t.TempDir(), "stats.json"))

	store.UpdateFromRecords([]map[string]any{
		{"years_experience": 2.0, "education_level": "Bachelors"},
		{"years_experience": 4.9, "education_level": "Masters"},
		{"years_experience": 5.0, "education_level": "PhD"},
		{"years_experience": 9.0, "education_level": "Other"},
		{"years_experience": 10.0, "education_level": "Masters"},
		{"years_experience": 14.0},
		{"years_experience": 15.0},
		{"years_experience": 22.0},
	})

	snap := store.Snapshot()
	assert.Equal(t, 8, snap.TotalProfiles)
	assert.Equal(t, 22.0, snap.MaxYears)

	assert.Equal(t, 2, snap.ExperienceDistribution[Bracket0to5])
	assert.Equal(t, 2, snap.ExperienceDistribution[Bracket5to10])
	assert.Equal(t, 2, snap.ExperienceDistribution[Bracket10to15])
	assert.Equal(t, 2, snap.ExperienceDistribution[Bracket15Plus])

	// Every record lands in exactly one experience bracket.
	total := 0
	for _, count := range snap.ExperienceDistribution {
		total += count
	}
	assert.Equal(t, 8, total)

	// Records without a derivable category are excluded from education.
	eduTotal := 0
	for _, count := range snap.EducationDistribution {
		eduTotal += count
	}
	assert.Equal(t, 5, eduTotal)
	assert.Equal(t, 2, snap.EducationDistribution[CategoryMaster])
	assert.Equal(t, 1, snap.EducationDistribution[CategoryOther])
}

func TestUpdateFromRecords_ReplacesPreviousContents(t *testing.T) {
	store, _ := Open(filepath.Join(t.TempDir(), "stats.json"))

	store.UpdateFromRecords([]map[string]any{
		{"years_experience": 20.0, "education_level": "PhD"},
	})
	store.UpdateFromRecords([]map[string]any{
		{"years_experience": 1.0, "education_level": "Bachelors"},
		{"years_experience": 2.0, "education_level": "Bachelors"},
	})

	snap := store.Snapshot()
	assert.Equal(t, 2, snap.TotalProfiles)
	assert.Equal(t, 2.0, snap.MaxYears)
	assert.Equal(t, 0, snap.ExperienceDistribution[Bracket15Plus])
	assert.Equal(t, 0, snap.EducationDistribution[CategoryPhD])
}

func TestUpdateFromRecords_EmptyPopulationZeroes(t *testing.T) {
	store, _ := Open(filepath.Join(t.TempDir(), "stats.json"))
	store.UpdateFromRecords([]map[string]any{{"years_experience": 7.0}})

	// An explicit empty population is trusted and resets the store.
	store.UpdateFromRecords(nil)
	assert.Equal(t, 0, store.Snapshot().TotalProfiles)
}

func TestPercentileFromYears_Interpolation(t *testing.T) {
	store := openScenarioStore(t)

	// 30 full in 0-5, plus 2/5 of the 40-profile 5-10 bucket.
	assert.InDelta(t, 46.0, store.PercentileFromYears(7), 1e-9)

	// 3/5 of the 0-5 bucket.
	assert.InDelta(t, 18.0, store.PercentileFromYears(3), 1e-9)

	// Three full buckets plus half the open bracket: (25-15)/2 = 5 years in.
	assert.InDelta(t, 95.0, store.PercentileFromYears(20), 1e-9)

	// Beyond max_years the open-bracket fraction caps at 1.
	assert.InDelta(t, 100.0, store.PercentileFromYears(40), 1e-9)
}

func TestPercentileFromYears_Monotonic(t *testing.T) {
	store := openScenarioStore(t)

	prev := -1.0
	for years := 0.0; years <= 30; years += 0.25 {
		p := store.PercentileFromYears(years)
		assert.GreaterOrEqual(t, p, prev, "percentile decreased at years=%v", years)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 100.0)
		prev = p
	}
}

func TestPercentileFromYears_EmptyStoreReturnsMedian(t *testing.T) {
	store, _ := Open(filepath.Join(t.TempDir(), "stats.json"))

	for _, years := range []float64{0, 7, 100} {
		assert.Equal(t, 50.0, store.PercentileFromYears(years))
	}
}

func TestLevelFromPercentile_DefaultTable(t *testing.T) {
	tests := []struct {
		percentile float64
		expected   int
	}{
		{0, 1},
		{19.9, 1},
		{20, 2},
		{46, 2},
		{50, 3},
		{66.67, 3},
		{80, 4},
		{94.9, 4},
		{95, 5},
		{100, 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LevelFromPercentile(tt.percentile, nil),
			"percentile=%v", tt.percentile)
	}
}

func TestLevelFromPercentile_Monotonic(t *testing.T) {
	prev := 0
	for p := 0.0; p <= 100; p += 0.5 {
		level := LevelFromPercentile(p, nil)
		assert.GreaterOrEqual(t, level, prev, "level decreased at percentile=%v", p)
		prev = level
	}
}

func TestLevelFromPercentile_CustomThresholds(t *testing.T) {
	thresholds := map[int]float64{3: 90, 2: 50, 1: 0}
	assert.Equal(t, 3, LevelFromPercentile(95, thresholds))
	assert.Equal(t, 2, LevelFromPercentile(60, thresholds))
	assert.Equal(t, 1, LevelFromPercentile(10, thresholds))
}

func TestLevelFromPercentile_NoMatchingThresholdFallsBack(t *testing.T) {
	// Unreachable with the default table (level 1 sits at 0), but the
	// fallback must hold for tables without a floor.
	thresholds := map[int]float64{5: 95}
	assert.Equal(t, 1, LevelFromPercentile(50, thresholds))
}
