package credibility

import (
	"testing"

	"github.com/jonathan/expert-finder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestProcessProfiles_RanksWithinBatch(t *testing.T) {
	// Three profiles scoring 5.0, 3.0, 3.0 in total: the leader counts all
	// three at or below it (100th percentile, level 5), the tied pair count
	// two of three (66.67, level 3).
	profiles := []*types.Profile{
		{
			URNID:                "p1",
			TotalYearsExperience: floatPtr(16),
			EducationLevel:       "Masters",
		},
		{
			URNID:                "p2",
			TotalYearsExperience: floatPtr(11),
			EducationLevel:       "Bachelors",
		},
		{
			URNID:                "p3",
			TotalYearsExperience: floatPtr(12),
			EducationLevel:       "Bachelors",
		},
	}

	result := NewBatchCalculator().ProcessProfiles(profiles)
	require.Len(t, result, 3)

	cred1 := result[0].Credibility
	require.NotNil(t, cred1)
	assert.Equal(t, 5.0, cred1.TotalRawScore)
	assert.InDelta(t, 100.0, cred1.Percentile, 1e-9)
	assert.Equal(t, 5, cred1.Level)
	assert.Equal(t, 16.0, cred1.YearsExperience)

	for _, p := range result[1:] {
		require.NotNil(t, p.Credibility)
		assert.Equal(t, 3.0, p.Credibility.TotalRawScore)
		assert.InDelta(t, 66.6667, p.Credibility.Percentile, 0.01)
		assert.Equal(t, 3, p.Credibility.Level)
	}
}

func TestProcessProfiles_IdenticalScoresPinTo50(t *testing.T) {
	profiles := []*types.Profile{
		{URNID: "a", TotalYearsExperience: floatPtr(7), EducationLevel: "Bachelors"},
		{URNID: "b", TotalYearsExperience: floatPtr(8), EducationLevel: "Bachelors"},
		{URNID: "c", TotalYearsExperience: floatPtr(9), EducationLevel: "Bachelors"},
	}

	result := NewBatchCalculator().ProcessProfiles(profiles)

	for _, p := range result {
		require.NotNil(t, p.Credibility)
		// The counting formula would say 100.0 for everyone; an all-tied
		// batch is pinned to 50.0 instead.
		assert.Equal(t, 50.0, p.Credibility.Percentile)
		assert.Equal(t, 3, p.Credibility.Level)
	}
}

func TestProcessProfiles_EmptyBatch(t *testing.T) {
	assert.Empty(t, NewBatchCalculator().ProcessProfiles(nil))
	assert.Empty(t, NewBatchCalculator().ProcessProfiles([]*types.Profile{}))
}

func TestProcessProfiles_SingleProfile(t *testing.T) {
	profiles := []*types.Profile{
		{URNID: "solo", TotalYearsExperience: floatPtr(20), EducationLevel: "PhD"},
	}

	result := NewBatchCalculator().ProcessProfiles(profiles)

	// A batch of one is all-tied by definition.
	require.NotNil(t, result[0].Credibility)
	assert.Equal(t, 50.0, result[0].Credibility.Percentile)
}

func TestProcessProfiles_YearsFallbackIsZero(t *testing.T) {
	startA, endA := 2010, 2020
	profiles := []*types.Profile{
		{
			URNID: "no-total",
			// The experience metric still scores these, but the stamped
			// years_experience does not fall back to summing them.
			Experiences: []types.Experience{
				{StartYear: &startA, EndYear: &endA},
			},
		},
		{URNID: "with-total", TotalYearsExperience: floatPtr(3)},
	}

	result := NewBatchCalculator().ProcessProfiles(profiles)

	require.NotNil(t, result[0].Credibility)
	assert.Equal(t, 0.0, result[0].Credibility.YearsExperience)
	assert.Equal(t, 2.0, result[0].Credibility.RawScores["experience"])
	assert.Equal(t, 3.0, result[1].Credibility.YearsExperience)
}

func TestProcessProfiles_WeightedScores(t *testing.T) {
	calc := NewBatchCalculator(NewExperienceMetric(2.0), NewEducationMetric(0.5))

	profiles := []*types.Profile{
		{URNID: "w", TotalYearsExperience: floatPtr(16), EducationLevel: "PhD"},
		{URNID: "z", TotalYearsExperience: floatPtr(1)},
	}

	result := calc.ProcessProfiles(profiles)

	cred := result[0].Credibility
	require.NotNil(t, cred)
	assert.Equal(t, 6.0, cred.RawScores["experience"])
	assert.Equal(t, 1.5, cred.RawScores["education"])
	assert.Equal(t, 7.5, cred.TotalRawScore)
}

func TestLevelDistribution(t *testing.T) {
	profiles := []*types.Profile{
		{Credibility: &types.Credibility{Level: 5}},
		{Credibility: &types.Credibility{Level: 3}},
		{Credibility: &types.Credibility{Level: 3}},
		{}, // unscored counts as level 1
	}

	dist := LevelDistribution(profiles)
	assert.Equal(t, map[int]int{1: 1, 2: 0, 3: 2, 4: 0, 5: 1}, dist)
}
