package credibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// pinYear fixes the package clock for tests that depend on the current year.
func pinYear(t *testing.T, year int) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { timeNow = orig })
}

func TestResolveYearsExperience_DirectField(t *testing.T) {
	rec := map[string]any{"years_experience": 12.0}
	assert.Equal(t, 12.0, ResolveYearsExperience(rec))
}

func TestResolveYearsExperience_StringValue(t *testing.T) {
	// Vector store metadata stores years as strings.
	rec := map[string]any{"years_experience": "8"}
	assert.Equal(t, 8.0, ResolveYearsExperience(rec))
}

func TestResolveYearsExperience_MetadataSubRecord(t *testing.T) {
	rec := map[string]any{
		"metadata": map[string]any{"years_experience": "15"},
	}
	assert.Equal(t, 15.0, ResolveYearsExperience(rec))
}

func TestResolveYearsExperience_CredibilitySubRecord(t *testing.T) {
	rec := map[string]any{
		"credibility": map[string]any{"years_experience": 6.5},
	}
	assert.Equal(t, 6.5, ResolveYearsExperience(rec))
}

func TestResolveYearsExperience_UnparseableFallsThrough(t *testing.T) {
	rec := map[string]any{
		"years_experience": "not a number",
		"metadata":         map[string]any{"years_experience": "9"},
	}
	assert.Equal(t, 9.0, ResolveYearsExperience(rec))
}

func TestResolveYearsExperience_TotalYearsField(t *testing.T) {
	rec := map[string]any{"total_years_experience": 11.0}
	assert.Equal(t, 11.0, ResolveYearsExperience(rec))
}

func TestResolveYearsExperience_ExperiencesSum(t *testing.T) {
	pinYear(t, 2024)

	rec := map[string]any{
		"experiences": []any{
			map[string]any{"start_year": 2015, "end_year": 2020},
			map[string]any{"start_year": 2020},
		},
	}
	// (2020-2015) + (2024-2020) = 9
	assert.Equal(t, 9.0, ResolveYearsExperience(rec))
}

func TestResolveYearsExperience_NothingResolves(t *testing.T) {
	assert.Equal(t, 0.0, ResolveYearsExperience(map[string]any{"full_name": "Jane Doe"}))
}

func TestCategoryFromText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Category
		ok       bool
	}{
		{"phd", "PhD in Computer Science", CategoryPhD, true},
		{"doctorate", "Doctor of Philosophy", CategoryPhD, true},
		{"master", "Master of Science", CategoryMaster, true},
		{"bachelor", "Bachelor of Arts", CategoryBachelor, true},
		{"other", "High School Diploma", CategoryOther, true},
		{"empty", "", "", false},
		{"whitespace", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, ok := CategoryFromText(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, cat)
			}
		})
	}
}

func TestResolveEducationCategory_DirectFieldWinsOverList(t *testing.T) {
	// The flat field wins even when it classifies as "other"; the educations
	// list is never consulted by this resolver.
	rec := map[string]any{
		"education_level": "Other",
		"educations":      []any{map[string]any{"degree": "PhD"}},
	}

	cat, ok := ResolveEducationCategory(rec)
	assert.True(t, ok)
	assert.Equal(t, CategoryOther, cat)
}

func TestResolveEducationCategory_MetadataLocation(t *testing.T) {
	rec := map[string]any{
		"metadata": map[string]any{"education_level": "Masters"},
	}

	cat, ok := ResolveEducationCategory(rec)
	assert.True(t, ok)
	assert.Equal(t, CategoryMaster, cat)
}

func TestResolveEducationCategory_LatestDegree(t *testing.T) {
	rec := map[string]any{"latest_degree": "Bachelor of Engineering"}

	cat, ok := ResolveEducationCategory(rec)
	assert.True(t, ok)
	assert.Equal(t, CategoryBachelor, cat)
}

func TestResolveEducationCategory_Absent(t *testing.T) {
	_, ok := ResolveEducationCategory(map[string]any{})
	assert.False(t, ok)
}

func TestResolveEducationCategory_BlankFieldSettlesLookup(t *testing.T) {
	// A present-but-empty education_level yields no category; it does not
	// fall through to the metadata sub-record.
	rec := map[string]any{
		"education_level": "",
		"metadata":        map[string]any{"education_level": "Masters"},
	}

	_, ok := ResolveEducationCategory(rec)
	assert.False(t, ok)
}
