package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/expert-finder/internal/llm"
	"github.com/jonathan/expert-finder/internal/types"
)

// parsedQuery is the expected JSON response from the query parsing LLM call.
type parsedQuery struct {
	SearchQuery        string   `json:"search_query"`
	Locations          []string `json:"locations"`
	Industries         []string `json:"industries"`
	Companies          []string `json:"companies"`
	EducationLevels    []string `json:"education_levels"`
	CareerLevels       []string `json:"career_levels"`
	MinYearsExperience *float64 `json:"min_years_experience"`
	MaxYearsExperience *float64 `json:"max_years_experience"`
}

// ParseQuery splits a natural language request into a semantic search query
// and structured metadata filters.
func (a *ExpertFinder) ParseQuery(ctx context.Context, query string) (string, *types.SearchFilters, error) {
	prompt := llm.BuildExtractionPrompt(llm.QueryFiltersSchema(), query)

	jsonResp, err := a.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", nil, fmt.Errorf("LLM generation failed: %w", err)
	}
	jsonResp = llm.CleanJSONBlock(jsonResp)

	var parsed parsedQuery
	if err := json.Unmarshal([]byte(jsonResp), &parsed); err != nil {
		return "", nil, fmt.Errorf("failed to parse LLM response: %w (content: %s)", err, jsonResp)
	}

	searchQuery := strings.TrimSpace(parsed.SearchQuery)
	if searchQuery == "" {
		searchQuery = query
	}

	filters := filtersFromParsed(parsed)
	if filters.IsZero() {
		return searchQuery, nil, nil
	}
	return searchQuery, filters, nil
}

// filtersFromParsed normalizes the LLM output into canonical filter values.
func filtersFromParsed(parsed parsedQuery) *types.SearchFilters {
	filters := &types.SearchFilters{
		Location:       cleanStrings(parsed.Locations),
		Industry:       cleanStrings(parsed.Industries),
		CurrentCompany: cleanStrings(parsed.Companies),
		EducationLevel: normalizeLevels(parsed.EducationLevels, canonicalEducationLevel),
		CareerLevel:    normalizeLevels(parsed.CareerLevels, canonicalCareerLevel),
	}

	min, max := parsed.MinYearsExperience, parsed.MaxYearsExperience
	if min != nil && *min < 0 {
		min = nil
	}
	if max != nil && *max < 0 {
		max = nil
	}
	// The store supports a single bound per field; a range keeps the lower
	// bound, which is the constraint searches actually care about.
	if min != nil {
		filters.YearsExperience = &types.YearsComparison{GTE: min}
	} else if max != nil {
		filters.YearsExperience = &types.YearsComparison{LTE: max}
	}

	return filters
}

func cleanStrings(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// normalizeLevels maps free-form level names onto the canonical values the
// store indexes, dropping anything unrecognized.
func normalizeLevels(values []string, canonical func(string) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range values {
		c := canonical(v)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func canonicalEducationLevel(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	switch {
	case v == "":
		return ""
	case strings.Contains(v, "phd") || strings.Contains(v, "ph.d") || strings.Contains(v, "doctor"):
		return "PhD"
	case strings.Contains(v, "master") || v == "ms" || v == "mba":
		return "Masters"
	case strings.Contains(v, "bachelor") || v == "bs" || v == "ba":
		return "Bachelors"
	default:
		return "Other"
	}
}

func canonicalCareerLevel(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	switch {
	case v == "":
		return ""
	case strings.Contains(v, "executive") || strings.Contains(v, "chief") || strings.Contains(v, "president"),
		v == "vp", v == "ceo", v == "cto", v == "coo", v == "cfo":
		return "Executive"
	case strings.Contains(v, "director"):
		return "Director"
	case strings.Contains(v, "manager") || strings.Contains(v, "management"):
		return "Manager"
	case strings.Contains(v, "senior") || strings.Contains(v, "staff") || strings.Contains(v, "principal") || strings.Contains(v, "lead"):
		return "Senior"
	default:
		return "Other"
	}
}
