// Package credibility scores profiles on experience and education signals
// and converts those scores into database-relative percentiles and levels.
//
// The package operates on flat map records (the shape shared by freshly
// extracted profile JSON, vector store metadata rows, and nested credibility
// blocks) so the same field-resolution rules apply everywhere. Data-quality
// problems never surface as errors; every resolver falls back through a
// documented priority chain and bottoms out at a sentinel.
package credibility

import (
	"strconv"
	"strings"
	"time"
)

// Category is the coarse education classification used for the
// database-wide education distribution.
type Category string

// Education categories. Profiles with no derivable category are excluded
// from the education distribution entirely.
const (
	CategoryBachelor Category = "bachelor"
	CategoryMaster   Category = "master"
	CategoryPhD      Category = "phd"
	CategoryOther    Category = "other"
)

// timeNow is stubbed in tests that pin the current year.
var timeNow = time.Now

// toFloat coerces the loosely typed numeric values found in records
// (float64 from JSON, int from Go callers, strings from vector store
// metadata). Unparseable values are treated as absent.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func subRecord(rec map[string]any, key string) (map[string]any, bool) {
	sub, ok := rec[key].(map[string]any)
	return sub, ok
}

// fieldFloat reads a numeric field, tolerating string encodings. A present
// but empty or unparseable value counts as absent.
func fieldFloat(rec map[string]any, key string) (float64, bool) {
	v, ok := rec[key]
	if !ok || v == nil {
		return 0, false
	}
	return toFloat(v)
}

// ResolveYearsExperience returns the years of experience recorded anywhere
// in the record, checking the direct fields first, then the metadata and
// credibility sub-records (vector store rows carry the value there), and
// finally summing the experiences list. Returns 0 when nothing resolves.
func ResolveYearsExperience(rec map[string]any) float64 {
	if y, ok := fieldFloat(rec, "years_experience"); ok {
		return y
	}
	if y, ok := fieldFloat(rec, "total_years_experience"); ok {
		return y
	}
	if meta, ok := subRecord(rec, "metadata"); ok {
		if y, ok := fieldFloat(meta, "years_experience"); ok {
			return y
		}
	}
	if cred, ok := subRecord(rec, "credibility"); ok {
		if y, ok := fieldFloat(cred, "years_experience"); ok {
			return y
		}
	}
	if years, ok := yearsFromExperiences(rec); ok {
		return years
	}
	return 0
}

// yearsFromExperiences sums (end_year - start_year) over the experiences
// list. A missing end_year means the position is ongoing and the current
// year is used. Entries with a missing or unparseable start_year are skipped.
func yearsFromExperiences(rec map[string]any) (float64, bool) {
	exps, ok := rec["experiences"].([]any)
	if !ok || len(exps) == 0 {
		return 0, false
	}

	currentYear := float64(timeNow().Year())
	total := 0.0
	for _, e := range exps {
		exp, ok := e.(map[string]any)
		if !ok {
			continue
		}
		start, ok := fieldFloat(exp, "start_year")
		if !ok {
			continue
		}
		end, ok := fieldFloat(exp, "end_year")
		if !ok {
			end = currentYear
		}
		total += end - start
	}
	return total, true
}

// CategoryFromText maps a free-form degree or level string to a Category
// by case-insensitive substring match. Empty input yields no category.
func CategoryFromText(text string) (Category, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return "", false
	}
	switch {
	case strings.Contains(text, "phd") || strings.Contains(text, "doctor"):
		return CategoryPhD, true
	case strings.Contains(text, "master"):
		return CategoryMaster, true
	case strings.Contains(text, "bachelor"):
		return CategoryBachelor, true
	default:
		return CategoryOther, true
	}
}

// ResolveEducationCategory returns the education category for a record,
// preferring the direct education_level field, then the metadata sub-record,
// then latest_degree. Each source short-circuits: a present key settles the
// lookup even when its value is blank and yields no category. The educations
// list is deliberately not consulted here: rows reaching the stats store
// always carry one of the flat fields, and the direct field wins even when
// it classifies as "other".
func ResolveEducationCategory(rec map[string]any) (Category, bool) {
	if s, ok := rec["education_level"].(string); ok {
		return CategoryFromText(s)
	}
	if meta, ok := subRecord(rec, "metadata"); ok {
		if s, ok := meta["education_level"].(string); ok {
			return CategoryFromText(s)
		}
	}
	if s, ok := rec["latest_degree"].(string); ok {
		return CategoryFromText(s)
	}
	return "", false
}
