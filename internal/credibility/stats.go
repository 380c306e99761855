package credibility

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

// Bracket is an experience-years bucket in the database-wide histogram.
// Brackets are left-inclusive and right-exclusive except the open final one.
type Bracket string

// Experience brackets.
const (
	Bracket0to5   Bracket = "0-5"
	Bracket5to10  Bracket = "5-10"
	Bracket10to15 Bracket = "10-15"
	Bracket15Plus Bracket = "15+"
)

// BracketForYears returns the histogram bucket for a years value.
func BracketForYears(years float64) Bracket {
	switch {
	case years < 5:
		return Bracket0to5
	case years < 10:
		return Bracket5to10
	case years < 15:
		return Bracket10to15
	default:
		return Bracket15Plus
	}
}

// LoadResult reports how a Store obtained its initial contents, so callers
// can tell a fresh install apart from a corrupt stats file. Neither case is
// an error: both yield the zeroed default record.
type LoadResult int

// Load outcomes.
const (
	LoadedFromFile LoadResult = iota
	DefaultedMissing
	DefaultedCorrupt
)

// Snapshot is a read-only copy of the aggregate statistics.
type Snapshot struct {
	TotalProfiles          int
	MaxYears               float64
	ExperienceDistribution map[Bracket]int
	EducationDistribution  map[Category]int
}

// statsFile mirrors the persisted JSON layout.
type statsFile struct {
	TotalProfiles int `json:"total_profiles"`
	Metrics       struct {
		Experience struct {
			MaxYears     float64         `json:"max_years"`
			Distribution map[Bracket]int `json:"distribution"`
		} `json:"experience"`
		Education struct {
			Distribution map[Category]int `json:"distribution"`
		} `json:"education"`
	} `json:"metrics"`
}

func defaultStats() statsFile {
	var s statsFile
	s.Metrics.Experience.Distribution = emptyExperienceDist()
	s.Metrics.Education.Distribution = emptyEducationDist()
	return s
}

func emptyExperienceDist() map[Bracket]int {
	return map[Bracket]int{Bracket0to5: 0, Bracket5to10: 0, Bracket10to15: 0, Bracket15Plus: 0}
}

func emptyEducationDist() map[Category]int {
	return map[Category]int{CategoryBachelor: 0, CategoryMaster: 0, CategoryPhD: 0, CategoryOther: 0}
}

// Store holds the database-wide credibility statistics and persists them as
// a JSON file. Load never fails: a missing or corrupt file yields the zeroed
// default. Save reports failure instead of returning an error. There is no
// file locking; the last writer wins, which is acceptable for the
// infrequent, single-writer maintenance job that feeds it.
type Store struct {
	path  string
	stats statsFile
}

// Open loads the stats file at path, falling back to the zeroed default
// when the file is missing or undecodable.
func Open(path string) (*Store, LoadResult) {
	s := &Store{path: path, stats: defaultStats()}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, DefaultedMissing
	}

	var loaded statsFile
	if err := json.Unmarshal(data, &loaded); err != nil {
		return s, DefaultedCorrupt
	}
	if loaded.Metrics.Experience.Distribution == nil {
		loaded.Metrics.Experience.Distribution = emptyExperienceDist()
	}
	if loaded.Metrics.Education.Distribution == nil {
		loaded.Metrics.Education.Distribution = emptyEducationDist()
	}
	s.stats = loaded
	return s, LoadedFromFile
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// FileExists reports whether the backing stats file is present on disk.
func (s *Store) FileExists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Save writes the current statistics to disk, creating the parent directory
// if needed. Returns false on any I/O failure.
func (s *Store) Save() bool {
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false
		}
	}

	data, err := json.MarshalIndent(s.stats, "", "  ")
	if err != nil {
		return false
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return false
	}
	return true
}

// Snapshot returns a copy of the current statistics.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		TotalProfiles:          s.stats.TotalProfiles,
		MaxYears:               s.stats.Metrics.Experience.MaxYears,
		ExperienceDistribution: make(map[Bracket]int, len(s.stats.Metrics.Experience.Distribution)),
		EducationDistribution:  make(map[Category]int, len(s.stats.Metrics.Education.Distribution)),
	}
	for k, v := range s.stats.Metrics.Experience.Distribution {
		snap.ExperienceDistribution[k] = v
	}
	for k, v := range s.stats.Metrics.Education.Distribution {
		snap.EducationDistribution[k] = v
	}
	return snap
}

// UpdateFromRecords replaces the statistics with aggregates computed over
// the given population and persists the result. The previous contents are
// fully discarded, so passing an empty population deliberately zeroes the
// store; callers refreshing from an external source should guard against an
// accidentally empty fetch before calling this.
//
// Records lacking a derivable education category are excluded from the
// education distribution; the experience distribution always counts every
// record. The two distributions therefore need not sum to the same value.
func (s *Store) UpdateFromRecords(records []map[string]any) {
	s.stats.TotalProfiles = len(records)
	s.stats.Metrics.Experience.Distribution = emptyExperienceDist()
	s.stats.Metrics.Education.Distribution = emptyEducationDist()

	maxYears := 0.0
	for _, rec := range records {
		years := ResolveYearsExperience(rec)
		if years > maxYears {
			maxYears = years
		}
		s.stats.Metrics.Experience.Distribution[BracketForYears(years)]++

		if cat, ok := ResolveEducationCategory(rec); ok {
			s.stats.Metrics.Education.Distribution[cat]++
		}
	}
	s.stats.Metrics.Experience.MaxYears = maxYears

	s.Save()
}

// PercentileFromYears converts a years-of-experience value into a 0-100
// percentile by piecewise-linear interpolation within the histogram. An
// empty store returns exactly 50.0, the "unknown population" default.
func (s *Store) PercentileFromYears(years float64) float64 {
	if s.stats.TotalProfiles == 0 {
		return 50.0
	}

	dist := s.stats.Metrics.Experience.Distribution
	below := 0.0
	switch {
	case years < 5:
		below = float64(dist[Bracket0to5]) * (years / 5.0)
	case years < 10:
		below = float64(dist[Bracket0to5]) + float64(dist[Bracket5to10])*(years-5)/5.0
	case years < 15:
		below = float64(dist[Bracket0to5]) + float64(dist[Bracket5to10]) +
			float64(dist[Bracket10to15])*(years-10)/5.0
	default:
		below = float64(dist[Bracket0to5]) + float64(dist[Bracket5to10]) + float64(dist[Bracket10to15])
		// Interpolate within the open bracket against the observed maximum.
		// With max_years at or below 15 there is nothing to interpolate
		// against, so the whole open bracket counts.
		fraction := 1.0
		if maxYears := s.stats.Metrics.Experience.MaxYears; maxYears > 15 {
			fraction = (years - 15) / (maxYears - 15)
			if fraction > 1 {
				fraction = 1
			}
		}
		below += float64(dist[Bracket15Plus]) * fraction
	}

	return below / float64(s.stats.TotalProfiles) * 100.0
}

// DefaultThresholds is the standard percentile-to-level table: the top 5%
// reach level 5, the next 15% level 4, then 30%, 30%, and 20%.
func DefaultThresholds() map[int]float64 {
	return map[int]float64{5: 95, 4: 80, 3: 50, 2: 20, 1: 0}
}

// LevelFromPercentile maps a percentile onto a 1-5 level, taking the highest
// level whose threshold the percentile meets. A nil thresholds map uses
// DefaultThresholds. Falls back to level 1 if no threshold matches.
func LevelFromPercentile(percentile float64, thresholds map[int]float64) int {
	if thresholds == nil {
		thresholds = DefaultThresholds()
	}

	levels := make([]int, 0, len(thresholds))
	for level := range thresholds {
		levels = append(levels, level)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(levels)))

	for _, level := range levels {
		if percentile >= thresholds[level] {
			return level
		}
	}
	return 1
}
