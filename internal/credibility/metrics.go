package credibility

// Metric is a pure scoring function over a profile record. The set of
// metrics is closed: experience and education. Weights scale the raw score
// during aggregation.
type Metric interface {
	Name() string
	Weight() float64
	Score(rec map[string]any) float64
}

// DefaultMetrics returns the standard metric set with unit weights.
func DefaultMetrics() []Metric {
	return []Metric{
		NewExperienceMetric(1.0),
		NewEducationMetric(1.0),
	}
}

// scoreFromYears maps total years of experience onto the 0-3 raw scale.
func scoreFromYears(years float64) float64 {
	switch {
	case years >= 15:
		return 3.0
	case years >= 10:
		return 2.0
	case years >= 5:
		return 1.0
	default:
		return 0.0
	}
}

// categoryScore maps an education category onto the 0-3 raw scale.
func categoryScore(cat Category) float64 {
	switch cat {
	case CategoryPhD:
		return 3.0
	case CategoryMaster:
		return 2.0
	case CategoryBachelor:
		return 1.0
	default:
		return 0.0
	}
}

// ExperienceMetric scores a record on years of experience: 3 points at
// fifteen years, 2 at ten, 1 at five.
type ExperienceMetric struct {
	weight float64
}

// NewExperienceMetric creates an experience metric with the given weight.
func NewExperienceMetric(weight float64) *ExperienceMetric {
	return &ExperienceMetric{weight: weight}
}

// Name implements Metric.
func (m *ExperienceMetric) Name() string { return "experience" }

// Weight implements Metric.
func (m *ExperienceMetric) Weight() float64 { return m.weight }

// Score prefers the precomputed total_years_experience field and falls back
// to summing the experiences list when it is absent.
func (m *ExperienceMetric) Score(rec map[string]any) float64 {
	if years, ok := fieldFloat(rec, "total_years_experience"); ok {
		return scoreFromYears(years)
	}
	years, _ := yearsFromExperiences(rec)
	return scoreFromYears(years)
}

// EducationMetric scores a record on its highest education credential:
// 3 points for a doctorate, 2 for a master's, 1 for a bachelor's.
type EducationMetric struct {
	weight float64
}

// NewEducationMetric creates an education metric with the given weight.
func NewEducationMetric(weight float64) *EducationMetric {
	return &EducationMetric{weight: weight}
}

// Name implements Metric.
func (m *EducationMetric) Name() string { return "education" }

// Weight implements Metric.
func (m *EducationMetric) Weight() float64 { return m.weight }

// Score checks education_level, then latest_degree, then the educations
// list. The two flat fields short-circuit: a present value scores
// immediately, even when it classifies as "other". Only the educations list
// takes the maximum across entries.
func (m *EducationMetric) Score(rec map[string]any) float64 {
	if level, ok := rec["education_level"].(string); ok {
		cat, _ := CategoryFromText(level)
		return categoryScore(cat)
	}
	if degree, ok := rec["latest_degree"].(string); ok {
		cat, _ := CategoryFromText(degree)
		return categoryScore(cat)
	}

	highest := 0.0
	if edus, ok := rec["educations"].([]any); ok {
		for _, e := range edus {
			edu, ok := e.(map[string]any)
			if !ok {
				continue
			}
			degree, ok := edu["degree"].(string)
			if !ok {
				continue
			}
			cat, ok := CategoryFromText(degree)
			if !ok {
				continue
			}
			if score := categoryScore(cat); score > highest {
				highest = score
			}
		}
	}
	return highest
}
