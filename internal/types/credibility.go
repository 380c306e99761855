package types

// Credibility is the scoring block attached to a profile. The three
// presentation fields (Level, Percentile, YearsExperience) are always written
// together; consumers may rely on their joint presence.
type Credibility struct {
	RawScores       map[string]float64 `json:"raw_scores"`
	TotalRawScore   float64            `json:"total_raw_score"`
	Percentile      float64            `json:"percentile"`
	Level           int                `json:"level"`
	YearsExperience float64            `json:"years_experience"`
}
