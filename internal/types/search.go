package types

// YearsComparison restricts years-of-experience filters to a single bound.
type YearsComparison struct {
	GTE *float64 `json:"$gte,omitempty"`
	LTE *float64 `json:"$lte,omitempty"`
}

// SearchFilters are the metadata constraints applied alongside a semantic
// query. Multi-valued fields are OR-ed within the field and AND-ed across
// fields when translated to a vector store where-clause.
type SearchFilters struct {
	Location        []string         `json:"location,omitempty"`
	Industry        []string         `json:"industry,omitempty"`
	CurrentCompany  []string         `json:"current_company,omitempty"`
	EducationLevel  []string         `json:"education_level,omitempty"`
	CareerLevel     []string         `json:"career_level,omitempty"`
	YearsExperience *YearsComparison `json:"years_experience,omitempty"`
}

// IsZero reports whether no filter is set.
func (f *SearchFilters) IsZero() bool {
	if f == nil {
		return true
	}
	return len(f.Location) == 0 && len(f.Industry) == 0 && len(f.CurrentCompany) == 0 &&
		len(f.EducationLevel) == 0 && len(f.CareerLevel) == 0 && f.YearsExperience == nil
}

// SearchResult is one ranked match returned from the profile store.
type SearchResult struct {
	Rank            int     `json:"rank"`
	URNID           string  `json:"urn_id"`
	Name            string  `json:"name,omitempty"`
	CurrentTitle    string  `json:"current_title,omitempty"`
	CurrentCompany  string  `json:"current_company,omitempty"`
	Location        string  `json:"location,omitempty"`
	Industry        string  `json:"industry,omitempty"`
	EducationLevel  string  `json:"education_level,omitempty"`
	CareerLevel     string  `json:"career_level,omitempty"`
	YearsExperience string  `json:"years_experience,omitempty"`
	Similarity      float64 `json:"similarity"`
	ProfileSummary  string  `json:"profile_summary,omitempty"`

	// Credibility is computed on demand against the stored population.
	Credibility *Credibility `json:"credibility,omitempty"`

	// RelevanceScore is set when an LLM judge reranks the results.
	RelevanceScore float64 `json:"relevance_score,omitempty"`

	// Metadata is the raw stored row, kept for credibility recomputation.
	Metadata map[string]any `json:"-"`
}
