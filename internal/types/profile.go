// Package types defines the shared data structures exchanged between
// extraction, credibility scoring, storage, and search.
package types

// Experience is a single position held by a profile owner.
// EndYear is nil while the position is ongoing.
type Experience struct {
	Title             string   `json:"title,omitempty"`
	Company           string   `json:"company,omitempty"`
	CompanyURN        string   `json:"company_urn,omitempty"`
	Location          string   `json:"location,omitempty"`
	Description       string   `json:"description,omitempty"`
	StartMonth        *int     `json:"start_month,omitempty"`
	StartYear         *int     `json:"start_year,omitempty"`
	EndMonth          *int     `json:"end_month,omitempty"`
	EndYear           *int     `json:"end_year,omitempty"`
	IsCurrent         bool     `json:"is_current"`
	CompanySize       *int     `json:"company_size,omitempty"`
	CompanyIndustries []string `json:"company_industries,omitempty"`
}

// Education is a single degree entry.
type Education struct {
	School       string `json:"school,omitempty"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	Grade        string `json:"grade,omitempty"`
	StartYear    *int   `json:"start_year,omitempty"`
	EndYear      *int   `json:"end_year,omitempty"`
	IsCurrent    bool   `json:"is_current"`
}

// Publication is a paper or article credited to the profile owner.
type Publication struct {
	Name        string `json:"name,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Year        *int   `json:"year,omitempty"`
}

// Project is a listed project entry.
type Project struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Language is a spoken language with an optional proficiency label.
type Language struct {
	Name        string `json:"name,omitempty"`
	Proficiency string `json:"proficiency,omitempty"`
}

// Honor is an award or recognition entry.
type Honor struct {
	Title       string `json:"title,omitempty"`
	Issuer      string `json:"issuer,omitempty"`
	Description string `json:"description,omitempty"`
	Year        *int   `json:"year,omitempty"`
	Month       *int   `json:"month,omitempty"`
}

// Profile is a normalized professional profile produced by extraction.
// Optional numeric fields use pointers so "absent" is distinguishable from zero.
type Profile struct {
	URNID          string `json:"urn_id"`
	FetchTimestamp string `json:"fetch_timestamp,omitempty"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	FullName       string `json:"full_name,omitempty"`
	Headline       string `json:"headline,omitempty"`
	Summary        string `json:"summary,omitempty"`
	PublicID       string `json:"public_id,omitempty"`

	LocationName    string `json:"location_name,omitempty"`
	GeoLocationName string `json:"geo_location_name,omitempty"`
	Country         string `json:"country,omitempty"`
	CountryCode     string `json:"country_code,omitempty"`

	Industry string `json:"industry,omitempty"`
	Student  bool   `json:"student,omitempty"`

	CurrentTitle     string `json:"current_title,omitempty"`
	CurrentCompany   string `json:"current_company,omitempty"`
	CurrentLocation  string `json:"current_location,omitempty"`
	CurrentStartYear *int   `json:"current_start_year,omitempty"`

	Experiences     []Experience `json:"experiences,omitempty"`
	ExperienceCount int          `json:"experience_count,omitempty"`

	// TotalYearsExperience is the precomputed total tenure. Nil means the
	// value was never derived and consumers fall back to summing Experiences.
	TotalYearsExperience *float64 `json:"total_years_experience,omitempty"`

	Educations     []Education `json:"educations,omitempty"`
	EducationCount int         `json:"education_count,omitempty"`
	LatestSchool   string      `json:"latest_school,omitempty"`
	LatestDegree   string      `json:"latest_degree,omitempty"`
	LatestField    string      `json:"latest_field_of_study,omitempty"`

	Skills    []string `json:"skills,omitempty"`
	TopSkills []string `json:"top_skills,omitempty"`

	Languages    []Language    `json:"languages,omitempty"`
	Publications []Publication `json:"publications,omitempty"`
	Projects     []Project     `json:"projects,omitempty"`
	Honors       []Honor       `json:"honors,omitempty"`

	// Derived classification fields.
	EducationLevel string `json:"education_level,omitempty"`
	CareerLevel    string `json:"career_level,omitempty"`

	// Credibility is stamped by the credibility calculators.
	Credibility *Credibility `json:"credibility,omitempty"`
}

// Record converts the profile into the flat map shape shared with vector
// store metadata rows. The credibility package operates on this shape so the
// same field-resolution rules apply to fresh profiles and stored rows alike.
func (p *Profile) Record() map[string]any {
	rec := map[string]any{}

	if p.TotalYearsExperience != nil {
		rec["total_years_experience"] = *p.TotalYearsExperience
	}

	if len(p.Experiences) > 0 {
		exps := make([]any, 0, len(p.Experiences))
		for _, exp := range p.Experiences {
			m := map[string]any{}
			if exp.StartYear != nil {
				m["start_year"] = *exp.StartYear
			}
			if exp.EndYear != nil {
				m["end_year"] = *exp.EndYear
			}
			exps = append(exps, m)
		}
		rec["experiences"] = exps
	}

	if p.EducationLevel != "" {
		rec["education_level"] = p.EducationLevel
	}
	if p.LatestDegree != "" {
		rec["latest_degree"] = p.LatestDegree
	}

	if len(p.Educations) > 0 {
		edus := make([]any, 0, len(p.Educations))
		for _, edu := range p.Educations {
			edus = append(edus, map[string]any{"degree": edu.Degree})
		}
		rec["educations"] = edus
	}

	if p.Credibility != nil {
		rec["credibility"] = map[string]any{
			"total_raw_score":  p.Credibility.TotalRawScore,
			"percentile":       p.Credibility.Percentile,
			"level":            p.Credibility.Level,
			"years_experience": p.Credibility.YearsExperience,
		}
	}

	return rec
}
