// Package vectorstore embeds profiles into a Chroma collection and serves
// semantic search with metadata filtering over it.
package vectorstore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/expert-finder/internal/types"
)

// BuildProfileText renders a profile as the sectioned plain text fed to the
// embedder. Section order is stable so re-embedding an unchanged profile
// produces identical input.
func BuildProfileText(p *types.Profile) string {
	var sections []string

	var basic strings.Builder
	fmt.Fprintf(&basic, "Name: %s\n", p.FullName)
	if p.Headline != "" {
		fmt.Fprintf(&basic, "Headline: %s\n", p.Headline)
	}
	fmt.Fprintf(&basic, "Location: %s\n", p.LocationName)
	if p.Industry != "" {
		fmt.Fprintf(&basic, "Industry: %s\n", p.Industry)
	}
	sections = append(sections, basic.String())

	if p.Summary != "" {
		sections = append(sections, "Summary: "+p.Summary)
	}

	if p.CurrentTitle != "" && p.CurrentCompany != "" {
		sections = append(sections, fmt.Sprintf("Current Position: %s at %s", p.CurrentTitle, p.CurrentCompany))
	}

	if len(p.Experiences) > 0 {
		lines := make([]string, 0, len(p.Experiences))
		for _, exp := range p.Experiences {
			line := fmt.Sprintf("%s at %s", exp.Title, exp.Company)
			if exp.Description != "" {
				line += ": " + exp.Description
			}
			lines = append(lines, line)
		}
		sections = append(sections, "Experience: "+strings.Join(lines, "\n"))
	}

	if len(p.Educations) > 0 {
		lines := make([]string, 0, len(p.Educations))
		for _, edu := range p.Educations {
			lines = append(lines, fmt.Sprintf("%s in %s from %s", edu.Degree, edu.FieldOfStudy, edu.School))
		}
		sections = append(sections, "Education: "+strings.Join(lines, "\n"))
	}

	if len(p.Skills) > 0 {
		sections = append(sections, "Skills: "+strings.Join(p.Skills, ", "))
	}

	if len(p.Publications) > 0 {
		lines := make([]string, 0, len(p.Publications))
		for _, pub := range p.Publications {
			line := pub.Name
			if pub.Description != "" {
				line += ": " + pub.Description
			}
			lines = append(lines, line)
		}
		sections = append(sections, "Publications: "+strings.Join(lines, "\n"))
	}

	if len(p.Projects) > 0 {
		lines := make([]string, 0, len(p.Projects))
		for _, proj := range p.Projects {
			line := proj.Title
			if proj.Description != "" {
				line += ": " + proj.Description
			}
			lines = append(lines, line)
		}
		sections = append(sections, "Projects: "+strings.Join(lines, "\n"))
	}

	return strings.Join(sections, "\n\n")
}

// MetadataForProfile builds the flat metadata row stored alongside the
// embedding. Chroma metadata values are scalars, so years of experience is
// stored as a string; the credibility resolvers parse it back.
func MetadataForProfile(p *types.Profile) map[string]any {
	years := 0.0
	if p.TotalYearsExperience != nil {
		years = *p.TotalYearsExperience
	}

	return map[string]any{
		"urn_id":           p.URNID,
		"name":             p.FullName,
		"current_title":    p.CurrentTitle,
		"current_company":  p.CurrentCompany,
		"location":         p.LocationName,
		"industry":         p.Industry,
		"education_level":  p.EducationLevel,
		"career_level":     p.CareerLevel,
		"years_experience": strconv.FormatFloat(years, 'f', -1, 64),
	}
}
