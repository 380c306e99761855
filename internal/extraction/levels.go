package extraction

import (
	"strings"

	"github.com/jonathan/expert-finder/internal/types"
)

// Education level labels attached to profiles for filtering. These are the
// display-facing values; the credibility package maps them onto its coarse
// categories by substring match.
const (
	LevelPhD       = "PhD"
	LevelMasters   = "Masters"
	LevelBachelors = "Bachelors"
	LevelOther     = "Other"
)

// Career level labels derived from the current title.
const (
	CareerExecutive = "Executive"
	CareerDirector  = "Director"
	CareerManager   = "Manager"
	CareerSenior    = "Senior"
	CareerOther     = "Other"
)

var executiveTerms = []string{"ceo", "cto", "cfo", "coo", "chief", "president", "founder", "owner", "partner"}
var directorTerms = []string{"director", "head", "vp", "vice president"}

// classifyEducationLevel assigns the highest degree tier found anywhere in
// the educations list. An empty list yields an empty level rather than
// "Other", so profiles without education data stay out of the education
// distribution.
func classifyEducationLevel(educations []types.Education) string {
	if len(educations) == 0 {
		return ""
	}

	hasPhD, hasMasters, hasBachelors := false, false, false
	for _, edu := range educations {
		degree := strings.ToLower(edu.Degree)
		switch {
		case strings.Contains(degree, "ph") || strings.Contains(degree, "doctor"):
			hasPhD = true
		case strings.Contains(degree, "master") || degree == "ms" || strings.Contains(degree, "mba"):
			hasMasters = true
		case strings.Contains(degree, "bachelor") || degree == "bs" || degree == "ba":
			hasBachelors = true
		}
	}

	switch {
	case hasPhD:
		return LevelPhD
	case hasMasters:
		return LevelMasters
	case hasBachelors:
		return LevelBachelors
	default:
		return LevelOther
	}
}

// classifyCareerLevel buckets the current title by seniority keywords,
// checked from most to least senior. An empty title yields an empty level.
func classifyCareerLevel(currentTitle string) string {
	if currentTitle == "" {
		return ""
	}
	title := strings.ToLower(currentTitle)

	containsAny := func(terms []string) bool {
		for _, term := range terms {
			if strings.Contains(title, term) {
				return true
			}
		}
		return false
	}

	switch {
	case containsAny(executiveTerms):
		return CareerExecutive
	case containsAny(directorTerms):
		return CareerDirector
	case strings.Contains(title, "manager") || strings.Contains(title, "lead"):
		return CareerManager
	case strings.Contains(title, "senior") || strings.Contains(title, "sr") || strings.Contains(title, "principal"):
		return CareerSenior
	default:
		return CareerOther
	}
}
