package extraction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/expert-finder/internal/llm"
	"github.com/jonathan/expert-finder/internal/types"
)

// scholarFields is the expected JSON response for author page extraction.
type scholarFields struct {
	Name              string   `json:"name"`
	Affiliation       string   `json:"affiliation"`
	Title             string   `json:"title"`
	ResearchInterests []string `json:"research_interests"`
	Publications      []string `json:"publications"`
	HighestDegree     string   `json:"highest_degree"`
}

// ScholarProfile extracts a profile from the text of a public author page.
// The resulting profile carries a synthetic urn_id derived from the source
// URL so repeated fetches upsert the same record.
func ScholarProfile(ctx context.Context, client llm.Client, pageText, sourceURL string) (*types.Profile, error) {
	if strings.TrimSpace(pageText) == "" {
		return nil, fmt.Errorf("page text is empty")
	}

	prompt := llm.BuildExtractionPrompt(llm.ScholarProfileSchema(), pageText)

	jsonResp, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}
	jsonResp = llm.CleanJSONBlock(jsonResp)

	var fields scholarFields
	if err := json.Unmarshal([]byte(jsonResp), &fields); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w (content: %s)", err, jsonResp)
	}
	if strings.TrimSpace(fields.Name) == "" {
		return nil, fmt.Errorf("no author name found on page")
	}

	return profileFromScholar(fields, sourceURL), nil
}

// profileFromScholar maps extracted author fields onto the shared profile
// shape used by the LinkedIn pipeline.
func profileFromScholar(fields scholarFields, sourceURL string) *types.Profile {
	profile := &types.Profile{
		URNID:          ScholarURN(sourceURL),
		FullName:       strings.TrimSpace(fields.Name),
		Headline:       strings.TrimSpace(fields.Title),
		CurrentTitle:   strings.TrimSpace(fields.Title),
		CurrentCompany: strings.TrimSpace(fields.Affiliation),
		Industry:       "Research",
		Skills:         cleanList(fields.ResearchInterests),
	}

	if first, last, ok := splitName(profile.FullName); ok {
		profile.FirstName, profile.LastName = first, last
	}

	if len(fields.ResearchInterests) > 0 {
		profile.Summary = "Research interests: " + strings.Join(cleanList(fields.ResearchInterests), ", ")
	}

	for _, title := range cleanList(fields.Publications) {
		profile.Publications = append(profile.Publications, types.Publication{Name: title})
	}

	if degree := strings.TrimSpace(fields.HighestDegree); degree != "" {
		profile.LatestDegree = degree
		profile.Educations = []types.Education{{Degree: degree}}
		profile.EducationCount = 1
	}
	profile.EducationLevel = classifyEducationLevel(profile.Educations)
	profile.CareerLevel = classifyCareerLevel(profile.CurrentTitle)

	return profile
}

// ScholarURN derives a stable synthetic urn_id from an author page URL.
func ScholarURN(sourceURL string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(sourceURL)))
	return "scholar-" + hex.EncodeToString(sum[:8])
}

func splitName(full string) (first, last string, ok bool) {
	parts := strings.Fields(full)
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], parts[len(parts)-1], true
}

func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
