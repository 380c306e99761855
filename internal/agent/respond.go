package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/expert-finder/internal/llm"
	"github.com/jonathan/expert-finder/internal/prompts"
	"github.com/jonathan/expert-finder/internal/types"
)

// GenerateResponse synthesizes a natural language recommendation from the
// ranked results.
func (a *ExpertFinder) GenerateResponse(ctx context.Context, query string, results []types.SearchResult) (string, error) {
	if len(results) == 0 {
		return "No matching experts were found for this request.", nil
	}

	template := prompts.MustGet("response.json", "expert-summary")
	prompt := prompts.Format(template, map[string]string{
		"Query":   query,
		"Experts": formatExperts(results),
	})

	response, err := a.client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}
	return strings.TrimSpace(response), nil
}

// formatExperts renders results as the candidate block fed to the LLM.
func formatExperts(results []types.SearchResult) string {
	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "%d. %s", r.Rank, r.Name)
		if r.CurrentTitle != "" {
			fmt.Fprintf(&sb, ", %s", r.CurrentTitle)
		}
		if r.CurrentCompany != "" {
			fmt.Fprintf(&sb, " at %s", r.CurrentCompany)
		}
		sb.WriteString("\n")
		if r.Location != "" {
			fmt.Fprintf(&sb, "   Location: %s\n", r.Location)
		}
		if r.EducationLevel != "" {
			fmt.Fprintf(&sb, "   Education: %s\n", r.EducationLevel)
		}
		if r.YearsExperience != "" {
			fmt.Fprintf(&sb, "   Years of experience: %s\n", r.YearsExperience)
		}
		if r.Credibility != nil {
			fmt.Fprintf(&sb, "   Credibility: level %d (%.1f percentile)\n",
				r.Credibility.Level, r.Credibility.Percentile)
		}
		if r.ProfileSummary != "" {
			fmt.Fprintf(&sb, "   Summary: %s\n", r.ProfileSummary)
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}
