package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"

	"github.com/jonathan/expert-finder/internal/llm"
	"github.com/jonathan/expert-finder/internal/prompts"
	"github.com/jonathan/expert-finder/internal/types"
)

// judgeResponse represents the expected JSON response from the LLM judge.
type judgeResponse struct {
	RelevanceScore float64 `json:"relevance_score"`
	Reasoning      string  `json:"reasoning"`
}

// rerank orders candidates by LLM-judged relevance to the original request.
// Candidates that fail evaluation keep their similarity score scaled into
// the same range so they sort below successfully judged ones with a real
// match, and the original order is preserved on ties.
func (a *ExpertFinder) rerank(ctx context.Context, query string, results []types.SearchResult) []types.SearchResult {
	for i := range results {
		select {
		case <-ctx.Done():
			return results
		default:
		}

		score, err := a.judgeRelevance(ctx, query, &results[i])
		if err != nil {
			log.Printf("agent: judge failed for %s: %v", results[i].URNID, err)
			// Similarity is already 0..1; use it as the fallback score.
			results[i].RelevanceScore = results[i].Similarity
			continue
		}
		results[i].RelevanceScore = score
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
	return results
}

// judgeRelevance asks the LLM to score one candidate against the request.
func (a *ExpertFinder) judgeRelevance(ctx context.Context, query string, result *types.SearchResult) (float64, error) {
	prompt := buildJudgePrompt(query, result)

	jsonResp, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return 0, fmt.Errorf("LLM generation failed: %w", err)
	}
	jsonResp = llm.CleanJSONBlock(jsonResp)

	var response judgeResponse
	if err := json.Unmarshal([]byte(jsonResp), &response); err != nil {
		return 0, fmt.Errorf("failed to parse LLM response: %w (content: %s)", err, jsonResp)
	}

	// Clamp score to valid range
	if response.RelevanceScore < 0.0 {
		response.RelevanceScore = 0.0
	}
	if response.RelevanceScore > 1.0 {
		response.RelevanceScore = 1.0
	}
	return response.RelevanceScore, nil
}

// buildJudgePrompt constructs the prompt for judging one candidate.
func buildJudgePrompt(query string, result *types.SearchResult) string {
	education := result.EducationLevel
	if education == "" {
		education = "Not specified"
	}
	years := result.YearsExperience
	if years == "" {
		years = "Not specified"
	}

	template := prompts.MustGet("ranking.json", "judge-expert-relevance")
	return prompts.Format(template, map[string]string{
		"Query":     query,
		"Name":      result.Name,
		"Title":     result.CurrentTitle,
		"Company":   result.CurrentCompany,
		"Education": education,
		"Years":     years,
		"Summary":   result.ProfileSummary,
	})
}
