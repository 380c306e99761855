package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/expert-finder/internal/llm"
	"github.com/jonathan/expert-finder/internal/types"
)

// scriptedClient returns a different response per call.
type scriptedClient struct {
	responses []string
	call      int
}

func (c *scriptedClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return c.next(), nil
}

func (c *scriptedClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return c.next(), nil
}

func (c *scriptedClient) next() string {
	if c.call >= len(c.responses) {
		return ""
	}
	resp := c.responses[c.call]
	c.call++
	return resp
}

func (c *scriptedClient) GetModel(_ llm.ModelTier) string { return "stub" }
func (c *scriptedClient) Close() error                    { return nil }

func sampleResults() []types.SearchResult {
	return []types.SearchResult{
		{Rank: 1, URNID: "a", Name: "First", Similarity: 0.9},
		{Rank: 2, URNID: "b", Name: "Second", Similarity: 0.8},
		{Rank: 3, URNID: "c", Name: "Third", Similarity: 0.7},
	}
}

func TestRerank_ReordersByJudgeScore(t *testing.T) {
	client := &scriptedClient{responses: []string{
		`{"relevance_score": 0.2, "reasoning": "different field"}`,
		`{"relevance_score": 0.95, "reasoning": "strong match"}`,
		`{"relevance_score": 0.6, "reasoning": "partial match"}`,
	}}
	finder := New(nil, client, nil)

	results := finder.rerank(context.Background(), "query", sampleResults())

	require.Len(t, results, 3)
	assert.Equal(t, "b", results[0].URNID)
	assert.Equal(t, "c", results[1].URNID)
	assert.Equal(t, "a", results[2].URNID)
	assert.Equal(t, 0.95, results[0].RelevanceScore)
}

func TestRerank_FailedJudgeFallsBackToSimilarity(t *testing.T) {
	client := &scriptedClient{responses: []string{
		`not json`,
		`{"relevance_score": 0.5}`,
		`not json either`,
	}}
	finder := New(nil, client, nil)

	results := finder.rerank(context.Background(), "query", sampleResults())

	// First and third keep similarity (0.9, 0.7); second gets 0.5.
	assert.Equal(t, "a", results[0].URNID)
	assert.Equal(t, "c", results[1].URNID)
	assert.Equal(t, "b", results[2].URNID)
}

func TestRerank_ClampsOutOfRangeScores(t *testing.T) {
	client := &scriptedClient{responses: []string{
		`{"relevance_score": 1.7}`,
		`{"relevance_score": -0.3}`,
		`{"relevance_score": 0.4}`,
	}}
	finder := New(nil, client, nil)

	results := finder.rerank(context.Background(), "query", sampleResults())

	assert.Equal(t, 1.0, results[0].RelevanceScore)
	assert.Equal(t, 0.0, results[2].RelevanceScore)
}

func TestRerank_CancelledContextStopsJudging(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &scriptedClient{responses: []string{`{"relevance_score": 0.9}`}}
	finder := New(nil, client, nil)

	results := finder.rerank(ctx, "query", sampleResults())

	// No judging happened; order unchanged.
	assert.Equal(t, 0, client.call)
	assert.Equal(t, "a", results[0].URNID)
}

func TestBuildJudgePrompt(t *testing.T) {
	result := &types.SearchResult{
		Name:           "Ada Lovelace",
		CurrentTitle:   "Research Scientist",
		CurrentCompany: "Analytical Engines",
		EducationLevel: "PhD",
		ProfileSummary: "Pioneer of computing.",
	}

	prompt := buildJudgePrompt("computing historians", result)

	assert.Contains(t, prompt, "computing historians")
	assert.Contains(t, prompt, "Ada Lovelace")
	assert.Contains(t, prompt, "Research Scientist at Analytical Engines")
	assert.Contains(t, prompt, "PhD")
	// Missing years falls back to a placeholder
	assert.Contains(t, prompt, "Not specified")
}
