package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt_QueryFilters(t *testing.T) {
	prompt := BuildExtractionPrompt(QueryFiltersSchema(), "ML engineers in Seattle with a PhD")

	assert.Contains(t, prompt, `"search_query": "string" (required)`)
	assert.Contains(t, prompt, `"locations"`)
	assert.Contains(t, prompt, `"min_years_experience"`)
	assert.Contains(t, prompt, "ML engineers in Seattle with a PhD")
	assert.Contains(t, prompt, "Return ONLY valid JSON")
}

func TestBuildExtractionPrompt_FieldOrder(t *testing.T) {
	schema := ExtractionSchema{
		Name:        "Test",
		Description: "Extract test fields.",
		Fields: []SchemaField{
			{Name: "first", Type: `"string"`, Required: true},
			{Name: "second", Type: `["string"]`},
		},
	}

	prompt := BuildExtractionPrompt(schema, "input")

	firstIdx := strings.Index(prompt, `"first"`)
	secondIdx := strings.Index(prompt, `"second"`)
	assert.Greater(t, firstIdx, -1)
	assert.Greater(t, secondIdx, firstIdx)

	// Only the last field goes without a trailing comma
	assert.Contains(t, prompt, `"first": "string" (required),`)
}

func TestBuildExtractionPrompt_DefaultType(t *testing.T) {
	schema := ExtractionSchema{
		Description: "Extract.",
		Fields:      []SchemaField{{Name: "value"}},
	}

	prompt := BuildExtractionPrompt(schema, "text")
	assert.Contains(t, prompt, `"value": string`)
}

func TestScholarProfileSchema_Fields(t *testing.T) {
	schema := ScholarProfileSchema()

	names := make([]string, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "name")
	assert.Contains(t, names, "affiliation")
	assert.Contains(t, names, "highest_degree")
}
