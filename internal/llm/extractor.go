// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "QueryFilters", "ScholarProfile")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// QueryFiltersSchema returns the extraction schema for natural-language
// expert search queries. Separates the semantic search text from the
// structured metadata constraints.
func QueryFiltersSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "QueryFilters",
		Description: `You are an expert search query parser for a professional profile database.
Your task is to split a natural language request into a semantic search query and structured filters.
The search query should describe the expertise being sought (skills, domain, seniority keywords).
Only populate a filter when the request explicitly constrains that attribute.`,
		Fields: []SchemaField{
			{
				Name:        "search_query",
				Type:        "\"string\"",
				Description: "Expertise description for semantic search, with filter constraints removed",
				Required:    true,
			},
			{
				Name:        "locations",
				Type:        "[\"string\"]",
				Description: "Geographic constraints mentioned in the request",
				Required:    false,
			},
			{
				Name:        "industries",
				Type:        "[\"string\"]",
				Description: "Industry constraints (e.g., 'Computer Software', 'Biotechnology')",
				Required:    false,
			},
			{
				Name:        "companies",
				Type:        "[\"string\"]",
				Description: "Current employer constraints",
				Required:    false,
			},
			{
				Name:        "education_levels",
				Type:        "[\"string\"]",
				Description: "One or more of: PhD, Masters, Bachelors, Other",
				Required:    false,
			},
			{
				Name:        "career_levels",
				Type:        "[\"string\"]",
				Description: "One or more of: Executive, Director, Manager, Senior, Other",
				Required:    false,
			},
			{
				Name:        "min_years_experience",
				Type:        "number",
				Description: "Minimum years of experience, omit when not constrained",
				Required:    false,
			},
			{
				Name:        "max_years_experience",
				Type:        "number",
				Description: "Maximum years of experience, omit when not constrained",
				Required:    false,
			},
		},
	}
}

// ScholarProfileSchema returns the extraction schema for public author pages.
// Extracts the profile fields needed to index a researcher alongside the
// LinkedIn-derived population.
func ScholarProfileSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ScholarProfile",
		Description: `You are an expert academic profile parser. COPY TEXT VERBATIM - do not paraphrase or summarize.
Your task is to extract structured profile information from a public author or scholar page.`,
		Fields: []SchemaField{
			{
				Name:        "name",
				Type:        "\"string\"",
				Description: "Author full name",
				Required:    true,
			},
			{
				Name:        "affiliation",
				Type:        "\"string\"",
				Description: "Current institution or employer, copy verbatim",
				Required:    false,
			},
			{
				Name:        "title",
				Type:        "\"string\"",
				Description: "Academic or professional title (e.g., 'Professor of Computer Science')",
				Required:    false,
			},
			{
				Name:        "research_interests",
				Type:        "[\"string\"]",
				Description: "Listed research areas or interests, copy each verbatim",
				Required:    false,
			},
			{
				Name:        "publications",
				Type:        "[\"string\"]",
				Description: "Publication titles visible on the page, copy each verbatim",
				Required:    false,
			},
			{
				Name:        "highest_degree",
				Type:        "\"string\"",
				Description: "Highest degree mentioned (e.g., 'PhD in Physics'), empty when not stated",
				Required:    false,
			},
		},
	}
}
