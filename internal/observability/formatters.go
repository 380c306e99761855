// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/expert-finder/internal/credibility"
	"github.com/jonathan/expert-finder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintQueryPlan outputs the parsed search query and the filters that will
// be applied to retrieval.
func (p *Printer) PrintQueryPlan(searchQuery string, filters *types.SearchFilters) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Query: %s\n", searchQuery))

	if filters.IsZero() {
		sb.WriteString("Filters: none")
		p.printBox("SEARCH PLAN", sb.String())
		return
	}

	sb.WriteString("Filters:\n")
	appendFilter := func(name string, values []string) {
		if len(values) > 0 {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", name, strings.Join(values, ", ")))
		}
	}
	appendFilter("Location", filters.Location)
	appendFilter("Industry", filters.Industry)
	appendFilter("Company", filters.CurrentCompany)
	appendFilter("Education", filters.EducationLevel)
	appendFilter("Career level", filters.CareerLevel)
	if filters.YearsExperience != nil {
		if filters.YearsExperience.GTE != nil {
			sb.WriteString(fmt.Sprintf("  Years: >= %.0f\n", *filters.YearsExperience.GTE))
		}
		if filters.YearsExperience.LTE != nil {
			sb.WriteString(fmt.Sprintf("  Years: <= %.0f\n", *filters.YearsExperience.LTE))
		}
	}

	p.printBox("SEARCH PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSearchResults outputs the top ranked matches with scores and
// credibility levels.
func (p *Printer) PrintSearchResults(results []types.SearchResult) {
	if len(results) == 0 {
		p.printBox("SEARCH RESULTS", "No matches found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total matches: %d\n\n", len(results)))

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := results[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", r.Rank, r.Name))
		if r.CurrentTitle != "" {
			title := r.CurrentTitle
			if r.CurrentCompany != "" {
				title += " @ " + r.CurrentCompany
			}
			sb.WriteString(fmt.Sprintf("    %s\n", title))
		}
		sb.WriteString(fmt.Sprintf("    Similarity: %.2f", r.Similarity))
		if r.RelevanceScore > 0 {
			sb.WriteString(fmt.Sprintf(" (LLM: %.2f)", r.RelevanceScore))
		}
		sb.WriteString("\n")
		if r.Credibility != nil {
			sb.WriteString(fmt.Sprintf("    Credibility: level %d, %.1f percentile\n",
				r.Credibility.Level, r.Credibility.Percentile))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(results)-maxItemsToShow))
	}

	p.printBox("SEARCH RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCredibility outputs one profile's credibility breakdown.
func (p *Printer) PrintCredibility(name string, cred *types.Credibility) {
	if cred == nil {
		return
	}

	var sb strings.Builder
	if name != "" {
		sb.WriteString(fmt.Sprintf("Profile:    %s\n", name))
	}
	sb.WriteString(fmt.Sprintf("Level:      %d / 5\n", cred.Level))
	sb.WriteString(fmt.Sprintf("Percentile: %.1f\n", cred.Percentile))
	sb.WriteString(fmt.Sprintf("Years:      %.1f\n", cred.YearsExperience))
	if len(cred.RawScores) > 0 {
		sb.WriteString("Raw scores:\n")
		for _, metric := range []string{"experience", "education"} {
			if score, ok := cred.RawScores[metric]; ok {
				sb.WriteString(fmt.Sprintf("  %s: %.1f\n", metric, score))
			}
		}
	}

	p.printBox("CREDIBILITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStats outputs the population snapshot backing percentile estimates.
func (p *Printer) PrintStats(snap credibility.Snapshot) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total profiles: %d\n", snap.TotalProfiles))
	sb.WriteString(fmt.Sprintf("Max years:      %.1f\n\n", snap.MaxYears))

	sb.WriteString("Experience distribution:\n")
	for _, bracket := range []credibility.Bracket{
		credibility.Bracket0to5, credibility.Bracket5to10,
		credibility.Bracket10to15, credibility.Bracket15Plus,
	} {
		sb.WriteString(fmt.Sprintf("  %-6s %d\n", bracket, snap.ExperienceDistribution[bracket]))
	}

	sb.WriteString("\nEducation distribution:\n")
	for _, cat := range []credibility.Category{
		credibility.CategoryPhD, credibility.CategoryMaster,
		credibility.CategoryBachelor, credibility.CategoryOther,
	} {
		sb.WriteString(fmt.Sprintf("  %-9s %d\n", cat, snap.EducationDistribution[cat]))
	}

	p.printBox("POPULATION STATS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProcessingSummary outputs counts after a processing or vectorize run.
func (p *Printer) PrintProcessingSummary(kind string, total, succeeded int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:       %s\n", kind))
	sb.WriteString(fmt.Sprintf("Total:     %d\n", total))
	sb.WriteString(fmt.Sprintf("Succeeded: %d\n", succeeded))
	if failed := total - succeeded; failed > 0 {
		sb.WriteString(fmt.Sprintf("Failed:    %d\n", failed))
	}

	p.printBox("RUN SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}
