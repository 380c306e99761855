// Package agent implements the expert finder: it parses natural language
// requests, retrieves candidate profiles from the vector store, reranks them
// with an LLM judge, and synthesizes a recommendation.
package agent

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/expert-finder/internal/credibility"
	"github.com/jonathan/expert-finder/internal/llm"
	"github.com/jonathan/expert-finder/internal/types"
	"github.com/jonathan/expert-finder/internal/vectorstore"
)

// Default retrieval sizes. InitialK candidates are retrieved and judged;
// FinalK survive reranking.
const (
	DefaultFinalK   = 5
	DefaultInitialK = 20
)

// ExpertFinder orchestrates query parsing, retrieval, credibility scoring
// and reranking.
type ExpertFinder struct {
	store    *vectorstore.Store
	client   llm.Client
	cred     *credibility.OnDemandCalculator
	initialK int
	finalK   int
	verbose  bool
}

// Option configures an ExpertFinder.
type Option func(*ExpertFinder)

// WithK sets the retrieval sizes. Zero values keep the defaults.
func WithK(initialK, finalK int) Option {
	return func(a *ExpertFinder) {
		if initialK > 0 {
			a.initialK = initialK
		}
		if finalK > 0 {
			a.finalK = finalK
		}
	}
}

// WithVerbose enables debug logging of intermediate steps.
func WithVerbose(verbose bool) Option {
	return func(a *ExpertFinder) { a.verbose = verbose }
}

// New creates an ExpertFinder. The credibility calculator may be nil, in
// which case results carry no credibility annotation.
func New(store *vectorstore.Store, client llm.Client, cred *credibility.OnDemandCalculator, opts ...Option) *ExpertFinder {
	a := &ExpertFinder{
		store:    store,
		client:   client,
		cred:     cred,
		initialK: DefaultInitialK,
		finalK:   DefaultFinalK,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.initialK < a.finalK {
		a.initialK = a.finalK
	}
	return a
}

// FindExperts answers a natural language request with ranked expert matches.
func (a *ExpertFinder) FindExperts(ctx context.Context, query string) ([]types.SearchResult, error) {
	searchQuery, filters, err := a.ParseQuery(ctx, query)
	if err != nil {
		// Fall back to the raw query with no filters rather than failing
		// the whole search.
		log.Printf("agent: query parsing failed, using raw query: %v", err)
		searchQuery, filters = query, nil
	}
	if a.verbose {
		log.Printf("agent: search query %q, filters %+v", searchQuery, filters)
	}

	results, err := a.store.Search(ctx, searchQuery, filters, a.initialK)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	a.annotateCredibility(ctx, results)

	results = a.rerank(ctx, query, results)
	if len(results) > a.finalK {
		results = results[:a.finalK]
	}
	for i := range results {
		results[i].Rank = i + 1
	}
	return results, nil
}

// annotateCredibility stamps each result with a credibility assessment
// computed against the stored population.
func (a *ExpertFinder) annotateCredibility(ctx context.Context, results []types.SearchResult) {
	if a.cred == nil {
		return
	}
	a.cred.RefreshStatsIfNeeded(ctx, false)
	for i := range results {
		if results[i].Metadata == nil {
			continue
		}
		cred := a.cred.Credibility(results[i].Metadata)
		results[i].Credibility = &cred
	}
}
