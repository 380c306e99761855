// Package fetch - cached.go provides URL fetching with database-backed caching.
package fetch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/expert-finder/internal/db"
)

// CachedFetcher wraps URL fetching with database-backed caching. Author
// pages change rarely, so repeated pipeline runs reuse the stored copy.
type CachedFetcher struct {
	db        *db.DB
	options   *Options
	cacheTTL  time.Duration
	skipCache bool // For testing or forcing fresh fetches
}

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL  time.Duration
	SkipCache bool
	Options   *Options
}

// DefaultCachedFetcherConfig returns sensible defaults.
func DefaultCachedFetcherConfig() *CachedFetcherConfig {
	return &CachedFetcherConfig{
		CacheTTL:  db.DefaultPageCacheTTL,
		SkipCache: false,
		Options:   DefaultOptions(),
	}
}

// NewCachedFetcher creates a new cached fetcher.
func NewCachedFetcher(database *db.DB, config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = DefaultCachedFetcherConfig()
	}
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = db.DefaultPageCacheTTL
	}
	return &CachedFetcher{
		db:        database,
		options:   config.Options,
		cacheTTL:  config.CacheTTL,
		skipCache: config.SkipCache,
	}
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool // Whether this result came from cache
}

// Fetch retrieves a URL, using the cache when a fresh copy exists.
// Fresh content is extracted with platform-aware selectors and stored for
// later runs.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	platform := DetectPlatform(urlStr)

	if !f.skipCache && f.db != nil {
		cached, err := f.db.GetFreshPage(ctx, urlStr, f.cacheTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to check cache: %w", err)
		}
		if cached != nil {
			text, _ := ExtractMainText(cached.HTML,
				PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
			return &CachedResult{
				Result: &Result{
					URL:  cached.URL,
					HTML: cached.HTML,
					Text: text,
				},
				FromCache: true,
			}, nil
		}
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	text, _ := ExtractMainText(result.HTML,
		PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
	result.Text = text

	if f.db != nil {
		if err := f.db.SavePage(ctx, urlStr, result.HTML); err != nil {
			// The fetch succeeded; a cache write failure is not fatal.
			log.Printf("fetch: failed to cache %s: %v", urlStr, err)
		}
	}

	return &CachedResult{Result: result, FromCache: false}, nil
}

// FetchMultiple fetches multiple URLs with caching.
// Returns results in the same order as input URLs. Failed fetches are nil in the result slice.
func (f *CachedFetcher) FetchMultiple(ctx context.Context, urls []string) ([]*CachedResult, []error) {
	results := make([]*CachedResult, len(urls))
	errors := make([]error, len(urls))

	for i, url := range urls {
		result, err := f.Fetch(ctx, url)
		if err != nil {
			errors[i] = err
		} else {
			results[i] = result
		}
	}

	return results, errors
}
