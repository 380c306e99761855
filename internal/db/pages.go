package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// DefaultPageCacheTTL is how long a fetched page stays fresh.
const DefaultPageCacheTTL = 7 * 24 * time.Hour

// FetchedPage is a cached copy of a public author page.
type FetchedPage struct {
	URL       string
	HTML      string
	FetchedAt time.Time
}

// SavePage stores a fetched page, replacing any previous copy of the URL.
func (db *DB) SavePage(ctx context.Context, url, html string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO fetched_pages (url, html, fetched_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (url) DO UPDATE SET html = $2, fetched_at = NOW()`,
		url, html,
	)
	if err != nil {
		return fmt.Errorf("failed to save page %s: %w", url, err)
	}
	return nil
}

// GetFreshPage retrieves a cached page when it is younger than ttl.
// Returns nil without an error when the page is missing or stale.
func (db *DB) GetFreshPage(ctx context.Context, url string, ttl time.Duration) (*FetchedPage, error) {
	var page FetchedPage
	err := db.pool.QueryRow(ctx,
		`SELECT url, html, fetched_at FROM fetched_pages
		 WHERE url = $1 AND fetched_at > NOW() - make_interval(secs => $2)`,
		url, ttl.Seconds(),
	).Scan(&page.URL, &page.HTML, &page.FetchedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page %s: %w", url, err)
	}
	return &page, nil
}
