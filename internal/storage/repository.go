package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ozcanmengullu/weather-dashboard/internal/weather"
)

// Querier abstracts the subset of pgxpool.Pool used by Repository.
// This allows injection of a mock in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// SearchRecord is one row of the search log.
type SearchRecord struct {
	City          string    `json:"city"`
	Country       string    `json:"country"`
	Unit          string    `json:"unit"`
	SearchCount   int       `json:"searchCount"`
	FirstSearched time.Time `json:"firstSearched"`
	LastSearched  time.Time `json:"lastSearched"`
}

// Repository provides database access for the search log.
type Repository struct {
	q Querier
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewRepositoryWithQuerier constructs a Repository with a custom Querier (for tests).
func NewRepositoryWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

// RecordSearch upserts a successful lookup. Repeated searches for the same
// (city, country) pair bump the count and the last-searched timestamp; the
// pair is stored lowercased so dedup matches the session history's
// case-insensitive rule.
func (r *Repository) RecordSearch(ctx context.Context, city, country string, unit weather.Unit) error {
	const q = `
		INSERT INTO search_log (city, country, unit)
		VALUES ($1, $2, $3)
		ON CONFLICT (city, country) DO UPDATE
		SET unit          = EXCLUDED.unit,
		    search_count  = search_log.search_count + 1,
		    last_searched = NOW()
	`

	if _, err := r.q.Exec(ctx, q, strings.ToLower(city), strings.ToLower(country), string(unit)); err != nil {
		return fmt.Errorf("recording search for city %s: %w", city, err)
	}

	return nil
}

// RecentSearches returns up to limit log rows, most recently searched first.
func (r *Repository) RecentSearches(ctx context.Context, limit int) ([]SearchRecord, error) {
	const q = `
		SELECT city, country, unit, search_count, first_searched, last_searched
		FROM search_log
		ORDER BY last_searched DESC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent searches: %w", err)
	}
	defer rows.Close()

	var records []SearchRecord
	for rows.Next() {
		var rec SearchRecord
		if err := rows.Scan(&rec.City, &rec.Country, &rec.Unit, &rec.SearchCount, &rec.FirstSearched, &rec.LastSearched); err != nil {
			return nil, fmt.Errorf("scanning search record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search records: %w", err)
	}

	return records, nil
}
