package api

import (
	"context"

	"github.com/ozcanmengullu/weather-dashboard/internal/session"
	"github.com/ozcanmengullu/weather-dashboard/internal/storage"
)

// SessionStore defines the session operations needed by handlers.
type SessionStore interface {
	FetchForecast(ctx context.Context, city string) error
	ToggleUnit(ctx context.Context) error
	SearchFromHistory(ctx context.Context, id string) error
	ClearHistory(ctx context.Context)
	ClearError()
	ClearWeatherData()
	Snapshot() session.State
}

// SearchLog defines the search-log reads needed by handlers.
type SearchLog interface {
	RecentSearches(ctx context.Context, limit int) ([]storage.SearchRecord, error)
}
