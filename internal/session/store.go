// Package session owns the single source of truth for one weather session:
// current conditions, forecast, unit preference, search history and the
// async request lifecycle. All mutation goes through the Store; everything
// else receives copies.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ozcanmengullu/weather-dashboard/internal/weather"
)

var (
	// ErrSuperseded is returned by a fetch whose result was discarded
	// because a newer fetch was issued while it was in flight.
	ErrSuperseded = errors.New("fetch superseded by a newer request")

	// ErrHistoryItemNotFound is returned when a history id does not exist.
	ErrHistoryItemNotFound = errors.New("history item not found")
)

// ErrorInfo is the stored, user-facing form of a classified failure.
type ErrorInfo struct {
	Kind    weather.Kind `json:"kind"`
	Message string       `json:"message"`
}

// State is the session aggregate. CurrentWeather, Forecast, Loading and
// LastError are transient; History and Unit are persisted across sessions.
type State struct {
	CurrentWeather *weather.CurrentConditions `json:"currentWeather,omitempty"`
	Forecast       []weather.DailyForecast    `json:"forecast"`
	History        []SearchHistoryItem        `json:"history"`
	Loading        bool                       `json:"loading"`
	LastError      *ErrorInfo                 `json:"error,omitempty"`
	Unit           weather.Unit               `json:"unit"`
}

// PersistedState is the durable subset of State.
type PersistedState struct {
	History []SearchHistoryItem `json:"history"`
	Unit    weather.Unit        `json:"unit"`
}

// Fetcher retrieves current conditions and forecast for a city.
type Fetcher interface {
	FetchBundle(ctx context.Context, city string, unit weather.Unit) (*weather.Bundle, error)
}

// Persister stores and restores the durable subset of the session state.
type Persister interface {
	Save(ctx context.Context, state PersistedState) error
	Load(ctx context.Context) (PersistedState, error)
}

// SearchRecorder logs successful searches to a server-side search log.
// Implementations may be nil-safe no-ops; a nil recorder disables logging.
type SearchRecorder interface {
	RecordSearch(ctx context.Context, city, country string, unit weather.Unit) error
}

// Store owns the session aggregate. While a fetch is loading, new operations
// are still accepted; each fetch carries a sequence number assigned at issue
// time and a result that settles after a newer fetch was issued is discarded.
type Store struct {
	fetcher   Fetcher
	persister Persister
	recorder  SearchRecorder
	log       *slog.Logger
	now       func() time.Time

	mu       sync.Mutex
	state    State
	fetchSeq uint64
}

// New constructs a Store, rehydrating the persisted {history, unit} subset
// before any fetch occurs. Each session starts with no active weather shown.
func New(ctx context.Context, fetcher Fetcher, persister Persister, recorder SearchRecorder, log *slog.Logger) (*Store, error) {
	s := &Store{
		fetcher:   fetcher,
		persister: persister,
		recorder:  recorder,
		log:       log,
		now:       time.Now,
		state: State{
			Forecast: []weather.DailyForecast{},
			History:  []SearchHistoryItem{},
			Unit:     weather.Metric,
		},
	}

	persisted, err := persister.Load(ctx)
	if err != nil {
		return nil, err
	}
	if persisted.Unit.Valid() {
		s.state.Unit = persisted.Unit
	}
	if len(persisted.History) > 0 {
		s.state.History = persisted.History
	}
	return s, nil
}

// Snapshot returns a deep copy of the current session state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyStateLocked()
}

func (s *Store) copyStateLocked() State {
	out := s.state
	if s.state.CurrentWeather != nil {
		cw := *s.state.CurrentWeather
		out.CurrentWeather = &cw
	}
	if s.state.LastError != nil {
		le := *s.state.LastError
		out.LastError = &le
	}
	out.Forecast = append([]weather.DailyForecast(nil), s.state.Forecast...)
	out.History = append([]SearchHistoryItem(nil), s.state.History...)
	return out
}

// FetchForecast looks up current conditions and the 5-day forecast for city
// under the session's current unit preference and commits the result. On
// failure the classified message is stored and prior weather data is kept.
func (s *Store) FetchForecast(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)

	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.state.Loading = true
	s.state.LastError = nil
	unit := s.state.Unit
	s.mu.Unlock()

	bundle, err := s.fetcher.FetchBundle(ctx, city, unit)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.fetchSeq {
		s.log.Debug("discarding superseded fetch result", "city", city, "seq", seq)
		return ErrSuperseded
	}

	s.state.Loading = false
	if err != nil {
		s.state.LastError = errorInfo(err)
		return err
	}

	s.state.CurrentWeather = &bundle.Current
	s.state.Forecast = bundle.Forecast
	s.state.LastError = nil
	s.addToHistoryLocked(ctx, bundle.Current.Name, bundle.Current.Country)

	if s.recorder != nil {
		if rerr := s.recorder.RecordSearch(ctx, bundle.Current.Name, bundle.Current.Country, unit); rerr != nil {
			s.log.Warn("search log write failed", "city", bundle.Current.Name, "err", rerr)
		}
	}
	return nil
}

// ToggleUnit flips the unit preference. If a city is currently loaded it is
// re-fetched under the new unit: stored numeric fields are not unit-tagged,
// so stale values must be replaced, never converted in place.
func (s *Store) ToggleUnit(ctx context.Context) error {
	s.mu.Lock()
	s.state.Unit = s.state.Unit.Toggle()
	city := ""
	if s.state.CurrentWeather != nil {
		city = s.state.CurrentWeather.Name
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	if city == "" {
		return nil
	}
	return s.FetchForecast(ctx, city)
}

// SearchFromHistory re-runs the query for the history entry with the given id.
func (s *Store) SearchFromHistory(ctx context.Context, id string) error {
	s.mu.Lock()
	city := ""
	for _, h := range s.state.History {
		if h.ID == id {
			city = h.CityName
			break
		}
	}
	s.mu.Unlock()

	if city == "" {
		return ErrHistoryItemNotFound
	}
	return s.FetchForecast(ctx, city)
}

// ClearHistory empties the search history unconditionally.
func (s *Store) ClearHistory(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.History = []SearchHistoryItem{}
	s.persistLocked(ctx)
}

// ClearError discards the stored error, if any.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastError = nil
}

// SetLoading sets the loading flag directly, with no derived side effects.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = loading
}

// ClearWeatherData discards the current conditions, forecast and error.
// History and unit preference are untouched.
func (s *Store) ClearWeatherData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentWeather = nil
	s.state.Forecast = []weather.DailyForecast{}
	s.state.LastError = nil
}

// Unit returns the active unit preference.
func (s *Store) Unit() weather.Unit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Unit
}

func (s *Store) addToHistoryLocked(ctx context.Context, city, country string) {
	s.state.History = pushHistory(s.state.History, newHistoryItem(city, country, s.now()))
	s.persistLocked(ctx)
}

// persistLocked writes the durable subset as a full overwrite. Persistence
// failures are logged, never surfaced: the session keeps working in memory.
func (s *Store) persistLocked(ctx context.Context) {
	subset := PersistedState{
		History: append([]SearchHistoryItem(nil), s.state.History...),
		Unit:    s.state.Unit,
	}
	if err := s.persister.Save(ctx, subset); err != nil {
		s.log.Warn("persisting session state failed", "err", err)
	}
}

func errorInfo(err error) *ErrorInfo {
	var werr *weather.Error
	if errors.As(err, &werr) {
		return &ErrorInfo{Kind: werr.Kind, Message: werr.Message()}
	}
	werr = &weather.Error{Kind: weather.KindUnexpected}
	return &ErrorInfo{Kind: weather.KindUnexpected, Message: werr.Message()}
}
