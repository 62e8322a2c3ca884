package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ozcanmengullu/weather-dashboard/internal/session"
	"github.com/ozcanmengullu/weather-dashboard/internal/weather"
)

var validate = validator.New()

// Handlers holds the dependencies for all HTTP handlers. searchLog is nil
// when no database is configured.
type Handlers struct {
	store     SessionStore
	searchLog SearchLog
	log       *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(store SessionStore, searchLog SearchLog, log *slog.Logger) *Handlers {
	return &Handlers{
		store:     store,
		searchLog: searchLog,
		log:       log,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the classified error with its matching HTTP status.
func writeError(w http.ResponseWriter, err error) {
	var werr *weather.Error
	if !errors.As(err, &werr) {
		werr = &weather.Error{Kind: weather.KindUnexpected}
	}

	status := http.StatusInternalServerError
	switch werr.Kind {
	case weather.KindNotFound:
		status = http.StatusNotFound
	case weather.KindUnauthorized:
		status = http.StatusUnauthorized
	case weather.KindRateLimited:
		status = http.StatusTooManyRequests
	case weather.KindUpstream:
		status = http.StatusBadGateway
	case weather.KindNetwork:
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"kind":    string(werr.Kind),
			"message": werr.Message(),
		},
	})
}

// GetWeather handles GET /api/v1/weather/{city}.
// Runs a fresh lookup through the session store and returns the resulting
// snapshot, so the response always reflects committed state.
func (h *Handlers) GetWeather(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	if err := validate.Var(city, "required,min=2,max=50"); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "city must be between 2 and 50 characters"})
		return
	}

	if err := h.store.FetchForecast(r.Context(), city); err != nil {
		if errors.Is(err, session.ErrSuperseded) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "request superseded by a newer search"})
			return
		}
		h.log.Warn("weather lookup failed", "city", city, "err", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

// GetState handles GET /api/v1/state: the read-only snapshot for the UI.
func (h *Handlers) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

// ToggleUnit handles POST /api/v1/unit/toggle.
// Flips the unit preference; if a city is loaded it is re-fetched under the
// new unit so numeric fields are replaced, never converted in place.
func (h *Handlers) ToggleUnit(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ToggleUnit(r.Context()); err != nil && !errors.Is(err, session.ErrSuperseded) {
		h.log.Warn("re-fetch after unit toggle failed", "err", err)
		// The toggle itself succeeded; surface the snapshot with its stored error.
	}
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

// GetHistory handles GET /api/v1/history.
func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"history": h.store.Snapshot().History})
}

// ClearHistory handles DELETE /api/v1/history.
func (h *Handlers) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.store.ClearHistory(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"history": []session.SearchHistoryItem{}})
}

// SearchFromHistory handles POST /api/v1/history/{id}/search.
func (h *Handlers) SearchFromHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.SearchFromHistory(r.Context(), id); err != nil {
		if errors.Is(err, session.ErrHistoryItemNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "history item not found"})
			return
		}
		if errors.Is(err, session.ErrSuperseded) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "request superseded by a newer search"})
			return
		}
		h.log.Warn("history search failed", "id", id, "err", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

// ClearError handles DELETE /api/v1/error.
func (h *Handlers) ClearError(w http.ResponseWriter, r *http.Request) {
	h.store.ClearError()
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

// ClearWeather handles DELETE /api/v1/weather.
func (h *Handlers) ClearWeather(w http.ResponseWriter, r *http.Request) {
	h.store.ClearWeatherData()
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

// RecentSearches handles GET /api/v1/searches/recent.
// Returns 404 when the search log is disabled (no database configured).
func (h *Handlers) RecentSearches(w http.ResponseWriter, r *http.Request) {
	if h.searchLog == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "search log is not enabled"})
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	records, err := h.searchLog.RecentSearches(r.Context(), limit)
	if err != nil {
		h.log.Error("recent searches query failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"searches": records})
}

// Pinger reports connectivity of an external collaborator for the health
// check. A nil db Pinger means no database is configured.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlerFunc returns an http.HandlerFunc that checks redis (and the
// database when configured); returns 200 if all ok, 503 otherwise.
func HealthHandlerFunc(redis, db Pinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		result := map[string]string{"status": "ok", "redis": "ok"}

		if err := redis.Ping(ctx); err != nil {
			log.Error("health check: redis ping failed", "err", err)
			result["redis"] = "error"
			status = http.StatusServiceUnavailable
		}

		if db != nil {
			result["db"] = "ok"
			if err := db.Ping(ctx); err != nil {
				log.Error("health check: db ping failed", "err", err)
				result["db"] = "error"
				status = http.StatusServiceUnavailable
			}
		}

		if status != http.StatusOK {
			result["status"] = "degraded"
		}
		writeJSON(w, status, result)
	}
}
