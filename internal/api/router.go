package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// NewRouter builds and returns the chi router with all routes configured.
// Rate limiting is applied globally: 60 requests per minute per IP. The
// service is unauthenticated by design.
func NewRouter(handlers *Handlers, redisClient, db Pinger, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(httprate.LimitByIP(60, time.Minute))

	r.Get("/api/v1/health", HealthHandlerFunc(redisClient, db, log))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/weather/{city}", handlers.GetWeather)
		r.Delete("/weather", handlers.ClearWeather)
		r.Get("/state", handlers.GetState)
		r.Post("/unit/toggle", handlers.ToggleUnit)
		r.Get("/history", handlers.GetHistory)
		r.Delete("/history", handlers.ClearHistory)
		r.Post("/history/{id}/search", handlers.SearchFromHistory)
		r.Delete("/error", handlers.ClearError)
		r.Get("/searches/recent", handlers.RecentSearches)
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
