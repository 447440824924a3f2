package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/strefethen/spotify-cards-go/internal/api"
	"github.com/strefethen/spotify-cards-go/internal/config"
	"github.com/strefethen/spotify-cards-go/internal/openapi"
	"github.com/strefethen/spotify-cards-go/internal/playlist"
	"github.com/strefethen/spotify-cards-go/internal/spotify"
)

const usageText = `OK: spotify-cards is running.

Usage:
  /api/playlist.json?url=<playlist_url_or_id>&market=&token=
  /api/playlist.csv?url=<playlist_url_or_id>&market=&token=
  /api/playlist.test?url=<playlist_url_or_id>
Note: if the app token gets a 404, retry with a user token (?token=...) for
personalized or curated playlists.
`

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// requestLoggerMiddleware logs all incoming HTTP requests.
func requestLoggerMiddleware(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrapped, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.status,
				"duration", time.Since(start).Round(time.Millisecond),
				"request_id", api.GetRequestID(r),
			)
		})
	}
}

// corsMiddleware allows any origin. The service exposes public catalog data
// and is meant to be called straight from browser frontends.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, x-request-id")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// NewHandler builds the HTTP handler. There is no state to tear down: every
// request is served from scratch against the upstream API.
func NewHandler(cfg config.Config, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}

	router := chi.NewRouter()
	router.Use(middleware.StripSlashes)
	router.Use(requestLoggerMiddleware(logger))
	router.Use(api.RequestIDMiddleware)
	router.Use(api.RecovererMiddleware)
	router.Use(corsMiddleware)

	registerRootRoutes(router)
	openapi.RegisterRoutes(router)

	client := spotify.NewClient(spotify.ClientConfig{
		AccountsURL:  cfg.SpotifyAccountsURL,
		APIURL:       cfg.SpotifyAPIURL,
		ClientID:     cfg.SpotifyClientID,
		ClientSecret: cfg.SpotifyClientSecret,
		TokenTimeout: time.Duration(cfg.TokenTimeoutMs) * time.Millisecond,
		FetchTimeout: time.Duration(cfg.FetchTimeoutMs) * time.Millisecond,
		ProbeTimeout: time.Duration(cfg.ProbeTimeoutMs) * time.Millisecond,
	})

	playlist.RegisterRoutes(router, playlist.NewService(client, cfg.DefaultMarket))

	return router
}

func registerRootRoutes(router chi.Router) {
	router.Method(http.MethodGet, "/", api.Handler(func(w http.ResponseWriter, r *http.Request) error {
		return api.WriteText(w, http.StatusOK, usageText)
	}))
	router.Method(http.MethodGet, "/health", api.Handler(func(w http.ResponseWriter, r *http.Request) error {
		return api.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	}))
}
