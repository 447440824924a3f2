package playlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/strefethen/spotify-cards-go/internal/api"
	"github.com/strefethen/spotify-cards-go/internal/apperrors"
)

// RegisterRoutes wires playlist export routes to the router.
func RegisterRoutes(router chi.Router, service *Service) {
	router.Method(http.MethodGet, "/api/playlist.json", api.Handler(exportJSON(service)))
	router.Method(http.MethodGet, "/api/playlist.csv", api.Handler(exportCSV(service)))
	router.Method(http.MethodGet, "/api/playlist.test", api.Handler(parseTest()))
	router.Method(http.MethodGet, "/api/debug.token", api.Handler(debugToken(service)))
	router.Method(http.MethodGet, "/api/debug.playlist", api.Handler(debugPlaylist(service)))
}

func requireURLParam(r *http.Request) (string, error) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		return "", apperrors.NewValidationError("missing required query parameter: url", nil)
	}
	return raw, nil
}

func exportJSON(service *Service) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		raw, err := requireURLParam(r)
		if err != nil {
			return err
		}
		query := r.URL.Query()

		records, err := service.Export(r.Context(), raw, query.Get("market"), query.Get("token"))
		if err != nil {
			return err
		}
		return api.WriteJSON(w, http.StatusOK, NewEnvelope(records))
	}
}

func exportCSV(service *Service) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		raw, err := requireURLParam(r)
		if err != nil {
			return err
		}
		query := r.URL.Query()

		records, err := service.Export(r.Context(), raw, query.Get("market"), query.Get("token"))
		if err != nil {
			return err
		}
		return api.WriteAttachment(w, "text/csv; charset=utf-8", "songs.csv", RenderCSV(records))
	}
}

// parseTest echoes the parsed playlist ID. Never errors: unparseable input
// reports a placeholder instead.
func parseTest() func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		parsed := "(none)"
		if id, err := ExtractID(r.URL.Query().Get("url")); err == nil {
			parsed = id
		}
		return api.WriteText(w, http.StatusOK, "parsed playlist_id = "+parsed)
	}
}

// debugToken attempts a token exchange and reports only whether it worked
// and how long the token is. The token itself never leaves the server.
func debugToken(service *Service) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		token, err := service.AppToken(r.Context())
		if err != nil {
			return api.WriteJSON(w, http.StatusOK, map[string]any{"ok": false, "error": err.Error()})
		}
		return api.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "token_len": len(token)})
	}
}

func debugPlaylist(service *Service) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		raw, err := requireURLParam(r)
		if err != nil {
			return err
		}

		status, body, err := service.Probe(r.Context(), raw, r.URL.Query().Get("token"))
		if err != nil {
			return err
		}
		if len(body) > 500 {
			body = body[:500]
		}
		return api.WriteJSON(w, http.StatusOK, map[string]any{"status": status, "body": body})
	}
}
