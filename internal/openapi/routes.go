package openapi

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"

	"github.com/strefethen/spotify-cards-go/internal/api"
	"github.com/strefethen/spotify-cards-go/internal/apperrors"
)

//go:embed spotify-cards.v1.yaml
var spec []byte

// RegisterRoutes wires OpenAPI routes to the router.
func RegisterRoutes(router chi.Router) {
	router.Method(http.MethodGet, "/openapi", api.Handler(serveYAML))
	router.Method(http.MethodGet, "/openapi.json", api.Handler(serveJSON))
}

func serveYAML(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/yaml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec)
	return nil
}

func serveJSON(w http.ResponseWriter, r *http.Request) error {
	var parsed any
	if err := yaml.Unmarshal(spec, &parsed); err != nil {
		return apperrors.NewInternalError("Failed to parse OpenAPI specification")
	}
	return api.WriteJSON(w, http.StatusOK, parsed)
}
