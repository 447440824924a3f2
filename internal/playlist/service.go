package playlist

import (
	"context"

	"github.com/strefethen/spotify-cards-go/internal/apperrors"
	"github.com/strefethen/spotify-cards-go/internal/spotify"
)

// Service resolves export requests against the Spotify client. Stateless:
// every call re-derives its token and result set, nothing is cached across
// requests.
type Service struct {
	client        *spotify.Client
	defaultMarket string
}

// NewService creates the playlist export service.
func NewService(client *spotify.Client, defaultMarket string) *Service {
	return &Service{client: client, defaultMarket: defaultMarket}
}

// Export resolves rawURL to a playlist ID, obtains a bearer token and
// returns the playlist's normalized track records in playlist order.
// tokenOverride, when non-empty, is used verbatim instead of the app-level
// client-credentials exchange; user tokens can reach playlists an app token
// cannot.
func (s *Service) Export(ctx context.Context, rawURL, market, tokenOverride string) ([]Record, error) {
	playlistID, err := ExtractID(rawURL)
	if err != nil {
		return nil, err
	}

	bearer, err := s.resolveToken(ctx, tokenOverride)
	if err != nil {
		return nil, err
	}

	if market == "" {
		market = s.defaultMarket
	}

	items, err := s.client.PlaylistItems(ctx, bearer, playlistID, market)
	if err != nil {
		return nil, err
	}

	return Normalize(items), nil
}

// Probe resolves rawURL and fetches the playlist metadata endpoint once,
// returning the raw upstream status and body for diagnostics.
func (s *Service) Probe(ctx context.Context, rawURL, tokenOverride string) (int, string, error) {
	playlistID, err := ExtractID(rawURL)
	if err != nil {
		return 0, "", err
	}

	bearer, err := s.resolveToken(ctx, tokenOverride)
	if err != nil {
		return 0, "", err
	}

	status, body, err := s.client.ProbePlaylist(ctx, bearer, playlistID)
	if err != nil {
		return 0, "", apperrors.NewUpstreamError("Spotify API unreachable: "+err.Error(), 0, nil)
	}
	return status, body, nil
}

// AppToken exposes the client-credentials exchange for the debug endpoint.
func (s *Service) AppToken(ctx context.Context) (string, error) {
	return s.client.AppToken(ctx)
}

func (s *Service) resolveToken(ctx context.Context, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return s.client.AppToken(ctx)
}
