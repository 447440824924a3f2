package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/strefethen/spotify-cards-go/internal/apperrors"
)

// pageLimit is the page size requested from the playlist-tracks endpoint.
// Follow-up pages carry their own limit/offset inside the "next" URL.
const pageLimit = 100

// maxBodySnippet caps upstream bodies echoed into error details and debug
// responses.
const maxBodySnippet = 500

// Client talks to the Spotify accounts service and Web API.
type Client struct {
	accountsURL  string
	apiURL       string
	clientID     string
	clientSecret string
	tokenClient  *http.Client
	fetchClient  *http.Client
	probeClient  *http.Client
}

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	AccountsURL  string // Optional: defaults to https://accounts.spotify.com
	APIURL       string // Optional: defaults to https://api.spotify.com
	ClientID     string
	ClientSecret string
	TokenTimeout time.Duration // Optional: defaults to 20s
	FetchTimeout time.Duration // Optional: defaults to 30s
	ProbeTimeout time.Duration // Optional: defaults to 20s
}

// NewClient creates a new Spotify API client.
func NewClient(cfg ClientConfig) *Client {
	accountsURL := cfg.AccountsURL
	if accountsURL == "" {
		accountsURL = "https://accounts.spotify.com"
	}

	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = "https://api.spotify.com"
	}

	tokenTimeout := cfg.TokenTimeout
	if tokenTimeout == 0 {
		tokenTimeout = 20 * time.Second
	}
	fetchTimeout := cfg.FetchTimeout
	if fetchTimeout == 0 {
		fetchTimeout = 30 * time.Second
	}
	probeTimeout := cfg.ProbeTimeout
	if probeTimeout == 0 {
		probeTimeout = 20 * time.Second
	}

	return &Client{
		accountsURL:  accountsURL,
		apiURL:       apiURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		tokenClient:  &http.Client{Timeout: tokenTimeout},
		fetchClient:  &http.Client{Timeout: fetchTimeout},
		probeClient:  &http.Client{Timeout: probeTimeout},
	}
}

// HasCredentials reports whether an app-level token exchange is possible.
func (c *Client) HasCredentials() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// AppToken exchanges the configured client credentials for an app-level
// bearer token. Fails fast when no credentials are configured.
func (c *Client) AppToken(ctx context.Context) (string, error) {
	if !c.HasCredentials() {
		return "", apperrors.NewMissingCredentialsError("Spotify credentials are not configured (SPOTIFY_CLIENT_ID / SPOTIFY_CLIENT_SECRET)")
	}

	conf := &clientcredentials.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		TokenURL:     c.accountsURL + "/api/token",
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.tokenClient)
	token, err := conf.Token(ctx)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return "", apperrors.NewUpstreamAuthError("Spotify token exchange rejected", map[string]any{
				"status": retrieveErr.Response.StatusCode,
				"body":   truncate(string(retrieveErr.Body), maxBodySnippet),
			})
		}
		return "", apperrors.NewUpstreamAuthError("Spotify token exchange failed: "+err.Error(), nil)
	}

	return token.AccessToken, nil
}

// PlaylistItems fetches every entry of a playlist's track listing, following
// the server-supplied "next" links until exhausted. Items are returned in
// arrival order. Any non-200 page aborts the whole fetch; the returned error
// carries the upstream status and body, plus a probe of the playlist
// metadata endpoint to help distinguish "not found" from "insufficient
// scope".
func (c *Client) PlaylistItems(ctx context.Context, bearerToken, playlistID, market string) ([]PlaylistItem, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", pageLimit))
	params.Set("offset", "0")
	if market != "" {
		params.Set("market", market)
	}

	next := fmt.Sprintf("%s/v1/playlists/%s/tracks?%s", c.apiURL, url.PathEscape(playlistID), params.Encode())

	var items []PlaylistItem
	for next != "" {
		status, body, err := c.get(ctx, c.fetchClient, next, bearerToken)
		if err != nil {
			return nil, apperrors.NewUpstreamError("Spotify API unreachable: "+err.Error(), 0, nil)
		}
		if status != http.StatusOK {
			details := map[string]any{
				"status": status,
				"body":   truncate(string(body), maxBodySnippet),
			}
			if probeStatus, probeBody, probeErr := c.ProbePlaylist(ctx, bearerToken, playlistID); probeErr == nil {
				details["probe_status"] = probeStatus
				details["probe_body"] = truncate(probeBody, 200)
			}
			return nil, apperrors.NewUpstreamError("Spotify API error fetching playlist tracks", status, details)
		}

		var page tracksPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, apperrors.NewUpstreamError("Spotify API returned malformed page: "+err.Error(), 0, nil)
		}

		items = append(items, page.Items...)
		if page.Next == nil {
			break
		}
		next = *page.Next
	}

	return items, nil
}

// ProbePlaylist fetches the playlist metadata endpoint once and reports the
// raw outcome. Used for error diagnostics and the debug endpoint; upstream
// error statuses are part of the answer, not a failure.
func (c *Client) ProbePlaylist(ctx context.Context, bearerToken, playlistID string) (int, string, error) {
	endpoint := fmt.Sprintf("%s/v1/playlists/%s", c.apiURL, url.PathEscape(playlistID))
	status, body, err := c.get(ctx, c.probeClient, endpoint, bearerToken)
	if err != nil {
		return 0, "", err
	}
	return status, string(body), nil
}

// get performs an authenticated GET and returns the status and body.
func (c *Client) get(ctx context.Context, httpClient *http.Client, rawURL, bearerToken string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
