package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strefethen/spotify-cards-go/internal/apperrors"
)

func trackItem(id, name string) PlaylistItem {
	return PlaylistItem{
		Track: &Track{
			ID:      id,
			Type:    "track",
			Name:    name,
			Artists: []Artist{{Name: "Artist " + id}},
			Album:   Album{ReleaseDate: "1994-03-01"},
			ExternalURLs: ExternalURLs{
				Spotify: "https://open.spotify.com/track/" + id,
			},
		},
	}
}

func TestAppToken(t *testing.T) {
	t.Run("missing credentials fails before any network call", func(t *testing.T) {
		client := NewClient(ClientConfig{AccountsURL: "http://127.0.0.1:1"})
		_, err := client.AppToken(context.Background())

		appErr := apperrors.EnsureAppError(err)
		require.Equal(t, apperrors.ErrorCodeMissingCredentials, appErr.Code)
		require.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
	})

	t.Run("exchanges client credentials via basic auth", func(t *testing.T) {
		var gotAuth, gotGrant string
		accounts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/token", r.URL.Path)
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, r.ParseForm())
			gotGrant = r.PostForm.Get("grant_type")

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token":"app-token-1","token_type":"Bearer","expires_in":3600}`)
		}))
		defer accounts.Close()

		client := NewClient(ClientConfig{
			AccountsURL:  accounts.URL,
			ClientID:     "myid",
			ClientSecret: "mysecret",
		})

		token, err := client.AppToken(context.Background())
		require.NoError(t, err)
		require.Equal(t, "app-token-1", token)
		require.Equal(t, "client_credentials", gotGrant)

		expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("myid:mysecret"))
		require.Equal(t, expected, gotAuth)
	})

	t.Run("rejected exchange surfaces upstream body", func(t *testing.T) {
		accounts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_client"}`)
		}))
		defer accounts.Close()

		client := NewClient(ClientConfig{
			AccountsURL:  accounts.URL,
			ClientID:     "myid",
			ClientSecret: "wrong",
		})

		_, err := client.AppToken(context.Background())
		appErr := apperrors.EnsureAppError(err)
		require.Equal(t, apperrors.ErrorCodeUpstreamAuthFailed, appErr.Code)
		require.Equal(t, http.StatusBadGateway, appErr.StatusCode)
		require.Contains(t, appErr.Details["body"], "invalid_client")
	})
}

func TestPlaylistItemsPagination(t *testing.T) {
	// Three pages chained by next links; items must accumulate in order.
	mux := http.NewServeMux()
	upstream := httptest.NewServer(mux)
	defer upstream.Close()

	pageURL := func(n int) string {
		return fmt.Sprintf("%s/v1/playlists/pl1/tracks?page=%d", upstream.URL, n)
	}

	mux.HandleFunc("/v1/playlists/pl1/tracks", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var page tracksPage
		switch r.URL.Query().Get("page") {
		case "2":
			next := pageURL(3)
			page = tracksPage{Items: []PlaylistItem{trackItem("b", "Second")}, Next: &next}
		case "3":
			page = tracksPage{Items: []PlaylistItem{trackItem("c", "Third")}, Next: nil}
		default:
			// First request: verify the query the client builds itself.
			require.Equal(t, "100", r.URL.Query().Get("limit"))
			require.Equal(t, "0", r.URL.Query().Get("offset"))
			next := pageURL(2)
			page = tracksPage{Items: []PlaylistItem{trackItem("a", "First")}, Next: &next}
		}
		_ = json.NewEncoder(w).Encode(page)
	})

	client := NewClient(ClientConfig{APIURL: upstream.URL})
	items, err := client.PlaylistItems(context.Background(), "tok", "pl1", "")
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "First", items[0].Track.Name)
	require.Equal(t, "Second", items[1].Track.Name)
	require.Equal(t, "Third", items[2].Track.Name)
}

func TestPlaylistItemsMarket(t *testing.T) {
	var gotMarket string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMarket = r.URL.Query().Get("market")
		_ = json.NewEncoder(w).Encode(tracksPage{})
	}))
	defer upstream.Close()

	client := NewClient(ClientConfig{APIURL: upstream.URL})
	_, err := client.PlaylistItems(context.Background(), "tok", "pl1", "DE")
	require.NoError(t, err)
	require.Equal(t, "DE", gotMarket)

	_, err = client.PlaylistItems(context.Background(), "tok", "pl1", "")
	require.NoError(t, err)
	require.Empty(t, gotMarket)
}

func TestPlaylistItemsFailureAbortsWithProbe(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/playlists/pl1/tracks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"status":404,"message":"Resource not found"}}`)
	})
	mux.HandleFunc("/v1/playlists/pl1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"status":403,"message":"Insufficient client scope"}}`)
	})
	upstream := httptest.NewServer(mux)
	defer upstream.Close()

	client := NewClient(ClientConfig{APIURL: upstream.URL})
	_, err := client.PlaylistItems(context.Background(), "tok", "pl1", "")

	appErr := apperrors.EnsureAppError(err)
	require.Equal(t, apperrors.ErrorCodeUpstreamError, appErr.Code)
	require.Equal(t, http.StatusNotFound, appErr.StatusCode)
	require.Equal(t, http.StatusNotFound, appErr.Details["status"])
	require.Contains(t, appErr.Details["body"], "Resource not found")
	require.Equal(t, http.StatusForbidden, appErr.Details["probe_status"])
	require.Contains(t, appErr.Details["probe_body"], "Insufficient client scope")
}

func TestProbePlaylist(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/playlists/pl9", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"status":401}}`)
	}))
	defer upstream.Close()

	client := NewClient(ClientConfig{APIURL: upstream.URL})
	status, body, err := client.ProbePlaylist(context.Background(), "tok", "pl9")
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Contains(t, body, "401")
}
