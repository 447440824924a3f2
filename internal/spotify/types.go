// Package spotify is an HTTP client for the Spotify Web API surface this
// service needs: the client-credentials token endpoint, the paginated
// playlist-tracks endpoint, and the playlist-metadata endpoint.
//
// Response types follow https://developer.spotify.com/documentation/web-api/reference/
package spotify

// Artist represents a Spotify artist as embedded in track objects.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// Album represents a Spotify album as embedded in track objects.
// ReleaseDate is "YYYY", "YYYY-MM" or "YYYY-MM-DD" depending on precision.
type Album struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
	URI         string `json:"uri"`
}

// ExternalURLs holds known external links for a resource.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// Track represents a Spotify track. Type distinguishes real tracks from
// episodes and local files that can appear in playlist listings.
type Track struct {
	ID           string       `json:"id"`
	Type         string       `json:"type"`
	Name         string       `json:"name"`
	Artists      []Artist     `json:"artists"`
	Album        Album        `json:"album"`
	DurationMS   int          `json:"duration_ms"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	URI          string       `json:"uri"`
}

// PlaylistItem represents one entry in a playlist's paginated listing.
// Track is nil for removed entries.
type PlaylistItem struct {
	AddedAt string `json:"added_at"`
	IsLocal bool   `json:"is_local"`
	Track   *Track `json:"track"`
}

// tracksPage is one page of the playlist-tracks endpoint. Next is the
// server-supplied URL of the following page, nil on the last page.
type tracksPage struct {
	Items  []PlaylistItem `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Next   *string        `json:"next"`
}
