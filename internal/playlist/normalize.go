package playlist

import (
	"strings"

	"github.com/strefethen/spotify-cards-go/internal/spotify"
)

// Record is one exported playlist row.
type Record struct {
	Artist string `json:"Artist"`
	Year   string `json:"Year"`
	Title  string `json:"Title"`
	Link   string `json:"Link"`
}

// Normalize flattens raw playlist entries into records, preserving order.
// Entries without a playable track (removed entries, local files, episodes)
// are skipped, as are rows with neither artist nor title.
func Normalize(items []spotify.PlaylistItem) []Record {
	records := make([]Record, 0, len(items))
	for _, item := range items {
		track := item.Track
		if track == nil || track.Type != "track" {
			continue
		}

		names := make([]string, 0, len(track.Artists))
		for _, artist := range track.Artists {
			names = append(names, artist.Name)
		}

		record := Record{
			Artist: strings.Join(names, ", "),
			Year:   releaseYear(track.Album.ReleaseDate),
			Title:  track.Name,
			Link:   track.ExternalURLs.Spotify,
		}
		if record.Artist == "" && record.Title == "" {
			continue
		}
		records = append(records, record)
	}
	return records
}

// releaseYear reduces a release date of any precision ("1994", "1994-03",
// "1994-03-01") to its 4-digit year, empty when absent.
func releaseYear(releaseDate string) string {
	if len(releaseDate) < 4 {
		return ""
	}
	return releaseDate[:4]
}
