package playlist

import (
	"regexp"

	"github.com/strefethen/spotify-cards-go/internal/apperrors"
)

var (
	bareIDPattern  = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	segmentPattern = regexp.MustCompile(`playlist/([A-Za-z0-9]+)`)
)

// ExtractID resolves a caller-supplied string into a playlist ID. A bare
// alphanumeric ID is returned unchanged; otherwise the first playlist/<id>
// path segment found anywhere in the string wins, so full share URLs with
// query strings or extra segments are accepted. Anything else is a
// validation error.
func ExtractID(s string) (string, error) {
	if bareIDPattern.MatchString(s) {
		return s, nil
	}
	if m := segmentPattern.FindStringSubmatch(s); m != nil {
		return m[1], nil
	}
	return "", apperrors.NewValidationError("invalid playlist URL or ID", map[string]any{"url": s})
}
