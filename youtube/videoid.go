package youtube

import (
	"errors"
	"regexp"
)

// ErrInvalidVideoURL indicates the reference matched none of the known
// YouTube URL shapes.
var ErrInvalidVideoURL = errors.New("invalid YouTube URL")

// Known URL shapes, tried in order. The first match wins.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?v=([^&]+)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtu\.be/([^?]+)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([^?]+)`),
}

// ExtractVideoID parses a user-supplied video reference into the
// canonical video id. It returns ErrInvalidVideoURL when no pattern
// matches.
func ExtractVideoID(url string) (string, error) {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], nil
		}
	}
	return "", ErrInvalidVideoURL
}
