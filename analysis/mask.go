package analysis

import "strings"

// MaskAuthor redacts the interior of a display name for storage,
// keeping the first and last characters. Names of two characters or
// fewer have no interior to redact and are returned unchanged.
func MaskAuthor(name string) string {
	runes := []rune(name)
	if len(runes) <= 2 {
		return name
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
}
