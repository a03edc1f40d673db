package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.UGCPolicy()

// Sanitize cleans HTML content to prevent XSS attacks.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}

// CleanText sanitizes user supplied post or comment text and trims surrounding space.
// An empty result means the input carried no visible content.
func CleanText(input string) string {
	return strings.TrimSpace(Sanitize(input))
}
