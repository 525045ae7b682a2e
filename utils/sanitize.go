package utils

import "github.com/microcosm-cc/bluemonday"

var (
	richSanitizer  = bluemonday.UGCPolicy()
	plainSanitizer = bluemonday.StrictPolicy()
)

// Sanitize cleans HTML content to prevent XSS attacks, keeping user-generated-content markup.
func Sanitize(input string) string {
	return richSanitizer.Sanitize(input)
}

// SanitizeText strips every tag; used for titles and comments.
func SanitizeText(input string) string {
	return plainSanitizer.Sanitize(input)
}
