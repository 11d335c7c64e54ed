package validation

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeText trims surrounding whitespace from submitted text.
func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}

// ValidateText checks submitted headline text before it reaches the classifier.
// maxLen is measured in characters, not bytes.
func ValidateText(text string, maxLen int) (bool, string) {
	if strings.TrimSpace(text) == "" {
		return false, "Please enter a headline"
	}
	if !utf8.ValidString(text) {
		return false, "Text must be valid UTF-8"
	}
	if utf8.RuneCountInString(text) > maxLen {
		return false, "Text is too long"
	}
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return false, "Text contains control characters"
		}
	}
	return true, ""
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	// Check scheme - only allow http and https
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}
