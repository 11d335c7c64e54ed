package models

// Default field values used when the top article omits them.
const (
	DefaultArticleTitle       = "No title available"
	DefaultArticleDescription = "No description available"
)

// NewsLookupResult is the structured outcome of a news search.
type NewsLookupResult struct {
	Found       bool   `json:"found"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}
