// internal/models/search.go
package models

// SearchResult is one ranked hit returned by the web search provider.
// Position is 1-based and zero when the provider did not assign one.
type SearchResult struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position,omitempty"`
}

// AnswerMode records which prompt path produced an answer.
type AnswerMode string

const (
	AnswerModeGeneralKnowledge  AnswerMode = "general_knowledge"
	AnswerModeWebSearch         AnswerMode = "web_search"
	AnswerModeNoResultsFallback AnswerMode = "no_results_fallback"
)

// HasResults reports whether a result set can ground an answer.
func HasResults(results []SearchResult) bool {
	return len(results) > 0
}
