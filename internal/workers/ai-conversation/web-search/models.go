// internal/workers/ai-conversation/web-search/models.go
package websearch

import (
	"ai-web-explorer/internal/common/validation"
	"ai-web-explorer/internal/models"
)

type Input struct {
	Query      string `json:"query"`
	MaxResults int    `json:"maxResults,omitempty"`
}

type Output struct {
	Results     []models.SearchResult `json:"results"`
	ResultCount int                   `json:"resultCount"`
}

var inputSchema = validation.MustCompile(map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"query"},
	"properties": map[string]interface{}{
		"query":      map[string]interface{}{"type": "string", "minLength": 1},
		"maxResults": map[string]interface{}{"type": "integer", "minimum": 0},
	},
})

// responseSchema accepts any Custom Search payload whose items, when
// present, carry string or null title/link/snippet fields. Null decodes
// to an empty string.
var responseSchema = validation.MustCompile(map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"items": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"title":   map[string]interface{}{"type": []interface{}{"string", "null"}},
					"link":    map[string]interface{}{"type": []interface{}{"string", "null"}},
					"snippet": map[string]interface{}{"type": []interface{}{"string", "null"}},
				},
			},
		},
	},
})

type apiResponse struct {
	Items []apiItem `json:"items"`
}

type apiItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}
