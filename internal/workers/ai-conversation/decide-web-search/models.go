// internal/workers/ai-conversation/decide-web-search/models.go
package decidewebsearch

import "ai-web-explorer/internal/common/validation"

type Input struct {
	Question string `json:"question"`
}

type Output struct {
	NeedsWebSearch bool `json:"needsWebSearch"`
}

var inputSchema = validation.MustCompile(map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"question"},
	"properties": map[string]interface{}{
		"question": map[string]interface{}{"type": "string", "minLength": 1},
	},
})
