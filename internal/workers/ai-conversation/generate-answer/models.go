// internal/workers/ai-conversation/generate-answer/models.go
package generateanswer

import (
	"ai-web-explorer/internal/common/validation"
	"ai-web-explorer/internal/models"
)

type Input struct {
	Question string                `json:"question"`
	Results  []models.SearchResult `json:"results,omitempty"`
}

type Output struct {
	Answer string            `json:"answer"`
	Mode   models.AnswerMode `json:"mode"`
}

var inputSchema = validation.MustCompile(map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"question"},
	"properties": map[string]interface{}{
		"question": map[string]interface{}{"type": "string", "minLength": 1},
		"results": map[string]interface{}{
			"type": []interface{}{"array", "null"},
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"title":    map[string]interface{}{"type": "string"},
					"url":      map[string]interface{}{"type": "string"},
					"snippet":  map[string]interface{}{"type": "string"},
					"position": map[string]interface{}{"type": "integer"},
				},
			},
		},
	},
})
