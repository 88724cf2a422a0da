// internal/workers/ai-conversation/answer-question/models.go
package answerquestion

import (
	"time"

	"ai-web-explorer/internal/common/validation"
	"ai-web-explorer/internal/models"
)

type Input struct {
	Question string `json:"question"`
}

type Output struct {
	InvocationID string                `json:"invocationId"`
	Answer       string                `json:"answer"`
	Mode         models.AnswerMode     `json:"mode"`
	Sources      []models.SearchResult `json:"sources"`
}

// Result describes one completed agent invocation.
type Result struct {
	InvocationID string
	Question     string
	Answer       string
	Mode         models.AnswerMode
	Sources      []models.SearchResult
	Duration     time.Duration
}

var inputSchema = validation.MustCompile(map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"question"},
	"properties": map[string]interface{}{
		"question": map[string]interface{}{"type": "string", "minLength": 1},
	},
})
