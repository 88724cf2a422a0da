// internal/app/activities.go
package app

import (
	"ai-web-explorer/internal/common/config"
	apperrors "ai-web-explorer/internal/common/errors"
	answerquestion "ai-web-explorer/internal/workers/ai-conversation/answer-question"
	decidewebsearch "ai-web-explorer/internal/workers/ai-conversation/decide-web-search"
	generateanswer "ai-web-explorer/internal/workers/ai-conversation/generate-answer"
	websearch "ai-web-explorer/internal/workers/ai-conversation/web-search"
	"ai-web-explorer/pkg/registry"
)

// Activities describes the job types served by the worker-manager, with
// the per-worker settings from cfg.
func Activities(cfg *config.Config) *registry.ActivityRegistry {
	reg := registry.New(cfg.App.Version)

	add := func(a registry.Activity) {
		wcfg := config.GetWorkerConfig(cfg, a.TaskType)
		a.ID = "ai-conversation." + a.TaskType
		a.Category = "ai-conversation"
		a.ErrorCodes = []string{string(apperrors.ErrCodeInvalidInput)}
		a.Timeout = config.GetDuration(wcfg.Timeout).String()
		a.Retries = wcfg.MaxRetries
		a.Enabled = config.IsWorkerEnabled(cfg, a.TaskType)
		reg.Add(a)
	}

	add(registry.Activity{
		DisplayName:     "Decide Web Search",
		Description:     "Asks the LLM whether a question needs current web information",
		TaskType:        decidewebsearch.TaskType,
		InputVariables:  []string{"question"},
		OutputVariables: []string{"needsWebSearch"},
	})
	add(registry.Activity{
		DisplayName:     "Web Search",
		Description:     "Queries Google Custom Search and returns ranked results",
		TaskType:        websearch.TaskType,
		InputVariables:  []string{"query", "maxResults"},
		OutputVariables: []string{"results", "resultCount"},
	})
	add(registry.Activity{
		DisplayName:     "Generate Answer",
		Description:     "Answers a question, grounded on search results when given",
		TaskType:        generateanswer.TaskType,
		InputVariables:  []string{"question", "results"},
		OutputVariables: []string{"answer", "mode"},
	})
	add(registry.Activity{
		DisplayName:     "Answer Question",
		Description:     "Runs decide, search and generate in sequence",
		TaskType:        answerquestion.TaskType,
		InputVariables:  []string{"question"},
		OutputVariables: []string{"answer", "mode", "sources", "invocationId"},
	})

	return reg
}
