// internal/workers/ai-conversation/decide-web-search/handler.go
package decidewebsearch

import (
	"context"
	"fmt"
	"strings"

	"ai-web-explorer/internal/common/camunda"
	apperrors "ai-web-explorer/internal/common/errors"
	"ai-web-explorer/internal/common/genai"
	"ai-web-explorer/internal/common/logger"
	"ai-web-explorer/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "decide-web-search"
)

const decisionPromptTemplate = `You are a decision-making assistant. Determine if the following question requires current/recent information from the web.

Question: %s

Respond with only "YES" if web search is needed (for current events, recent data, specific facts, etc.)
Respond with only "NO" if you can answer from general knowledge.

Response:`

type Handler struct {
	config       *Config
	generator    genai.Generator
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, generator genai.Generator, log logger.Logger) *Handler {
	log = log.With(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:       config,
		generator:    generator,
		logger:       log,
		errorHandler: apperrors.NewErrorHandler(log),
	}
}

// ShouldSearch asks the LLM whether question needs live web information.
// An LLM failure is logged and answered with false.
func (h *Handler) ShouldSearch(ctx context.Context, question string) bool {
	reply, err := h.generator.Generate(ctx, BuildPrompt(question))
	if err != nil {
		metrics.SearchDecisions.WithLabelValues(metrics.OutcomeError).Inc()
		h.logger.WithError(err).Error("search decision failed, answering from general knowledge", map[string]interface{}{
			"errorCode": string(apperrors.CodeOf(err)),
		})
		return false
	}

	needsSearch := ParseDecision(reply)
	outcome := metrics.OutcomeNoSearch
	if needsSearch {
		outcome = metrics.OutcomeSearch
	}
	metrics.SearchDecisions.WithLabelValues(outcome).Inc()

	h.logger.Info("search decision made", map[string]interface{}{
		"needsWebSearch": needsSearch,
		"reply":          strings.TrimSpace(reply),
	})
	return needsSearch
}

// BuildPrompt embeds question in the YES/NO decision instructions.
func BuildPrompt(question string) string {
	return fmt.Sprintf(decisionPromptTemplate, question)
}

// ParseDecision is the only place the free-text reply is interpreted:
// any reply containing YES, case-insensitively, means search. This also
// matches replies such as "YES, but actually no".
func ParseDecision(reply string) bool {
	return strings.Contains(strings.ToUpper(strings.TrimSpace(reply)), "YES")
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := camunda.DecodeVariables(job, inputSchema, &input); err != nil {
		camunda.FailJob(ctx, client, job, err, h.errorHandler)
		return
	}

	_ = camunda.CompleteJob(ctx, client, job, &Output{
		NeedsWebSearch: h.ShouldSearch(ctx, input.Question),
	}, h.logger)
}
