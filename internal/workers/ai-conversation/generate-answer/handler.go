// internal/workers/ai-conversation/generate-answer/handler.go
package generateanswer

import (
	"context"
	"fmt"
	"strings"

	"ai-web-explorer/internal/common/camunda"
	apperrors "ai-web-explorer/internal/common/errors"
	"ai-web-explorer/internal/common/genai"
	"ai-web-explorer/internal/common/logger"
	"ai-web-explorer/internal/common/metrics"
	"ai-web-explorer/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-answer"

	// ErrorAnswerPrefix marks an answer that reports a generation failure.
	ErrorAnswerPrefix = "Error generating answer: "
)

const groundedPromptTemplate = `You are a helpful AI assistant. Answer the following question using the provided web search results.

Question: %s

Web Search Results:
%s

Provide a concise, accurate answer based on the search results. Include relevant URLs when appropriate.`

const generalPromptTemplate = `You are a helpful AI assistant. Answer the following question clearly and concisely.

Question: %s

Answer:`

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

// GenerateAnswer makes exactly one LLM call. Non-empty results select the
// grounded prompt; nil or empty results select the general-knowledge prompt.
// A failure is returned as an answer starting with ErrorAnswerPrefix.
func (h *Handler) GenerateAnswer(ctx context.Context, question string, results []models.SearchResult) string {
	mode := models.AnswerModeGeneralKnowledge
	if models.HasResults(results) {
		mode = models.AnswerModeWebSearch
	}

	text, err := h.generator.Generate(ctx, BuildPrompt(question, results))
	if err == nil && strings.TrimSpace(text) == "" {
		err = apperrors.NewLLMMalformedResponseError("llm", "empty completion")
	}
	if err != nil {
		metrics.AnswersGenerated.WithLabelValues(string(mode), metrics.StatusError).Inc()
		h.logger.WithError(err).Error("answer generation failed", map[string]interface{}{
			"mode":      string(mode),
			"errorCode": string(apperrors.CodeOf(err)),
		})
		return ErrorAnswerPrefix + err.Error()
	}

	metrics.AnswersGenerated.WithLabelValues(string(mode), metrics.StatusOK).Inc()
	h.logger.Info("answer generated", map[string]interface{}{
		"mode":        string(mode),
		"sourceCount": len(results),
	})
	return strings.TrimSpace(text)
}

// BuildPrompt selects the grounded or general-knowledge prompt.
func BuildPrompt(question string, results []models.SearchResult) string {
	if !models.HasResults(results) {
		return fmt.Sprintf(generalPromptTemplate, question)
	}
	return fmt.Sprintf(groundedPromptTemplate, question, FormatContext(results))
}

// FormatContext renders results in order as Source/URL/Content blocks
// separated by a blank line.
func FormatContext(results []models.SearchResult) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, fmt.Sprintf("Source: %s\nURL: %s\nContent: %s", r.Title, r.URL, r.Snippet))
	}
	return strings.Join(blocks, "\n\n")
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

	mode := models.AnswerModeGeneralKnowledge
	if models.HasResults(input.Results) {
		mode = models.AnswerModeWebSearch
	}
	_ = camunda.CompleteJob(ctx, client, job, &Output{
		Answer: h.GenerateAnswer(ctx, input.Question, input.Results),
		Mode:   mode,
	}, h.logger)
}
