// internal/workers/ai-conversation/answer-question/agent.go
package answerquestion

import (
	"context"
	"time"

	"ai-web-explorer/internal/common/camunda"
	apperrors "ai-web-explorer/internal/common/errors"
	"ai-web-explorer/internal/common/logger"
	"ai-web-explorer/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "answer-question"
)

type Decider interface {
	ShouldSearch(ctx context.Context, question string) bool
}

type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) []models.SearchResult
}

type AnswerGenerator interface {
	GenerateAnswer(ctx context.Context, question string, results []models.SearchResult) string
}

// Recorder receives one measurement per answered question.
type Recorder interface {
	RecordInvocation(ctx context.Context, mode string, duration time.Duration)
}

// Agent runs decide, optionally search, then generate, strictly in sequence.
type Agent struct {
	config       *Config
	decider      Decider
	searcher     Searcher
	generator    AnswerGenerator
	recorder     Recorder
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
}

type Option func(*Agent)

func WithRecorder(r Recorder) Option {
	return func(a *Agent) {
		a.recorder = r
	}
}

func NewAgent(config *Config, decider Decider, searcher Searcher, generator AnswerGenerator, log logger.Logger, opts ...Option) *Agent {
	log = log.With(map[string]interface{}{
		"taskType": TaskType,
	})
	a := &Agent{
		config:       config,
		decider:      decider,
		searcher:     searcher,
		generator:    generator,
		logger:       log,
		errorHandler: apperrors.NewErrorHandler(log),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Answer returns the final answer for question. It never fails; component
// failures surface as degraded answers.
func (a *Agent) Answer(ctx context.Context, question string) string {
	return a.Run(ctx, question).Answer
}

// Run answers question and reports which path produced the answer.
func (a *Agent) Run(ctx context.Context, question string) *Result {
	start := time.Now()
	result := &Result{
		InvocationID: uuid.NewString(),
		Question:     question,
		Mode:         models.AnswerModeGeneralKnowledge,
	}
	log := a.logger.With(map[string]interface{}{
		"invocationId": result.InvocationID,
	})
	log.Info("processing question", map[string]interface{}{"question": question})

	if a.decider.ShouldSearch(ctx, question) {
		log.Info("web search needed", nil)
		results := a.searcher.Search(ctx, question, a.config.MaxResults)
		if models.HasResults(results) {
			log.Info("search results found", map[string]interface{}{"resultCount": len(results)})
			result.Mode = models.AnswerModeWebSearch
			result.Sources = results
		} else {
			log.Warn("no results found, answering without search", nil)
			result.Mode = models.AnswerModeNoResultsFallback
		}
	} else {
		log.Info("answering from general knowledge", nil)
	}

	result.Answer = a.generator.GenerateAnswer(ctx, question, result.Sources)
	result.Duration = time.Since(start)

	if a.recorder != nil {
		a.recorder.RecordInvocation(ctx, string(result.Mode), result.Duration)
	}
	log.Info("question answered", map[string]interface{}{
		"mode":     string(result.Mode),
		"duration": result.Duration.String(),
	})
	return result
}

func (a *Agent) Handle(client worker.JobClient, job entities.Job) {
	a.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Timeout)
	defer cancel()

	var input Input
	if err := camunda.DecodeVariables(job, inputSchema, &input); err != nil {
		camunda.FailJob(ctx, client, job, err, a.errorHandler)
		return
	}

	result := a.Run(ctx, input.Question)
	sources := result.Sources
	if sources == nil {
		sources = []models.SearchResult{}
	}
	_ = camunda.CompleteJob(ctx, client, job, &Output{
		InvocationID: result.InvocationID,
		Answer:       result.Answer,
		Mode:         result.Mode,
		Sources:      sources,
	}, a.logger)
}
