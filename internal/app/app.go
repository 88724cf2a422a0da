// internal/app/app.go
package app

import (
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"ai-web-explorer/internal/common/config"
	"ai-web-explorer/internal/common/genai"
	"ai-web-explorer/internal/common/logger"
	answerquestion "ai-web-explorer/internal/workers/ai-conversation/answer-question"
	decidewebsearch "ai-web-explorer/internal/workers/ai-conversation/decide-web-search"
	generateanswer "ai-web-explorer/internal/workers/ai-conversation/generate-answer"
	websearch "ai-web-explorer/internal/workers/ai-conversation/web-search"
)

// Explorer holds the wired components of one process.
type Explorer struct {
	Config    *config.Config
	Generator genai.Generator
	Decider   *decidewebsearch.Handler
	Searcher  *websearch.Handler
	Answerer  *generateanswer.Handler
	Agent     *answerquestion.Agent
}

// LoadConfig reads path when given, otherwise the default search locations.
func LoadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// NewLogger builds the diagnostic logger described by the logging section.
func NewLogger(cfg *config.Config) logger.Logger {
	return logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
}

// New wires every component from cfg. Credentials are not checked here.
func New(cfg *config.Config, log logger.Logger, opts ...answerquestion.Option) (*Explorer, error) {
	generator, err := genai.New(genai.FromConfig(cfg.LLM), log)
	if err != nil {
		return nil, fmt.Errorf("create llm generator: %w", err)
	}

	decider := decidewebsearch.NewHandler(&decidewebsearch.Config{
		Timeout: workerTimeout(cfg, decidewebsearch.TaskType),
	}, generator, log)

	searcher := websearch.NewHandler(websearch.FromConfig(cfg.Search), log)

	answerer := generateanswer.NewHandler(&generateanswer.Config{
		Timeout: workerTimeout(cfg, generateanswer.TaskType),
	}, generator, log)

	agent := answerquestion.NewAgent(&answerquestion.Config{
		MaxResults: cfg.Search.MaxResults,
		Timeout:    workerTimeout(cfg, answerquestion.TaskType),
	}, decider, searcher, answerer, log, opts...)

	return &Explorer{
		Config:    cfg,
		Generator: generator,
		Decider:   decider,
		Searcher:  searcher,
		Answerer:  answerer,
		Agent:     agent,
	}, nil
}

func workerTimeout(cfg *config.Config, taskType string) time.Duration {
	return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
}

// JobHandlers maps each task type to the Zeebe handler serving it.
func (e *Explorer) JobHandlers() map[string]worker.JobHandler {
	return map[string]worker.JobHandler{
		decidewebsearch.TaskType: e.Decider.Handle,
		websearch.TaskType:       e.Searcher.Handle,
		generateanswer.TaskType:  e.Answerer.Handle,
		answerquestion.TaskType:  e.Agent.Handle,
	}
}
