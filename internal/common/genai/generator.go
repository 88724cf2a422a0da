// internal/common/genai/generator.go
package genai

import (
	"context"
	"fmt"
	"time"

	"ai-web-explorer/internal/common/config"
	"ai-web-explorer/internal/common/logger"
	"ai-web-explorer/internal/common/metrics"
)

// Generator is the hosted LLM text-completion capability.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	Provider        string
	Model           string
	APIKey          string
	BaseURL         string
	Timeout         time.Duration
	Temperature     float64
	MaxOutputTokens int
}

// FromConfig converts the llm section of the application config.
func FromConfig(cfg config.LLMConfig) *Config {
	return &Config{
		Provider:        cfg.Provider,
		Model:           cfg.Model,
		APIKey:          cfg.APIKey,
		BaseURL:         cfg.BaseURL,
		Timeout:         config.GetDuration(cfg.Timeout),
		Temperature:     cfg.Temperature,
		MaxOutputTokens: cfg.MaxOutputTokens,
	}
}

// New builds the generator for cfg.Provider, wrapped with request metrics.
func New(cfg *Config, log logger.Logger) (Generator, error) {
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("llm timeout must be positive")
	}

	var next Generator
	switch cfg.Provider {
	case config.ProviderGemini, "":
		next = NewGeminiClient(cfg)
	case config.ProviderOpenAI:
		next = NewOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}

	provider := cfg.Provider
	if provider == "" {
		provider = config.ProviderGemini
	}
	return &instrumentedGenerator{
		provider: provider,
		model:    cfg.Model,
		next:     next,
		logger: log.With(map[string]interface{}{
			"llmProvider": provider,
		}),
	}, nil
}

type instrumentedGenerator struct {
	provider string
	model    string
	next     Generator
	logger   logger.Logger
}

func (g *instrumentedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := g.next.Generate(ctx, prompt)
	elapsed := time.Since(start)

	status := metrics.StatusOK
	if err != nil {
		status = metrics.StatusError
	}
	metrics.LLMRequestDuration.WithLabelValues(g.provider, status).Observe(elapsed.Seconds())

	g.logger.Debug("LLM call completed", map[string]interface{}{
		"model":        g.model,
		"promptLength": len(prompt),
		"duration":     elapsed.String(),
		"status":       status,
	})
	return text, err
}
