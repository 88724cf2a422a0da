// internal/common/genai/openai.go
package genai

import (
	"context"
	"errors"
	"strings"

	apperrors "ai-web-explorer/internal/common/errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const OpenAIService = "openai"

// OpenAIClient calls any OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	config *Config
	client openai.Client
}

func NewOpenAIClient(cfg *Config) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{
		config: cfg,
		client: openai.NewClient(opts...),
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       openai.ChatModel(c.config.Model),
		Temperature: openai.Float(c.config.Temperature),
	}
	if c.config.MaxOutputTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(c.config.MaxOutputTokens))
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", apperrors.NewLLMStatusError(OpenAIService, apiErr.StatusCode, apiErr.Message)
		}
		return "", apperrors.NewLLMRequestError(OpenAIService, err)
	}

	if len(completion.Choices) == 0 {
		return "", apperrors.NewLLMMalformedResponseError(OpenAIService, "no choices in response")
	}
	text := completion.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", apperrors.NewLLMMalformedResponseError(OpenAIService,
			"empty completion (finishReason="+string(completion.Choices[0].FinishReason)+")")
	}
	return text, nil
}
