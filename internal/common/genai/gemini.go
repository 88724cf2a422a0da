// internal/common/genai/gemini.go
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	apperrors "ai-web-explorer/internal/common/errors"
	commonhttp "ai-web-explorer/internal/common/http"

	"github.com/tidwall/gjson"
)

const (
	GeminiService        = "gemini"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
)

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	config *Config
	client *commonhttp.Client
}

func NewGeminiClient(cfg *Config) *GeminiClient {
	return &GeminiClient{
		config: cfg,
		client: commonhttp.NewClient(cfg.Timeout),
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompt}},
		}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     c.config.Temperature,
			MaxOutputTokens: c.config.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", apperrors.NewLLMRequestError(GeminiService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return "", apperrors.NewLLMRequestError(GeminiService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.APIKey)

	resp, err := c.client.Fetch(ctx, req)
	if err != nil {
		return "", apperrors.NewLLMRequestError(GeminiService, err)
	}
	if !resp.OK() {
		detail := gjson.GetBytes(resp.Body, "error.message").String()
		return "", apperrors.NewLLMStatusError(GeminiService, resp.StatusCode, detail)
	}

	return extractGeminiText(resp.Body)
}

func (c *GeminiClient) endpoint() string {
	base := c.config.BaseURL
	if base == "" {
		base = DefaultGeminiBaseURL
	}
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimRight(base, "/"), url.PathEscape(c.config.Model))
}

// extractGeminiText concatenates the text parts of the first candidate.
func extractGeminiText(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", apperrors.NewLLMMalformedResponseError(GeminiService, "response is not valid JSON")
	}

	if reason := gjson.GetBytes(body, "promptFeedback.blockReason"); reason.Exists() {
		return "", apperrors.NewLLMMalformedResponseError(GeminiService, "prompt blocked: "+reason.String())
	}

	candidate := gjson.GetBytes(body, "candidates.0")
	if !candidate.Exists() {
		return "", apperrors.NewLLMMalformedResponseError(GeminiService, "no candidates in response")
	}

	var sb strings.Builder
	for _, part := range candidate.Get("content.parts.#.text").Array() {
		sb.WriteString(part.String())
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", apperrors.NewLLMMalformedResponseError(GeminiService,
			fmt.Sprintf("empty completion (finishReason=%s)", candidate.Get("finishReason").String()))
	}
	return text, nil
}
