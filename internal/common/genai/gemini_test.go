// internal/common/genai/gemini_test.go
package genai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "ai-web-explorer/internal/common/errors"
	"ai-web-explorer/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createGeminiConfig(baseURL string) *Config {
	return &Config{
		Provider:    "gemini",
		Model:       "gemini-1.5-flash",
		APIKey:      "test-api-key",
		BaseURL:     baseURL,
		Timeout:     2 * time.Second,
		Temperature: 0.7,
	}
}

func geminiServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

// ==========================
// Core Functionality Tests
// ==========================

func TestGeminiClient_Generate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-api-key", r.Header.Get("x-goog-api-key"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req geminiRequest
		require.NoError(t, json.Unmarshal(raw, &req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "What is the capital of France?", req.Contents[0].Parts[0].Text)
		assert.InDelta(t, 0.7, req.GenerationConfig.Temperature, 0.0001)

		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"The capital "},{"text":"is Paris."}],"role":"model"},"finishReason":"STOP"}]}`))
	}))
	defer server.Close()

	client := NewGeminiClient(createGeminiConfig(server.URL))
	text, err := client.Generate(context.Background(), "What is the capital of France?")

	require.NoError(t, err)
	assert.Equal(t, "The capital is Paris.", text)
}

// ==========================
// Error Handling Tests
// ==========================

func TestGeminiClient_Generate_StatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode apperrors.ErrorCode
		contains string
	}{
		{"invalid key", http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`, apperrors.ErrCodeLLMRequestFailed, "API key not valid"},
		{"forbidden", http.StatusForbidden, `{"error":{"message":"permission denied"}}`, apperrors.ErrCodeLLMAuthFailed, "permission denied"},
		{"quota", http.StatusTooManyRequests, `{"error":{"message":"Resource has been exhausted"}}`, apperrors.ErrCodeLLMQuotaExceeded, "exhausted"},
		{"server error without body", http.StatusInternalServerError, ``, apperrors.ErrCodeLLMRequestFailed, "status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := geminiServer(t, tt.status, tt.body)
			_, err := NewGeminiClient(createGeminiConfig(server.URL)).Generate(context.Background(), "q")

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestGeminiClient_Generate_MalformedResponses(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		contains string
	}{
		{"not json", `<html>oops</html>`, "not valid JSON"},
		{"blocked prompt", `{"promptFeedback":{"blockReason":"SAFETY"}}`, "prompt blocked: SAFETY"},
		{"no candidates", `{"candidates":[]}`, "no candidates"},
		{"empty text", `{"candidates":[{"content":{"parts":[{"text":"  "}]},"finishReason":"MAX_TOKENS"}]}`, "finishReason=MAX_TOKENS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := geminiServer(t, http.StatusOK, tt.body)
			_, err := NewGeminiClient(createGeminiConfig(server.URL)).Generate(context.Background(), "q")

			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeLLMMalformedResponse, apperrors.CodeOf(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestGeminiClient_Generate_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"late"}]}}]}`))
	}))
	defer server.Close()

	cfg := createGeminiConfig(server.URL)
	cfg.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := NewGeminiClient(cfg).Generate(context.Background(), "q")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeLLMTimeout, apperrors.CodeOf(err))
	assert.Less(t, time.Since(start), 250*time.Millisecond)
}

func TestGeminiClient_Generate_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewGeminiClient(createGeminiConfig(url)).Generate(context.Background(), "q")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeLLMRequestFailed, apperrors.CodeOf(err))
}

// ==========================
// Factory Tests
// ==========================

func TestNew_SelectsProvider(t *testing.T) {
	log := logger.NewTestLogger(t)

	gen, err := New(createGeminiConfig("http://localhost"), log)
	require.NoError(t, err)
	inst, ok := gen.(*instrumentedGenerator)
	require.True(t, ok)
	assert.IsType(t, &GeminiClient{}, inst.next)

	cfg := createGeminiConfig("http://localhost")
	cfg.Provider = "openai"
	gen, err = New(cfg, log)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, gen.(*instrumentedGenerator).next)

	cfg.Provider = "claude-local"
	_, err = New(cfg, log)
	assert.Error(t, err)

	cfg.Provider = "gemini"
	cfg.Timeout = 0
	_, err = New(cfg, log)
	assert.Error(t, err)
}

func TestInstrumentedGenerator_PassesThrough(t *testing.T) {
	server := geminiServer(t, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"YES"}]}}]}`)

	gen, err := New(createGeminiConfig(server.URL), logger.NewTestLogger(t))
	require.NoError(t, err)

	text, err := gen.Generate(context.Background(), "Does this need search?")
	require.NoError(t, err)
	assert.Equal(t, "YES", text)
}
