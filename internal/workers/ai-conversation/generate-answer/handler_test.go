// internal/workers/ai-conversation/generate-answer/handler_test.go
package generateanswer

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "ai-web-explorer/internal/common/errors"
	"ai-web-explorer/internal/common/logger"
	"ai-web-explorer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ==========================
// Mock Implementations
// ==========================

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func newTestHandler(t *testing.T, gen *MockGenerator) *Handler {
	return NewHandler(LoadConfig(), gen, logger.NewTestLogger(t))
}

func sampleResults() []models.SearchResult {
	return []models.SearchResult{
		{Title: "A", URL: "https://a.example", Snippet: "alpha", Position: 1},
		{Title: "B", URL: "https://b.example", Snippet: "beta", Position: 2},
		{Title: "C", URL: "https://c.example", Snippet: "gamma", Position: 3},
	}
}

// ==========================
// Prompt Construction Tests
// ==========================

func TestFormatContext_PreservesOrder(t *testing.T) {
	block := FormatContext(sampleResults())

	expected := "Source: A\nURL: https://a.example\nContent: alpha\n\n" +
		"Source: B\nURL: https://b.example\nContent: beta\n\n" +
		"Source: C\nURL: https://c.example\nContent: gamma"
	assert.Equal(t, expected, block)
	assert.Less(t, strings.Index(block, "Source: A"), strings.Index(block, "Source: B"))
	assert.Less(t, strings.Index(block, "Source: B"), strings.Index(block, "Source: C"))
}

func TestFormatContext_EmptyFields(t *testing.T) {
	block := FormatContext([]models.SearchResult{{URL: "https://only-link.example"}})
	assert.Equal(t, "Source: \nURL: https://only-link.example\nContent: ", block)
}

func TestBuildPrompt_WithResults(t *testing.T) {
	prompt := BuildPrompt("What are today's news headlines?", sampleResults())

	assert.True(t, strings.HasPrefix(prompt, "You are a helpful AI assistant. Answer the following question using the provided web search results."))
	assert.Contains(t, prompt, "Question: What are today's news headlines?")
	assert.Contains(t, prompt, "Web Search Results:\n"+FormatContext(sampleResults()))
	assert.Contains(t, prompt, "Include relevant URLs when appropriate.")
}

func TestBuildPrompt_WithoutResults(t *testing.T) {
	for name, results := range map[string][]models.SearchResult{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			prompt := BuildPrompt("What is the capital of France?", results)

			assert.Equal(t, "You are a helpful AI assistant. Answer the following question clearly and concisely.\n\n"+
				"Question: What is the capital of France?\n\nAnswer:", prompt)
			assert.NotContains(t, prompt, "Web Search Results")
		})
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_GenerateAnswer_TrimsReply(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, BuildPrompt("What is the capital of France?", nil)).
		Return("\n  The capital of France is Paris.  \n", nil).Once()

	answer := newTestHandler(t, gen).GenerateAnswer(context.Background(), "What is the capital of France?", nil)

	assert.Equal(t, "The capital of France is Paris.", answer)
	gen.AssertExpectations(t)
}

func TestHandler_GenerateAnswer_UsesGroundedPrompt(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Web Search Results:") && strings.Contains(prompt, "URL: https://b.example")
	})).Return("Headlines: see https://a.example", nil).Once()

	answer := newTestHandler(t, gen).GenerateAnswer(context.Background(), "What are today's news headlines?", sampleResults())

	assert.Equal(t, "Headlines: see https://a.example", answer)
	gen.AssertNumberOfCalls(t, "Generate", 1)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_GenerateAnswer_FailureBecomesErrorAnswer(t *testing.T) {
	gen := new(MockGenerator)
	failure := apperrors.NewLLMRequestError("gemini", errors.New("connection refused"))
	gen.On("Generate", mock.Anything, mock.Anything).Return("", failure).Once()

	answer := newTestHandler(t, gen).GenerateAnswer(context.Background(), "q", sampleResults())

	assert.True(t, strings.HasPrefix(answer, "Error generating answer:"))
	assert.Equal(t, ErrorAnswerPrefix+failure.Error(), answer)
	assert.Contains(t, answer, "connection refused")
}

func TestHandler_GenerateAnswer_EmptyCompletionBecomesErrorAnswer(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("   ", nil).Once()

	answer := newTestHandler(t, gen).GenerateAnswer(context.Background(), "q", nil)

	assert.True(t, strings.HasPrefix(answer, ErrorAnswerPrefix))
	assert.Contains(t, answer, "empty completion")
}
