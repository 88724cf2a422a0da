// internal/workers/ai-conversation/answer-question/agent_test.go
package answerquestion

import (
	"context"
	"strings"
	"testing"
	"time"

	"ai-web-explorer/internal/common/logger"
	"ai-web-explorer/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockDecider struct {
	mock.Mock
}

func (m *MockDecider) ShouldSearch(ctx context.Context, question string) bool {
	return m.Called(ctx, question).Bool(0)
}

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, query string, maxResults int) []models.SearchResult {
	args := m.Called(ctx, query, maxResults)
	results, _ := args.Get(0).([]models.SearchResult)
	return results
}

type MockAnswerGenerator struct {
	mock.Mock
}

func (m *MockAnswerGenerator) GenerateAnswer(ctx context.Context, question string, results []models.SearchResult) string {
	return m.Called(ctx, question, results).String(0)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordInvocation(ctx context.Context, mode string, duration time.Duration) {
	m.Called(ctx, mode, duration)
}

var noResults = mock.MatchedBy(func(results []models.SearchResult) bool {
	return results == nil
})

type testAgent struct {
	agent     *Agent
	decider   *MockDecider
	searcher  *MockSearcher
	generator *MockAnswerGenerator
}

func newTestAgent(t *testing.T, opts ...Option) *testAgent {
	ta := &testAgent{
		decider:   new(MockDecider),
		searcher:  new(MockSearcher),
		generator: new(MockAnswerGenerator),
	}
	ta.agent = NewAgent(LoadConfig(), ta.decider, ta.searcher, ta.generator, logger.NewTestLogger(t), opts...)
	return ta
}

func headlineResults() []models.SearchResult {
	return []models.SearchResult{
		{Title: "World news", URL: "https://news.example/world", Snippet: "Top stories today", Position: 1},
		{Title: "Tech news", URL: "https://news.example/tech", Snippet: "Chips and models", Position: 2},
	}
}

// ==========================
// End-to-End Scenario Tests
// ==========================

func TestAgent_GeneralKnowledgeQuestion_SkipsSearch(t *testing.T) {
	ta := newTestAgent(t)
	q := "What is the capital of France?"

	ta.decider.On("ShouldSearch", mock.Anything, q).Return(false).Once()
	ta.generator.On("GenerateAnswer", mock.Anything, q, noResults).
		Return("The capital of France is Paris.").Once()

	result := ta.agent.Run(context.Background(), q)

	assert.Equal(t, "The capital of France is Paris.", result.Answer)
	assert.Equal(t, models.AnswerModeGeneralKnowledge, result.Mode)
	assert.Nil(t, result.Sources)
	ta.searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	ta.generator.AssertNumberOfCalls(t, "GenerateAnswer", 1)
	ta.decider.AssertExpectations(t)
}

func TestAgent_CurrentEventsQuestion_PassesResultsInOrder(t *testing.T) {
	ta := newTestAgent(t)
	q := "What are today's news headlines?"
	results := headlineResults()

	ta.decider.On("ShouldSearch", mock.Anything, q).Return(true).Once()
	ta.searcher.On("Search", mock.Anything, q, LoadConfig().MaxResults).Return(results).Once()
	ta.generator.On("GenerateAnswer", mock.Anything, q, results).
		Return("Top stories: https://news.example/world").Once()

	result := ta.agent.Run(context.Background(), q)

	assert.Equal(t, "Top stories: https://news.example/world", result.Answer)
	assert.Equal(t, models.AnswerModeWebSearch, result.Mode)
	require.Len(t, result.Sources, 2)
	assert.Equal(t, "World news", result.Sources[0].Title)
	assert.Equal(t, "Tech news", result.Sources[1].Title)

	ta.generator.AssertNumberOfCalls(t, "GenerateAnswer", 1)
	passed := ta.generator.Calls[0].Arguments.Get(2).([]models.SearchResult)
	assert.Equal(t, results, passed)
	ta.searcher.AssertExpectations(t)
}

func TestAgent_EmptySearch_FallsBackToGeneralPrompt(t *testing.T) {
	ta := newTestAgent(t)
	q := "Latest score in the final?"

	ta.decider.On("ShouldSearch", mock.Anything, q).Return(true).Once()
	ta.searcher.On("Search", mock.Anything, q, mock.Anything).Return([]models.SearchResult{}).Once()
	ta.generator.On("GenerateAnswer", mock.Anything, q, noResults).Return("I could not find live data.").Once()

	result := ta.agent.Run(context.Background(), q)

	assert.Equal(t, models.AnswerModeNoResultsFallback, result.Mode)
	assert.Equal(t, "I could not find live data.", result.Answer)
	ta.generator.AssertNumberOfCalls(t, "GenerateAnswer", 1)
	ta.searcher.AssertNumberOfCalls(t, "Search", 1)
}

func TestAgent_GenerationFailure_StillReturnsText(t *testing.T) {
	ta := newTestAgent(t)

	ta.decider.On("ShouldSearch", mock.Anything, mock.Anything).Return(false)
	ta.generator.On("GenerateAnswer", mock.Anything, mock.Anything, mock.Anything).
		Return("Error generating answer: gemini: LLM_TIMEOUT: request timed out")

	answer := ta.agent.Answer(context.Background(), "anything")

	assert.NotEmpty(t, answer)
	assert.True(t, strings.HasPrefix(answer, "Error generating answer:"))
}

// ==========================
// Invocation Bookkeeping Tests
// ==========================

func TestAgent_Run_AssignsInvocationIDAndRecords(t *testing.T) {
	recorder := new(MockRecorder)
	ta := newTestAgent(t, WithRecorder(recorder))

	ta.decider.On("ShouldSearch", mock.Anything, mock.Anything).Return(false)
	ta.generator.On("GenerateAnswer", mock.Anything, mock.Anything, mock.Anything).Return("ok")
	recorder.On("RecordInvocation", mock.Anything, "general_knowledge", mock.AnythingOfType("time.Duration")).Twice()

	first := ta.agent.Run(context.Background(), "q1")
	second := ta.agent.Run(context.Background(), "q2")

	_, err := uuid.Parse(first.InvocationID)
	assert.NoError(t, err)
	assert.NotEqual(t, first.InvocationID, second.InvocationID)
	assert.Equal(t, "q2", second.Question)
	recorder.AssertExpectations(t)
}

func TestAgent_Run_StepsAreSequential(t *testing.T) {
	ta := newTestAgent(t)
	var order []string

	ta.decider.On("ShouldSearch", mock.Anything, mock.Anything).Return(true).
		Run(func(mock.Arguments) { order = append(order, "decide") })
	ta.searcher.On("Search", mock.Anything, mock.Anything, mock.Anything).Return(headlineResults()).
		Run(func(mock.Arguments) { order = append(order, "search") })
	ta.generator.On("GenerateAnswer", mock.Anything, mock.Anything, mock.Anything).Return("done").
		Run(func(mock.Arguments) { order = append(order, "generate") })

	ta.agent.Answer(context.Background(), "q")

	assert.Equal(t, []string{"decide", "search", "generate"}, order)
}

func TestInputSchema_RejectsBlankQuestion(t *testing.T) {
	result, err := inputSchema.ValidateJSON([]byte(`{"question":""}`))
	require.NoError(t, err)
	assert.False(t, result.Valid)
}
