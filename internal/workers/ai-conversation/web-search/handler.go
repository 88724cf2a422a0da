// internal/workers/ai-conversation/web-search/handler.go
package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"ai-web-explorer/internal/common/camunda"
	"ai-web-explorer/internal/common/config"
	apperrors "ai-web-explorer/internal/common/errors"
	commonhttp "ai-web-explorer/internal/common/http"
	"ai-web-explorer/internal/common/logger"
	"ai-web-explorer/internal/common/metrics"
	"ai-web-explorer/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType    = "web-search"
	ServiceName = "google-cse"
)

type Handler struct {
	config       *Config
	client       *commonhttp.Client
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.With(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:       config,
		client:       commonhttp.NewClient(config.Timeout),
		logger:       log,
		errorHandler: apperrors.NewErrorHandler(log),
	}
}

// Search returns at most maxResults results in API order. It never fails:
// any service error is logged and yields an empty set.
func (h *Handler) Search(ctx context.Context, query string, maxResults int) []models.SearchResult {
	results, err := h.execute(ctx, query, maxResults)
	if err != nil {
		metrics.WebSearches.WithLabelValues(metrics.OutcomeError).Inc()
		h.logger.WithError(err).Warn("web search failed, returning empty results", map[string]interface{}{
			"query":     query,
			"errorCode": string(apperrors.CodeOf(err)),
		})
		return []models.SearchResult{}
	}

	metrics.WebSearchResults.Observe(float64(len(results)))
	if len(results) == 0 {
		metrics.WebSearches.WithLabelValues(metrics.OutcomeEmpty).Inc()
		h.logger.Info("no results found", map[string]interface{}{"query": query})
		return results
	}

	metrics.WebSearches.WithLabelValues(metrics.OutcomeResults).Inc()
	h.logger.Info("web search completed", map[string]interface{}{
		"query":       query,
		"resultCount": len(results),
	})
	return results
}

// Execute performs the search and surfaces ServiceErrors to the caller.
func (h *Handler) Execute(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	return h.execute(ctx, query, maxResults)
}

func (h *Handler) execute(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	num := config.ClampMaxResults(maxResults, h.config.MaxResults)

	searchURL, err := h.buildSearchURL(query, num)
	if err != nil {
		return nil, apperrors.NewWebSearchRequestError(ServiceName, err)
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, apperrors.NewWebSearchRequestError(ServiceName, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Fetch(ctx, req)
	if err != nil {
		return nil, apperrors.NewWebSearchRequestError(ServiceName, err)
	}
	if !resp.OK() {
		return nil, apperrors.NewWebSearchStatusError(ServiceName, resp.StatusCode)
	}

	return parseResults(resp.Body, num)
}

func (h *Handler) buildSearchURL(query string, num int) (string, error) {
	baseURL, err := url.Parse(h.config.SearchAPIBaseURL)
	if err != nil {
		return "", err
	}
	params := url.Values{}
	params.Add("key", h.config.SearchAPIKey)
	params.Add("cx", h.config.SearchEngineID)
	params.Add("q", query)
	params.Add("num", strconv.Itoa(num))
	baseURL.RawQuery = params.Encode()
	return baseURL.String(), nil
}

// parseResults maps API items to results, keeping API order and assigning
// 1-based positions. A payload without items is an empty set.
func parseResults(body []byte, limit int) ([]models.SearchResult, error) {
	check, err := responseSchema.ValidateJSON(body)
	if err != nil {
		return nil, apperrors.NewWebSearchMalformedResponseError(ServiceName, err)
	}
	if err := check.Err(); err != nil {
		return nil, apperrors.NewWebSearchMalformedResponseError(ServiceName, err)
	}

	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperrors.NewWebSearchMalformedResponseError(ServiceName, err)
	}

	results := make([]models.SearchResult, 0, len(payload.Items))
	for i, item := range payload.Items {
		if len(results) == limit {
			break
		}
		results = append(results, models.SearchResult{
			Title:    item.Title,
			URL:      item.Link,
			Snippet:  item.Snippet,
			Position: i + 1,
		})
	}
	return results, nil
}

// Handle runs a search for a Zeebe job. Search failures complete the job
// with an empty result set.
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

	results := h.Search(ctx, input.Query, input.MaxResults)
	_ = camunda.CompleteJob(ctx, client, job, &Output{
		Results:     results,
		ResultCount: len(results),
	}, h.logger)
}
