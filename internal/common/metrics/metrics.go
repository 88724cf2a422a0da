// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_search_decisions_total",
			Help: "Search decisions by outcome (search, no_search, error)",
		},
		[]string{"outcome"},
	)

	WebSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_web_searches_total",
			Help: "Web search calls by outcome (results, empty, error)",
		},
		[]string{"outcome"},
	)

	WebSearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "explorer_web_search_results",
			Help:    "Number of results returned per web search",
			Buckets: []float64{0, 1, 2, 3, 5, 7, 10},
		},
	)

	AnswersGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_answers_generated_total",
			Help: "Answers produced by prompt mode and status",
		},
		[]string{"mode", "status"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "explorer_llm_request_duration_seconds",
			Help:    "Duration of LLM service calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "status"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

const (
	OutcomeSearch   = "search"
	OutcomeNoSearch = "no_search"
	OutcomeResults  = "results"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"

	StatusOK    = "ok"
	StatusError = "error"
)
