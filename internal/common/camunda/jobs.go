// internal/common/camunda/jobs.go
package camunda

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	apperrors "ai-web-explorer/internal/common/errors"
	"ai-web-explorer/internal/common/logger"
	"ai-web-explorer/internal/common/metrics"
	"ai-web-explorer/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// DecodeVariables validates the job variables against schema and decodes
// them into out. Failures are INVALID_INPUT service errors.
func DecodeVariables(job entities.Job, schema *validation.Schema, out interface{}) error {
	vars := job.Variables
	if strings.TrimSpace(vars) == "" {
		vars = "{}"
	}

	result, err := schema.ValidateJSON([]byte(vars))
	if err != nil {
		return apperrors.NewInvalidInputError("job variables are not valid JSON")
	}
	if err := result.Err(); err != nil {
		return apperrors.NewInvalidInputError(err.Error())
	}

	if err := json.Unmarshal([]byte(vars), out); err != nil {
		return apperrors.NewInvalidInputError("parse input: " + err.Error())
	}
	return nil
}

// CompleteJob sends output as the job's result variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}, log logger.Logger) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		log.Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return err
	}

	if _, err := cmd.Send(ctx); err != nil {
		log.Error("Failed to send complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return err
	}

	metrics.WorkerJobsCompleted.WithLabelValues(job.Type).Inc()
	log.Info("job completed", map[string]interface{}{"jobKey": job.Key})
	return nil
}

// FailJob records the failure and lets the error handler fail or throw.
func FailJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, handler *apperrors.ErrorHandler) {
	metrics.WorkerJobsFailed.WithLabelValues(job.Type, string(apperrors.CodeOf(err))).Inc()
	handler.HandleJobError(ctx, client, job, err)
}

// Track wraps a job handler with the active-jobs gauge and duration histogram.
func Track(taskType string, handler worker.JobHandler) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()
		defer active.Dec()

		start := time.Now()
		handler(client, job)
		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
	}
}
