// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler fails or throws Zeebe jobs from typed errors.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// JobOutcome is what HandleJobError will do with a failed job.
type JobOutcome struct {
	Throw   bool
	Retries int
	Error   *BPMNError
	Source  *StandardError
}

// Resolve decides between failing with retries and throwing a BPMN error.
// Retries never exceed what the job has left.
func Resolve(job entities.Job, err error) JobOutcome {
	stdErr := Normalize(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	retries := bpmnErr.Retries
	if retries == 0 || job.Retries <= 0 {
		return JobOutcome{Throw: true, Error: bpmnErr, Source: stdErr}
	}
	if int(job.Retries) < retries {
		retries = int(job.Retries)
	}
	return JobOutcome{Retries: retries, Error: bpmnErr, Source: stdErr}
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// HandleJobError handles any error in a worker job
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	outcome := Resolve(job, err)
	h.logError(job, outcome)

	if outcome.Throw {
		h.throwBPMNError(ctx, client, job, outcome.Error)
		return
	}
	h.failJobWithRetries(ctx, client, job, outcome.Error, outcome.Retries)
}

func (h *ErrorHandler) failJobWithRetries(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int) {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(retries)).
		ErrorMessage(bpmnErr.Message)

	if varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			_, err := withVars.Send(ctx)
			h.reportSendError(job, err)
			return
		}
	}
	_, err := cmd.Send(ctx)
	h.reportSendError(job, err)
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			_, err := withVars.Send(ctx)
			h.reportSendError(job, err)
			return
		}
	}
	_, err := cmd.Send(ctx)
	h.reportSendError(job, err)
}

func (h *ErrorHandler) reportSendError(job entities.Job, err error) {
	if err != nil {
		h.logger.Error("Failed to report job error", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}

func (h *ErrorHandler) logError(job entities.Job, outcome JobOutcome) {
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(outcome.Source.Code),
		"bpmnErrorCode":    outcome.Error.Code,
		"message":          outcome.Error.Message,
		"details":          outcome.Source.Details,
		"retryable":        outcome.Source.Retryable,
		"retries":          outcome.Retries,
		"thrown":           outcome.Throw,
		"errorCategory":    GetErrorCategory(outcome.Source.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}
