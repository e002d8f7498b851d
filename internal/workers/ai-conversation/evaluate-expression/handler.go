// internal/workers/ai-conversation/evaluate-expression/handler.go
package evaluateexpression

import (
	"context"
	"fmt"

	"intent-workers/internal/common/config"
	"intent-workers/internal/common/errors"
	"intent-workers/internal/common/logger"
	"intent-workers/internal/common/metrics"
	"intent-workers/internal/common/observability"
	"intent-workers/internal/common/validation"
	"intent-workers/internal/intent"
	"intent-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = registry.TaskEvaluateExpression

type Handler struct {
	config      *Config
	obs         *observability.Observability
	errHandler  *errors.ErrorHandler
	inputSchema map[string]interface{}
	logger      logger.Logger
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Observability *observability.Observability
	Registry      *registry.ActivityRegistry
	Logger        logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	cfg := opts.CustomConfig
	if cfg == nil {
		cfg = ConfigFromAppConfig(opts.AppConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.With(map[string]interface{}{"taskType": TaskType})

	reg := opts.Registry
	if reg == nil {
		reg = registry.Default()
	}
	activity, ok := reg.Find(TaskType)
	if !ok {
		return nil, fmt.Errorf("activity registry has no entry for %s", TaskType)
	}

	return &Handler{
		config:      cfg,
		obs:         opts.Observability,
		errHandler:  errors.NewErrorHandler(log),
		inputSchema: activity.InputSchema,
		logger:      log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(job)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.Normalize(err).Code)).Inc()
		if h.obs != nil {
			h.obs.RecordJobProcessed(ctx, TaskType, "failed")
		}
		h.errHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, h.Execute(input))
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewInputValidationError(fmt.Sprintf("parse variables: %v", err))
	}

	result, err := validation.ValidateRaw(variables, h.inputSchema)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if !result.Valid {
		return nil, errors.NewInputValidationError(result.Error())
	}

	var input Input
	if err := job.GetVariablesAs(&input); err != nil {
		return nil, errors.NewInputValidationError(fmt.Sprintf("parse input: %v", err))
	}
	return &input, nil
}

// Execute evaluates the operation. It never fails.
func (h *Handler) Execute(input *Input) *Output {
	eval := intent.Evaluate(input.Operation, input.Numbers)
	metrics.RecordEvaluation(eval.Status, eval.ErrorKind)

	if eval.Failed() {
		h.logger.Debug("evaluation rejected", map[string]interface{}{
			"operation": input.Operation,
			"errorKind": eval.ErrorKind,
			"message":   eval.Message,
		})
	}

	return &Output{
		Status:    eval.Status,
		Result:    eval.Message,
		ErrorType: eval.ErrorKind,
	}
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	if h.obs != nil {
		h.obs.RecordJobProcessed(ctx, TaskType, "completed")
	}
}
