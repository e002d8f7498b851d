// internal/workers/ai-conversation/process-user-input/handler.go
package processuserinput

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
	"intent-workers/internal/intent/audit"
	"intent-workers/internal/intent/cache"
	"intent-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const TaskType = registry.TaskProcessUserInput

type Handler struct {
	config      *Config
	controller  *intent.Controller
	cache       *cache.Cache
	audit       *audit.Store
	obs         *observability.Observability
	errHandler  *errors.ErrorHandler
	inputSchema map[string]interface{}
	logger      logger.Logger
}

// HandlerOptions carries the collaborators. Cache, Audit and Observability
// are optional.
type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Controller    *intent.Controller
	Cache         *cache.Cache
	Audit         *audit.Store
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

	controller := opts.Controller
	if controller == nil {
		controller = intent.NewController(intent.WithLogger(log))
	}

	store := opts.Audit
	if !cfg.AuditEnabled {
		store = nil
	}

	return &Handler{
		config:      cfg,
		controller:  controller,
		cache:       opts.Cache,
		audit:       store,
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
		h.failJob(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

// parseInput validates the job variables against the registry schema.
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

	input := &Input{Utterance: variables["utterance"].(string)}
	if id, ok := variables["requestId"].(string); ok {
		input.RequestID = id
	}
	return input, nil
}

// Execute runs the pipeline for one utterance, through the cache when one
// is configured, and records the audit row.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	requestID := input.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	if h.obs != nil {
		var span trace.Span
		ctx, span = h.obs.StartSpan(ctx, "intent.process", attribute.String("request.id", requestID))
		defer span.End()
	}

	result, cached := h.cache.Process(ctx, h.controller, input.Utterance)
	metrics.RecordResult(result)
	if h.obs != nil {
		h.obs.RecordUtterance(ctx, result.IntentAnalysis.Intent, string(result.ActionTaken))
	}

	if err := h.audit.Record(ctx, audit.EntryFromResult(requestID, result)); err != nil {
		return nil, err
	}

	h.logger.Debug("utterance resolved", map[string]interface{}{
		"requestId":       requestID,
		"intent":          result.IntentAnalysis.Intent,
		"detectionMethod": result.IntentAnalysis.DetectionMethod,
		"actionTaken":     result.ActionTaken,
		"cached":          cached,
	})

	return newOutput(requestID, result, cached), nil
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

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	code := errors.Normalize(err).Code
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(code)).Inc()
	if h.obs != nil {
		h.obs.RecordJobProcessed(ctx, TaskType, "failed")
	}
	h.errHandler.HandleJobError(ctx, client, job, err)
}
