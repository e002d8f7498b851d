// internal/intent/controller.go
package intent

import (
	"intent-workers/internal/common/logger"
)

// Controller runs the full pipeline for one utterance at a time. It holds no
// per-call state and is safe for concurrent use once constructed.
type Controller struct {
	schema   *Schema
	executor *Executor
	logger   logger.Logger
}

type Option func(*Controller)

func WithSchema(s *Schema) Option {
	return func(c *Controller) { c.schema = s }
}

func WithExecutor(e *Executor) Option {
	return func(c *Controller) { c.executor = e }
}

func WithLogger(l logger.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

func NewController(opts ...Option) *Controller {
	c := &Controller{
		schema:   DefaultSchema(),
		executor: NewExecutor(),
		logger:   logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Schema returns the intent table the controller classifies against.
func (c *Controller) Schema() *Schema { return c.schema }

// Classify runs only the classification and extraction stages.
func (c *Controller) Classify(utterance string) Classification {
	return Classify(c.schema, utterance)
}

// ProcessInput classifies, checks completeness, decides and executes. It
// never fails; errors are carried in the returned ExecutionResult.
func (c *Controller) ProcessInput(utterance string) Result {
	classification := Classify(c.schema, utterance)
	log := c.logger.WithFields(map[string]interface{}{
		"intent":          classification.Intent,
		"detectionMethod": classification.DetectionMethod,
	})
	log.Debug("Intent classified", map[string]interface{}{
		"confidence":    classification.Confidence,
		"extractedInfo": classification.ExtractedInfo,
	})

	missing := c.schema.Missing(classification.Intent, classification.ExtractedInfo)
	decision := c.schema.Decide(classification.Intent, missing, classification.ExtractedInfo)
	result := c.executor.Execute(decision)

	log.Debug("Action executed", map[string]interface{}{
		"missingInfo": missing,
		"actionTaken": decision.Action(),
		"status":      result.Status,
	})

	return Result{
		Input:          utterance,
		IntentAnalysis: classification,
		MissingInfo:    missing,
		ActionTaken:    decision.Action(),
		Result:         result,
	}
}
