// internal/api/handlers.go
package api

import (
	"net/http"
	"time"

	"intent-workers/internal/common/errors"
	"intent-workers/internal/common/metrics"
	"intent-workers/internal/common/validation"
	"intent-workers/internal/intent"
	"intent-workers/internal/intent/audit"
	"intent-workers/pkg/registry"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrorResponse is the body of every non-2xx reply from the v1 routes.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: s.service,
		Version: s.version,
		Time:    time.Now().Format(time.RFC3339),
	})
}

func (s *Server) readiness(c echo.Context) error {
	resp := HealthResponse{Status: "ready", Time: time.Now().Format(time.RFC3339)}
	if s.ready != nil {
		if err := s.ready(c.Request().Context()); err != nil {
			resp.Status = "not ready"
			resp.Error = err.Error()
			return c.JSON(http.StatusServiceUnavailable, resp)
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) processIntent(c echo.Context) error {
	body, stdErr := s.bind(c, registry.TaskProcessUserInput)
	if stdErr != nil {
		return s.fail(c, http.StatusBadRequest, stdErr)
	}

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if id, ok := body["requestId"].(string); ok && id != "" {
		requestID = id
	}
	utterance, ok := body["utterance"].(string)
	if !ok {
		return s.fail(c, http.StatusBadRequest, errors.NewInputValidationError("utterance: must be a string"))
	}

	ctx := c.Request().Context()
	if s.obs != nil {
		var span trace.Span
		ctx, span = s.obs.StartSpan(ctx, "http.intents.process", attribute.String("request.id", requestID))
		defer span.End()
	}

	result, cached := s.cache.Process(ctx, s.controller, utterance)
	metrics.RecordResult(result)
	if s.obs != nil {
		s.obs.RecordUtterance(ctx, result.IntentAnalysis.Intent, string(result.ActionTaken))
	}

	if err := s.audit.Record(ctx, audit.EntryFromResult(requestID, result)); err != nil {
		return s.fail(c, http.StatusServiceUnavailable, errors.Normalize(err))
	}

	if cached {
		c.Response().Header().Set("X-Cache", "hit")
	} else {
		c.Response().Header().Set("X-Cache", "miss")
	}
	return c.JSON(http.StatusOK, result)
}

// calculate answers 200 for evaluator errors too; the body carries the status.
func (s *Server) calculate(c echo.Context) error {
	body, stdErr := s.bind(c, registry.TaskEvaluateExpression)
	if stdErr != nil {
		return s.fail(c, http.StatusBadRequest, stdErr)
	}

	operation, _ := body["operation"].(string)
	raw, _ := body["numbers"].([]interface{})
	numbers := make([]string, 0, len(raw))
	for _, n := range raw {
		str, ok := n.(string)
		if !ok {
			return s.fail(c, http.StatusBadRequest, errors.NewInputValidationError("numbers: items must be strings"))
		}
		numbers = append(numbers, str)
	}

	eval := intent.Evaluate(operation, numbers)
	metrics.RecordEvaluation(eval.Status, eval.ErrorKind)
	return c.JSON(http.StatusOK, eval)
}

// bind decodes a JSON object body and validates it against the input schema
// registered for taskType.
func (s *Server) bind(c echo.Context, taskType string) (map[string]interface{}, *errors.StandardError) {
	body := map[string]interface{}{}
	if err := new(echo.DefaultBinder).BindBody(c, &body); err != nil {
		return nil, errors.NewInputValidationError("request body must be a JSON object")
	}

	result, err := validation.ValidateRaw(body, s.schemas[taskType])
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if !result.Valid {
		return nil, errors.NewInputValidationError(result.Error())
	}
	return body, nil
}

func (s *Server) fail(c echo.Context, status int, stdErr *errors.StandardError) error {
	s.logger.Warn("request rejected", map[string]interface{}{
		"route":     c.Path(),
		"errorCode": string(stdErr.Code),
		"details":   stdErr.Details,
	})
	return c.JSON(status, ErrorResponse{
		Code:    string(stdErr.Code),
		Message: stdErr.Message,
		Details: stdErr.Details,
	})
}
