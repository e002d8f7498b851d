// internal/workers/ai-conversation/evaluate-expression/handler_test.go
package evaluateexpression

import (
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"intent-workers/internal/common/errors"
	"intent-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helpers
// ==========================

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)

	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               TaskType,
		ProcessInstanceKey: key * 10,
		BpmnProcessId:      "intent-resolution",
		ElementId:          "Activity_EvaluateExpression",
		CustomHeaders:      "{}",
		Worker:             "test-worker",
		Retries:            3,
		Variables:          string(variablesJSON),
	}}
}

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	handler, err := NewHandler(HandlerOptions{
		CustomConfig: DefaultConfig(),
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return handler
}

// ==========================
// Configuration Tests
// ==========================

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.EqualError(t, (&Config{MaxJobsActive: 1}).Validate(), "timeout must be positive")
	assert.EqualError(t, (&Config{Timeout: time.Second}).Validate(), "max_jobs_active must be positive")

	_, err := NewHandler(HandlerOptions{CustomConfig: &Config{}})
	assert.Error(t, err)
}

// ==========================
// Input Parsing Tests
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	handler := createTestHandler(t)

	input, err := handler.parseInput(createMockJob(1, map[string]interface{}{
		"operation": "divide",
		"numbers":   []string{"10", "4"},
	}))
	require.NoError(t, err)
	assert.Equal(t, &Input{Operation: "divide", Numbers: []string{"10", "4"}}, input)

	tests := []struct {
		name      string
		variables map[string]interface{}
		field     string
	}{
		{"missing numbers", map[string]interface{}{"operation": "add"}, "numbers"},
		{"numeric operands", map[string]interface{}{"operation": "add", "numbers": []interface{}{1, 2}}, "numbers"},
		{"operation not a string", map[string]interface{}{"operation": 3, "numbers": []string{"1"}}, "operation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.parseInput(createMockJob(2, tt.variables))
			var stdErr *errors.StandardError
			require.True(t, stderrors.As(err, &stdErr))
			assert.Equal(t, errors.ErrCodeInputValidationFailed, stdErr.Code)
			assert.Contains(t, stdErr.Details, tt.field)
		})
	}
}

// ==========================
// Execution Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		want  Output
	}{
		{
			name:  "addition",
			input: Input{Operation: "add", Numbers: []string{"15", "25"}},
			want:  Output{Status: "success", Result: "15.0 + 25.0 = 40"},
		},
		{
			name:  "fractional division",
			input: Input{Operation: "divide", Numbers: []string{"10", "4"}},
			want:  Output{Status: "success", Result: "10.0 ÷ 4.0 = 2.5"},
		},
		{
			name:  "square root",
			input: Input{Operation: "sqrt", Numbers: []string{"16"}},
			want:  Output{Status: "success", Result: "√(16.0) = 4"},
		},
		{
			name:  "divide by zero",
			input: Input{Operation: "divide", Numbers: []string{"1", "0"}},
			want:  Output{Status: "error", Result: "Error: Cannot divide by zero", ErrorType: "calculation_error"},
		},
		{
			name:  "unknown operation",
			input: Input{Operation: "modulo", Numbers: []string{"5", "2"}},
			want: Output{
				Status:    "error",
				Result:    "Error: Unknown operation 'modulo'. Supported operations: add, subtract, multiply, divide, power, sqrt",
				ErrorType: "calculation_error",
			},
		},
		{
			name:  "overflow",
			input: Input{Operation: "power", Numbers: []string{"10", "400"}},
			want: Output{
				Status:    "error",
				Result:    "Error: Calculator API failed - calculation result is too large",
				ErrorType: "api_error",
			},
		},
	}

	handler := createTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			assert.Equal(t, &tt.want, handler.Execute(&input))
		})
	}
}
