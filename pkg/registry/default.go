// pkg/registry/default.go
package registry

const (
	TaskProcessUserInput   = "process-user-input"
	TaskEvaluateExpression = "evaluate-expression"
)

// Default describes the workers shipped in this module. Input schemas are
// plain JSON Schema documents so they can be written to disk unchanged.
func Default() *ActivityRegistry {
	return &ActivityRegistry{
		Version:     "1.0.0",
		LastUpdated: "2026-10-01T00:00:00Z",
		Activities: []Activity{
			{
				ID:                   "intent.input.process",
				DisplayName:          "Process User Input",
				Description:          "Classifies an utterance, extracts slots, and executes the selected action",
				Category:             "ai-conversation",
				Version:              "1.0.0",
				TaskType:             TaskProcessUserInput,
				ImplementationStatus: "completed",
				InputSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"utterance"},
					"properties": map[string]interface{}{
						"utterance": map[string]interface{}{"type": "string"},
						"requestId": map[string]interface{}{"type": "string"},
					},
				},
				OutputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"intent":          map[string]interface{}{"type": "string"},
						"confidence":      map[string]interface{}{"type": "number"},
						"detectionMethod": map[string]interface{}{"type": "string"},
						"extractedInfo":   map[string]interface{}{"type": "object"},
						"missingInfo":     map[string]interface{}{"type": "array"},
						"actionTaken":     map[string]interface{}{"type": "string"},
						"response":        map[string]interface{}{"type": "string"},
						"status":          map[string]interface{}{"type": "string"},
						"errorType":       map[string]interface{}{"type": "string"},
					},
				},
				ErrorCodes: []string{"INPUT_VALIDATION_FAILED", "INTENT_PROCESSING_FAILED"},
				Timeout:    "10s",
				Retries:    3,
				Workflows:  []string{"intent-resolution"},
				Tags:       []string{"intent", "nlu", "heuristic"},
			},
			{
				ID:                   "intent.math.evaluate",
				DisplayName:          "Evaluate Expression",
				Description:          "Evaluates an arithmetic operation over decimal operands",
				Category:             "ai-conversation",
				Version:              "1.0.0",
				TaskType:             TaskEvaluateExpression,
				ImplementationStatus: "completed",
				InputSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"operation", "numbers"},
					"properties": map[string]interface{}{
						"operation": map[string]interface{}{"type": "string"},
						"numbers": map[string]interface{}{
							"type":  "array",
							"items": map[string]interface{}{"type": "string"},
						},
					},
				},
				OutputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"status":    map[string]interface{}{"type": "string"},
						"result":    map[string]interface{}{"type": "string"},
						"errorType": map[string]interface{}{"type": "string"},
					},
				},
				ErrorCodes: []string{"INPUT_VALIDATION_FAILED"},
				Timeout:    "5s",
				Retries:    0,
				Workflows:  []string{"intent-resolution"},
				Tags:       []string{"calculator"},
			},
		},
	}
}
