// internal/workers/ai-conversation/evaluate-expression/models.go
package evaluateexpression

type Input struct {
	Operation string   `json:"operation"`
	Numbers   []string `json:"numbers"`
}

// Output mirrors the evaluator result. Evaluator errors complete the job
// with status "error"; they are not job failures.
type Output struct {
	Status    string `json:"status"`
	Result    string `json:"result"`
	ErrorType string `json:"errorType,omitempty"`
}
