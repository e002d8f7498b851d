// internal/workers/ai-conversation/process-user-input/models.go
package processuserinput

import "intent-workers/internal/intent"

type Input struct {
	Utterance string `json:"utterance"`
	RequestID string `json:"requestId,omitempty"`
}

// Output is the variable set the job completes with.
type Output struct {
	RequestID       string                 `json:"requestId"`
	Intent          string                 `json:"intent"`
	Confidence      float64                `json:"confidence"`
	DetectionMethod string                 `json:"detectionMethod"`
	ExtractedInfo   map[string]interface{} `json:"extractedInfo"`
	MissingInfo     []string               `json:"missingInfo"`
	ActionTaken     string                 `json:"actionTaken"`
	Response        string                 `json:"response"`
	Status          string                 `json:"status,omitempty"`
	ErrorType       string                 `json:"errorType,omitempty"`
	Cached          bool                   `json:"cached"`
}

func newOutput(requestID string, result intent.Result, cached bool) *Output {
	extracted := make(map[string]interface{}, len(result.IntentAnalysis.ExtractedInfo))
	for k, v := range result.IntentAnalysis.ExtractedInfo {
		extracted[k] = v
	}
	return &Output{
		RequestID:       requestID,
		Intent:          result.IntentAnalysis.Intent,
		Confidence:      result.IntentAnalysis.Confidence,
		DetectionMethod: string(result.IntentAnalysis.DetectionMethod),
		ExtractedInfo:   extracted,
		MissingInfo:     result.MissingInfo,
		ActionTaken:     string(result.ActionTaken),
		Response:        result.Result.Text(),
		Status:          result.Result.Status,
		ErrorType:       result.Result.ErrorType,
		Cached:          cached,
	}
}
