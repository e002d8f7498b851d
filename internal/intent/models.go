// internal/intent/models.go
package intent

type DetectionMethod string

const (
	DetectionPattern  DetectionMethod = "pattern"
	DetectionKeywords DetectionMethod = "keywords"
	DetectionDefault  DetectionMethod = "default"
)

// Fixed confidence per detection method.
const (
	ConfidencePattern  = 0.9
	ConfidenceKeywords = 0.7
	ConfidenceDefault  = 0.3
)

// Slots maps slot names to extracted values. Values are string or []string.
type Slots map[string]any

// String returns the slot as a string, or "" when unset or not a string.
func (s Slots) String(name string) string {
	if v, ok := s[name].(string); ok {
		return v
	}
	return ""
}

// Strings returns the slot as a string list, or nil when unset or not a list.
// Lists decoded from JSON arrive as []any and are converted.
func (s Slots) Strings(name string) []string {
	switch v := s[name].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil
			}
			out = append(out, str)
		}
		return out
	}
	return nil
}

func (s Slots) setIfPresent(name, value string) {
	if value != "" {
		s[name] = value
	}
}

// Classification is the classifier output for one utterance.
type Classification struct {
	Intent          string          `json:"intent"`
	Confidence      float64         `json:"confidence"`
	ExtractedInfo   Slots           `json:"extracted_info"`
	RawInput        string          `json:"raw_input"`
	DetectionMethod DetectionMethod `json:"detection_method"`
}

// ExecutionResult is the terminal output of an executed decision.
type ExecutionResult struct {
	Type          string   `json:"type"`
	Response      string   `json:"response,omitempty"`
	MissingFields []string `json:"missing_fields,omitempty"`
	Intent        string   `json:"intent,omitempty"`
	Endpoint      string   `json:"endpoint,omitempty"`
	Result        string   `json:"result,omitempty"`
	Status        string   `json:"status,omitempty"`
	ErrorType     string   `json:"error_type,omitempty"`
	Data          Slots    `json:"data,omitempty"`
}

const (
	ResultAskForInfo   = "ask_for_info"
	ResultAPIResponse  = "api_response"
	ResultDirectAnswer = "direct_answer"
)

// Text returns the human-readable part of the result.
func (r ExecutionResult) Text() string {
	if r.Response != "" {
		return r.Response
	}
	return r.Result
}

// Result is everything ProcessInput reports for one utterance.
type Result struct {
	Input          string          `json:"input"`
	IntentAnalysis Classification  `json:"intent_analysis"`
	MissingInfo    []string        `json:"missing_info"`
	ActionTaken    ActionType      `json:"action_taken"`
	Result         ExecutionResult `json:"result"`
}
