// internal/intent/decision.go
package intent

import "fmt"

type ActionType string

const (
	ActionAskForInfo     ActionType = "ask_for_info"
	ActionCallAPI        ActionType = "call_api"
	ActionAnswerDirectly ActionType = "answer_directly"
)

const genericClarification = "I need more information to help you."

var fieldFollowUps = map[string]string{
	"operation":    "What operation would you like to perform? (add, subtract, multiply, divide)",
	"numbers":      "What numbers would you like to calculate with?",
	"location":     "Which location would you like weather information for?",
	"origin":       "Where are you departing from?",
	"destination":  "Where are you traveling to?",
	"date":         "What date would you like?",
	"recipient":    "Who should I send the email to?",
	"subject":      "What should the email subject be?",
	"message":      "What message would you like to send?",
	"query":        "What would you like to search for?",
	"participants": "Who should attend the meeting?",
	"duration":     "How long should the meeting be?",
}

// Decision is one of AskForInfo, CallCapability or AnswerDirectly.
type Decision interface {
	Action() ActionType
	decision()
}

type AskForInfo struct {
	Intent        string
	MissingFields []string
	Message       string
}

type CallCapability struct {
	Intent   string
	Endpoint string
	Payload  Slots
}

type AnswerDirectly struct {
	Intent  string
	Payload Slots
	Message string
}

func (AskForInfo) Action() ActionType     { return ActionAskForInfo }
func (CallCapability) Action() ActionType { return ActionCallAPI }
func (AnswerDirectly) Action() ActionType { return ActionAnswerDirectly }

func (AskForInfo) decision()     {}
func (CallCapability) decision() {}
func (AnswerDirectly) decision() {}

// Decide picks the action for a classified utterance. It has no side effects.
func (s *Schema) Decide(intentName string, missing []string, slots Slots) Decision {
	spec, known := s.Lookup(intentName)

	if len(missing) > 0 {
		return AskForInfo{
			Intent:        intentName,
			MissingFields: missing,
			Message:       clarificationMessage(spec, known, missing),
		}
	}

	if known && spec.Endpoint != "" {
		return CallCapability{
			Intent:   intentName,
			Endpoint: spec.Endpoint,
			Payload:  slots,
		}
	}

	return AnswerDirectly{
		Intent:  intentName,
		Payload: slots,
		Message: directAnswer(intentName, slots),
	}
}

func clarificationMessage(spec IntentSpec, known bool, missing []string) string {
	base := genericClarification
	if known && spec.Clarification != "" {
		base = spec.Clarification
	}
	if len(missing) != 1 {
		return base
	}

	followUp, ok := fieldFollowUps[missing[0]]
	if !ok {
		followUp = fmt.Sprintf("Please provide %s.", missing[0])
	}
	return base + " " + followUp
}

func directAnswer(intentName string, slots Slots) string {
	if intentName == IntentSearch {
		return fmt.Sprintf("I'll search for information about '%s' for you.", slots.String("query"))
	}
	return fmt.Sprintf("I understand you want to %s. Let me help you with that.", intentName)
}
