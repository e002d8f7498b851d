// internal/intent/extractor.go
package intent

import (
	"regexp"
	"strings"
)

var (
	numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

	locationPatterns = compileAll(
		`(?:in|at|for)\s+([a-zA-Z\s]+?)(?:\s|$)`,
		`weather\s+(?:in|at|for)\s+([a-zA-Z\s]+?)(?:\s|$)`,
	)
	capitalizedPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)

	fromToPattern = regexp.MustCompile(`(?:from|departing)\s+([a-zA-Z\s]+?)\s+(?:to|arriving at)\s+([a-zA-Z\s]+?)(?:\s|$)`)

	datePatterns = compileAll(
		`(?:on|date|when)\s+([a-zA-Z]+\s+\d{1,2},?\s+\d{4})`,
		`(?:on|date|when)\s+(\d{1,2}/\d{1,2}/\d{4})`,
		`(?:on|date|when)\s+(\d{1,2}-\d{1,2}-\d{4})`,
	)

	emailPattern   = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	subjectPattern = regexp.MustCompile(`(?:about|regarding|subject)\s+([a-zA-Z\s]+?)(?:\s|$)`)
	withPattern    = regexp.MustCompile(`(?:with|meeting with)\s+([a-zA-Z\s]+?)(?:\s|$)`)

	searchKeywords = []string{"search", "find", "look", "what", "tell", "information", "know", "help"}
)

// Extract builds the slot mapping for an intent. A nil match selects keyword
// mode, which rescans text with per-intent sub-patterns. Unknown intents
// yield an empty mapping.
func Extract(intentName string, m *Match, text string) Slots {
	if m != nil {
		return extractFromMatch(intentName, *m, text)
	}
	return extractByKeywords(intentName, text)
}

// DetectOperation scans for operator words and symbols in fixed priority
// order. Nothing found means add.
func DetectOperation(text string) string {
	text = Normalize(text)
	switch {
	case containsAny(text, "plus", "+"):
		return OpAdd
	case containsAny(text, "minus", "-"):
		return OpSubtract
	case containsAny(text, "times", "*", "multiply"):
		return OpMultiply
	case containsAny(text, "divide", "/", "divided by"):
		return OpDivide
	case containsAny(text, "power", "exponent", "raised to", "^"):
		return OpPower
	case containsAny(text, "square root", "sqrt", "root", "radical"):
		return OpSqrt
	default:
		return OpAdd
	}
}

// parseCalculation handles single-capture calculate forms. Only the four basic
// operators are recognized here.
func parseCalculation(text string) Slots {
	op := OpAdd
	switch {
	case containsAny(text, "plus", "+"):
		op = OpAdd
	case containsAny(text, "minus", "-"):
		op = OpSubtract
	case containsAny(text, "times", "*", "multiply"):
		op = OpMultiply
	case containsAny(text, "divide", "/"):
		op = OpDivide
	}
	return Slots{"operation": op, "numbers": findNumbers(text)}
}

func extractFromMatch(intentName string, m Match, text string) Slots {
	slots := Slots{}

	switch intentName {
	case IntentCalculate:
		if second, ok := m.Group(1); ok && second != "" {
			numbers := []string{}
			for i := 0; i < m.Len(); i++ {
				if g, ok := m.Group(i); ok && g != "" {
					numbers = append(numbers, findNumbers(strings.TrimSpace(g))...)
				}
			}
			slots["operation"] = DetectOperation(text)
			slots["numbers"] = numbers
			break
		}
		rest, _ := m.Group(0)
		if containsAny(strings.ToLower(text), "square root", "sqrt") {
			slots["operation"] = OpSqrt
			slots["numbers"] = findNumbers(rest)
			break
		}
		for k, v := range parseCalculation(rest) {
			slots[k] = v
		}

	case IntentWeather:
		slots.setIfPresent("location", m.trimmed(0))

	case IntentBookFlight:
		slots.setIfPresent("origin", m.trimmed(0))
		slots.setIfPresent("destination", m.trimmed(1))
		slots.setIfPresent("date", m.trimmed(2))

	case IntentSendEmail:
		slots.setIfPresent("recipient", m.trimmed(0))
		slots.setIfPresent("subject", m.trimmed(1))

	case IntentSearch:
		slots.setIfPresent("query", m.trimmed(0))

	case IntentScheduleMeeting:
		slots.setIfPresent("participants", m.trimmed(0))
		slots.setIfPresent("date", m.trimmed(1))
	}

	return slots
}

func extractByKeywords(intentName string, text string) Slots {
	slots := Slots{}

	switch intentName {
	case IntentCalculate:
		slots["operation"] = DetectOperation(text)
		slots["numbers"] = findNumbers(text)

	case IntentWeather:
		if loc, ok := firstGroup(locationPatterns, text); ok {
			slots.setIfPresent("location", loc)
		} else if loc := capitalizedPattern.FindString(text); loc != "" {
			slots["location"] = loc
		}

	case IntentBookFlight:
		if sm := fromToPattern.FindStringSubmatch(text); sm != nil {
			slots.setIfPresent("origin", strings.TrimSpace(sm[1]))
			slots.setIfPresent("destination", strings.TrimSpace(sm[2]))
		}
		if date, ok := firstGroup(datePatterns, text); ok {
			slots.setIfPresent("date", date)
		}

	case IntentSendEmail:
		if addr := emailPattern.FindString(text); addr != "" {
			slots["recipient"] = addr
		}
		if sm := subjectPattern.FindStringSubmatch(text); sm != nil {
			slots.setIfPresent("subject", strings.TrimSpace(sm[1]))
		}

	case IntentSearch:
		query := text
		for _, kw := range searchKeywords {
			if _, after, found := strings.Cut(text, kw); found {
				query = strings.TrimSpace(after)
				break
			}
		}
		slots.setIfPresent("query", query)

	case IntentScheduleMeeting:
		if sm := withPattern.FindStringSubmatch(text); sm != nil {
			slots.setIfPresent("participants", strings.TrimSpace(sm[1]))
		}
		if date, ok := firstGroup(datePatterns, text); ok {
			slots.setIfPresent("date", date)
		}
	}

	return slots
}

// firstGroup returns the trimmed first capture of the first pattern that matches.
func firstGroup(patterns []*regexp.Regexp, text string) (string, bool) {
	for _, re := range patterns {
		if sm := re.FindStringSubmatch(text); sm != nil {
			return strings.TrimSpace(sm[1]), true
		}
	}
	return "", false
}

func findNumbers(text string) []string {
	found := numberPattern.FindAllString(text, -1)
	if found == nil {
		return []string{}
	}
	return found
}

func containsAny(text string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
