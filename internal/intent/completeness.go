// internal/intent/completeness.go
package intent

// Missing returns the required slots of intentName that are absent or empty
// in slots, in declared order. Unknown intents never miss anything.
func (s *Schema) Missing(intentName string, slots Slots) []string {
	missing := []string{}

	spec, ok := s.Lookup(intentName)
	if !ok {
		return missing
	}

	for _, field := range spec.RequiredSlots {
		if isEmptySlot(slots[field]) {
			missing = append(missing, field)
		}
	}
	return missing
}

func isEmptySlot(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	case bool:
		return !val
	case float64:
		return val == 0
	case int:
		return val == 0
	default:
		return false
	}
}
