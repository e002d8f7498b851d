// internal/intent/decision_test.go
package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Missing Fields
// ==========================

func TestMissing(t *testing.T) {
	s := DefaultSchema()

	tests := []struct {
		name   string
		intent string
		slots  Slots
		want   []string
	}{
		{"all present", IntentCalculate, Slots{"operation": "add", "numbers": []string{"1", "2"}}, []string{}},
		{"empty list", IntentCalculate, Slots{"operation": "add", "numbers": []string{}}, []string{"numbers"}},
		{"nil slots", IntentBookFlight, nil, []string{"origin", "destination", "date"}},
		{"empty string", IntentWeather, Slots{"location": ""}, []string{"location"}},
		{"declared order kept", IntentScheduleMeeting, Slots{"date": "monday"}, []string{"participants", "duration"}},
		{"decoded json list", IntentCalculate, Slots{"operation": "add", "numbers": []any{}}, []string{"numbers"}},
		{"unknown intent", "order_pizza", Slots{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Missing(tt.intent, tt.slots))
		})
	}
}

func TestMissing_ExactlyRequiredAbsent(t *testing.T) {
	s := DefaultSchema()
	for _, name := range s.Intents() {
		spec, ok := s.Lookup(name)
		require.True(t, ok)

		// Every subset of required slots filled leaves exactly the complement missing.
		for mask := 0; mask < 1<<len(spec.RequiredSlots); mask++ {
			slots := Slots{"unrelated": "x"}
			var want []string
			for i, field := range spec.RequiredSlots {
				if mask&(1<<i) != 0 {
					slots[field] = "value"
				} else {
					want = append(want, field)
				}
			}
			got := s.Missing(name, slots)
			if want == nil {
				assert.Empty(t, got)
				continue
			}
			assert.Equal(t, want, got, "intent %s mask %b", name, mask)
		}
	}
}

// ==========================
// Decide
// ==========================

func TestDecide_AskForInfo(t *testing.T) {
	s := DefaultSchema()

	d := s.Decide(IntentWeather, []string{"location"}, Slots{})
	ask, ok := d.(AskForInfo)
	require.True(t, ok)
	assert.Equal(t, ActionAskForInfo, d.Action())
	assert.Equal(t, []string{"location"}, ask.MissingFields)
	assert.Equal(t,
		"I need to know which location you want weather information for. Which location would you like weather information for?",
		ask.Message)

	d = s.Decide(IntentSendEmail, []string{"subject", "message"}, Slots{"recipient": "a@b.co"})
	assert.Equal(t, "I need the recipient and subject for your email.", d.(AskForInfo).Message)
}

func TestDecide_ClarificationFallbacks(t *testing.T) {
	s := NewSchema(IntentSpec{Name: "order_pizza", RequiredSlots: []string{"topping"}})

	d := s.Decide("order_pizza", []string{"topping"}, Slots{})
	assert.Equal(t, "I need more information to help you. Please provide topping.", d.(AskForInfo).Message)

	d = s.Decide("unknown", []string{"a", "b"}, Slots{})
	assert.Equal(t, "I need more information to help you.", d.(AskForInfo).Message)
}

func TestDecide_CallCapability(t *testing.T) {
	slots := Slots{"location": "paris"}
	d := DefaultSchema().Decide(IntentWeather, nil, slots)

	call, ok := d.(CallCapability)
	require.True(t, ok)
	assert.Equal(t, ActionCallAPI, d.Action())
	assert.Equal(t, EndpointWeather, call.Endpoint)
	assert.Equal(t, slots, call.Payload)
}

func TestDecide_AnswerDirectly(t *testing.T) {
	s := NewSchema(
		IntentSpec{Name: IntentSearch, RequiredSlots: []string{"query"}},
		IntentSpec{Name: "greet"},
	)

	d := s.Decide(IntentSearch, nil, Slots{"query": "gophers"})
	answer, ok := d.(AnswerDirectly)
	require.True(t, ok)
	assert.Equal(t, ActionAnswerDirectly, d.Action())
	assert.Equal(t, "I'll search for information about 'gophers' for you.", answer.Message)

	d = s.Decide("greet", nil, Slots{})
	assert.Equal(t, "I understand you want to greet. Let me help you with that.", d.(AnswerDirectly).Message)

	d = s.Decide("not_in_schema", []string{}, Slots{})
	assert.IsType(t, AnswerDirectly{}, d)
}
