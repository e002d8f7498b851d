// internal/intent/schema.go
package intent

import "regexp"

const (
	IntentCalculate       = "calculate"
	IntentWeather         = "weather"
	IntentBookFlight      = "book_flight"
	IntentSendEmail       = "send_email"
	IntentSearch          = "search"
	IntentScheduleMeeting = "schedule_meeting"
)

const (
	EndpointCalculator    = "calculator_api"
	EndpointWeather       = "weather_api"
	EndpointFlightBooking = "flight_booking_api"
	EndpointEmail         = "email_api"
	EndpointSearch        = "search_api"
	EndpointCalendar      = "calendar_api"
)

// IntentSpec is the static definition of one intent.
// An empty Endpoint means the intent is answered directly.
type IntentSpec struct {
	Name          string
	RequiredSlots []string
	Endpoint      string
	Patterns      []*regexp.Regexp
	Keywords      []string
	Clarification string
}

// Schema is the ordered, read-only intent table shared by all pipeline stages.
// Declaration order is the tie-break order for both classification phases.
type Schema struct {
	specs []IntentSpec
	index map[string]int
}

// NewSchema builds a schema from specs in the given order.
func NewSchema(specs ...IntentSpec) *Schema {
	s := &Schema{
		specs: make([]IntentSpec, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	copy(s.specs, specs)
	for i, spec := range s.specs {
		s.index[spec.Name] = i
	}
	return s
}

// Lookup returns the spec for an intent name.
func (s *Schema) Lookup(name string) (IntentSpec, bool) {
	i, ok := s.index[name]
	if !ok {
		return IntentSpec{}, false
	}
	return s.specs[i], true
}

// Intents returns intent names in declaration order.
func (s *Schema) Intents() []string {
	names := make([]string, 0, len(s.specs))
	for _, spec := range s.specs {
		names = append(names, spec.Name)
	}
	return names
}

func (s *Schema) each(fn func(IntentSpec) bool) {
	for _, spec := range s.specs {
		if !fn(spec) {
			return
		}
	}
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

var defaultSchema = NewSchema(
	IntentSpec{
		Name:          IntentCalculate,
		RequiredSlots: []string{"operation", "numbers"},
		Endpoint:      EndpointCalculator,
		Patterns: compileAll(
			`(?:calculate|compute|add|subtract|multiply|divide)\s+(.+?)\s+(?:plus|minus|times|divided by|multiply|divide)\s+(.+)`,
			`(?:what is|what's)\s+(.+?)\s+(?:plus|minus|times|divided by)\s+(.+)`,
			`(?:add|subtract|multiply|divide)\s+(.+?)\s+(?:and|to|by)\s+(.+)`,
			`(?:sum|total|result)\s+of\s+(.+?)\s+(?:and|plus)\s+(.+)`,
			`(?:calculate|compute)\s+(.+?)\s+(?:and|with)\s+(.+)`,
			`(?:math|mathematics|arithmetic)\s+(?:with|using)\s+(.+?)\s+(?:and|plus|minus|times|divided by)\s+(.+)`,
			`(?:power|exponent)\s+(.+?)\s+(?:to|raised to)\s+(.+)`,
			`(?:square root|sqrt)\s+of\s+(.+)`,
			`(?:root|radical)\s+of\s+(.+)`,
		),
		Keywords:      []string{"calculate", "compute", "add", "subtract", "multiply", "divide", "math", "sum", "total", "plus", "minus", "times"},
		Clarification: "I need to know what numbers you want to calculate with.",
	},
	IntentSpec{
		Name:          IntentWeather,
		RequiredSlots: []string{"location"},
		Endpoint:      EndpointWeather,
		Patterns: compileAll(
			`(?:weather|temperature|forecast)\s+(?:in\s+)?(.+)`,
			`(?:what's|what is)\s+the\s+weather\s+(?:like\s+)?(?:in\s+)?(.+)`,
			`(?:how's|how is)\s+the\s+weather\s+(?:in\s+)?(.+)`,
			`(?:weather|temperature)\s+(?:for|in)\s+(.+)`,
			`(?:forecast|weather forecast)\s+(?:for|in)\s+(.+)`,
			`(?:is it|will it)\s+(?:rain|snow|sunny|cloudy)\s+(?:in\s+)?(.+)`,
		),
		Keywords:      []string{"weather", "temperature", "forecast", "rain", "snow", "sunny", "cloudy", "hot", "cold"},
		Clarification: "I need to know which location you want weather information for.",
	},
	IntentSpec{
		Name:          IntentBookFlight,
		RequiredSlots: []string{"origin", "destination", "date"},
		Endpoint:      EndpointFlightBooking,
		Patterns: compileAll(
			`(?:book|reserve|schedule)\s+(?:a\s+)?flight\s+(?:from\s+)?(.+?)\s+(?:to\s+)?(.+?)(?:\s+on\s+(.+))?`,
			`(?:fly|travel|go)\s+(?:from\s+)?(.+?)\s+(?:to\s+)?(.+?)(?:\s+on\s+(.+))?`,
			`(?:flight|ticket)\s+(?:from\s+)?(.+?)\s+(?:to\s+)?(.+?)(?:\s+on\s+(.+))?`,
			`(?:i want to|i need to|can you)\s+(?:fly|travel|go)\s+(?:from\s+)?(.+?)\s+(?:to\s+)?(.+?)(?:\s+on\s+(.+))?`,
			`(?:book|reserve)\s+(?:a\s+)?(?:ticket|seat)\s+(?:from\s+)?(.+?)\s+(?:to\s+)?(.+?)(?:\s+on\s+(.+))?`,
			`(?:from\s+)?(.+?)\s+(?:to\s+)?(.+?)(?:\s+on\s+(.+))?\s+(?:flight|ticket|travel)`,
		),
		Keywords:      []string{"flight", "fly", "travel", "ticket", "airline", "airport", "from", "to", "destination", "origin"},
		Clarification: "I need the origin, destination, and date for your flight.",
	},
	IntentSpec{
		Name:          IntentSendEmail,
		RequiredSlots: []string{"recipient", "subject", "message"},
		Endpoint:      EndpointEmail,
		Patterns: compileAll(
			`(?:send|write|compose)\s+(?:an\s+)?email\s+(?:to\s+)?(.+?)(?:\s+about\s+(.+))?`,
			`(?:email|mail)\s+(.+?)(?:\s+regarding\s+(.+))?`,
			`(?:send|write)\s+(?:a\s+)?message\s+(?:to\s+)?(.+?)(?:\s+about\s+(.+))?`,
			`(?:contact|reach out to)\s+(.+?)(?:\s+about\s+(.+))?`,
			`(?:i want to|i need to)\s+(?:send|write)\s+(?:an\s+)?email\s+(?:to\s+)?(.+?)(?:\s+about\s+(.+))?`,
		),
		Keywords:      []string{"email", "mail", "send", "message", "contact", "recipient", "inbox"},
		Clarification: "I need the recipient and subject for your email.",
	},
	IntentSpec{
		Name:          IntentSearch,
		RequiredSlots: []string{"query"},
		Endpoint:      EndpointSearch,
		Patterns: compileAll(
			`(?:search|find|look up)\s+(.+)`,
			`(?:what is|what's)\s+(.+)`,
			`(?:tell me about|information about)\s+(.+)`,
			`(?:i want to know|i need to know)\s+(.+)`,
			`(?:can you tell me|do you know)\s+(.+)`,
			`(?:help me find|show me)\s+(.+)`,
		),
		Keywords:      []string{"search", "find", "look", "what", "tell", "information", "know", "help"},
		Clarification: "I need to know what you want to search for.",
	},
	IntentSpec{
		Name:          IntentScheduleMeeting,
		RequiredSlots: []string{"participants", "date", "duration"},
		Endpoint:      EndpointCalendar,
		Patterns: compileAll(
			`(?:schedule|book|arrange)\s+(?:a\s+)?meeting\s+(?:with\s+)?(.+?)(?:\s+on\s+(.+))?`,
			`(?:meet|meeting)\s+(?:with\s+)?(.+?)(?:\s+on\s+(.+))?`,
			`(?:set up|organize)\s+(?:a\s+)?meeting\s+(?:with\s+)?(.+?)(?:\s+on\s+(.+))?`,
			`(?:i want to|i need to)\s+(?:meet|schedule)\s+(?:with\s+)?(.+?)(?:\s+on\s+(.+))?`,
			`(?:appointment|call)\s+(?:with\s+)?(.+?)(?:\s+on\s+(.+))?`,
		),
		Keywords:      []string{"meeting", "schedule", "appointment", "call", "meet", "calendar", "book"},
		Clarification: "I need to know who to meet with and when.",
	},
)

// DefaultSchema returns the built-in six-intent table.
func DefaultSchema() *Schema {
	return defaultSchema
}
