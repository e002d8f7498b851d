// internal/intent/executor_test.go
package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecute_AskForInfo(t *testing.T) {
	got := NewExecutor().Execute(AskForInfo{
		Intent:        IntentWeather,
		MissingFields: []string{"location"},
		Message:       "where?",
	})

	assert.Equal(t, ExecutionResult{
		Type:          ResultAskForInfo,
		Response:      "where?",
		MissingFields: []string{"location"},
		Intent:        IntentWeather,
	}, got)
}

func TestExecute_AnswerDirectly(t *testing.T) {
	got := NewExecutor().Execute(AnswerDirectly{Intent: "greet", Message: "hi"})
	assert.Equal(t, ResultDirectAnswer, got.Type)
	assert.Equal(t, "hi", got.Text())
}

func TestExecute_Stubs(t *testing.T) {
	tests := []struct {
		endpoint     string
		payload      Slots
		wantEndpoint string
		wantResult   string
	}{
		{EndpointWeather, Slots{"location": "paris"}, "weather", "Weather information for paris"},
		{EndpointWeather, Slots{}, "weather", "Weather information for unknown location"},
		{EndpointFlightBooking, Slots{"origin": "oslo", "destination": "rome", "date": "monday"}, "flight_booking", "Flight booked from oslo to rome on monday"},
		{EndpointEmail, Slots{"recipient": "a@b.co", "subject": "hi", "message": "x"}, "email", "Email sent to a@b.co with subject: hi"},
		{EndpointSearch, Slots{"query": "gophers"}, "search", "Search results for: gophers"},
		{EndpointCalendar, Slots{"participants": "carol", "date": "friday", "duration": "1h"}, "calendar", "Meeting scheduled with carol on friday"},
		{EndpointCalendar, Slots{"participants": "carol"}, "calendar", "Meeting scheduled with carol on None"},
		{"translate_api", Slots{}, "translate_api", "API call completed"},
	}

	ex := NewExecutor()
	for _, tt := range tests {
		t.Run(tt.wantResult, func(t *testing.T) {
			got := ex.Execute(CallCapability{Endpoint: tt.endpoint, Payload: tt.payload})
			assert.Equal(t, ResultAPIResponse, got.Type)
			assert.Equal(t, StatusSuccess, got.Status)
			assert.Equal(t, tt.wantEndpoint, got.Endpoint)
			assert.Equal(t, tt.wantResult, got.Result)
		})
	}
}

func TestExecute_Calculator(t *testing.T) {
	ex := NewExecutor()

	payload := Slots{"operation": OpDivide, "numbers": []string{"10", "0"}}
	got := ex.Execute(CallCapability{Endpoint: EndpointCalculator, Payload: payload})
	assert.Equal(t, "calculator", got.Endpoint)
	assert.Equal(t, StatusError, got.Status)
	assert.Equal(t, ErrorKindCalculation, got.ErrorType)
	assert.Contains(t, got.Result, "divide by zero")
	assert.Equal(t, payload, got.Data)

	// operation defaults to add, JSON-decoded numbers are accepted
	got = ex.Execute(CallCapability{Endpoint: EndpointCalculator, Payload: Slots{"numbers": []any{"1", "2"}}})
	assert.Equal(t, StatusSuccess, got.Status)
	assert.Equal(t, "1.0 + 2.0 = 3", got.Result)
}

func TestExecutor_Register(t *testing.T) {
	ex := NewExecutor()
	ex.Register(EndpointWeather, func(p Slots) ExecutionResult {
		return ExecutionResult{Type: ResultAPIResponse, Endpoint: "weather", Status: StatusSuccess, Result: "sunny in " + p.String("location")}
	})

	got := ex.Execute(CallCapability{Endpoint: EndpointWeather, Payload: Slots{"location": "rome"}})
	assert.Equal(t, "sunny in rome", got.Result)
}
