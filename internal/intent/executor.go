// internal/intent/executor.go
package intent

import "fmt"

// Capability serves one endpoint with the payload of a CallCapability decision.
type Capability func(payload Slots) ExecutionResult

// Executor dispatches decisions. Endpoints without a registered capability
// get a generic completion result.
type Executor struct {
	capabilities map[string]Capability
}

// NewExecutor returns an executor with the calculator and the stubbed
// weather, flight, email, search and calendar endpoints registered.
func NewExecutor() *Executor {
	return &Executor{
		capabilities: map[string]Capability{
			EndpointCalculator:    calculatorCapability,
			EndpointWeather:       weatherCapability,
			EndpointFlightBooking: flightCapability,
			EndpointEmail:         emailCapability,
			EndpointSearch:        searchCapability,
			EndpointCalendar:      calendarCapability,
		},
	}
}

// Register replaces or adds the capability behind endpoint.
func (e *Executor) Register(endpoint string, c Capability) {
	e.capabilities[endpoint] = c
}

// Execute turns a decision into its terminal result.
func (e *Executor) Execute(d Decision) ExecutionResult {
	switch d := d.(type) {
	case AskForInfo:
		return ExecutionResult{
			Type:          ResultAskForInfo,
			Response:      d.Message,
			MissingFields: d.MissingFields,
			Intent:        d.Intent,
		}
	case CallCapability:
		if c, ok := e.capabilities[d.Endpoint]; ok {
			return c(d.Payload)
		}
		return ExecutionResult{
			Type:     ResultAPIResponse,
			Endpoint: d.Endpoint,
			Result:   "API call completed",
			Status:   StatusSuccess,
		}
	case AnswerDirectly:
		return ExecutionResult{
			Type:     ResultDirectAnswer,
			Response: d.Message,
			Intent:   d.Intent,
		}
	default:
		panic(fmt.Sprintf("intent: unhandled decision %T", d))
	}
}

func calculatorCapability(payload Slots) ExecutionResult {
	op := OpAdd
	if _, set := payload["operation"]; set {
		op = payload.String("operation")
	}

	ev := Evaluate(op, payload.Strings("numbers"))
	return ExecutionResult{
		Type:      ResultAPIResponse,
		Endpoint:  "calculator",
		Result:    ev.Message,
		Status:    ev.Status,
		ErrorType: ev.ErrorKind,
		Data:      payload,
	}
}

func stubResponse(endpoint, result string) ExecutionResult {
	return ExecutionResult{
		Type:     ResultAPIResponse,
		Endpoint: endpoint,
		Result:   result,
		Status:   StatusSuccess,
	}
}

// display renders a payload value for stub messages; absent values show as None.
func display(payload Slots, name string) string {
	if _, ok := payload[name]; !ok {
		return "None"
	}
	return payload.String(name)
}

func weatherCapability(payload Slots) ExecutionResult {
	location := "unknown location"
	if _, ok := payload["location"]; ok {
		location = payload.String("location")
	}
	return stubResponse("weather", "Weather information for "+location)
}

func flightCapability(payload Slots) ExecutionResult {
	return stubResponse("flight_booking", fmt.Sprintf("Flight booked from %s to %s on %s",
		display(payload, "origin"), display(payload, "destination"), display(payload, "date")))
}

func emailCapability(payload Slots) ExecutionResult {
	return stubResponse("email", fmt.Sprintf("Email sent to %s with subject: %s",
		display(payload, "recipient"), display(payload, "subject")))
}

func searchCapability(payload Slots) ExecutionResult {
	return stubResponse("search", "Search results for: "+display(payload, "query"))
}

func calendarCapability(payload Slots) ExecutionResult {
	return stubResponse("calendar", fmt.Sprintf("Meeting scheduled with %s on %s",
		display(payload, "participants"), display(payload, "date")))
}
