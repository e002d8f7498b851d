// internal/intent/controller_test.go
package intent

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"intent-workers/internal/common/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestProcessInput_Scenarios(t *testing.T) {
	c := NewController(WithLogger(logger.NewTestLogger(t)))

	tests := []struct {
		input       string
		wantIntent  string
		wantMethod  DetectionMethod
		wantMissing []string
		wantAction  ActionType
		wantStatus  string
		wantText    string
	}{
		{
			input:       "calculate 15 plus 27",
			wantIntent:  IntentCalculate,
			wantMethod:  DetectionPattern,
			wantMissing: []string{},
			wantAction:  ActionCallAPI,
			wantStatus:  StatusSuccess,
			wantText:    "15.0 + 27.0 = 42",
		},
		{
			input:       "calculate something",
			wantIntent:  IntentCalculate,
			wantMethod:  DetectionKeywords,
			wantMissing: []string{"numbers"},
			wantAction:  ActionAskForInfo,
			wantText:    "I need to know what numbers you want to calculate with. What numbers would you like to calculate with?",
		},
		{
			input:       "square root of 16",
			wantIntent:  IntentCalculate,
			wantMethod:  DetectionPattern,
			wantMissing: []string{},
			wantAction:  ActionCallAPI,
			wantStatus:  StatusSuccess,
			wantText:    "√(16.0) = 4",
		},
		{
			input:       "divide 10 by 0",
			wantIntent:  IntentCalculate,
			wantMethod:  DetectionPattern,
			wantMissing: []string{},
			wantAction:  ActionCallAPI,
			wantStatus:  StatusError,
			wantText:    "Error: Cannot divide by zero",
		},
		{
			input:       "calculate 5",
			wantIntent:  IntentCalculate,
			wantMethod:  DetectionKeywords,
			wantMissing: []string{},
			wantAction:  ActionCallAPI,
			wantStatus:  StatusError,
			wantText:    "Error: Need at least two numbers for calculation",
		},
		{
			input:       "from kualalumpur to kochi on july 1 2025",
			wantIntent:  IntentBookFlight,
			wantMethod:  DetectionKeywords,
			wantMissing: []string{},
			wantAction:  ActionCallAPI,
			wantStatus:  StatusSuccess,
			wantText:    "Flight booked from kualalumpur to kochi on july 1 2025",
		},
		{
			input:       "book a flight from london to paris",
			wantIntent:  IntentBookFlight,
			wantMethod:  DetectionPattern,
			wantMissing: []string{"date"},
			wantAction:  ActionAskForInfo,
			wantText:    "I need the origin, destination, and date for your flight. What date would you like?",
		},
		{
			input:       "send email to john@example.com",
			wantIntent:  IntentSendEmail,
			wantMethod:  DetectionPattern,
			wantMissing: []string{"subject", "message"},
			wantAction:  ActionAskForInfo,
			wantText:    "I need the recipient and subject for your email.",
		},
		{
			input:       "what's the weather in new york",
			wantIntent:  IntentWeather,
			wantMethod:  DetectionPattern,
			wantMissing: []string{},
			wantAction:  ActionCallAPI,
			wantStatus:  StatusSuccess,
			wantText:    "Weather information for new york",
		},
		{
			input:       "help",
			wantIntent:  IntentSearch,
			wantMethod:  DetectionKeywords,
			wantMissing: []string{"query"},
			wantAction:  ActionAskForInfo,
			wantText:    "I need to know what you want to search for. What would you like to search for?",
		},
		{
			input:       "hello there",
			wantIntent:  IntentSearch,
			wantMethod:  DetectionDefault,
			wantMissing: []string{},
			wantAction:  ActionCallAPI,
			wantStatus:  StatusSuccess,
			wantText:    "Search results for: hello there",
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := c.ProcessInput(tt.input)

			assert.Equal(t, tt.input, got.Input)
			assert.Equal(t, tt.wantIntent, got.IntentAnalysis.Intent)
			assert.Equal(t, tt.wantMethod, got.IntentAnalysis.DetectionMethod)
			assert.Equal(t, tt.wantMissing, got.MissingInfo)
			assert.Equal(t, tt.wantAction, got.ActionTaken)
			assert.Equal(t, tt.wantStatus, got.Result.Status)
			assert.Equal(t, tt.wantText, got.Result.Text())
		})
	}
}

func TestProcessInput_CalculateEndToEnd(t *testing.T) {
	got := NewController().ProcessInput("calculate 15 plus 27")

	assert.Equal(t, 0.9, got.IntentAnalysis.Confidence)
	want := ExecutionResult{
		Type:     ResultAPIResponse,
		Endpoint: "calculator",
		Result:   "15.0 + 27.0 = 42",
		Status:   StatusSuccess,
		Data:     Slots{"operation": OpAdd, "numbers": []string{"15", "27"}},
	}
	if diff := cmp.Diff(want, got.Result); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessInput_ConcurrentCallsAreIndependent(t *testing.T) {
	c := NewController()
	inputs := []string{"calculate 15 plus 27", "weather in paris", "divide 1 by 3", "thanks"}

	want := make([]Result, len(inputs))
	for i, in := range inputs {
		want[i] = c.ProcessInput(in)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for n := 0; n < 16; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			i := n % len(inputs)
			if diff := cmp.Diff(want[i], c.ProcessInput(inputs[i])); diff != "" {
				errs <- diff
			}
		}(n)
	}
	wg.Wait()
	close(errs)

	for diff := range errs {
		t.Error(diff)
	}
}

func TestController_Options(t *testing.T) {
	s := NewSchema(IntentSpec{Name: "greet", Keywords: []string{"hello"}})
	c := NewController(WithSchema(s), WithExecutor(NewExecutor()))

	require.Same(t, s, c.Schema())
	got := c.ProcessInput("hello")
	assert.Equal(t, ActionAnswerDirectly, got.ActionTaken)
	assert.Equal(t, "I understand you want to greet. Let me help you with that.", got.Result.Response)
}
