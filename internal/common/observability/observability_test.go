package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestObservability(t *testing.T) (*Observability, *promclient.Registry, *tracetest.SpanRecorder) {
	t.Helper()
	reg := promclient.NewRegistry()
	recorder := tracetest.NewSpanRecorder()

	obs, err := New("intent-workers-test",
		WithRegisterer(reg),
		WithSpanProcessor(recorder),
		WithoutGlobal(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = obs.Shutdown(context.Background()) })
	return obs, reg, recorder
}

func TestStartSpan_IsRecorded(t *testing.T) {
	obs, _, recorder := newTestObservability(t)

	_, span := obs.StartSpan(context.Background(), "intent.process",
		attribute.String("intent", "calculate"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "intent.process", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.String("intent", "calculate"))
}

func TestMetrics_ExportedToRegistry(t *testing.T) {
	obs, reg, _ := newTestObservability(t)
	ctx := context.Background()

	obs.RecordJobProcessed(ctx, "process-user-input", "completed")
	obs.RecordJobDuration(ctx, "process-user-input", 12*time.Millisecond)
	obs.RecordUtterance(ctx, "weather", "call_api")

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	joined := strings.Join(names, ",")
	assert.Contains(t, joined, "jobs_processed")
	assert.Contains(t, joined, "jobs_duration")
	assert.Contains(t, joined, "intent_utterances")
}
