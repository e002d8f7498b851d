// internal/common/metrics/metrics.go
package metrics

import (
	"intent-workers/internal/intent"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	IntentClassifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intent_classifications_total",
			Help: "Utterances classified, by intent and detection method",
		},
		[]string{"intent", "method"},
	)

	IntentActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intent_actions_total",
			Help: "Decisions executed, by action type",
		},
		[]string{"action"},
	)

	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intent_calculation_errors_total",
			Help: "Calculator evaluations that ended in an error",
		},
		[]string{"error_type"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intent_cache_lookups_total",
			Help: "Result cache lookups, by outcome (hit, miss, error)",
		},
		[]string{"outcome"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP API requests by route and status code",
		},
		[]string{"route", "code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP API request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

// RecordResult counts one processed utterance.
func RecordResult(result intent.Result) {
	IntentClassifications.WithLabelValues(
		result.IntentAnalysis.Intent,
		string(result.IntentAnalysis.DetectionMethod),
	).Inc()
	IntentActions.WithLabelValues(string(result.ActionTaken)).Inc()
	RecordEvaluation(result.Result.Status, result.Result.ErrorType)
}

// RecordEvaluation counts a calculator error; successes are not recorded.
func RecordEvaluation(status, errorType string) {
	if status == intent.StatusError && errorType != "" {
		CalculationErrors.WithLabelValues(errorType).Inc()
	}
}
