// internal/common/metrics/metrics.go
package metrics

import (
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

	// MatchRequests counts match attempts by outcome: matched, no_match, invalid_input.
	MatchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_requests_total",
			Help: "Total number of match requests by outcome",
		},
		[]string{"outcome"},
	)

	MatchCompatibleCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_compatible_candidates",
			Help:    "Number of compatible candidates per match request",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 25, 50, 100},
		},
	)

	MatchWindowResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_recent_window_resets_total",
			Help: "Times the recent-match window was cleared because every compatible candidate was recent",
		},
	)
)

const (
	OutcomeMatched      = "matched"
	OutcomeNoMatch      = "no_match"
	OutcomeInvalidInput = "invalid_input"
)
