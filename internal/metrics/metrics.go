package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DocumentsUploaded counts created document records by category.
	DocumentsUploaded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "firmdesk_documents_uploaded_total",
		Help: "Documents uploaded, by category.",
	}, []string{"category"})

	// PipelineRuns counts classification pipeline completions by result.
	PipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "firmdesk_pipeline_runs_total",
		Help: "Classification pipeline runs, by result.",
	}, []string{"result"})

	// BranchOutcomes counts type-specific processing runs by branch and outcome.
	BranchOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "firmdesk_branch_outcomes_total",
		Help: "Type-specific processor runs, by branch and outcome.",
	}, []string{"branch", "outcome"})

	// PipelineDuration observes end-to-end classification stage latency.
	PipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "firmdesk_pipeline_duration_seconds",
		Help:    "Classification stage duration.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	// RemindersSent counts notice deadline reminder emails.
	RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "firmdesk_reminders_sent_total",
		Help: "Notice deadline reminder emails sent.",
	})
)
