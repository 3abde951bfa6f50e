// Package metrics holds the Prometheus collectors for pipeline runs and the HTTP API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "a2n"

// Pipeline metrics (recorded once per run).
var (
	PipelineRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pipeline_runs_total",
		Help:      "Pipeline runs by outcome.",
	}, []string{"outcome"})

	PipelineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pipeline_duration_seconds",
		Help:      "Wall time of a pipeline run, conversion through extraction.",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10), // 250ms → ~2m
	})

	NumbersExtractedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "numbers_extracted_total",
		Help:      "Pipeline runs whose transcript contained a number.",
	})
)

// HTTP metrics (recorded by the gin middleware).
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests processed.",
	}, []string{"method", "path_pattern", "status_code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path_pattern"})
)

func init() {
	prometheus.MustRegister(
		PipelineRunsTotal,
		PipelineDuration,
		NumbersExtractedTotal,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}

// ObservePipelineRun records one finished run.
func ObservePipelineRun(outcome string, elapsed time.Duration, found bool) {
	PipelineRunsTotal.WithLabelValues(outcome).Inc()
	PipelineDuration.Observe(elapsed.Seconds())
	if found {
		NumbersExtractedTotal.Inc()
	}
}
