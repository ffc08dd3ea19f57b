package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cubephase_http_requests_total",
		Help: "Total number of HTTP requests, by route, method and status",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cubephase_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
	}, []string{"route", "method"})

	PipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cubephase_pipeline_duration_seconds",
		Help:    "Duration of the inference pipeline, by stage",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
	}, []string{"stage"})

	WindowsClassifiedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cubephase_windows_classified_total",
		Help: "Total number of windows sent to the classifier",
	})

	PhasePredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cubephase_phase_predictions_total",
		Help: "Predicted phases, by phase",
	}, []string{"phase"})

	AnalyzeCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cubephase_analyze_cache_total",
		Help: "Prediction cache lookups, by result",
	}, []string{"result"})

	VideosUploadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cubephase_videos_uploaded_total",
		Help: "Total number of labeling videos stored",
	})
)
