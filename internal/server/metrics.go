package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Failures *prometheus.CounterVec
	Matches  prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "job_match_http_requests_total",
				Help: "Total number of HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "job_match_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
			},
			[]string{"route"},
		),
		Failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "job_match_search_failures_total",
				Help: "Total number of failed searches by kind",
			},
			[]string{"kind"},
		),
		Matches: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "job_match_search_matches",
				Help:    "Number of matches returned per search",
				Buckets: []float64{0, 1, 2, 5, 10},
			},
		),
	}
}
