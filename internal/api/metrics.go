package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeAnswered = "answered"
	outcomeFailed   = "failed"
	outcomeInvalid  = "invalid"
	outcomeLimited  = "rate_limited"
)

var (
	metricAskRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "askbox",
		Name:      "ask_requests_total",
		Help:      "Questions received on /ask by outcome.",
	}, []string{"outcome"})
	metricAskDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "askbox",
		Name:      "ask_duration_seconds",
		Help:      "Time spent handling /ask requests.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"outcome"})
)

func observeAsk(outcome string, start time.Time) {
	metricAskRequests.WithLabelValues(outcome).Inc()
	metricAskDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}
