package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prediction outcomes recorded by ObservePrediction.
const (
	OutcomeHighRisk = "high_risk"
	OutcomeLowRisk  = "low_risk"
	OutcomeInvalid  = "invalid_input"
	OutcomeError    = "error"
)

// Recorder owns a private registry so tests can build as many as they like.
type Recorder struct {
	registry    *prometheus.Registry
	predictions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "diabetes_predictions_total",
			Help: "Predictions served, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	r.registry.MustRegister(
		r.predictions,
		r.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) ObservePrediction(outcome string) {
	r.predictions.WithLabelValues(outcome).Inc()
}

func (r *Recorder) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	r.duration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
