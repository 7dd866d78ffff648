package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// durationBuckets covers sub-millisecond document builds up to slow
// requests.
var durationBuckets = []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1}

// NewRegistry returns a registry with the Go runtime and process collectors
// registered.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler returns an HTTP handler serving the registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// Observer records handled requests.
type Observer struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewObserver creates an Observer and registers its collectors on reg.
func NewObserver(reg prometheus.Registerer) *Observer {
	o := &Observer{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "phonexml_requests_total",
			Help: "Handled phone requests by operation and result.",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "phonexml_request_duration_seconds",
			Help:    "Time to build and serialize a response document.",
			Buckets: durationBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(o.requests, o.duration)
	return o
}

// ObserveRequest implements provision.Observer.
func (o *Observer) ObserveRequest(operation string, failed bool, d time.Duration) {
	result := ResultOK
	if failed {
		result = ResultError
	}
	o.requests.WithLabelValues(operation, result).Inc()
	o.duration.WithLabelValues(operation).Observe(d.Seconds())
}
