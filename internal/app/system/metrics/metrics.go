package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "campdir_requests_total", Help: "Total HTTP requests served"},
		[]string{"method"},
	)
	AggregateRecomputes = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "campdir_aggregate_recomputes_total", Help: "Total bootcamp aggregate recomputations"},
	)
	UploadFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "campdir_upload_failures_total", Help: "Total photo upload persistence failures"},
	)
	GeocodeFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "campdir_geocode_failures_total", Help: "Total geocoding lookup failures"},
	)
)

func Register() {
	prometheus.MustRegister(RequestsTotal, AggregateRecomputes, UploadFailures, GeocodeFailures)
}
