package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is the metrics surface consumed by services and middleware.
// Both the Prometheus-backed Metrics and NoopMetrics implement it.
type Recorder interface {
	// Identity / token flow
	RecordSignup(result string)
	RecordTokenIssued()
	RecordTokenValidation(result string)

	// Federation
	RecordReferenceResolution(typename, result string)

	// HTTP (used by the middleware in http.go)
	RecordHTTPRequest(method, path, status string, durationSeconds float64)
}

// Ensure Metrics implements Recorder interface at compile time
var _ Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the services
type Metrics struct {
	// Signup / token metrics
	SignupsTotal         *prometheus.CounterVec
	TokensIssuedTotal    prometheus.Counter
	TokenValidationTotal *prometheus.CounterVec

	// Federation metrics
	ReferenceResolutionTotal *prometheus.CounterVec

	// HTTP request metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init initializes metrics based on the enabled flag. Disabled metrics get
// a zero-overhead noop recorder. Prometheus collectors are registered once
// per process.
func Init(enabled bool) Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

func initMetrics() *Metrics {
	return &Metrics{
		SignupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_signups_total",
				Help: "Total number of signup attempts",
			},
			[]string{"result"}, // success, error
		),
		TokensIssuedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "auth_tokens_issued_total",
				Help: "Total number of bearer tokens issued",
			},
		),
		TokenValidationTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_token_validation_total",
				Help: "Total number of token validations",
			},
			[]string{"result"}, // success, unknown_subject, scope_not_found
		),
		ReferenceResolutionTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "federation_reference_resolution_total",
				Help: "Total number of federated reference resolutions",
			},
			[]string{"typename", "result"},
		),
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
	}
}

func (m *Metrics) RecordSignup(result string) {
	m.SignupsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordTokenIssued() {
	m.TokensIssuedTotal.Inc()
}

func (m *Metrics) RecordTokenValidation(result string) {
	m.TokenValidationTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordReferenceResolution(typename, result string) {
	m.ReferenceResolutionTotal.WithLabelValues(typename, result).Inc()
}

func (m *Metrics) RecordHTTPRequest(method, path, status string, durationSeconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
}
