package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Catalog metrics
	TenantsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "kvstore_tenants_total",
			Help: "Total number of known tenants",
		},
	)

	NamespacesTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "kvstore_namespaces_total",
			Help: "Total number of known namespaces across all tenants",
		},
	)

	PartitionsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "kvstore_partitions_total",
			Help: "Total number of registered partitions",
		},
	)

	CatalogPersistDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kvstore_catalog_persist_duration_seconds",
			Help:    "Time taken to persist the partition catalog to disk",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Gateway HTTP metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kvstore_api_requests_total",
			Help: "Total number of gateway HTTP requests by route and status",
		},
		[]string{"method", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kvstore_api_request_duration_seconds",
			Help:    "Gateway HTTP request duration in seconds by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	TokensIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kvstore_tokens_issued_total",
			Help: "Total number of bearer tokens issued",
		},
	)

	AuthFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kvstore_auth_failures_total",
			Help: "Total number of rejected bearer tokens by reason",
		},
		[]string{"reason"},
	)

	// Storage RPC metrics
	StorageRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kvstore_storage_requests_total",
			Help: "Total number of storage RPC requests by operation and status",
		},
		[]string{"operation", "status"},
	)

	StorageRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kvstore_storage_request_duration_seconds",
			Help:    "Storage RPC request duration in seconds by operation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	CrcMismatchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kvstore_crc_mismatches_total",
			Help: "Total number of put requests rejected for a client/computed CRC mismatch",
		},
	)

	KeysListedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kvstore_keys_listed_total",
			Help: "Total number of keys returned across all list_keys calls",
		},
	)
)

func init() {
	prometheus.MustRegister(TenantsTotal)
	prometheus.MustRegister(NamespacesTotal)
	prometheus.MustRegister(PartitionsTotal)
	prometheus.MustRegister(CatalogPersistDuration)
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
	prometheus.MustRegister(TokensIssuedTotal)
	prometheus.MustRegister(AuthFailuresTotal)
	prometheus.MustRegister(StorageRequestsTotal)
	prometheus.MustRegister(StorageRequestDuration)
	prometheus.MustRegister(CrcMismatchesTotal)
	prometheus.MustRegister(KeysListedTotal)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	duration := time.Since(t.start).Seconds()
	histogram.Observe(duration)
}

// ObserveDurationVec records the duration to a histogram vec with labels
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since timer started
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
