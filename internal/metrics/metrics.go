// Package metrics holds the Prometheus collectors shared by the HTTP layer and
// the transfer pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sharevault_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sharevault_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// OperationsTotal counts file operations by outcome.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sharevault_operations_total",
			Help: "File operations (upload, download, delete, update_access) by result.",
		},
		[]string{"operation", "result"},
	)

	TransferBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sharevault_transfer_bytes_total",
			Help: "Bytes moved through the transfer pipeline.",
		},
		[]string{"direction"},
	)

	// InconsistenciesTotal counts record/blob mismatches seen at request time.
	InconsistenciesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sharevault_inconsistencies_total",
			Help: "Record/blob inconsistencies (blob_missing, partial_delete, orphan_blob, blob_mismatch).",
		},
		[]string{"kind"},
	)

	// MissingBlobs is the number of records without a blob found by the last audit.
	MissingBlobs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sharevault_audit_missing_blobs",
			Help: "Records whose blob was missing at the last audit.",
		},
	)
)

func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
