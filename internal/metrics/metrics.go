package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoicehero_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "invoicehero_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	invoiceMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoicehero_invoice_mutations_total",
		Help: "Count of invoice create/update/delete operations by result",
	}, []string{"operation", "result"})

	usersProvisioned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoicehero_users_provisioned_total",
		Help: "Count of user records created, by how they were created",
	}, []string{"source"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveInvoiceMutation counts an invoice write; result is "ok" or "error".
func ObserveInvoiceMutation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	invoiceMutations.WithLabelValues(operation, result).Inc()
}

// ObserveUserProvisioned counts a created user; source is "auto" or "explicit".
func ObserveUserProvisioned(source string) {
	usersProvisioned.WithLabelValues(source).Inc()
}
