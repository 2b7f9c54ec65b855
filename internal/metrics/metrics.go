package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentflow_http_requests_total",
		Help: "Total HTTP requests by method, path, and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rentflow_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	BillingCycleRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentflow_billing_cycle_runs_total",
		Help: "Billing cycle executions by result",
	}, []string{"result"})

	BillingCycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rentflow_billing_cycle_duration_seconds",
		Help:    "Wall-clock duration of a full billing cycle run",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
	})

	LedgerEntriesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentflow_ledger_entries_generated_total",
		Help: "Rent charges written by the billing cycle",
	})

	LateFeesAssessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentflow_late_fees_assessed_total",
		Help: "Late fees frozen onto overdue ledger entries",
	})

	LateFeeCentsAssessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentflow_late_fee_cents_assessed_total",
		Help: "Total late fee amount assessed, in cents",
	})

	DBRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentflow_db_retries_total",
		Help: "Database operations retried after a transient failure",
	})
)
