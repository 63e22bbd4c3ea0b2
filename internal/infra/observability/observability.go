// Package observability holds the Prometheus metrics for the billing core
// and the HTTP surface. Metrics are registered via promauto at init and
// exposed on /metrics when the daemon enables it.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Billing Metrics ────────────────────────────────────────────────────────

// BillingPostings counts successfully committed postings by service kind.
var BillingPostings = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pflegedesk",
	Subsystem: "billing",
	Name:      "postings_total",
	Help:      "Total committed billing postings by service kind.",
}, []string{"kind"})

// BillingPostingFailures counts postings rolled back by storage failure.
var BillingPostingFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pflegedesk",
	Subsystem: "billing",
	Name:      "posting_failures_total",
	Help:      "Total postings rolled back by a storage-transaction failure.",
})

// BillingRevenue accumulates posted cost in EUR.
var BillingRevenue = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pflegedesk",
	Subsystem: "billing",
	Name:      "revenue_eur_total",
	Help:      "Total posted cost in EUR across all service events.",
})

// BudgetResets counts budget-depot resets.
var BudgetResets = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pflegedesk",
	Subsystem: "billing",
	Name:      "budget_resets_total",
	Help:      "Total client budget-depot resets.",
})

// ─── Registry Metrics ───────────────────────────────────────────────────────

// ClientsCreated counts registered clients.
var ClientsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pflegedesk",
	Subsystem: "registry",
	Name:      "clients_created_total",
	Help:      "Total clients registered.",
})

// CaregiversCreated counts registered caregivers.
var CaregiversCreated = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pflegedesk",
	Subsystem: "registry",
	Name:      "caregivers_created_total",
	Help:      "Total caregivers registered.",
})

// ─── HTTP Metrics ───────────────────────────────────────────────────────────

// HTTPRequestDuration tracks request latency per route and status class.
var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "pflegedesk",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency by method and status class.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
}, []string{"method", "status"})
