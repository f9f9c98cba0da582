// Package metrics defines all custom Prometheus metrics for the book-tracker
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics self-register with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booktracker"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// SessionsRevokedTotal counts explicit logouts (session strategy only).
var SessionsRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of sessions destroyed by logout.",
	},
)

// ── Book metrics ──────────────────────────────────────────────────────────────

// BooksSavedTotal counts books added to personal lists.
var BooksSavedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_saved_total",
		Help:      "Total number of books saved to user lists.",
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogSearchesTotal counts external catalog searches.
// Label:
//   - result: "success" or "error"
var CatalogSearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_searches_total",
		Help:      "Total number of catalog proxy searches, labelled by result.",
	},
	[]string{"result"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts audit events written to storage.
// Label:
//   - action: "register", "login", "login_failed", "logout"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of auth audit events persisted, by action.",
	},
	[]string{"action"},
)

// AuditEventsDroppedTotal counts audit events discarded because a worker
// queue was full. Auditing is best-effort; requests are never blocked on it.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of auth audit events dropped under backpressure.",
	},
)
