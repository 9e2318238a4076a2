// Package metrics defines and registers all custom Prometheus metrics for
// the studio portal. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry at init time via
// promauto and exposed on /metrics by the portal router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Reconciler metrics ────────────────────────────────────────────────────────

// RefreshesTotal counts refresh cycles started across all sessions.
var RefreshesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refreshes_total",
		Help:      "Total number of view-state refresh cycles started.",
	},
)

// RefreshesDiscardedTotal counts refresh cycles whose results were dropped
// because a newer refresh had been issued before they completed.
var RefreshesDiscardedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refreshes_discarded_total",
		Help:      "Total number of stale refresh completions discarded.",
	},
)

// FetchFailuresTotal counts per-collection fetch failures inside refresh.
// Label:
//   - collection: "appointments", "clients", "staff", "albums" or "gallery"
var FetchFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_failures_total",
		Help:      "Total number of collection fetches that failed and degraded to empty.",
	},
	[]string{"collection"},
)

// MutationsTotal counts mutation operations by kind and outcome.
// Labels:
//   - kind: the mutation name (e.g. "archive_client", "create_album")
//   - result: "ok" or "error"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of mutation operations, by kind and result.",
	},
	[]string{"kind", "result"},
)

// GalleryUploadsTotal counts individual files of gallery batch uploads.
// Label:
//   - result: "ok" or "error"
var GalleryUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gallery_upload_files_total",
		Help:      "Total number of gallery files submitted, by result.",
	},
	[]string{"result"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts webhook notification attempts.
// Label:
//   - result: "sent", "duplicate", "invalid" or "error"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of booking notifications handled, by result.",
	},
	[]string{"result"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// ActiveSessions tracks the number of live dashboard sessions.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Current number of live dashboard sessions.",
	},
)
