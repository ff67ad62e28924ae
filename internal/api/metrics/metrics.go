// Package metrics defines and registers all custom Prometheus metrics for the
// storefront. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry on package init via
// promauto, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionResolutionsTotal counts session cookie resolutions.
// Label:
//   - outcome: "principal", "anonymous" (no or rejected token) or "error"
var SessionResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolutions_total",
		Help:      "Total number of session resolutions, by outcome.",
	},
	[]string{"outcome"},
)

// GuardRedirectsTotal counts requests to protected pages bounced to /login.
var GuardRedirectsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of protected requests redirected to the login page.",
	},
)

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayFetchesTotal counts query gateway fetches.
// Labels:
//   - intent: e.g. "dashboard", "scanner_queue"
//   - result: "ok", "unauthorized" or "error"
var GatewayFetchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_fetches_total",
		Help:      "Total number of query gateway fetches, by intent and result.",
	},
	[]string{"intent", "result"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrderTransitionsTotal counts order status change attempts.
// Labels:
//   - to: the target status (e.g. "paid")
//   - result: "ok", "already_done", "invalid_transition", "not_found", "unauthorized" or "error"
var OrderTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Total number of order status transitions, by target status and result.",
	},
	[]string{"to", "result"},
)

// OrdersPlacedTotal counts newly placed orders.
// Label:
//   - type: "standard" or "grocery_list"
var OrdersPlacedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed, by order type.",
	},
	[]string{"type"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditRecordDuration measures how long recording one audit event takes.
// Label:
//   - result: "ok" or "error"
var AuditRecordDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_record_duration_seconds",
		Help:      "Duration of audit event recording from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Flow metrics ──────────────────────────────────────────────────────────────

// FlowInvocationsTotal counts calls to the AI flow runtime.
// Labels:
//   - flow: flow name (e.g. "winePairing")
//   - result: "ok" or "error"
var FlowInvocationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "flow_invocations_total",
		Help:      "Total number of AI flow invocations, by flow and result.",
	},
	[]string{"flow", "result"},
)
