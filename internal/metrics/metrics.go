// Package metrics defines and registers all custom Prometheus metrics for the
// portfolio API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on import via
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portfolio"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts admin login attempts by outcome.
// Label:
//   - result: "success", "failure" (bad credentials) or "locked" (refused by the rate limiter)
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of admin login attempts, by result.",
	},
	[]string{"result"},
)

// ExternalTokensMintedTotal counts realtime-db token requests.
// Label:
//   - result: "success", "error" or "unconfigured"
var ExternalTokensMintedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "external_tokens_minted_total",
		Help:      "Total number of realtime-db custom token requests, by result.",
	},
	[]string{"result"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// ProjectFallbackTotal counts project listings served from the static list.
// Label:
//   - reason: "unconfigured", "error" or "empty"
var ProjectFallbackTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "project_fallback_total",
		Help:      "Total number of project listings served from static fallback content.",
	},
	[]string{"reason"},
)

// SubmissionsCreatedTotal counts accepted public form submissions.
// Label:
//   - kind: "message" or "booking"
var SubmissionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_created_total",
		Help:      "Total number of contact and booking submissions accepted.",
	},
	[]string{"kind"},
)

// SubmissionFallbackTotal counts submission reads and writes served by the
// fallback store while the primary store is failing.
// Labels:
//   - kind: "message" or "booking"
//   - op: "read" or "write"
var SubmissionFallbackTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submission_fallback_total",
		Help:      "Total number of submission operations served from the in-memory fallback store.",
	},
	[]string{"kind", "op"},
)
