// Package metrics defines and registers all custom Prometheus metrics for the
// Plaza OS API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "plaza"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - kind: RESIDENT, ADMIN or GUEST
//   - result: "accepted", "rejected" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by login kind and result.",
	},
	[]string{"kind", "result"},
)

// SessionsLive tracks sessions currently held by the registry.
var SessionsLive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_live",
		Help:      "Number of sessions currently held in memory.",
	},
)

// GuestKeysIssuedTotal counts visitor passes handed out.
var GuestKeysIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guest_keys_issued_total",
		Help:      "Total number of guest access keys issued.",
	},
)

// ── AI gateway metrics ────────────────────────────────────────────────────────

// AICallsTotal counts calls to the generative-AI service.
// Labels:
//   - capability: concierge, diagnose, edit, polish, draft
//   - outcome: "ok", "configuration", "transport"
var AICallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ai_calls_total",
		Help:      "Total number of AI gateway calls, by capability and outcome.",
	},
	[]string{"capability", "outcome"},
)

// AICallDuration measures round-trip time of AI gateway calls that reached
// the service.
var AICallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ai_call_duration_seconds",
		Help:      "Duration of AI gateway calls.",
		Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20, 40, 60},
	},
	[]string{"capability"},
)

// AIFallbacksTotal counts degraded results substituted by feature panels.
// Labels:
//   - capability: concierge, diagnose, edit, polish, draft
//   - reason: "transport", "malformed", "empty"
var AIFallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ai_fallbacks_total",
		Help:      "Total number of fallback results substituted for failed AI calls.",
	},
	[]string{"capability", "reason"},
)

// ── Dashboard metrics ─────────────────────────────────────────────────────────

// CommunityMood mirrors the mood score shown on the manager dashboard.
var CommunityMood = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "community_mood",
		Help:      "Current community mood score (percent).",
	},
)
