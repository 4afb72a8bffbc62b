// Package metrics defines and registers the custom Prometheus metrics of the
// auth service. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry on package init, which
// is the registry served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// ── Auth operation metrics ────────────────────────────────────────────────────

// OperationsTotal counts service operations by outcome.
// Labels:
//   - operation: "login", "login_web", "register", "check_email", "refresh_token"
//   - status: the envelope status, "Success" or "Failed"
//   - code: the envelope status code (e.g. "200", "422", "500")
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of auth operations, by operation and outcome.",
	},
	[]string{"operation", "status", "code"},
)

// TokensIssuedTotal counts signed tokens handed out.
// Labels:
//   - kind: "access" or "refresh"
//   - channel: "app" (primary secret) or "web" (manager secret)
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens issued, by kind and signing channel.",
	},
	[]string{"kind", "channel"},
)

// ── Profile metrics ───────────────────────────────────────────────────────────

// PasswordChangesTotal counts password change attempts.
// Label:
//   - result: "changed", "rejected" (wrong current password) or "error"
var PasswordChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_changes_total",
		Help:      "Total number of password change attempts, by result.",
	},
	[]string{"result"},
)
