// Package metrics defines and registers all custom Prometheus metrics for
// the school admin API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "school"

// LoginAttemptsTotal counts credential verifications at the transport edge.
// Label:
//   - result: "success", "failure", or "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of credential verification attempts, by result.",
	},
	[]string{"result"},
)

// AuthzDecisionsTotal counts policy engine decisions made by the
// authorization middleware.
// Labels:
//   - action: the action kind (e.g. "list_students")
//   - decision: "allow" or "deny"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization decisions, by action and outcome.",
	},
	[]string{"action", "decision"},
)

// StudentsCreatedTotal counts successfully created student records.
var StudentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "students_created_total",
		Help:      "Total number of student accounts created.",
	},
)
