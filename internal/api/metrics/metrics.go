// Package metrics defines and registers the custom Prometheus metrics of the
// employee API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation; HTTP request metrics are added by the echoprometheus
// middleware in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "employee"

// RegistrationsTotal counts registration attempts.
// Label:
//   - outcome: "created", "invalid", "duplicate", "unauthorized" (bad elevation
//     token), "forbidden" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "admin", "user", "invalid_credentials", "forbidden_role" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// AuthorizationFailuresTotal counts requests rejected by the auth middleware.
// Label:
//   - reason: "missing_auth", "missing_token", "invalid_token", "invalid_role" or "forbidden"
var AuthorizationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_failures_total",
		Help:      "Total number of requests rejected during authorization.",
	},
	[]string{"reason"},
)

// EmployeesDeletedTotal counts successful delete requests, including deletes
// of ids that did not exist.
var EmployeesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employees_deleted_total",
		Help:      "Total number of employee delete requests that succeeded.",
	},
)
