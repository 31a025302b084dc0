// Package metrics defines and registers the registry's custom Prometheus
// metrics. It is the single source of truth for metric names, labels, and
// help strings; promauto registers everything with the default registry at
// package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "donor_registry"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "rate_limited", "timeout", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// SignupsTotal counts completed donor registrations.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of donor accounts created.",
	},
)

// PostsCreatedTotal counts new donation requests.
// Label:
//   - urgency: "high", "medium", "low"
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of donation requests posted, by urgency.",
	},
	[]string{"urgency"},
)

// PostTransitionsTotal counts post status changes.
// Label:
//   - to_status: "open" or "fulfilled"
var PostTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_transitions_total",
		Help:      "Total number of post status transitions, by target status.",
	},
	[]string{"to_status"},
)

// DonationsRecordedTotal counts donation log entries.
var DonationsRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "donations_recorded_total",
		Help:      "Total number of donations recorded by donors.",
	},
)

// AlertsDeliveredTotal counts donor alert deliveries.
// Label:
//   - result: "ok" or "error"
var AlertsDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_delivered_total",
		Help:      "Total number of donor alert emails attempted, by result.",
	},
	[]string{"result"},
)
