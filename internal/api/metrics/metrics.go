// Package metrics defines the custom Prometheus metrics for the agrifield
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry at import time via
// promauto; the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agrifield"

// LoginsTotal counts login attempts by outcome.
// Labels:
//   - role: farmer, crp, expert, supervisor
//   - result: "success", "invalid", "locked", "disabled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and outcome.",
	},
	[]string{"role", "result"},
)

// LockoutsTotal counts accounts entering the lockout window.
var LockoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lockouts_total",
		Help:      "Total number of accounts locked after repeated login failures.",
	},
	[]string{"role"},
)

// SMSDispatchedTotal counts SMS delivery attempts by result ("sent"/"error").
var SMSDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sms_dispatched_total",
		Help:      "Total number of SMS deliveries attempted, by result.",
	},
	[]string{"result"},
)

// SMSDedupTotal counts SMS deduplication decisions ("hit" = duplicate
// skipped, "miss" = new message).
var SMSDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sms_dedup_total",
		Help:      "Total number of SMS deduplication checks, labelled by result.",
	},
	[]string{"result"},
)

// SMSQueueDepth tracks messages waiting in each dispatcher worker channel.
var SMSQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sms_queue_depth",
		Help:      "Current number of messages pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
