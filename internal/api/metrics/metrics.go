// Package metrics defines and registers all custom Prometheus metrics for the
// visitor pass API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and served by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "visitorpass"

// ── Pass metrics ──────────────────────────────────────────────────────────────

// PassesIssuedTotal counts passes issued.
var PassesIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "passes_issued_total",
		Help:      "Total number of visitor passes issued.",
	},
)

// PassVerificationsTotal counts checkpoint verification outcomes.
// Label:
//   - result: "valid", "expired", "revoked", "not_found" or "invalid"
var PassVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pass_verifications_total",
		Help:      "Total number of pass verifications, by result.",
	},
	[]string{"result"},
)

// PassesExpiredTotal counts passes flipped to expired by the sweep.
var PassesExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "passes_expired_total",
		Help:      "Total number of passes expired by the sweep.",
	},
)

// ── Check log metrics ─────────────────────────────────────────────────────────

// CheckLogsRecordedTotal counts check log entries written.
// Label:
//   - action: "checkin" or "checkout"
var CheckLogsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "check_logs_recorded_total",
		Help:      "Total number of check log entries recorded, by action.",
	},
	[]string{"action"},
)

// ScanDuplicatesTotal counts scans suppressed as re-reads.
var ScanDuplicatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scan_duplicates_total",
		Help:      "Total number of checkpoint scans suppressed as duplicates.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts delivery attempts.
// Labels:
//   - channel: "email" or "sms"
//   - result: "sent", "failed" or "dropped"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notifications, by channel and result.",
	},
	[]string{"channel", "result"},
)

// NotifyQueueDepth tracks the messages waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotifyQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notify_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationDuration measures how long a single delivery takes.
// Label:
//   - channel: "email" or "sms"
var NotificationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of a single notification delivery.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"channel"},
)
