// Package metrics defines the custom Prometheus metrics of the provincial
// portal API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "province"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts password login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "disabled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of password login attempts, by result.",
	},
	[]string{"result"},
)

// DelegatedTokensTotal counts delegated login token operations.
// Labels:
//   - op: "issue" or "consume"
//   - result: "ok" or "rejected"
var DelegatedTokensTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "delegated_tokens_total",
		Help:      "Total number of delegated login token operations.",
	},
	[]string{"op", "result"},
)

// RateLimitedTotal counts requests rejected by the login rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// ContentWritesTotal counts successful content mutations.
// Labels:
//   - entity: "profile", "news", "municipality", "directory", "gazette", or a sub-collection path
//   - action: "CREATE", "UPDATE", "DELETE", "PUBLISH", or "UNPUBLISH"
var ContentWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_writes_total",
		Help:      "Total number of content mutations, by entity and action.",
	},
	[]string{"entity", "action"},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityDroppedTotal counts audit entries dropped because the dispatcher
// buffer was full or the dispatcher had stopped.
var ActivityDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of activity entries dropped before persistence.",
	},
)

// ActivityQueueDepth tracks the number of entries waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityProcessingDuration measures persisting and publishing one entry.
// Label:
//   - status: "ok" or "error"
var ActivityProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_processing_duration_seconds",
		Help:      "Duration of activity processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"status"},
)

// ActivityPublishErrorsTotal counts failed AMQP publishes of activity entries.
var ActivityPublishErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_publish_errors_total",
		Help:      "Total number of activity entries that could not be published to the broker.",
	},
)
