// Package metrics defines and registers all custom Prometheus metrics for the
// portfolio API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portfolio"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (all failure causes share one bucket)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts completed registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successfully registered accounts.",
	},
)

// TokenVerificationsTotal counts bearer-token checks in the auth middleware.
// Label:
//   - result: "valid", "invalid", or "subject_gone" (token fine, row deleted)
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// PrincipalCacheTotal counts principal-cache decisions, when caching is on.
// Label:
//   - result: "hit" or "miss"
var PrincipalCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "principal_cache_total",
		Help:      "Total number of principal cache lookups, by result.",
	},
	[]string{"result"},
)

// PasswordResetsTotal tracks the reset-token lifecycle.
// Label:
//   - stage: "requested", "issued", "consumed", "rejected", "rolled_back"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password-reset lifecycle events, by stage.",
	},
	[]string{"stage"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// ContentWritesTotal counts create/update/delete operations on content.
// Labels:
//   - entity: "project", "post", "comment"
//   - op:     "create", "update", "delete"
var ContentWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_writes_total",
		Help:      "Total number of content mutations, by entity and operation.",
	},
	[]string{"entity", "op"},
)

// MailSendDuration measures outbound mail delivery time.
// Label:
//   - result: "ok" or "error"
var MailSendDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "mail_send_duration_seconds",
		Help:      "Duration of SMTP deliveries, by result.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
