// Package metrics defines and registers the custom Prometheus metrics of the
// country comments API. It is the single source of truth for metric names,
// labels, and help strings.
//
// The collectors are package-level but unregistered; Register attaches them to
// the registry the router serves on /metrics, next to the per-route HTTP
// metrics from echoprometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "country_comments"

// ── Account metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "conflict" or "error"
var RegistrationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

var LogoutsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logouts.",
	},
)

// ── Comment metrics ───────────────────────────────────────────────────────────

// CommentsPostedTotal counts stored comments.
// Label:
//   - author: "user" for logged-in authors, "guest" for anonymous ones
var CommentsPostedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_posted_total",
		Help:      "Total number of comments stored, by author kind.",
	},
	[]string{"author"},
)

// CommentsRejectedTotal counts comments that were not stored.
// Label:
//   - reason: "empty_content", "not_logged_in", "user_not_found" or "error"
var CommentsRejectedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_rejected_total",
		Help:      "Total number of rejected comment posts, by reason.",
	},
	[]string{"reason"},
)

var CommentsDeletedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_deleted_total",
		Help:      "Total number of deleted comments.",
	},
)

// ── Admin metrics ─────────────────────────────────────────────────────────────

// AdminActionsTotal counts calls to the user admin endpoints.
// Labels:
//   - action: "list_users", "update_user" or "delete_user"
//   - result: "success", "forbidden" or "error"
var AdminActionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_actions_total",
		Help:      "Total number of user admin operations, by action and result.",
	},
	[]string{"action", "result"},
)

// Register adds every domain collector to reg. Collectors already present in
// reg are skipped, so the same registry may back several routers.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		LoginsTotal,
		RegistrationsTotal,
		LogoutsTotal,
		CommentsPostedTotal,
		CommentsRejectedTotal,
		CommentsDeletedTotal,
		AdminActionsTotal,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
