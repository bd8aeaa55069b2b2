// Package metrics defines and registers all custom Prometheus metrics for the
// sweem API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sweem"

// ── Record metrics ────────────────────────────────────────────────────────────

// RecordsCreatedTotal counts successfully created records.
// Label:
//   - entity: "client", "project" or "user"
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of records created, by entity.",
	},
	[]string{"entity"},
)

// RecordsDeletedTotal counts successfully deleted records. Cascaded projects
// are counted separately in CascadeDeletedProjectsTotal.
var RecordsDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_deleted_total",
		Help:      "Total number of records deleted, by entity.",
	},
	[]string{"entity"},
)

// CascadeDeletedProjectsTotal counts projects removed together with their client.
var CascadeDeletedProjectsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascade_deleted_projects_total",
		Help:      "Total number of projects deleted by a client cascade.",
	},
)

// IntegrityConflictsTotal counts mutations rejected by an integrity rule.
// Labels:
//   - entity: the entity being mutated
//   - reason: "login_taken", "manages_projects" or "other"
var IntegrityConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "integrity_conflicts_total",
		Help:      "Total number of mutations rejected with a conflict.",
	},
	[]string{"entity", "reason"},
)

// ── Idempotency metrics ───────────────────────────────────────────────────────

// IdempotentReplaysTotal counts create requests answered from a stored
// idempotency key instead of creating a new record.
// Label:
//   - collection: "clients", "projects" or "users"
var IdempotentReplaysTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of create requests replayed from an idempotency key.",
	},
	[]string{"collection"},
)

// Observer feeds service outcomes into the counters above.
type Observer struct{}

func (Observer) Created(entity string) {
	RecordsCreatedTotal.WithLabelValues(entity).Inc()
}

func (Observer) Deleted(entity string, dependents int64) {
	RecordsDeletedTotal.WithLabelValues(entity).Inc()
	if entity == "client" && dependents > 0 {
		CascadeDeletedProjectsTotal.Add(float64(dependents))
	}
}

func (Observer) Conflict(entity, reason string) {
	IntegrityConflictsTotal.WithLabelValues(entity, reason).Inc()
}
