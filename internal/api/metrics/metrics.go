// Package metrics defines and registers the custom Prometheus metrics for
// the notes API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import
// time via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "notes"

// NotesCreatedTotal counts successfully created notes.
// Label:
//   - kind: "text" or "checklist"
var NotesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of notes created, by kind.",
	},
	[]string{"kind"},
)

// NoteStatusChangesTotal counts archive/trash flag writes.
// Labels:
//   - flag: "archived" or "trashed"
//   - value: "true" or "false"
var NoteStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_changes_total",
		Help:      "Total number of note status flag writes, by flag and target value.",
	},
	[]string{"flag", "value"},
)

// NotesDeletedTotal counts hard deletes of trashed notes.
var NotesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deleted_total",
		Help:      "Total number of trashed notes permanently deleted.",
	},
)

// CreateReplaysTotal counts note creations answered from the idempotency
// store instead of performing a new insert.
var CreateReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "create_replays_total",
		Help:      "Total number of note creations replayed via Idempotency-Key.",
	},
)

// AuthAttemptsTotal counts authentication operations.
// Labels:
//   - operation: "register", "login", or "change_password"
//   - result: "ok" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication operations, by operation and result.",
	},
	[]string{"operation", "result"},
)
