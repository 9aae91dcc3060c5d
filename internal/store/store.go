package store

import "time"

// DefaultNamespace is the sentinel namespace used when a writer does not
// supply one, and for flat-layout records whose payload carries no namespace.
const DefaultNamespace = "_default"

// Record is the persisted status of a single agent, one per
// (namespace, id) pair.
//
// Record is the on-disk representation, optimized for JSON serialization.
// The Status field is an untyped string here: the read path must tolerate
// values written by newer or foreign writers, so interpretation is deferred
// to the presentation layer. Field names match the wire format shared with
// non-Go writers.
type Record struct {
	// Namespace groups records, e.g. a repository name.
	Namespace string `json:"repo"`

	// ID is the record's key within its namespace, e.g. a worktree name.
	ID string `json:"worktree"`

	// Status is the reported state: "running", "waiting_input", "idle"
	// or "error". Unrecognized values are preserved as-is.
	Status string `json:"status"`

	// Summary is a short free-text description. May be empty.
	Summary string `json:"summary"`

	// UpdatedAt is the write timestamp in UTC. A zero value on read is
	// backfilled from the file's modification time.
	UpdatedAt time.Time `json:"updated_at"`

	// Path is an advisory filesystem location for the agent. Optional,
	// never validated.
	Path string `json:"path,omitempty"`

	// SessionID identifies the agent session that wrote the record.
	// Optional, advisory only.
	SessionID string `json:"session_id,omitempty"`
}

// Store defines durable persistence of one Record per (namespace, id) pair.
//
// Implementations must be safe for use by many uncoordinated writer
// processes and a single concurrently polling reader: a reader must never
// observe a partially written record, and writes to distinct keys must not
// interfere with each other.
type Store interface {
	// Write persists the record under (namespace, id), replacing any
	// previous record for that key. It creates the namespace container
	// on demand and fails only on unrecoverable filesystem errors.
	Write(namespace, id string, rec Record) error

	// ReadAll returns every readable record, grouped by namespace.
	// Corrupt or partially written entries are skipped, never fatal.
	// A missing store root yields an empty result.
	ReadAll() (map[string][]Record, error)

	// Clear removes the record for (namespace, id) if present and
	// reports whether anything was removed. Clearing an absent key is
	// not an error.
	Clear(namespace, id string) (bool, error)
}
