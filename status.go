package agentmon

import (
	"fmt"
	"time"

	"github.com/amonroe/agentmon/internal/aggregate"
	"github.com/amonroe/agentmon/internal/store"
)

// Status represents the reported state of an agent.
//
// Status is a string type that can hold one of four reportable values:
// [StatusRunning], [StatusWaitingInput], [StatusIdle] or [StatusError].
// A fifth value, [StatusUnknown], exists only on the read side: the
// dashboard assigns it to any record whose status it does not recognize.
// Using a string type keeps JSON serialization and logging human-readable
// while the constants preserve type safety.
type Status string

const (
	// StatusRunning indicates the agent is actively working.
	StatusRunning Status = "running"

	// StatusWaitingInput indicates the agent is blocked on the user.
	StatusWaitingInput Status = "waiting_input"

	// StatusIdle indicates the agent has finished and is waiting for work.
	StatusIdle Status = "idle"

	// StatusError indicates the agent hit a failure.
	StatusError Status = "error"

	// StatusUnknown is the presentation state for unrecognized values.
	// It cannot be reported; [ParseStatus] rejects it.
	StatusUnknown Status = "unknown"
)

// String returns the string representation of the status.
// This implements the fmt.Stringer interface.
func (s Status) String() string {
	return string(s)
}

// ReportableStatuses lists the status values a writer may report, in
// display-priority order.
func ReportableStatuses() []Status {
	return []Status{StatusWaitingInput, StatusRunning, StatusError, StatusIdle}
}

// ParseStatus validates a raw status value at the write boundary.
//
// Only the four reportable statuses are accepted; anything else, including
// "unknown", is a validation error. The read path is the tolerant side:
// see [Record.PresentationStatus].
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusRunning, StatusWaitingInput, StatusIdle, StatusError:
		return Status(raw), nil
	}
	return "", fmt.Errorf("invalid status %q (must be one of: running, waiting_input, idle, error)", raw)
}

// Record is the published status of a single agent, keyed by
// (Namespace, ID).
type Record struct {
	// Namespace groups records, e.g. a repository name.
	Namespace string

	// ID is the record's key within its namespace, e.g. a worktree name.
	ID string

	// Status is the raw reported status. May be a value this version
	// does not recognize; use [Record.PresentationStatus] for display.
	Status Status

	// Summary is a short free-text description. May be empty.
	Summary string

	// UpdatedAt is when the record was written, in UTC.
	UpdatedAt time.Time

	// Path is an advisory filesystem location. Optional.
	Path string

	// SessionID identifies the writing agent session. Optional.
	SessionID string
}

// PresentationStatus maps the raw status onto the five display states,
// collapsing anything unrecognized to [StatusUnknown].
func (r Record) PresentationStatus() Status {
	return Status(aggregate.Canonical(string(r.Status)))
}

// Age returns how stale the record is relative to now. Staleness is a
// derived presentation value; the store never expires records.
func (r Record) Age(now time.Time) time.Duration {
	return now.Sub(r.UpdatedAt)
}

// Group is one namespace's records in display order, most urgent first.
type Group struct {
	// Namespace is the group's name.
	Namespace string

	// Records are the group's records, ordered by status priority.
	Records []Record
}

// Counts tallies records by presentation state across a whole view.
type Counts struct {
	Waiting int
	Running int
	Error   int
	Idle    int
	Unknown int
	Total   int
}

// View is one ordered snapshot of the entire status board, as handed to
// frame handlers on every refresh.
type View struct {
	// Groups are the namespaces in display order.
	Groups []Group

	// Counts are the totals across all groups.
	Counts Counts

	// GeneratedAt is when the snapshot was taken.
	GeneratedAt time.Time
}

// Empty reports whether the view contains no records.
func (v View) Empty() bool {
	return len(v.Groups) == 0
}

// viewFromAggregate converts the internal aggregation result to the public
// view type. Creates fresh slices so callers can hold frames freely.
func viewFromAggregate(av aggregate.View, now time.Time) View {
	view := View{
		Counts:      Counts(av.Counts),
		Groups:      make([]Group, 0, len(av.Groups)),
		GeneratedAt: now,
	}
	for _, g := range av.Groups {
		group := Group{
			Namespace: g.Namespace,
			Records:   make([]Record, 0, len(g.Records)),
		}
		for _, rec := range g.Records {
			group.Records = append(group.Records, recordFromStore(rec))
		}
		view.Groups = append(view.Groups, group)
	}
	return view
}

// recordFromStore converts a stored record to the public type.
func recordFromStore(rec store.Record) Record {
	return Record{
		Namespace: rec.Namespace,
		ID:        rec.ID,
		Status:    Status(rec.Status),
		Summary:   rec.Summary,
		UpdatedAt: rec.UpdatedAt,
		Path:      rec.Path,
		SessionID: rec.SessionID,
	}
}

// recordToStore converts a public record to its wire representation.
func recordToStore(rec Record) store.Record {
	return store.Record{
		Namespace: rec.Namespace,
		ID:        rec.ID,
		Status:    string(rec.Status),
		Summary:   rec.Summary,
		UpdatedAt: rec.UpdatedAt,
		Path:      rec.Path,
		SessionID: rec.SessionID,
	}
}
