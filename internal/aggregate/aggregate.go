// Package aggregate turns the store's raw read-all result into a
// presentation-ready, deterministically ordered view.
//
// This package is internal to agentmon and is purely functional: it has no
// side effects and never fails. Given the same record set, [GroupAndRank]
// always produces the identical ordered output, regardless of input order.
package aggregate

import (
	"sort"

	"github.com/amonroe/agentmon/internal/store"
)

// Status priorities. Lower sorts first within a namespace: an agent that
// is blocked on the user outranks everything else on the board.
const (
	priorityWaiting = iota
	priorityRunning
	priorityError
	priorityIdle
	priorityUnknown
)

// StatusUnknown is the presentation state assigned to any status value the
// dashboard does not recognize. It exists only on the read side; writers
// cannot report it.
const StatusUnknown = "unknown"

// Canonical maps a raw status string to its presentation state. The four
// reportable statuses pass through unchanged; everything else, including
// values written by newer or foreign tools, collapses to [StatusUnknown].
func Canonical(status string) string {
	switch status {
	case "running", "waiting_input", "idle", "error":
		return status
	default:
		return StatusUnknown
	}
}

// Priority returns the within-namespace sort rank of a status value.
func Priority(status string) int {
	switch status {
	case "waiting_input":
		return priorityWaiting
	case "running":
		return priorityRunning
	case "error":
		return priorityError
	case "idle":
		return priorityIdle
	default:
		return priorityUnknown
	}
}

// Group is one namespace's records, ordered by status priority.
type Group struct {
	// Namespace is the group's name.
	Namespace string

	// Records are the namespace's records, most urgent first. Ties keep
	// their original scan order.
	Records []store.Record
}

// Counts tallies records by presentation state across an entire view.
type Counts struct {
	Waiting int
	Running int
	Error   int
	Idle    int
	Unknown int
	Total   int
}

// Add tallies one record's status into the counts.
func (c *Counts) Add(status string) {
	switch Canonical(status) {
	case "waiting_input":
		c.Waiting++
	case "running":
		c.Running++
	case "error":
		c.Error++
	case "idle":
		c.Idle++
	default:
		c.Unknown++
	}
	c.Total++
}

// View is an ordered, render-ready snapshot of every record in the store.
type View struct {
	// Groups are the namespaces in display order.
	Groups []Group

	// Counts are the totals across all groups.
	Counts Counts
}

// Empty reports whether the view contains no records at all. How "no data"
// is rendered is the caller's concern.
func (v View) Empty() bool {
	return len(v.Groups) == 0
}

// GroupAndRank orders the read-all result for presentation.
//
// Within a namespace, records sort by status priority (waiting_input,
// running, error, idle, then unknown) with the stable sort preserving scan
// order among equals. Namespaces sort by a four-part key: any waiting_input
// record present first, then any error, then any running, then namespace
// name. Empty input yields an empty view.
func GroupAndRank(all map[string][]store.Record) View {
	var view View

	for namespace, records := range all {
		if len(records) == 0 {
			continue
		}
		ordered := make([]store.Record, len(records))
		copy(ordered, records)
		sort.SliceStable(ordered, func(i, j int) bool {
			return Priority(ordered[i].Status) < Priority(ordered[j].Status)
		})
		view.Groups = append(view.Groups, Group{Namespace: namespace, Records: ordered})
		for _, rec := range records {
			view.Counts.Add(rec.Status)
		}
	}

	sort.Slice(view.Groups, func(i, j int) bool {
		return groupLess(view.Groups[i], view.Groups[j])
	})
	return view
}

// groupLess implements the namespace ordering: three presence booleans
// compared in sequence, then the name lexicographically.
func groupLess(a, b Group) bool {
	aw, ae, ar := presence(a.Records)
	bw, be, br := presence(b.Records)
	if aw != bw {
		return aw
	}
	if ae != be {
		return ae
	}
	if ar != br {
		return ar
	}
	return a.Namespace < b.Namespace
}

// presence reports whether any record is waiting for input, errored, or
// running.
func presence(records []store.Record) (waiting, errored, running bool) {
	for _, rec := range records {
		switch rec.Status {
		case "waiting_input":
			waiting = true
		case "error":
			errored = true
		case "running":
			running = true
		}
	}
	return waiting, errored, running
}
