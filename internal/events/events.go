// Package events maps agent lifecycle events to status records.
//
// This package is internal to agentmon and holds the writer-side policy
// layer: a pure function from a hook event to the status action it implies,
// plus resolution of the reporting identity (namespace and id) for a
// project directory. Keeping the mapping pure means the heuristics can
// change freely without touching the store protocol.
package events

import (
	"encoding/json"
	"fmt"
	"strings"
)

// maxPromptSummary caps how much of a user prompt is echoed into a summary.
const maxPromptSummary = 50

// Event is one agent lifecycle notification, as delivered on stdin by the
// host tool's hook mechanism. Unknown fields are ignored.
type Event struct {
	SessionID        string          `json:"session_id"`
	CWD              string          `json:"cwd"`
	HookEventName    string          `json:"hook_event_name"`
	ToolName         string          `json:"tool_name"`
	NotificationType string          `json:"notification_type"`
	Prompt           string          `json:"prompt"`
	ToolResponse     json.RawMessage `json:"tool_response"`
}

// ParseEvent decodes a hook event payload.
func ParseEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("decode hook event: %w", err)
	}
	return ev, nil
}

// Action is what an event asks the status store to do: either clear the
// record, or write one with the given status and summary.
type Action struct {
	// Clear indicates the record should be removed instead of written.
	Clear bool

	// Status is the status value to report. Empty when Clear is set.
	Status string

	// Summary is the human-readable summary to report.
	Summary string
}

// MapEvent derives the status action implied by an event.
//
// MapEvent is a pure function: it inspects only the event and always
// produces an action. Events it does not recognize map to a generic
// "running" rather than being dropped, so an out-of-date dashboard still
// shows the agent as alive.
func MapEvent(ev Event) Action {
	switch ev.HookEventName {
	case "Notification":
		switch ev.NotificationType {
		case "permission_prompt", "idle_prompt", "elicitation_dialog":
			return Action{Status: "waiting_input", Summary: "Waiting for input"}
		}
		return Action{Status: "running", Summary: "Processing"}

	case "PreToolUse":
		return Action{Status: "running", Summary: "Using " + toolName(ev)}

	case "PostToolUse":
		if toolFailed(ev.ToolResponse) {
			return Action{Status: "error", Summary: toolName(ev) + " failed"}
		}
		return Action{Status: "running", Summary: "Completed " + toolName(ev)}

	case "Stop", "SubagentStop":
		return Action{Status: "idle", Summary: "Task completed"}

	case "SessionStart":
		return Action{Status: "running", Summary: "Session started"}

	case "SessionEnd":
		return Action{Clear: true}

	case "UserPromptSubmit":
		prompt := strings.TrimSpace(ev.Prompt)
		if prompt == "" {
			return Action{Status: "running", Summary: "Processing prompt"}
		}
		if runes := []rune(prompt); len(runes) > maxPromptSummary {
			prompt = string(runes[:maxPromptSummary]) + "..."
		}
		return Action{Status: "running", Summary: prompt}
	}

	return Action{Status: "running", Summary: "Active"}
}

// toolName returns the event's tool name, or a generic placeholder.
func toolName(ev Event) string {
	if ev.ToolName != "" {
		return ev.ToolName
	}
	return "tool"
}

// toolFailed reports whether a tool_response payload indicates failure:
// either an "error" field with content, or "success" explicitly false.
// Anything unparseable counts as success; the mapping must never error.
func toolFailed(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var resp struct {
		Error   any   `json:"error"`
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return false
	}
	if resp.Success != nil && !*resp.Success {
		return true
	}
	switch e := resp.Error.(type) {
	case nil:
		return false
	case string:
		return e != ""
	case bool:
		return e
	default:
		return true
	}
}
