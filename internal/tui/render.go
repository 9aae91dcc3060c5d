// Package tui renders status board views in the terminal.
//
// This package is internal to agentmon and is the concrete renderer behind
// the dashboard: a bubbletea [Model] for the live, full-screen board and a
// plain [Render] function for one-shot output. It consumes the public
// [agentmon.View] type and has no knowledge of the store or the refresh
// loop; frames arrive as messages.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/amonroe/agentmon"
)

const (
	maxSummaryWidth = 70
	idColumnWidth   = 20
)

// TimeAgo formats the distance between t and now as a compact
// human-readable age, e.g. "42s ago" or "3h ago".
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	seconds := int(now.Sub(t).Seconds())
	switch {
	case seconds < 0:
		return "just now"
	case seconds < 60:
		return fmt.Sprintf("%ds ago", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	default:
		return fmt.Sprintf("%dd ago", seconds/86400)
	}
}

// TruncateSummary shortens a summary to fit the board's summary column.
// Truncation counts runes, not bytes, so multibyte text is never cut
// mid-character.
func TruncateSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= maxSummaryWidth {
		return s
	}
	return string(runes[:maxSummaryWidth-3]) + "..."
}

// Render draws a complete board for view as a styled string, suitable for
// one-shot printing. now drives the clock and the per-record ages.
func Render(view agentmon.View, statusDir string, now time.Time) string {
	var b strings.Builder

	b.WriteString(renderHeader(now))
	b.WriteString("\n\n")

	if view.Empty() {
		b.WriteString(mutedStyle.Render("No agents found. Watching " + statusDir))
		b.WriteString("\n")
	} else {
		for i, group := range view.Groups {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(renderGroup(group, now))
		}
	}

	b.WriteString("\n")
	b.WriteString(renderFooter(view.Counts))
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// renderHeader draws the board title and clock.
func renderHeader(now time.Time) string {
	return titleStyle.Render("agentmon") + "  " + clockStyle.Render(now.Format("15:04:05"))
}

// renderGroup draws one namespace header plus its record rows.
func renderGroup(group agentmon.Group, now time.Time) string {
	var b strings.Builder

	name := group.Namespace
	if name == agentmon.DefaultNamespace {
		name = "default"
	}
	b.WriteString(namespaceStyle.Render(name))
	if badge := groupBadge(group); badge != "" {
		b.WriteString("  " + badge)
	}
	b.WriteString("\n")

	for _, rec := range group.Records {
		b.WriteString(renderRecord(rec, now))
		b.WriteString("\n")
	}
	return b.String()
}

// groupBadge summarizes a namespace's attention-worthy records, e.g.
// "1w 2r 1e" for one waiting, two running, one errored.
func groupBadge(group agentmon.Group) string {
	var waiting, running, errored int
	for _, rec := range group.Records {
		switch rec.PresentationStatus() {
		case agentmon.StatusWaitingInput:
			waiting++
		case agentmon.StatusRunning:
			running++
		case agentmon.StatusError:
			errored++
		}
	}

	parts := make([]string, 0, 3)
	if waiting > 0 {
		parts = append(parts, statusGlyphs["waiting_input"].style.Render(fmt.Sprintf("%dw", waiting)))
	}
	if running > 0 {
		parts = append(parts, statusGlyphs["running"].style.Render(fmt.Sprintf("%dr", running)))
	}
	if errored > 0 {
		parts = append(parts, statusGlyphs["error"].style.Render(fmt.Sprintf("%de", errored)))
	}
	return strings.Join(parts, " ")
}

// renderRecord draws one record row: icon, id, status label, age, summary.
func renderRecord(rec agentmon.Record, now time.Time) string {
	glyph := glyphFor(rec)

	summary := rec.Summary
	if summary == "" {
		summary = "-"
	}

	return fmt.Sprintf("  %s %s %s %s  %s",
		glyph.style.Render(glyph.icon),
		idStyle.Render(fmt.Sprintf("%-*s", idColumnWidth, rec.ID)),
		glyph.style.Render(fmt.Sprintf("%-8s", glyph.label)),
		mutedStyle.Render(fmt.Sprintf("%8s", TimeAgo(rec.UpdatedAt, now))),
		mutedStyle.Render(TruncateSummary(summary)),
	)
}

// renderFooter draws the totals line and the quit hint.
func renderFooter(c agentmon.Counts) string {
	parts := make([]string, 0, 5)
	if c.Waiting > 0 {
		parts = append(parts, fmt.Sprintf("%d waiting", c.Waiting))
	}
	if c.Running > 0 {
		parts = append(parts, fmt.Sprintf("%d running", c.Running))
	}
	if c.Error > 0 {
		parts = append(parts, fmt.Sprintf("%d error", c.Error))
	}
	if c.Total > 0 {
		parts = append(parts, fmt.Sprintf("%d total", c.Total))
	}
	parts = append(parts, "press q to quit")
	return mutedStyle.Render(strings.Join(parts, " | "))
}

// fit constrains rendered output to the terminal width when known.
func fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
