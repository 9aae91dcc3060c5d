package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/amonroe/agentmon"
)

// Muted, professional palette shared by the live dashboard and the
// one-shot renderer.
var (
	colorAccent  = lipgloss.Color("#61afef") // soft blue
	colorSuccess = lipgloss.Color("#98c379") // soft green
	colorWarning = lipgloss.Color("#e5c07b") // soft amber
	colorError   = lipgloss.Color("#e06c75") // soft red
	colorMuted   = lipgloss.Color("#5c6370") // gray
	colorText    = lipgloss.Color("#abb2bf") // light gray
	colorBright  = lipgloss.Color("#ffffff")
	colorRepo    = lipgloss.Color("#c678dd") // purple for namespaces
)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	clockStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	namespaceStyle = lipgloss.NewStyle().Foreground(colorRepo).Bold(true)
	idStyle        = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	panelStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(1, 2)
)

// statusGlyph describes how one presentation state is drawn.
type statusGlyph struct {
	icon  string
	label string
	style lipgloss.Style
}

var statusGlyphs = map[string]statusGlyph{
	"running": {
		icon:  "◐",
		label: "RUNNING",
		style: lipgloss.NewStyle().Foreground(colorAccent),
	},
	"waiting_input": {
		icon:  "?",
		label: "WAITING",
		style: lipgloss.NewStyle().Foreground(colorWarning),
	},
	"idle": {
		icon:  "✓",
		label: "IDLE",
		style: lipgloss.NewStyle().Foreground(colorSuccess),
	},
	"error": {
		icon:  "✗",
		label: "ERROR",
		style: lipgloss.NewStyle().Foreground(colorError),
	},
	"unknown": {
		icon:  "·",
		label: "UNKNOWN",
		style: lipgloss.NewStyle().Foreground(colorMuted),
	},
}

// glyphFor returns the drawing config for a record's presentation state.
func glyphFor(rec agentmon.Record) statusGlyph {
	if g, ok := statusGlyphs[string(rec.PresentationStatus())]; ok {
		return g
	}
	return statusGlyphs["unknown"]
}
