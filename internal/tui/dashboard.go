package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amonroe/agentmon"
)

// FrameMsg carries a freshly aggregated view into the dashboard model.
// The monitor's frame handler forwards frames with [tea.Program.Send].
type FrameMsg agentmon.View

// clockMsg advances the header clock and the per-record ages between
// frames, so a quiet board does not look frozen.
type clockMsg time.Time

// Model is the live dashboard. It follows The Elm Architecture used by
// bubbletea: all state lives here, Update reacts to messages, View draws.
//
// The model is a pure renderer. It never reads the store itself; the
// refresh loop owns that cycle and pushes frames in as messages, which
// keeps one code path for both the live board and one-shot rendering.
type Model struct {
	view      agentmon.View
	statusDir string
	now       time.Time

	width  int
	height int
}

// NewModel creates the dashboard model for a board over statusDir.
// initial is rendered until the first frame arrives.
func NewModel(statusDir string, initial agentmon.View) Model {
	return Model{
		view:      initial,
		statusDir: statusDir,
		now:       time.Now(),
	}
}

// Init starts the clock ticker. This implements [tea.Model].
func (m Model) Init() tea.Cmd {
	return tickClock()
}

// tickClock schedules the next clock advance.
func tickClock() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

// Update reacts to key presses, window resizes, clock ticks and incoming
// frames. This implements [tea.Model].
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case FrameMsg:
		m.view = agentmon.View(msg)
		m.now = time.Now()

	case clockMsg:
		m.now = time.Time(msg)
		return m, tickClock()
	}
	return m, nil
}

// View draws the current board. This implements [tea.Model].
func (m Model) View() string {
	return fit(Render(m.view, m.statusDir, m.now), m.width) + "\n"
}
