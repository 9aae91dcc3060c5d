package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amonroe/agentmon"
)

func TestModel_QuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			m := NewModel("/tmp/status", agentmon.View{})

			var msg tea.KeyMsg
			switch key {
			case "esc":
				msg = tea.KeyMsg{Type: tea.KeyEsc}
			case "ctrl+c":
				msg = tea.KeyMsg{Type: tea.KeyCtrlC}
			default:
				msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
			}

			_, cmd := m.Update(msg)
			if cmd == nil {
				t.Fatalf("key %q produced no command, want quit", key)
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("key %q did not quit", key)
			}
		})
	}
}

func TestModel_OtherKeysIgnored(t *testing.T) {
	m := NewModel("/tmp/status", agentmon.View{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd != nil {
		t.Error("unbound key should be ignored")
	}
}

func TestModel_FrameUpdatesView(t *testing.T) {
	m := NewModel("/tmp/status", agentmon.View{})

	if !strings.Contains(m.View(), "No agents found") {
		t.Fatal("initial board should be empty")
	}

	updated, _ := m.Update(FrameMsg(sampleView()))
	out := updated.(Model).View()
	if !strings.Contains(out, "feature-auth") {
		t.Error("board does not show the frame's records")
	}
	if strings.Contains(out, "No agents found") {
		t.Error("board still claims to be empty after a frame")
	}
}

func TestModel_WindowResize(t *testing.T) {
	m := NewModel("/tmp/status", sampleView())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	m = updated.(Model)
	if m.width != 40 || m.height != 20 {
		t.Errorf("size = %dx%d, want 40x20", m.width, m.height)
	}
	if m.View() == "" {
		t.Error("resized board rendered nothing")
	}
}

func TestModel_ClockKeepsTicking(t *testing.T) {
	m := NewModel("/tmp/status", agentmon.View{})

	if m.Init() == nil {
		t.Fatal("Init() should schedule the clock")
	}
	_, cmd := m.Update(clockMsg(testNow))
	if cmd == nil {
		t.Error("clock tick should schedule the next tick")
	}
}
