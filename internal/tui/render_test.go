package tui

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/amonroe/agentmon"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleView() agentmon.View {
	return agentmon.View{
		Groups: []agentmon.Group{
			{
				Namespace: "myrepo",
				Records: []agentmon.Record{
					{
						Namespace: "myrepo",
						ID:        "feature-auth",
						Status:    agentmon.StatusWaitingInput,
						Summary:   "Should I use OAuth or JWT?",
						UpdatedAt: testNow.Add(-30 * time.Second),
					},
					{
						Namespace: "myrepo",
						ID:        "bugfix-db",
						Status:    agentmon.StatusRunning,
						Summary:   "Running migrations",
						UpdatedAt: testNow.Add(-5 * time.Minute),
					},
				},
			},
		},
		Counts:      agentmon.Counts{Waiting: 1, Running: 1, Total: 2},
		GeneratedAt: testNow,
	}
}

func TestRender_ShowsRecordsAndCounts(t *testing.T) {
	out := Render(sampleView(), "/tmp/status", testNow)

	for _, want := range []string{
		"myrepo",
		"feature-auth",
		"bugfix-db",
		"WAITING",
		"RUNNING",
		"30s ago",
		"5m ago",
		"1 waiting",
		"1 running",
		"2 total",
		"press q to quit",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output missing %q", want)
		}
	}
}

func TestRender_EmptyBoard(t *testing.T) {
	out := Render(agentmon.View{}, "/tmp/status", testNow)

	if !strings.Contains(out, "No agents found") {
		t.Error("empty board should say no agents were found")
	}
	if !strings.Contains(out, "/tmp/status") {
		t.Error("empty board should name the watched directory")
	}
}

func TestRender_DefaultNamespaceDisplayName(t *testing.T) {
	view := agentmon.View{
		Groups: []agentmon.Group{{
			Namespace: agentmon.DefaultNamespace,
			Records: []agentmon.Record{
				{ID: "wt", Status: agentmon.StatusIdle, UpdatedAt: testNow},
			},
		}},
		Counts: agentmon.Counts{Idle: 1, Total: 1},
	}

	out := Render(view, "/tmp/status", testNow)
	if strings.Contains(out, agentmon.DefaultNamespace) {
		t.Errorf("sentinel namespace %q should render as %q", agentmon.DefaultNamespace, "default")
	}
}

func TestRender_UnknownStatus(t *testing.T) {
	view := agentmon.View{
		Groups: []agentmon.Group{{
			Namespace: "ns",
			Records: []agentmon.Record{
				{ID: "wt", Status: "mystery", UpdatedAt: testNow},
			},
		}},
		Counts: agentmon.Counts{Unknown: 1, Total: 1},
	}

	if out := Render(view, "/tmp/status", testNow); !strings.Contains(out, "UNKNOWN") {
		t.Error("unrecognized status should render as UNKNOWN")
	}
}

func TestTimeAgo(t *testing.T) {
	tests := []struct {
		delta time.Duration
		want  string
	}{
		{-5 * time.Second, "just now"},
		{0, "0s ago"},
		{42 * time.Second, "42s ago"},
		{3 * time.Minute, "3m ago"},
		{2 * time.Hour, "2h ago"},
		{49 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		if got := TimeAgo(testNow.Add(-tt.delta), testNow); got != tt.want {
			t.Errorf("TimeAgo(now-%v) = %q, want %q", tt.delta, got, tt.want)
		}
	}

	if got := TimeAgo(time.Time{}, testNow); got != "unknown" {
		t.Errorf("TimeAgo(zero) = %q, want unknown", got)
	}
}

func TestTruncateSummary(t *testing.T) {
	short := "fits fine"
	if got := TruncateSummary(short); got != short {
		t.Errorf("TruncateSummary(%q) = %q, want unchanged", short, got)
	}

	long := strings.Repeat("a", 100)
	got := TruncateSummary(long)
	if len(got) != maxSummaryWidth {
		t.Errorf("truncated length = %d, want %d", len(got), maxSummaryWidth)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated summary %q should end with ellipsis", got)
	}

	multibyte := strings.Repeat("あ", 100)
	got = TruncateSummary(multibyte)
	if !utf8.ValidString(got) {
		t.Errorf("truncated multibyte summary %q is not valid UTF-8", got)
	}
	if n := utf8.RuneCountInString(got); n != maxSummaryWidth {
		t.Errorf("truncated rune count = %d, want %d", n, maxSummaryWidth)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated multibyte summary %q should end with ellipsis", got)
	}
}
