package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/amonroe/agentmon"
	"github.com/amonroe/agentmon/config"
	"github.com/amonroe/agentmon/internal/events"
)

// EnvProjectDir overrides the project directory used to resolve the hook's
// reporting identity. Without it the event's cwd is used.
const EnvProjectDir = "AGENTMON_PROJECT_DIR"

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Process an agent lifecycle event from stdin",
	Long: `Process one agent lifecycle event, delivered as JSON on stdin.

This is meant to be wired into the agent tool's hook configuration so
status updates flow to the board automatically. The event's cwd (or
$AGENTMON_PROJECT_DIR, when set) locates an optional .agentmon.yaml
identity file naming the namespace and id to report as.

The hook never blocks or fails the agent: malformed events, missing
session ids and write failures are swallowed and the command exits 0.`,
	RunE: runHook,
}

func init() {
	rootCmd.AddCommand(hookCmd)

	hookCmd.Flags().String("status-dir", "", "status directory (default: AGENTMON_DIR or ~/.agentmon/status)")
}

func runHook(cmd *cobra.Command, args []string) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil
	}

	ev, err := events.ParseEvent(data)
	if err != nil || ev.SessionID == "" {
		return nil
	}

	projectDir := os.Getenv(EnvProjectDir)
	if projectDir == "" {
		projectDir = ev.CWD
	}
	identity := events.LoadIdentity(projectDir)

	dirFlag, _ := cmd.Flags().GetString("status-dir")
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil
	}
	rep := agentmon.NewReporter(config.ResolveStatusDir(dirFlag, cfg))

	action := events.MapEvent(ev)
	if action.Clear {
		_, _ = rep.Clear(identity.Repo, identity.Worktree)
		return nil
	}

	status, err := agentmon.ParseStatus(action.Status)
	if err != nil {
		return nil
	}
	_ = rep.Report(agentmon.Record{
		Namespace: identity.Repo,
		ID:        identity.Worktree,
		Status:    status,
		Summary:   action.Summary,
		Path:      ev.CWD,
		SessionID: ev.SessionID,
	})
	return nil
}
