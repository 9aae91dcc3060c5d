package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/amonroe/agentmon"
	"github.com/amonroe/agentmon/config"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Seed the board with sample data",
	Long: `Seed the status directory with a handful of sample agents across
several namespaces, then exit. Useful for trying out the dashboard
without any real agents reporting.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().String("status-dir", "", "status directory (default: AGENTMON_DIR or ~/.agentmon/status)")
}

type demoRecord struct {
	namespace string
	id        string
	status    agentmon.Status
	summary   string
	age       time.Duration
}

var demoRecords = []demoRecord{
	{"webapp", "feature-auth", agentmon.StatusWaitingInput, "Should I use OAuth 2.0 or JWT for the new auth system?", 2 * time.Minute},
	{"webapp", "bugfix-api", agentmon.StatusRunning, "Refactoring error handling in api/routes.ts", 30 * time.Second},
	{"webapp", "feature-ui", agentmon.StatusIdle, "Completed: Added dark mode toggle component", 5 * time.Minute},
	{"backend-services", "refactor-db", agentmon.StatusWaitingInput, "Migration will drop the legacy_users table. Proceed?", 8 * time.Minute},
	{"backend-services", "hotfix-login", agentmon.StatusError, "Build failed: Cannot find module '@auth/core'", time.Minute},
	{"ml-pipeline", "experiment-bert", agentmon.StatusRunning, "Training model: epoch 42/100, loss=0.0234", 10 * time.Second},
	{"ml-pipeline", "data-cleaning", agentmon.StatusIdle, "Completed preprocessing of 50k samples", 15 * time.Minute},
}

func runDemo(cmd *cobra.Command, args []string) error {
	dirFlag, _ := cmd.Flags().GetString("status-dir")
	cfg, err := config.LoadDefault()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	statusDir := config.ResolveStatusDir(dirFlag, cfg)

	rep := agentmon.NewReporter(statusDir)
	now := time.Now().UTC()
	for _, d := range demoRecords {
		rec := agentmon.Record{
			Namespace: d.namespace,
			ID:        d.id,
			Status:    d.status,
			Summary:   d.summary,
			UpdatedAt: now.Add(-d.age),
			Path:      "/home/user/" + d.namespace + "-" + d.id,
			SessionID: uuid.NewString(),
		}
		if err := rep.Report(rec); err != nil {
			return fmt.Errorf("failed to seed %s/%s: %w", d.namespace, d.id, err)
		}
	}

	fmt.Printf("Seeded %d sample agents in %s\n", len(demoRecords), statusDir)
	fmt.Println("Now run: agentmon watch")
	return nil
}
