package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonroe/agentmon"
	"github.com/amonroe/agentmon/config"
)

var reportCmd = &cobra.Command{
	Use:   "report <args>",
	Short: "Report or clear an agent's status",
	Long: `Report an agent's status, or clear it.

Reporting accepts two argument shapes. With an explicit namespace:

  agentmon report <namespace> <id> <status> [summary...]

or, letting the namespace default:

  agentmon report <id> <status> [summary...]

The shape is inferred from which argument parses as a status. Valid
statuses: running, waiting_input, idle, error.

Clearing removes a previously reported status:

  agentmon report <id> --clear
  agentmon report <namespace> <id> --clear

A leading "clear" keyword works too (agentmon report clear <id>), but
only when the arguments do not already form a valid report; prefer the
flag form.

Examples:
  agentmon report webapp feature-auth running "Implementing OAuth flow"
  agentmon report build-bot idle
  agentmon report webapp feature-auth --clear`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("status-dir", "", "status directory (default: AGENTMON_DIR or ~/.agentmon/status)")
	reportCmd.Flags().String("path", "", "working directory to record with the status")
	reportCmd.Flags().Bool("clear", false, "clear the status instead of reporting one")
}

// reportRequest is a parsed report invocation.
type reportRequest struct {
	clear     bool
	namespace string
	id        string
	status    agentmon.Status
	summary   string
}

// parseReportArgs decides the argument shape. With clearFlag set, one
// argument is an id in the default namespace and two are namespace then
// id. For reports, whichever of the second or third argument parses as a
// status fixes the shape; everything after it is the summary.
//
// A leading "clear" keyword is accepted as a convenience, but only after
// the report shapes fail to match: an agent with the literal id "clear"
// can still report.
func parseReportArgs(args []string, clearFlag bool) (reportRequest, error) {
	if clearFlag {
		switch len(args) {
		case 1:
			return reportRequest{clear: true, namespace: agentmon.DefaultNamespace, id: args[0]}, nil
		case 2:
			return reportRequest{clear: true, namespace: args[0], id: args[1]}, nil
		default:
			return reportRequest{}, fmt.Errorf("--clear takes <id> or <namespace> <id>, got %d arguments", len(args))
		}
	}

	if len(args) >= 2 {
		if st, err := agentmon.ParseStatus(args[1]); err == nil {
			return reportRequest{
				namespace: agentmon.DefaultNamespace,
				id:        args[0],
				status:    st,
				summary:   strings.Join(args[2:], " "),
			}, nil
		}
	}
	if len(args) >= 3 {
		if st, err := agentmon.ParseStatus(args[2]); err == nil {
			return reportRequest{
				namespace: args[0],
				id:        args[1],
				status:    st,
				summary:   strings.Join(args[3:], " "),
			}, nil
		}
	}

	if args[0] == "clear" {
		switch len(args) {
		case 2:
			return reportRequest{clear: true, namespace: agentmon.DefaultNamespace, id: args[1]}, nil
		case 3:
			return reportRequest{clear: true, namespace: args[1], id: args[2]}, nil
		}
	}

	switch {
	case len(args) < 2:
		return reportRequest{}, fmt.Errorf("report takes at least <id> <status>")
	case len(args) == 2:
		return reportRequest{}, fmt.Errorf("%q is not a valid status (valid: %s)", args[1], validStatuses())
	default:
		return reportRequest{}, fmt.Errorf("%q is not a valid status (valid: %s)", args[2], validStatuses())
	}
}

func validStatuses() string {
	names := make([]string, 0, len(agentmon.ReportableStatuses()))
	for _, s := range agentmon.ReportableStatuses() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}

func runReport(cmd *cobra.Command, args []string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	req, err := parseReportArgs(args, clearFlag)
	if err != nil {
		return err
	}

	dirFlag, _ := cmd.Flags().GetString("status-dir")
	path, _ := cmd.Flags().GetString("path")

	cfg, err := config.LoadDefault()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	statusDir := config.ResolveStatusDir(dirFlag, cfg)

	rep := agentmon.NewReporter(statusDir)

	if req.clear {
		removed, err := rep.Clear(req.namespace, req.id)
		if err != nil {
			return fmt.Errorf("failed to clear status: %w", err)
		}
		if removed {
			fmt.Printf("Cleared status for '%s/%s'\n", req.namespace, req.id)
		} else {
			fmt.Printf("No status found for '%s/%s'\n", req.namespace, req.id)
		}
		return nil
	}

	rec := agentmon.Record{
		Namespace: req.namespace,
		ID:        req.id,
		Status:    req.status,
		Summary:   req.summary,
		Path:      path,
	}
	if err := rep.Report(rec); err != nil {
		return fmt.Errorf("failed to report status: %w", err)
	}
	fmt.Printf("Reported %s for '%s/%s'\n", req.status, req.namespace, req.id)
	return nil
}
