// Package main is the entry point for the agentmon CLI.
//
// agentmon is a file-backed status board for coding agents: agent
// processes report their state into a shared directory, and the dashboard
// renders it live in the terminal.
//
// Usage:
//
//	agentmon watch                         # Live dashboard
//	agentmon watch --once                  # Print the board once and exit
//	agentmon report myrepo wt running "Refactoring auth"
//	agentmon report myrepo wt --clear      # Remove a record
//	agentmon hook < event.json             # Map an agent hook event
//	agentmon demo                          # Seed sample data
//	agentmon version                       # Show version info
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "agentmon",
	Short: "A terminal status board for coding agents",
	Long: `agentmon is a terminal status board for coding agents working
across repositories and worktrees.

Agents publish small status records (state + summary) into a shared
directory; the dashboard aggregates and renders them live. There is no
server: the whole protocol is files plus atomic renames.

Quick start:
  1. Seed sample data:  agentmon demo
  2. Watch the board:   agentmon watch

Status records live under ~/.agentmon/status by default; override with
--status-dir, the AGENTMON_DIR environment variable, or
~/.agentmon/config.yaml.`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// newLogger creates a text logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this agentmon binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("agentmon %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
