package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/amonroe/agentmon/internal/events"
)

var initCmd = &cobra.Command{
	Use:   "init [namespace] [id]",
	Short: "Write a reporting identity file for this project",
	Long: `Write a .agentmon.yaml identity file in the current directory,
naming the namespace and id this project's hook events report as.

Without arguments the namespace defaults to the current directory's base
name and the id to "main". An existing identity file is left untouched.

Examples:
  agentmon init
  agentmon init webapp feature-auth`,
	Args: cobra.MaximumNArgs(2),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	path := filepath.Join(dir, events.IdentityFile)
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("%s already exists, leaving it alone\n", events.IdentityFile)
		return nil
	}

	identity := events.Identity{
		Repo:     filepath.Base(dir),
		Worktree: "main",
	}
	if len(args) > 0 {
		identity.Repo = args[0]
	}
	if len(args) > 1 {
		identity.Worktree = args[1]
	}

	if err := events.WriteIdentity(dir, identity); err != nil {
		return fmt.Errorf("failed to write identity file: %w", err)
	}
	fmt.Printf("Wrote %s: reporting as '%s/%s'\n", events.IdentityFile, identity.Repo, identity.Worktree)
	return nil
}
