package events

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/amonroe/agentmon/internal/store"
)

// IdentityFile is the per-project file naming the namespace and id a hook
// reports under. It lives at the project root so each worktree can carry
// its own identity.
const IdentityFile = ".agentmon.yaml"

// Identity is the (namespace, id) pair a project's hook events report as.
type Identity struct {
	// Repo is the namespace, usually the repository name.
	Repo string `yaml:"repo"`

	// Worktree is the record id, usually the worktree or branch name.
	Worktree string `yaml:"worktree"`
}

// LoadIdentity resolves the reporting identity for a project directory.
//
// It prefers an explicit .agentmon.yaml in the directory; a missing or
// unreadable file falls back to the directory's base name as the id under
// the default namespace. Hooks run on every agent event, so this never
// fails: a wrong-but-stable identity beats a crashed hook.
func LoadIdentity(projectDir string) Identity {
	fallback := Identity{
		Repo:     store.DefaultNamespace,
		Worktree: filepath.Base(filepath.Clean(projectDir)),
	}
	if projectDir == "" {
		fallback.Worktree = "unknown"
		return fallback
	}

	data, err := os.ReadFile(filepath.Join(projectDir, IdentityFile))
	if err != nil {
		return fallback
	}
	var id Identity
	if err := yaml.Unmarshal(data, &id); err != nil {
		return fallback
	}
	if id.Repo == "" {
		id.Repo = fallback.Repo
	}
	if id.Worktree == "" {
		id.Worktree = fallback.Worktree
	}
	return id
}

// WriteIdentity persists an identity file into projectDir, used by setup
// tooling to pin a worktree's reporting identity.
func WriteIdentity(projectDir string, id Identity) error {
	data, err := yaml.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	path := filepath.Join(projectDir, IdentityFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write identity file: %w", err)
	}
	return nil
}
