package events

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amonroe/agentmon/internal/store"
)

func TestLoadIdentity_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("repo: myrepo\nworktree: feature-auth\n")
	if err := os.WriteFile(filepath.Join(dir, IdentityFile), content, 0o644); err != nil {
		t.Fatal(err)
	}

	id := LoadIdentity(dir)
	if id.Repo != "myrepo" || id.Worktree != "feature-auth" {
		t.Errorf("LoadIdentity() = %+v, want myrepo/feature-auth", id)
	}
}

func TestLoadIdentity_FallbackToDirName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "billing-fix")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	id := LoadIdentity(dir)
	if id.Repo != store.DefaultNamespace {
		t.Errorf("Repo = %q, want %q", id.Repo, store.DefaultNamespace)
	}
	if id.Worktree != "billing-fix" {
		t.Errorf("Worktree = %q, want billing-fix", id.Worktree)
	}
}

func TestLoadIdentity_PartialFileBackfilled(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "wt-dir")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, IdentityFile), []byte("repo: myrepo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	id := LoadIdentity(dir)
	if id.Repo != "myrepo" || id.Worktree != "wt-dir" {
		t.Errorf("LoadIdentity() = %+v, want myrepo/wt-dir", id)
	}
}

func TestLoadIdentity_CorruptFileFallsBack(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "broken")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, IdentityFile), []byte(":\tnot yaml ["), 0o644); err != nil {
		t.Fatal(err)
	}

	id := LoadIdentity(dir)
	if id.Worktree != "broken" {
		t.Errorf("Worktree = %q, want fallback to dir name", id.Worktree)
	}
}

func TestWriteIdentity_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := Identity{Repo: "payments", Worktree: "hotfix-1"}
	if err := WriteIdentity(dir, want); err != nil {
		t.Fatalf("WriteIdentity() error = %v", err)
	}

	if got := LoadIdentity(dir); got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadIdentity_EmptyProjectDir(t *testing.T) {
	id := LoadIdentity("")
	if id.Worktree != "unknown" || id.Repo != store.DefaultNamespace {
		t.Errorf("LoadIdentity(\"\") = %+v, want unknown/%s", id, store.DefaultNamespace)
	}
}
