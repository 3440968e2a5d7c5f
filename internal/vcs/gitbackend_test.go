package vcs

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	cerrors "github.com/calvra/cellar/internal/errors"
)

func writeFile(t *testing.T, workDir, rel, contents string) {
	t.Helper()
	abs := filepath.Join(workDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0700); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(abs, []byte(contents), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func walkAll(t *testing.T, backend Backend) []string {
	t.Helper()
	var paths []string
	err := backend.WalkHead(func(rel string) bool {
		paths = append(paths, rel)
		return true
	})
	if err != nil {
		t.Fatalf("WalkHead failed: %v", err)
	}
	sort.Strings(paths)
	return paths
}

func TestInitAndDiscover(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")

	backend, err := Init(dir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if backend.WorkDir() != dir {
		t.Errorf("WorkDir() = %q, want %q", backend.WorkDir(), dir)
	}

	// Discovery searches upwards from a nested directory.
	nested := filepath.Join(dir, "web", "github")
	if err := os.MkdirAll(nested, 0700); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	found, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if found.WorkDir() != dir {
		t.Errorf("Discovered WorkDir() = %q, want %q", found.WorkDir(), dir)
	}
}

func TestDiscoverMissing(t *testing.T) {
	if _, err := Discover(t.TempDir()); !errors.Is(err, cerrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestInitExisting(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := Init(dir); !errors.Is(err, cerrors.ErrRepositoryExists) {
		t.Errorf("Expected ErrRepositoryExists, got %v", err)
	}
}

func TestStageCommitWalk(t *testing.T) {
	dir := t.TempDir()
	backend, err := Init(dir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	writeFile(t, dir, "web/github", "ciphertext")
	writeFile(t, dir, "mail", "ciphertext")

	if err := backend.Stage("web/github", "mail"); err != nil {
		t.Fatalf("Stage failed: %v", err)
	}
	if err := backend.Commit("Change password 'web/github'."); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	paths := walkAll(t, backend)
	if len(paths) != 2 || paths[0] != "mail" || paths[1] != "web/github" {
		t.Errorf("WalkHead visited %v", paths)
	}
}

func TestCommitNothingStagedIsNoOp(t *testing.T) {
	dir := t.TempDir()
	backend, err := Init(dir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	writeFile(t, dir, "entry", "v1")
	if err := backend.Stage("entry"); err != nil {
		t.Fatalf("Stage failed: %v", err)
	}
	if err := backend.Commit("Change password 'entry'."); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	// Nothing changed since the last commit; this must not fail and must
	// not add a commit that alters the tree.
	if err := backend.Commit("no changes"); err != nil {
		t.Errorf("Empty commit was not treated as a no-op: %v", err)
	}
}

func TestWalkHeadNoCommits(t *testing.T) {
	backend, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if paths := walkAll(t, backend); len(paths) != 0 {
		t.Errorf("WalkHead on an empty repository visited %v", paths)
	}
}

func TestWalkHeadEarlyStop(t *testing.T) {
	dir := t.TempDir()
	backend, err := Init(dir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	for _, name := range []string{"a", "b", "c"} {
		writeFile(t, dir, name, name)
	}
	if err := backend.Stage("a", "b", "c"); err != nil {
		t.Fatalf("Stage failed: %v", err)
	}
	if err := backend.Commit("initial"); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	visits := 0
	err = backend.WalkHead(func(string) bool {
		visits++
		return false
	})
	if err != nil {
		t.Fatalf("WalkHead failed: %v", err)
	}
	if visits != 1 {
		t.Errorf("Visitor ran %d times after returning false", visits)
	}
}

func TestStageRemovedFile(t *testing.T) {
	dir := t.TempDir()
	backend, err := Init(dir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	writeFile(t, dir, "doomed", "v1")
	if err := backend.Stage("doomed"); err != nil {
		t.Fatalf("Stage failed: %v", err)
	}
	if err := backend.Commit("add"); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	if err := os.Remove(filepath.Join(dir, "doomed")); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := backend.Stage("doomed"); err != nil {
		t.Fatalf("Staging a deletion failed: %v", err)
	}
	if err := backend.Commit("remove"); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	if paths := walkAll(t, backend); len(paths) != 0 {
		t.Errorf("Removed file still tracked: %v", paths)
	}
}
