package repository

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cerrors "github.com/calvra/cellar/internal/errors"
)

// fakeBackend records staged paths and commit messages without touching a
// real version control repository.
type fakeBackend struct {
	workDir string
	staged  []string
	commits []string
}

func (b *fakeBackend) WorkDir() string { return b.workDir }

func (b *fakeBackend) Stage(relativePaths ...string) error {
	b.staged = append(b.staged, relativePaths...)
	return nil
}

func (b *fakeBackend) Commit(message string) error {
	b.commits = append(b.commits, message)
	return nil
}

func (b *fakeBackend) WalkHead(func(string) bool) error { return nil }

func testParams() HeaderParams {
	return HeaderParams{KeySize: 32, WorkFactor: 10, ParallelizationFactor: 1}
}

func TestOpenHeaderFreshDefaults(t *testing.T) {
	dir := t.TempDir()

	h, err := openHeader(dir, testParams())
	if err != nil {
		t.Fatalf("openHeader failed: %v", err)
	}

	if h.KeySize() != 32 {
		t.Errorf("KeySize() = %d, want 32", h.KeySize())
	}
	if h.WorkFactor() != 10 {
		t.Errorf("WorkFactor() = %d, want 10", h.WorkFactor())
	}
	if h.ParallelizationFactor() != 1 {
		t.Errorf("ParallelizationFactor() = %d, want 1", h.ParallelizationFactor())
	}
	if len(h.Salt()) != 16 {
		t.Errorf("Fresh salt is %d bytes, want 16", len(h.Salt()))
	}
}

func TestHeaderCloseWritesAndCommits(t *testing.T) {
	dir := t.TempDir()
	backend := &fakeBackend{workDir: dir}

	h, err := openHeader(dir, testParams())
	if err != nil {
		t.Fatalf("openHeader failed: %v", err)
	}
	if err := h.close(backend); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, HeaderRelativePath))
	if err != nil {
		t.Fatalf("Header file was not written: %v", err)
	}
	for _, field := range []string{"key_salt", "key_size_octets", "key_work_factor", "key_parallelization_factor"} {
		if !strings.Contains(string(raw), field) {
			t.Errorf("Header file is missing field %q", field)
		}
	}

	if len(backend.commits) != 1 || backend.commits[0] != "Update encryption header contents." {
		t.Errorf("Unexpected commits: %v", backend.commits)
	}
	if len(backend.staged) != 1 || backend.staged[0] != HeaderRelativePath {
		t.Errorf("Unexpected staged paths: %v", backend.staged)
	}
}

func TestHeaderReloadPreservesSalt(t *testing.T) {
	dir := t.TempDir()
	backend := &fakeBackend{workDir: dir}

	first, err := openHeader(dir, testParams())
	if err != nil {
		t.Fatalf("openHeader failed: %v", err)
	}
	if err := first.close(backend); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	second, err := openHeader(dir, testParams())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if string(second.Salt()) != string(first.Salt()) {
		t.Error("Salt changed across a reload")
	}
}

func TestHeaderCloseNoOpWhenUnchanged(t *testing.T) {
	dir := t.TempDir()

	first, err := openHeader(dir, testParams())
	if err != nil {
		t.Fatalf("openHeader failed: %v", err)
	}
	if err := first.close(&fakeBackend{workDir: dir}); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	second, err := openHeader(dir, testParams())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	backend := &fakeBackend{workDir: dir}
	if err := second.close(backend); err != nil {
		t.Fatalf("second close failed: %v", err)
	}

	if len(backend.commits) != 0 {
		t.Errorf("Closing an unchanged header committed: %v", backend.commits)
	}
}

func TestHeaderCloseDetectsSaltChange(t *testing.T) {
	dir := t.TempDir()

	h, err := openHeader(dir, testParams())
	if err != nil {
		t.Fatalf("openHeader failed: %v", err)
	}
	if err := h.close(&fakeBackend{workDir: dir}); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	// Simulate another process rewriting the salt mid-session.
	session, err := openHeader(dir, testParams())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	rewritten := `key_salt = "AAAAAAAAAAAAAAAAAAAAAA=="
key_size_octets = 32
key_work_factor = 10
key_parallelization_factor = 1
`
	if err := os.WriteFile(filepath.Join(dir, HeaderRelativePath), []byte(rewritten), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := session.close(&fakeBackend{workDir: dir}); !errors.Is(err, cerrors.ErrSaltChanged) {
		t.Errorf("Expected ErrSaltChanged, got %v", err)
	}
}

func TestOpenHeaderMalformedSalt(t *testing.T) {
	dir := t.TempDir()
	contents := `key_salt = "not base64 at all!!!"
`
	if err := os.WriteFile(filepath.Join(dir, HeaderRelativePath), []byte(contents), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := openHeader(dir, testParams()); !errors.Is(err, cerrors.ErrCorrupt) {
		t.Errorf("Expected ErrCorrupt, got %v", err)
	}
}

func TestOpenHeaderFillsMissingFields(t *testing.T) {
	dir := t.TempDir()
	contents := `key_salt = "c29tZXNhbHRzb21lc2FsdA=="
`
	if err := os.WriteFile(filepath.Join(dir, HeaderRelativePath), []byte(contents), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	h, err := openHeader(dir, testParams())
	if err != nil {
		t.Fatalf("openHeader failed: %v", err)
	}
	if h.KeySize() != 32 || h.WorkFactor() != 10 || h.ParallelizationFactor() != 1 {
		t.Errorf("Missing fields were not defaulted: k=%d w=%d p=%d", h.KeySize(), h.WorkFactor(), h.ParallelizationFactor())
	}
	if string(h.Salt()) != "somesaltsomesalt" {
		t.Errorf("Persisted salt was not kept: %q", h.Salt())
	}
}

// A header written by a newer version may carry fields this version does
// not know about. A rewrite fills missing fields but must not drop the
// unknown ones.
func TestHeaderRewriteKeepsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	contents := `key_salt = "c29tZXNhbHRzb21lc2FsdA=="
key_rotation_generation = 3
`
	headerPath := filepath.Join(dir, HeaderRelativePath)
	if err := os.WriteFile(headerPath, []byte(contents), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	h, err := openHeader(dir, testParams())
	if err != nil {
		t.Fatalf("openHeader failed: %v", err)
	}
	backend := &fakeBackend{workDir: dir}
	if err := h.close(backend); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if len(backend.commits) != 1 {
		t.Fatalf("Expected one commit for the filled-in header, got %v", backend.commits)
	}

	raw, err := os.ReadFile(headerPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(raw), "key_rotation_generation = 3") {
		t.Errorf("Rewrite dropped the unknown field:\n%s", raw)
	}
	if !strings.Contains(string(raw), `key_salt = "c29tZXNhbHRzb21lc2FsdA=="`) {
		t.Errorf("Rewrite changed the salt:\n%s", raw)
	}

	// The rewritten form is canonical; a second session is a no-op close.
	reopened, err := openHeader(dir, testParams())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	second := &fakeBackend{workDir: dir}
	if err := reopened.close(second); err != nil {
		t.Fatalf("second close failed: %v", err)
	}
	if len(second.commits) != 0 {
		t.Errorf("Closing an unchanged header committed: %v", second.commits)
	}
}
