package repository

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/calvra/cellar/internal/crypto"
	cerrors "github.com/calvra/cellar/internal/errors"
	"github.com/calvra/cellar/internal/vcs"
)

// Options configures Open.
type Options struct {
	// Create initializes a fresh repository when none exists at the
	// given path. Without it, a missing repository is ErrNotFound.
	Create bool

	// Prompt supplies the passphrase for key derivation. Required for
	// Read and Write.
	Prompt PassphrasePrompt

	// HeaderParams overrides the key-derivation defaults recorded when
	// a fresh header is created. Existing headers are never rewritten
	// from these. Nil means production defaults.
	HeaderParams *HeaderParams
}

// Repository is a handle on an open password store. It owns the working
// tree files and the encryption header for the duration of the session;
// Close flushes and commits the header. A repository does not support
// concurrent writers.
type Repository struct {
	backend   vcs.Backend
	header    *EncryptionHeader
	prompt    PassphrasePrompt
	lifecycle *crypto.Lifecycle
}

// Open opens the repository at path, discovering an existing one by
// searching upwards the way the backend does. The lifecycle token must be
// live for the duration of the handle.
func Open(lifecycle *crypto.Lifecycle, path string, opts Options) (*Repository, error) {
	if lifecycle == nil || !lifecycle.Live() {
		return nil, fmt.Errorf("%w: repository opened without a live crypto lifecycle", cerrors.ErrLifecycleNotLive)
	}

	backend, err := vcs.Discover(path)
	if errors.Is(err, cerrors.ErrNotFound) && opts.Create {
		backend, err = vcs.Init(path)
	}
	if err != nil {
		return nil, err
	}

	params := DefaultHeaderParams()
	if opts.HeaderParams != nil {
		params = *opts.HeaderParams
	}

	header, err := openHeader(backend.WorkDir(), params)
	if err != nil {
		return nil, err
	}

	return &Repository{
		backend:   backend,
		header:    header,
		prompt:    opts.Prompt,
		lifecycle: lifecycle,
	}, nil
}

// Close flushes the encryption header and commits it if it changed. The
// repository handle is invalid afterwards.
func (r *Repository) Close() error {
	return r.header.close(r.backend)
}

// WorkDir returns the absolute path of the repository working tree.
func (r *Repository) WorkDir() string {
	return r.backend.WorkDir()
}

// Header exposes the repository's encryption header.
func (r *Repository) Header() *EncryptionHeader {
	return r.header
}

// Read decrypts and returns the entry at path. The master key is derived
// on demand and dropped before returning.
func (r *Repository) Read(path Path) (string, error) {
	if path.Relative() == "" {
		return "", fmt.Errorf("%w: empty path", cerrors.ErrInvalidPath)
	}

	ciphertext, err := os.ReadFile(path.Absolute())
	if os.IsNotExist(err) {
		return "", fmt.Errorf("while reading entry %q: %w", path.Relative(), cerrors.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("while reading entry %q: %w", path.Relative(), err)
	}

	key, err := r.buildMasterKey()
	if err != nil {
		return "", err
	}
	defer crypto.Zero(key)

	plaintext, err := crypto.Decrypt(key, ciphertext)
	if err != nil {
		return "", fmt.Errorf("while reading entry %q: %w", path.Relative(), err)
	}
	return string(plaintext), nil
}

// Write encrypts plaintext and stores it at path, committing the change.
// The commit fires whenever the entry file has been opened for writing,
// even if a later step fails; a failed commit leaves the edit uncommitted
// in the working tree but never deletes it.
func (r *Repository) Write(path Path, plaintext []byte) (err error) {
	if path.Relative() == "" {
		return fmt.Errorf("%w: empty path", cerrors.ErrInvalidPath)
	}
	if path.Relative() == HeaderRelativePath {
		return fmt.Errorf("%w: %q is reserved", cerrors.ErrInvalidPath, HeaderRelativePath)
	}

	key, err := r.buildMasterKey()
	if err != nil {
		return err
	}
	defer crypto.Zero(key)

	ciphertext, err := crypto.Encrypt(key, plaintext)
	if err != nil {
		return err
	}

	guard, err := newWriteGuard(r.backend, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := guard.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = guard.Write(ciphertext)
	return err
}

// WriteFrom is Write with the plaintext drawn from a byte stream.
func (r *Repository) WriteFrom(path Path, reader io.Reader) error {
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read entry value: %w", err)
	}
	defer crypto.Zero(plaintext)

	return r.Write(path, plaintext)
}

// Remove deletes the entry at path and commits the removal.
func (r *Repository) Remove(path Path) error {
	if path.Relative() == "" || path.Relative() == HeaderRelativePath {
		return fmt.Errorf("%w: %q", cerrors.ErrInvalidPath, path.Relative())
	}

	if err := os.Remove(path.Absolute()); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("while removing entry %q: %w", path.Relative(), cerrors.ErrNotFound)
		}
		return fmt.Errorf("while removing entry %q: %w", path.Relative(), err)
	}

	if err := r.backend.Stage(path.Relative()); err != nil {
		return err
	}
	return r.backend.Commit(fmt.Sprintf("Remove password '%s'.", path.Relative()))
}

// List walks the most recent committed tree and invokes visitor once for
// every tracked entry whose relative path starts with the prefix. The
// match is a literal byte prefix, so "foo" matches both "foo/bar" and
// "foobar". The reserved header path is never emitted. The visitor returns
// false to stop early.
func (r *Repository) List(prefix Path, visitor func(Path) bool) error {
	return r.backend.WalkHead(func(rel string) bool {
		if rel == HeaderRelativePath {
			return true
		}
		if !strings.HasPrefix(rel, prefix.Relative()) {
			return true
		}
		return visitor(Path{relative: rel, workDir: r.backend.WorkDir()})
	})
}

// writeGuard owns an entry's output file and its commit. Closing it first
// flushes and closes the file, then stages the path and commits, so the
// commit always observes the final bytes. Entry commit failures are
// surfaced, never swallowed.
type writeGuard struct {
	backend vcs.Backend
	path    Path
	out     *os.File
}

func newWriteGuard(backend vcs.Backend, path Path) (*writeGuard, error) {
	if err := os.MkdirAll(filepath.Dir(path.Absolute()), 0700); err != nil {
		return nil, fmt.Errorf("failed to create parent directory for %q: %w", path.Relative(), err)
	}

	out, err := os.OpenFile(path.Absolute(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open entry %q for writing: %w", path.Relative(), err)
	}

	return &writeGuard{backend: backend, path: path, out: out}, nil
}

func (g *writeGuard) Write(data []byte) (int, error) {
	return g.out.Write(data)
}

func (g *writeGuard) Close() error {
	closeErr := g.out.Close()

	if err := g.backend.Stage(g.path.Relative()); err != nil {
		return err
	}
	if err := g.backend.Commit(fmt.Sprintf("Change password '%s'.", g.path.Relative())); err != nil {
		return err
	}
	return closeErr
}
