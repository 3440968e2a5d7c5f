package repository

import (
	"fmt"
	"path/filepath"
	"strings"

	cerrors "github.com/calvra/cellar/internal/errors"
)

// Path is a validated, normalized entry name inside a repository. It
// carries both the slash-separated relative form and the working directory
// needed to resolve the absolute form. Path values are plain data.
type Path struct {
	relative string
	workDir  string
}

// NewPath validates and normalizes raw against the repository's working
// directory. Backslashes become forward slashes, leading and trailing
// separators are stripped, and runs of separators collapse to one. Only
// ASCII letters, digits and separators are permitted.
func NewPath(repo *Repository, raw string) (Path, error) {
	return newPath(repo.backend.WorkDir(), raw)
}

func newPath(workDir, raw string) (Path, error) {
	if !isValidPath(raw) {
		return Path{}, fmt.Errorf("%w: %q", cerrors.ErrInvalidPath, raw)
	}
	return Path{relative: NormalizePath(raw), workDir: workDir}, nil
}

// Relative returns the normalized slash-separated path relative to the
// repository root. It is empty for the "all entries" listing prefix.
func (p Path) Relative() string {
	return p.relative
}

// Absolute returns the filesystem path of the entry.
func (p Path) Absolute() string {
	return filepath.Join(p.workDir, filepath.FromSlash(p.relative))
}

func (p Path) String() string {
	return p.relative
}

// NormalizePath applies path normalization without validation:
// backslashes to forward slashes, separator runs collapsed, leading and
// trailing separators trimmed. Normalization is idempotent.
func NormalizePath(raw string) string {
	s := strings.ReplaceAll(raw, "\\", "/")
	for strings.Contains(s, "//") {
		s = strings.ReplaceAll(s, "//", "/")
	}
	return strings.Trim(s, "/")
}

func isValidPath(raw string) bool {
	for _, c := range raw {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '/' || c == '\\':
		default:
			return false
		}
	}
	return true
}
