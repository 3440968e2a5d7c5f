package repository

import (
	"errors"
	"path/filepath"
	"testing"

	cerrors "github.com/calvra/cellar/internal/errors"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"foo", "foo"},
		{"foo/bar", "foo/bar"},
		{"/foo/bar/", "foo/bar"},
		{"foo//bar", "foo/bar"},
		{"foo////bar", "foo/bar"},
		{"\\foo\\\\bar/", "foo/bar"},
		{"\\\\", ""},
		{"///", ""},
	}

	for _, tt := range tests {
		if got := NormalizePath(tt.raw); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.raw, got, tt.want)
		}

		// Normalization is idempotent.
		if got := NormalizePath(NormalizePath(tt.raw)); got != tt.want {
			t.Errorf("NormalizePath is not idempotent for %q: got %q", tt.raw, got)
		}
	}
}

func TestNewPathValidation(t *testing.T) {
	valid := []string{"", "foo", "Foo/Bar2", "a\\b", "web/github/account1"}
	for _, raw := range valid {
		if _, err := newPath("/tmp/store", raw); err != nil {
			t.Errorf("newPath(%q) unexpectedly failed: %v", raw, err)
		}
	}

	invalid := []string{"foo bar", "foo.bar", "föö", "foo-bar", "foo_bar", "foo!", "..", "a\tb"}
	for _, raw := range invalid {
		if _, err := newPath("/tmp/store", raw); !errors.Is(err, cerrors.ErrInvalidPath) {
			t.Errorf("newPath(%q): expected ErrInvalidPath, got %v", raw, err)
		}
	}
}

func TestPathAbsolute(t *testing.T) {
	p, err := newPath("/tmp/store", "web/github")
	if err != nil {
		t.Fatalf("newPath failed: %v", err)
	}

	want := filepath.Join("/tmp/store", "web", "github")
	if got := p.Absolute(); got != want {
		t.Errorf("Absolute() = %q, want %q", got, want)
	}
	if got := p.Relative(); got != "web/github" {
		t.Errorf("Relative() = %q, want %q", got, "web/github")
	}
}
