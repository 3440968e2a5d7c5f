package vcs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cerrors "github.com/calvra/cellar/internal/errors"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	commitAuthorName  = "cellar"
	commitAuthorEmail = "cellar@localhost"
)

// gitBackend implements Backend on top of go-git.
type gitBackend struct {
	repo    *git.Repository
	workDir string
}

// Discover opens the repository containing path, searching upwards the way
// git itself does. Returns ErrNotFound when no repository exists.
func Discover(path string) (Backend, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%w: no repository at or above %s", cerrors.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cerrors.ErrVcs, err)
	}
	return newGitBackend(repo)
}

// Init creates a fresh repository rooted at path, creating the directory
// if needed.
func Init(path string) (Backend, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("failed to create repository directory: %w", err)
	}

	repo, err := git.PlainInit(path, false)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return nil, fmt.Errorf("%w: %s", cerrors.ErrRepositoryExists, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cerrors.ErrVcs, err)
	}
	return newGitBackend(repo)
}

func newGitBackend(repo *git.Repository) (*gitBackend, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cerrors.ErrVcs, err)
	}
	return &gitBackend{repo: repo, workDir: wt.Filesystem.Root()}, nil
}

func (b *gitBackend) WorkDir() string {
	return b.workDir
}

func (b *gitBackend) Stage(relativePaths ...string) error {
	wt, err := b.repo.Worktree()
	if err != nil {
		return fmt.Errorf("%w: %v", cerrors.ErrVcs, err)
	}

	for _, rel := range relativePaths {
		abs := filepath.Join(b.workDir, filepath.FromSlash(rel))
		if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
			if _, err := wt.Remove(rel); err != nil {
				return fmt.Errorf("%w: failed to stage removal of %s: %v", cerrors.ErrVcs, rel, err)
			}
			continue
		}
		if _, err := wt.Add(rel); err != nil {
			return fmt.Errorf("%w: failed to stage %s: %v", cerrors.ErrVcs, rel, err)
		}
	}
	return nil
}

func (b *gitBackend) Commit(message string) error {
	wt, err := b.repo.Worktree()
	if err != nil {
		return fmt.Errorf("%w: %v", cerrors.ErrVcs, err)
	}

	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  commitAuthorName,
			Email: commitAuthorEmail,
			When:  time.Now(),
		},
	})
	if errors.Is(err, git.ErrEmptyCommit) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: commit failed: %v", cerrors.ErrVcs, err)
	}
	return nil
}

// errStopWalk signals an early visitor stop; it never escapes WalkHead.
var errStopWalk = errors.New("stop walk")

func (b *gitBackend) WalkHead(visitor func(relativePath string) bool) error {
	head, err := b.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// No commits yet; the committed tree is empty.
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", cerrors.ErrVcs, err)
	}

	commit, err := b.repo.CommitObject(head.Hash())
	if err != nil {
		return fmt.Errorf("%w: %v", cerrors.ErrVcs, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return fmt.Errorf("%w: %v", cerrors.ErrVcs, err)
	}

	err = tree.Files().ForEach(func(f *object.File) error {
		if !visitor(f.Name) {
			return errStopWalk
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return fmt.Errorf("%w: %v", cerrors.ErrVcs, err)
	}
	return nil
}
