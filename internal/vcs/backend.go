package vcs

// Backend abstracts the version control operations the password store
// needs: stage a set of paths, create a commit, and walk the committed
// tree.
//
// The default implementation is pure-Go git via go-git, but the interface
// allows alternative implementations without changing callers.
type Backend interface {
	// WorkDir returns the absolute path of the working tree root.
	WorkDir() string

	// Stage adds the given working-tree-relative paths to the index.
	// A path that no longer exists on disk is staged as a removal.
	Stage(relativePaths ...string) error

	// Commit records the staged changes with the given message. It is a
	// no-op when there is nothing to commit.
	Commit(message string) error

	// WalkHead walks the file entries of the most recent committed tree
	// (or an empty tree when no commits exist), invoking visitor with
	// each slash-separated relative path. The visitor returns false to
	// stop the walk early. Traversal order is the backend's tree order.
	WalkHead(visitor func(relativePath string) bool) error
}
