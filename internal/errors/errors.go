package errors

import "errors"

// Path and repository errors indicate issues locating or addressing entries.
var (
	// ErrInvalidPath indicates an entry path failed validation or normalization.
	ErrInvalidPath = errors.New("invalid repository path")

	// ErrNotFound indicates no repository or entry exists at the given path.
	ErrNotFound = errors.New("repository or entry not found")

	// ErrRepositoryExists indicates a repository already exists at the given path.
	ErrRepositoryExists = errors.New("repository already exists")

	// ErrVcs indicates the version control backend failed.
	ErrVcs = errors.New("version control operation failed")
)

// Cryptographic errors indicate failures in the key derivation and
// encryption pipeline.
var (
	// ErrRng indicates the secure random number generator failed.
	ErrRng = errors.New("random number generation failed")

	// ErrKdf indicates scrypt key derivation failed.
	ErrKdf = errors.New("key derivation failed")

	// ErrCipher indicates symmetric cipher setup or operation failed.
	ErrCipher = errors.New("cipher operation failed")

	// ErrCorrupt indicates ciphertext or padding is inconsistent.
	ErrCorrupt = errors.New("ciphertext or padding is corrupt")

	// ErrEmptyAlphabet indicates the password generator was given an
	// empty effective character set.
	ErrEmptyAlphabet = errors.New("cannot generate a password from an empty character set")
)

// Header errors indicate issues with the persisted encryption header.
var (
	// ErrSaltChanged indicates the header salt changed mid-session.
	// Changing the salt invalidates every existing entry, so this is
	// fatal for the session.
	ErrSaltChanged = errors.New("encryption header salt changed mid-session")
)

// Lifecycle errors indicate misuse of the process-wide lifecycle tokens.
var (
	// ErrAlreadyInitialized indicates a second lifecycle token was
	// acquired while one is still live. This is a programmer bug.
	ErrAlreadyInitialized = errors.New("lifecycle already initialized")

	// ErrLifecycleNotLive indicates an operation required a live
	// lifecycle token but was given a nil or closed one.
	ErrLifecycleNotLive = errors.New("lifecycle token is not live")
)
