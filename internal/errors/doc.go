// Package errors provides typed error values for the cellar application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Path/repository errors: addressing issues (ErrInvalidPath, ErrNotFound)
//   - Crypto errors: pipeline failures (ErrRng, ErrKdf, ErrCipher, ErrCorrupt)
//   - Header errors: persisted parameter issues (ErrSaltChanged)
//   - Lifecycle errors: token misuse (ErrAlreadyInitialized, ErrLifecycleNotLive)
//
// # Usage
//
// Return errors from internal packages:
//
//	if !isValid(path) {
//	    return errors.ErrInvalidPath
//	}
//
// Handle errors in the CLI layer:
//
//	value, err := repo.Read(path)
//	if errors.Is(err, cerrors.ErrCorrupt) {
//	    // Show "decryption failed" to the user
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("while reading entry %q: %w", path.Relative(), err)
package errors
