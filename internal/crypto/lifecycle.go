package crypto

import (
	"sync/atomic"

	cerrors "github.com/calvra/cellar/internal/errors"
)

var lifecycleLive atomic.Bool

// Lifecycle is a scoped token marking the crypto layer as initialized.
// At most one live token may exist per process; core operations require
// one, which replaces a process-wide "library initialized" singleton.
type Lifecycle struct {
	closed atomic.Bool
}

// Acquire obtains the process's crypto lifecycle token. Acquiring a second
// token while one is live returns ErrAlreadyInitialized.
func Acquire() (*Lifecycle, error) {
	if !lifecycleLive.CompareAndSwap(false, true) {
		return nil, cerrors.ErrAlreadyInitialized
	}
	return &Lifecycle{}, nil
}

// Close releases the token, allowing a later Acquire to succeed.
// Close is idempotent.
func (l *Lifecycle) Close() {
	if l.closed.CompareAndSwap(false, true) {
		lifecycleLive.Store(false)
	}
}

// Live reports whether the token is still valid.
func (l *Lifecycle) Live() bool {
	return !l.closed.Load()
}
