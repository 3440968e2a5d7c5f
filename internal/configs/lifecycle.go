package configs

import (
	"sync/atomic"

	cerrors "github.com/calvra/cellar/internal/errors"
)

var lifecycleLive atomic.Bool

// Lifecycle is a scoped token marking the configuration store as loaded.
// It follows the same one-instance-per-process discipline as the crypto
// lifecycle.
type Lifecycle struct {
	config *Config
	closed atomic.Bool
}

// Acquire loads the configuration and returns the process's configuration
// lifecycle token. A second Acquire while one is live returns
// ErrAlreadyInitialized.
func Acquire() (*Lifecycle, error) {
	if !lifecycleLive.CompareAndSwap(false, true) {
		return nil, cerrors.ErrAlreadyInitialized
	}

	config, err := EnsureConfig()
	if err != nil {
		lifecycleLive.Store(false)
		return nil, err
	}
	return &Lifecycle{config: config}, nil
}

// Config returns the loaded configuration.
func (l *Lifecycle) Config() *Config {
	return l.config
}

// Close releases the token. Idempotent.
func (l *Lifecycle) Close() {
	if l.closed.CompareAndSwap(false, true) {
		lifecycleLive.Store(false)
	}
}
