package crypto

import (
	"errors"
	"testing"

	cerrors "github.com/calvra/cellar/internal/errors"
)

func TestLifecycleSingleToken(t *testing.T) {
	lifecycle, err := Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer lifecycle.Close()

	if !lifecycle.Live() {
		t.Error("Freshly acquired token is not live")
	}

	if _, err := Acquire(); !errors.Is(err, cerrors.ErrAlreadyInitialized) {
		t.Errorf("Second Acquire: expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestLifecycleReacquireAfterClose(t *testing.T) {
	first, err := Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	first.Close()

	if first.Live() {
		t.Error("Closed token still reports live")
	}

	second, err := Acquire()
	if err != nil {
		t.Fatalf("Acquire after Close failed: %v", err)
	}
	second.Close()
}

func TestLifecycleCloseIdempotent(t *testing.T) {
	lifecycle, err := Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	lifecycle.Close()
	lifecycle.Close()

	next, err := Acquire()
	if err != nil {
		t.Fatalf("Acquire after double Close failed: %v", err)
	}
	next.Close()
}
