// Package scratch provides the durable client-side key-value store the
// builder uses for crash-recovery autosaves and sticky UI preferences.
//
// The store is advisory, never a source of truth: the in-memory draft owns
// the session, and a lost or stale scratch entry costs nothing but a
// recovery opportunity.
package scratch

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Key prefixes and fixed preference keys.
const (
	// AutosavePrefix namespaces draft autosave snapshots; the draft id is
	// appended.
	AutosavePrefix = "autosave/"

	// KeyComplexityNoticeDismissed is the sticky "don't show again" flag for
	// the complexity warning.
	KeyComplexityNoticeDismissed = "prefs/complexity-notice-dismissed"
)

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("scratch: key not found")

// Store is a durable key-value scratch store.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes the value for key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns all keys with the given prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close releases the store's resources.
	Close() error
}

// Pruner is implemented by stores that can discard stale entries.
type Pruner interface {
	// PruneOlderThan removes entries not written for at least age, returning
	// how many were removed.
	PruneOlderThan(ctx context.Context, age time.Duration) (int, error)
}

// StorageError wraps a backend failure with the backend name and operation.
type StorageError struct {
	Backend string
	Op      string
	Err     error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("scratch %s: %s: %v", e.Backend, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error { return e.Err }

// AutosaveKey returns the scratch key for a draft's autosave snapshot.
func AutosaveKey(draftID string) string {
	return AutosavePrefix + draftID
}
