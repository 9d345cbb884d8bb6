package storage

import "context"

// VerifyFunc inspects the bytes read back from a staged artifact.
// A non-nil error aborts the write.
type VerifyFunc func(stored []byte) error

// Sink stores compressed artifacts by name.
// Implementations must be safe for concurrent use by multiple goroutines,
// provided each name is written by a single caller.
type Sink interface {
	// Put stages data under name, reads it back and calls verify with the stored
	// bytes. The artifact is published under name only if verify returns nil.
	// On any failure nothing is left under name. A nil verify skips the read-back.
	Put(ctx context.Context, name string, data []byte, verify VerifyFunc) error

	// Get returns the artifact stored under name.
	// Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, name string) ([]byte, error)

	// Stat returns the stored size of the artifact under name.
	// Returns ErrNotFound if it does not exist.
	Stat(ctx context.Context, name string) (int64, error)

	// Delete removes the artifact under name.
	// Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, name string) error

	// List returns the names of all artifacts starting with prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)

	// Close releases resources held by the sink.
	Close() error
}
