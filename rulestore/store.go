package rulestore

import (
	"context"
	"os"
)

// ErrNotFound is returned when a document does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for storing rule-set documents.
//
// Documents are small (a rule set serializes to kilobytes, not gigabytes),
// so the interface reads and writes whole payloads rather than streaming.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get reads a document. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, name string) ([]byte, error)

	// Put writes a document atomically, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes a document. Deleting a missing document is not an
	// error.
	Delete(ctx context.Context, name string) error

	// List returns the names of documents under the prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
