// Package blobstore abstracts where snapshot blobs live.
//
// The vector store persists its whole state as a single named blob.
// A Store only needs three whole-blob operations, which keeps remote
// backends (S3, MinIO) trivial to implement.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations must return an error satisfying
// errors.Is(err, ErrNotFound) for missing blobs.
var ErrNotFound = errors.New("blob not found")

// Store reads and writes whole snapshot blobs.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put writes a blob, replacing any previous content. The write is
	// atomic: readers never observe a partially written blob.
	Put(ctx context.Context, name string, data []byte) error

	// Get returns the full content of a blob.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
}
