package vectordb

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEmbedder is returned when an operation needs the text
	// embedding capability but none was configured. Configure one with
	// WithEmbedder; the store never substitutes fabricated vectors.
	ErrNoEmbedder = errors.New("no embedding provider configured")
)

// ErrInvalidDimension indicates an invalid configured dimensionality.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// ErrDimensionMismatch indicates a vector whose length differs from
// the store's configured dimensionality.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrNamespaceNotFound indicates an update against a namespace that
// does not exist. Lookup-style operations never return it; they report
// absence through their boolean/zero results instead.
type ErrNamespaceNotFound struct {
	Namespace string
}

func (e *ErrNamespaceNotFound) Error() string {
	return fmt.Sprintf("namespace not found: %q", e.Namespace)
}

// ErrDocumentNotFound indicates an update against a document id that
// does not exist in an existing namespace.
type ErrDocumentNotFound struct {
	Namespace string
	ID        string
}

func (e *ErrDocumentNotFound) Error() string {
	return fmt.Sprintf("document not found: %q in namespace %q", e.ID, e.Namespace)
}

// ErrPersistence indicates a snapshot save or load failure.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrPersistence struct {
	Op   string // "save" or "load"
	Name string // blob name

	cause error
}

func (e *ErrPersistence) Error() string {
	return fmt.Sprintf("persistence %s %q failed: %v", e.Op, e.Name, e.cause)
}

func (e *ErrPersistence) Unwrap() error { return e.cause }
