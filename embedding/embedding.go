// Package embedding defines the text-to-vector capability the vector
// store depends on.
//
// The store never fabricates vectors on its own: inserting a document
// without an embedding, or searching by text, requires an Embedder
// supplied at construction time.
package embedding

import "context"

// Embedder turns text into an embedding vector.
// Implementations must return vectors of the dimensionality the
// consuming store is configured with.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Func adapts an ordinary function to the Embedder interface.
type Func func(ctx context.Context, text string) ([]float32, error)

// Embed implements Embedder.
func (f Func) Embed(ctx context.Context, text string) ([]float32, error) {
	return f(ctx, text)
}
