package vectordb

import (
	"github.com/google/uuid"

	"github.com/pagelens/vectordb/similarity"
)

// DefaultNamespace is the namespace used when none is specified.
// It is initialized eagerly at construction time.
const DefaultNamespace = "default"

// Document is a stored record: optional free-form content, arbitrary
// metadata and an embedding vector.
type Document struct {
	ID        string         `json:"id"`
	Content   string         `json:"content,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Embedding []float32      `json:"embedding,omitempty"`
}

// SearchResult pairs a document with its similarity score.
// The document's embedding is omitted unless the search requested it.
type SearchResult struct {
	Document Document `json:"document"`
	Score    float32  `json:"score"`
}

// Config is the store configuration. It is immutable after
// construction except for wholesale replacement by Load.
type Config struct {
	Dimensions    int               `json:"dimensions"`
	MaxVectors    int               `json:"maxVectors"`
	Metric        similarity.Metric `json:"similarityMetric"`
	PersistToDisk bool              `json:"persistToDisk"`
	StoragePath   string            `json:"storagePath"`
}

// newDocumentID generates a time-ordered unique id (UUIDv7: unix
// timestamp prefix plus random suffix).
func newDocumentID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Falls back to v4 if the entropy source misbehaves.
		return uuid.NewString()
	}
	return id.String()
}

// copyDocument returns a detached copy of a stored document so callers
// can never mutate store internals through returned values.
func copyDocument(doc *Document, includeEmbedding bool) Document {
	out := Document{
		ID:      doc.ID,
		Content: doc.Content,
	}
	if doc.Metadata != nil {
		out.Metadata = make(map[string]any, len(doc.Metadata))
		for k, v := range doc.Metadata {
			out.Metadata[k] = v
		}
	}
	if includeEmbedding && doc.Embedding != nil {
		out.Embedding = make([]float32, len(doc.Embedding))
		copy(out.Embedding, doc.Embedding)
	}
	return out
}
