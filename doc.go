// Package vectordb provides an embedded in-memory vector store with
// namespaces, similarity search, bounded capacity and whole-state
// snapshot persistence.
//
// Documents and their embedding vectors live in isolated namespaces.
// Every vector in the store must match the dimensionality fixed at
// construction time. When a namespace exceeds its configured capacity
// the oldest inserted entry is evicted (FIFO).
//
// # Quick start
//
//	db, err := vectordb.New(1536,
//	    vectordb.WithMaxVectors(50000),
//	    vectordb.WithMetric(similarity.MetricCosine),
//	    vectordb.WithPersistence("./.vectordb"),
//	    vectordb.WithEmbedder(embedder),
//	)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	id, err := db.AddDocument(ctx, "articles", vectordb.Document{
//	    Content:  "an article about databases",
//	    Metadata: map[string]any{"lang": "en"},
//	})
//
//	results, err := db.SearchByText(ctx, "database articles",
//	    func(o *vectordb.SearchOptions) {
//	        o.Namespace = "articles"
//	        o.Limit = 5
//	        o.MinScore = 0.2
//	    })
//
// Embedding generation is an injected capability (see the embedding
// package); the store never fabricates vectors.
//
// # Persistence
//
// With persistence enabled the whole store (configuration and all
// namespaces) is serialized to a single snapshot blob after each
// mutation and restored on startup. Snapshots default to the local
// file system under the configured storage path; the blobstore
// package provides S3, MinIO and mirrored backends. Snapshots may
// optionally be compressed (zstd or lz4); compression is detected
// automatically on load.
//
// # Concurrency
//
// All operations are safe for concurrent use. Reads run concurrently
// with each other; mutations are serialized by a store-wide lock.
package vectordb
