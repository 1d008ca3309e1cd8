package vectordb

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/pagelens/vectordb/blobstore"
	"github.com/pagelens/vectordb/codec"
	"github.com/pagelens/vectordb/embedding"
	"github.com/pagelens/vectordb/similarity"
)

// DB is an embedded in-memory vector store with namespaces, bounded
// capacity and optional whole-state snapshot persistence.
//
// All methods are safe for concurrent use.
type DB struct {
	mu          sync.RWMutex
	config      Config
	scorer      similarity.Func
	collections map[string]*collection

	codec       codec.Codec
	blobs       blobstore.Store // nil when persistence is disabled
	compression Compression
	embedder    embedding.Embedder
	logger      *Logger
	metrics     MetricsCollector

	// Flush batching (WithFlushInterval). When flushLimiter is nil
	// every mutation snapshots synchronously.
	flushLimiter *rate.Limiter
	dirty        atomic.Bool
	flushStop    chan struct{}
	flushDone    chan struct{}
	closeOnce    sync.Once

	// loadDone is closed once the background snapshot restore has
	// finished (immediately when persistence is disabled).
	loadDone chan struct{}
}

// New creates a store enforcing the given vector dimensionality.
//
// The default namespace is initialized eagerly. If persistence is
// enabled, a prior snapshot is restored in the background: the store
// starts empty and stays usable when no snapshot exists or the restore
// fails (the failure is logged). Use Load for a synchronous,
// error-returning restore.
func New(dimensions int, optFns ...Option) (*DB, error) {
	if dimensions <= 0 {
		return nil, &ErrInvalidDimension{Dimension: dimensions}
	}

	opts := applyOptions(optFns)

	scorer, err := similarity.Provider(opts.metric)
	if err != nil {
		return nil, err
	}

	db := &DB{
		config: Config{
			Dimensions:    dimensions,
			MaxVectors:    opts.maxVectors,
			Metric:        opts.metric,
			PersistToDisk: opts.persistToDisk,
			StoragePath:   opts.storagePath,
		},
		scorer:      scorer,
		collections: map[string]*collection{DefaultNamespace: newCollection()},
		codec:       opts.codec,
		compression: opts.compression,
		embedder:    opts.embedder,
		logger:      opts.logger,
		metrics:     opts.metrics,
	}

	db.loadDone = make(chan struct{})
	if opts.persistToDisk {
		db.blobs = opts.blobs
		if db.blobs == nil {
			db.blobs = blobstore.NewLocalStore(opts.storagePath)
		}

		// Restore prior state in the background; Load logs the outcome.
		go func() {
			defer close(db.loadDone)
			_ = db.Load(context.Background())
		}()

		if opts.flushInterval > 0 {
			db.flushLimiter = rate.NewLimiter(rate.Every(opts.flushInterval), 1)
			db.flushStop = make(chan struct{})
			db.flushDone = make(chan struct{})
			go db.flushLoop(opts.flushInterval)
		}
	} else {
		close(db.loadDone)
	}

	return db, nil
}

// Config returns a copy of the current store configuration.
func (db *DB) Config() Config {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.config
}

// AddDocument inserts a document into a namespace and returns its id,
// generating one if the document has none.
//
// The embedding is taken from the document; when absent it is obtained
// from the configured Embedder (ErrNoEmbedder without one). A vector
// whose length differs from the configured dimensions fails with
// *ErrDimensionMismatch. If the namespace exceeds its capacity the
// oldest inserted entry is evicted before the call returns.
//
// With persistence enabled the snapshot is flushed afterwards; a flush
// failure is returned alongside the id of the already committed
// document.
func (db *DB) AddDocument(ctx context.Context, namespace string, doc Document) (string, error) {
	start := time.Now()
	id, err := db.addDocument(ctx, namespace, doc)
	db.metrics.RecordAdd(time.Since(start), err)
	db.logger.LogAdd(ctx, namespace, id, err)
	if err != nil {
		return "", err
	}
	return id, db.flush(ctx)
}

func (db *DB) addDocument(ctx context.Context, namespace string, doc Document) (string, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	vec := doc.Embedding
	if vec == nil {
		if db.embedder == nil {
			return "", ErrNoEmbedder
		}
		embedded, err := db.embedder.Embed(ctx, doc.Content)
		if err != nil {
			return "", fmt.Errorf("embed document content: %w", err)
		}
		vec = embedded
	}

	if doc.ID == "" {
		doc.ID = newDocumentID()
	}

	// Detach from caller-owned memory.
	stored := copyDocument(&doc, false)
	vecCopy := make([]float32, len(vec))
	copy(vecCopy, vec)
	stored.Embedding = vecCopy

	db.mu.Lock()
	defer db.mu.Unlock()

	if len(vecCopy) != db.config.Dimensions {
		return "", &ErrDimensionMismatch{Expected: db.config.Dimensions, Actual: len(vecCopy)}
	}

	c := db.ensureNamespaceLocked(namespace)
	c.insert(&stored, vecCopy)

	// Capacity check runs strictly after insertion, inside the same
	// critical section: callers never observe size above the bound.
	for c.len() > db.config.MaxVectors {
		id, ok := c.evictOldest()
		if !ok {
			break
		}
		db.logger.LogEvict(ctx, namespace, id)
	}

	return stored.ID, nil
}

// AddDocuments inserts documents sequentially and returns the ids that
// were committed. The batch is not atomic: on failure the documents
// inserted before the failing one remain committed, and the error is
// returned alongside their ids.
func (db *DB) AddDocuments(ctx context.Context, namespace string, docs []Document) ([]string, error) {
	start := time.Now()

	ids := make([]string, 0, len(docs))
	var err error
	for _, doc := range docs {
		var id string
		id, err = db.addDocument(ctx, namespace, doc)
		if err != nil {
			break
		}
		ids = append(ids, id)
	}

	db.metrics.RecordBatchAdd(len(docs), len(docs)-len(ids), time.Since(start))
	db.logger.LogBatchAdd(ctx, namespace, len(ids), len(docs), err)

	if ferr := db.flush(ctx); ferr != nil && err == nil {
		err = ferr
	}
	return ids, err
}

// GetDocument returns a document by id. Missing namespaces and ids
// report false; lookups never error.
func (db *DB) GetDocument(namespace, id string) (Document, bool) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	c, ok := db.collections[namespace]
	if !ok {
		return Document{}, false
	}
	doc, ok := c.docs[id]
	if !ok {
		return Document{}, false
	}
	return copyDocument(doc, true), true
}

// UpdateDocument merges the given fields into an existing document.
//
// Unlike the lookup operations it is strict: a missing namespace fails
// with *ErrNamespaceNotFound and a missing id with
// *ErrDocumentNotFound. A new embedding replaces the stored vector
// after dimension validation; non-empty content and non-nil metadata
// replace their stored counterparts.
func (db *DB) UpdateDocument(ctx context.Context, namespace string, doc Document) error {
	start := time.Now()
	err := db.updateDocument(namespace, doc)
	db.metrics.RecordUpdate(time.Since(start), err)
	db.logger.LogUpdate(ctx, namespace, doc.ID, err)
	if err != nil {
		return err
	}
	return db.flush(ctx)
}

func (db *DB) updateDocument(namespace string, doc Document) error {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	c, ok := db.collections[namespace]
	if !ok {
		return &ErrNamespaceNotFound{Namespace: namespace}
	}
	cur, ok := c.docs[doc.ID]
	if !ok {
		return &ErrDocumentNotFound{Namespace: namespace, ID: doc.ID}
	}

	if doc.Embedding != nil && len(doc.Embedding) != db.config.Dimensions {
		return &ErrDimensionMismatch{Expected: db.config.Dimensions, Actual: len(doc.Embedding)}
	}

	if doc.Content != "" {
		cur.Content = doc.Content
	}
	if doc.Metadata != nil {
		meta := make(map[string]any, len(doc.Metadata))
		for k, v := range doc.Metadata {
			meta[k] = v
		}
		cur.Metadata = meta
	}
	if doc.Embedding != nil {
		vec := make([]float32, len(doc.Embedding))
		copy(vec, doc.Embedding)
		cur.Embedding = vec
		c.vectors[doc.ID] = vec
	}

	return nil
}

// DeleteDocument removes a document. Returns true if it was removed,
// false if the namespace or id is absent; it never errors.
func (db *DB) DeleteDocument(ctx context.Context, namespace, id string) bool {
	start := time.Now()
	if namespace == "" {
		namespace = DefaultNamespace
	}

	db.mu.Lock()
	removed := false
	if c, ok := db.collections[namespace]; ok {
		removed = c.remove(id)
	}
	db.mu.Unlock()

	db.metrics.RecordDelete(time.Since(start), nil)
	db.logger.LogDelete(ctx, namespace, id, removed)

	if removed {
		// Flush outcome is logged by Save; deletes stay error-free.
		_ = db.flush(ctx)
	}
	return removed
}

// DeleteCollection removes an entire namespace. Removing a namespace
// that does not exist is a no-op.
func (db *DB) DeleteCollection(ctx context.Context, namespace string) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	db.mu.Lock()
	_, existed := db.collections[namespace]
	delete(db.collections, namespace)
	db.mu.Unlock()

	if existed {
		db.logger.DebugContext(ctx, "namespace deleted", "namespace", namespace)
		_ = db.flush(ctx)
	}
}

// Count returns the number of documents in a namespace, 0 when the
// namespace does not exist.
func (db *DB) Count(namespace string) int {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	if c, ok := db.collections[namespace]; ok {
		return c.len()
	}
	return 0
}

// ListNamespaces returns the names of all namespaces, sorted.
func (db *DB) ListNamespaces() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	names := make([]string, 0, len(db.collections))
	for name := range db.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close flushes a final snapshot (when persistence is enabled) and
// stops the background flusher. Safe to call more than once.
func (db *DB) Close() error {
	var err error
	db.closeOnce.Do(func() {
		if db.flushStop != nil {
			close(db.flushStop)
			<-db.flushDone
		}
		if db.blobs != nil {
			err = db.Save(context.Background())
		}
	})
	return err
}

// ensureNamespaceLocked returns the namespace's collection, creating
// it when absent. Caller must hold the write lock.
func (db *DB) ensureNamespaceLocked(namespace string) *collection {
	c, ok := db.collections[namespace]
	if !ok {
		c = newCollection()
		db.collections[namespace] = c
	}
	return c
}

// flush persists the current state after a mutation. With a flush
// interval configured it batches: at most one snapshot per interval,
// the flush loop picks up the remainder.
func (db *DB) flush(ctx context.Context) error {
	if db.blobs == nil {
		return nil
	}
	if db.flushLimiter != nil {
		db.dirty.Store(true)
		if !db.flushLimiter.Allow() {
			return nil
		}
		db.dirty.Store(false)
	}
	return db.Save(ctx)
}

func (db *DB) flushLoop(interval time.Duration) {
	defer close(db.flushDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if db.dirty.Swap(false) {
				_ = db.Save(context.Background())
			}
		case <-db.flushStop:
			return
		}
	}
}
