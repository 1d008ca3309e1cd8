package vectordb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/pagelens/vectordb/blobstore"
	"github.com/pagelens/vectordb/similarity"
)

// snapshotName is the blob the whole store state is persisted under.
const snapshotName = "vectordb.json"

// snapshot is the serialized form of the entire store.
type snapshot struct {
	Config     Config                          `json:"config"`
	Namespaces []string                        `json:"namespaces"`
	Documents  map[string]map[string]*Document `json:"documents"`
	Vectors    map[string]map[string][]float32 `json:"vectors"`
}

// Save serializes the entire store and writes it to the blob store as
// a single snapshot, replacing any previous one. It is a no-op when
// persistence is disabled.
func (db *DB) Save(ctx context.Context) error {
	if db.blobs == nil {
		return nil
	}

	start := time.Now()
	err := db.save(ctx)
	db.metrics.RecordSave(time.Since(start), err)
	db.logger.LogSave(ctx, snapshotName, err)
	return err
}

func (db *DB) save(ctx context.Context) error {
	// Marshal under the read lock, upload outside it.
	db.mu.RLock()
	snap := snapshot{
		Config:     db.config,
		Namespaces: make([]string, 0, len(db.collections)),
		Documents:  make(map[string]map[string]*Document, len(db.collections)),
		Vectors:    make(map[string]map[string][]float32, len(db.collections)),
	}
	for name, c := range db.collections {
		snap.Namespaces = append(snap.Namespaces, name)
		snap.Documents[name] = c.docs
		snap.Vectors[name] = c.vectors
	}
	sort.Strings(snap.Namespaces)

	data, err := db.codec.Marshal(snap)
	db.mu.RUnlock()
	if err != nil {
		return &ErrPersistence{Op: "save", Name: snapshotName, cause: err}
	}

	data, err = compressSnapshot(data, db.compression)
	if err != nil {
		return &ErrPersistence{Op: "save", Name: snapshotName, cause: err}
	}

	if err := db.blobs.Put(ctx, snapshotName, data); err != nil {
		return &ErrPersistence{Op: "save", Name: snapshotName, cause: err}
	}
	return nil
}

// Load restores the store from the persisted snapshot, replacing the
// in-memory state wholesale, configuration included. A missing
// snapshot leaves the store empty and returns nil; a snapshot that
// cannot be read or decoded fails with *ErrPersistence. It is a no-op
// when persistence is disabled.
func (db *DB) Load(ctx context.Context) error {
	if db.blobs == nil {
		return nil
	}

	start := time.Now()
	namespaces, err := db.load(ctx)
	db.metrics.RecordLoad(time.Since(start), err)
	db.logger.LogLoad(ctx, snapshotName, namespaces, err)
	return err
}

func (db *DB) load(ctx context.Context) (int, error) {
	data, err := db.blobs.Get(ctx, snapshotName)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			// First run: an empty store is the valid state.
			return 0, nil
		}
		return 0, &ErrPersistence{Op: "load", Name: snapshotName, cause: err}
	}

	data, err = decompressSnapshot(data)
	if err != nil {
		return 0, &ErrPersistence{Op: "load", Name: snapshotName, cause: err}
	}

	var snap snapshot
	if err := db.codec.Unmarshal(data, &snap); err != nil {
		return 0, &ErrPersistence{Op: "load", Name: snapshotName, cause: err}
	}

	if snap.Config.Dimensions <= 0 {
		return 0, &ErrPersistence{Op: "load", Name: snapshotName, cause: &ErrInvalidDimension{Dimension: snap.Config.Dimensions}}
	}
	scorer, err := similarity.Provider(snap.Config.Metric)
	if err != nil {
		return 0, &ErrPersistence{Op: "load", Name: snapshotName, cause: err}
	}

	collections := make(map[string]*collection, len(snap.Namespaces))
	for _, name := range snap.Namespaces {
		collections[name] = newCollection()
	}
	for name, docs := range snap.Documents {
		c, ok := collections[name]
		if !ok {
			c = newCollection()
			collections[name] = c
		}

		// The snapshot carries no insertion order. Generated ids are
		// time-ordered (UUIDv7), so sorting them restores the
		// chronological eviction order.
		ids := make([]string, 0, len(docs))
		for id := range docs {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			doc := docs[id]
			if doc == nil {
				return 0, &ErrPersistence{Op: "load", Name: snapshotName,
					cause: fmt.Errorf("namespace %q: document %q is null", name, id)}
			}
			if doc.ID == "" {
				doc.ID = id
			}
			vec := snap.Vectors[name][id]
			if vec == nil {
				vec = doc.Embedding
			}
			if len(vec) != snap.Config.Dimensions {
				return 0, &ErrPersistence{Op: "load", Name: snapshotName,
					cause: fmt.Errorf("namespace %q: document %q has %d-dimensional vector, want %d",
						name, id, len(vec), snap.Config.Dimensions)}
			}
			doc.Embedding = vec
			c.insert(doc, vec)
		}
	}
	if _, ok := collections[DefaultNamespace]; !ok {
		collections[DefaultNamespace] = newCollection()
	}

	db.mu.Lock()
	db.config = snap.Config
	db.scorer = scorer
	db.collections = collections
	db.mu.Unlock()

	return len(snap.Namespaces), nil
}
