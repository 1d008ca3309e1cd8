package vectordb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelens/vectordb/embedding"
)

func TestNew(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		db, err := New(3)
		require.NoError(t, err)
		defer db.Close()

		cfg := db.Config()
		assert.Equal(t, 3, cfg.Dimensions)
		assert.Equal(t, DefaultMaxVectors, cfg.MaxVectors)
		assert.False(t, cfg.PersistToDisk)
		assert.Equal(t, []string{DefaultNamespace}, db.ListNamespaces())
	})

	t.Run("InvalidDimensions", func(t *testing.T) {
		for _, dims := range []int{0, -1} {
			_, err := New(dims)
			var dimErr *ErrInvalidDimension
			require.ErrorAs(t, err, &dimErr)
			assert.Equal(t, dims, dimErr.Dimension)
		}
	})
}

func TestAddDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("GeneratesID", func(t *testing.T) {
		db, err := New(3)
		require.NoError(t, err)
		defer db.Close()

		id, err := db.AddDocument(ctx, "", Document{
			Content:   "hello",
			Embedding: []float32{1, 0, 0},
		})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		doc, ok := db.GetDocument(DefaultNamespace, id)
		require.True(t, ok)
		assert.Equal(t, id, doc.ID)
		assert.Equal(t, "hello", doc.Content)
		assert.Equal(t, []float32{1, 0, 0}, doc.Embedding)
	})

	t.Run("KeepsCallerID", func(t *testing.T) {
		db, err := New(3)
		require.NoError(t, err)
		defer db.Close()

		id, err := db.AddDocument(ctx, "docs", Document{
			ID:        "doc-1",
			Embedding: []float32{0, 1, 0},
		})
		require.NoError(t, err)
		assert.Equal(t, "doc-1", id)
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		db, err := New(3)
		require.NoError(t, err)
		defer db.Close()

		_, err = db.AddDocument(ctx, "", Document{Embedding: []float32{1, 0}})
		var dimErr *ErrDimensionMismatch
		require.ErrorAs(t, err, &dimErr)
		assert.Equal(t, 3, dimErr.Expected)
		assert.Equal(t, 2, dimErr.Actual)
		assert.Equal(t, 0, db.Count(""))
	})

	t.Run("NoEmbedder", func(t *testing.T) {
		db, err := New(3)
		require.NoError(t, err)
		defer db.Close()

		_, err = db.AddDocument(ctx, "", Document{Content: "no vector"})
		require.ErrorIs(t, err, ErrNoEmbedder)
	})

	t.Run("Embedder", func(t *testing.T) {
		embedder := embedding.Func(func(_ context.Context, text string) ([]float32, error) {
			return []float32{float32(len(text)), 0, 0}, nil
		})

		db, err := New(3, WithEmbedder(embedder))
		require.NoError(t, err)
		defer db.Close()

		id, err := db.AddDocument(ctx, "", Document{Content: "hello"})
		require.NoError(t, err)

		doc, ok := db.GetDocument("", id)
		require.True(t, ok)
		assert.Equal(t, []float32{5, 0, 0}, doc.Embedding)
	})

	t.Run("DetachesFromCaller", func(t *testing.T) {
		db, err := New(3)
		require.NoError(t, err)
		defer db.Close()

		vec := []float32{1, 0, 0}
		meta := map[string]any{"lang": "en"}
		id, err := db.AddDocument(ctx, "", Document{Embedding: vec, Metadata: meta})
		require.NoError(t, err)

		vec[0] = 42
		meta["lang"] = "de"

		doc, ok := db.GetDocument("", id)
		require.True(t, ok)
		assert.Equal(t, []float32{1, 0, 0}, doc.Embedding)
		assert.Equal(t, "en", doc.Metadata["lang"])
	})
}

func TestAddDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("AllSucceed", func(t *testing.T) {
		db, err := New(2)
		require.NoError(t, err)
		defer db.Close()

		ids, err := db.AddDocuments(ctx, "batch", []Document{
			{Embedding: []float32{1, 0}},
			{Embedding: []float32{0, 1}},
		})
		require.NoError(t, err)
		assert.Len(t, ids, 2)
		assert.Equal(t, 2, db.Count("batch"))
	})

	t.Run("PartialFailure", func(t *testing.T) {
		db, err := New(2)
		require.NoError(t, err)
		defer db.Close()

		ids, err := db.AddDocuments(ctx, "batch", []Document{
			{ID: "a", Embedding: []float32{1, 0}},
			{ID: "b", Embedding: []float32{1, 0, 0}},
			{ID: "c", Embedding: []float32{0, 1}},
		})
		var dimErr *ErrDimensionMismatch
		require.ErrorAs(t, err, &dimErr)
		assert.Equal(t, []string{"a"}, ids)
		assert.Equal(t, 1, db.Count("batch"))
	})
}

func TestGetDocument(t *testing.T) {
	db, err := New(2)
	require.NoError(t, err)
	defer db.Close()

	_, ok := db.GetDocument("missing", "nope")
	assert.False(t, ok)

	_, ok = db.GetDocument("", "nope")
	assert.False(t, ok)
}

func TestUpdateDocument(t *testing.T) {
	ctx := context.Background()

	newStore := func(t *testing.T) *DB {
		t.Helper()
		db, err := New(2)
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		_, err = db.AddDocument(ctx, "", Document{
			ID:        "doc-1",
			Content:   "original",
			Metadata:  map[string]any{"lang": "en", "tier": "free"},
			Embedding: []float32{1, 0},
		})
		require.NoError(t, err)
		return db
	}

	t.Run("NamespaceNotFound", func(t *testing.T) {
		db := newStore(t)

		err := db.UpdateDocument(ctx, "missing", Document{ID: "doc-1"})
		var nsErr *ErrNamespaceNotFound
		require.ErrorAs(t, err, &nsErr)
		assert.Equal(t, "missing", nsErr.Namespace)
	})

	t.Run("DocumentNotFound", func(t *testing.T) {
		db := newStore(t)

		err := db.UpdateDocument(ctx, "", Document{ID: "nope"})
		var docErr *ErrDocumentNotFound
		require.ErrorAs(t, err, &docErr)
		assert.Equal(t, "nope", docErr.ID)
	})

	t.Run("ContentOnly", func(t *testing.T) {
		db := newStore(t)

		require.NoError(t, db.UpdateDocument(ctx, "", Document{ID: "doc-1", Content: "updated"}))

		doc, ok := db.GetDocument("", "doc-1")
		require.True(t, ok)
		assert.Equal(t, "updated", doc.Content)
		assert.Equal(t, "en", doc.Metadata["lang"])
		assert.Equal(t, []float32{1, 0}, doc.Embedding)
	})

	t.Run("MetadataReplacedWholesale", func(t *testing.T) {
		db := newStore(t)

		require.NoError(t, db.UpdateDocument(ctx, "", Document{
			ID:       "doc-1",
			Metadata: map[string]any{"lang": "de"},
		}))

		doc, ok := db.GetDocument("", "doc-1")
		require.True(t, ok)
		assert.Equal(t, map[string]any{"lang": "de"}, doc.Metadata)
	})

	t.Run("EmbeddingValidatedAndReplaced", func(t *testing.T) {
		db := newStore(t)

		err := db.UpdateDocument(ctx, "", Document{ID: "doc-1", Embedding: []float32{1, 0, 0}})
		var dimErr *ErrDimensionMismatch
		require.ErrorAs(t, err, &dimErr)

		require.NoError(t, db.UpdateDocument(ctx, "", Document{ID: "doc-1", Embedding: []float32{0, 1}}))

		results, err := db.Search(ctx, []float32{0, 1})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	})
}

func TestDeleteDocument(t *testing.T) {
	ctx := context.Background()

	db, err := New(2)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.AddDocument(ctx, "", Document{ID: "doc-1", Embedding: []float32{1, 0}})
	require.NoError(t, err)

	assert.True(t, db.DeleteDocument(ctx, "", "doc-1"))
	assert.False(t, db.DeleteDocument(ctx, "", "doc-1"))
	assert.False(t, db.DeleteDocument(ctx, "missing", "doc-1"))
	assert.Equal(t, 0, db.Count(""))
}

func TestDeleteCollection(t *testing.T) {
	ctx := context.Background()

	db, err := New(2)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.AddDocument(ctx, "docs", Document{Embedding: []float32{1, 0}})
	require.NoError(t, err)
	require.Equal(t, []string{DefaultNamespace, "docs"}, db.ListNamespaces())

	db.DeleteCollection(ctx, "docs")
	assert.Equal(t, []string{DefaultNamespace}, db.ListNamespaces())
	assert.Equal(t, 0, db.Count("docs"))

	// Deleting again is a no-op.
	db.DeleteCollection(ctx, "docs")
}

func TestEviction(t *testing.T) {
	ctx := context.Background()

	t.Run("OldestFirst", func(t *testing.T) {
		db, err := New(2, WithMaxVectors(2))
		require.NoError(t, err)
		defer db.Close()

		for _, id := range []string{"d1", "d2", "d3"} {
			_, err := db.AddDocument(ctx, "", Document{ID: id, Embedding: []float32{1, 0}})
			require.NoError(t, err)
		}

		assert.Equal(t, 2, db.Count(""))
		_, ok := db.GetDocument("", "d1")
		assert.False(t, ok)
		_, ok = db.GetDocument("", "d2")
		assert.True(t, ok)
		_, ok = db.GetDocument("", "d3")
		assert.True(t, ok)
	})

	t.Run("PerNamespace", func(t *testing.T) {
		db, err := New(2, WithMaxVectors(1))
		require.NoError(t, err)
		defer db.Close()

		for _, ns := range []string{"a", "b"} {
			_, err := db.AddDocument(ctx, ns, Document{Embedding: []float32{1, 0}})
			require.NoError(t, err)
		}
		assert.Equal(t, 1, db.Count("a"))
		assert.Equal(t, 1, db.Count("b"))
	})

	t.Run("NeverAboveBound", func(t *testing.T) {
		db, err := New(2, WithMaxVectors(3))
		require.NoError(t, err)
		defer db.Close()

		for range 10 {
			_, err := db.AddDocument(ctx, "", Document{Embedding: []float32{0, 1}})
			require.NoError(t, err)
			assert.LessOrEqual(t, db.Count(""), 3)
		}
	})
}

func TestEmbedderFailure(t *testing.T) {
	ctx := context.Background()

	embedder := embedding.Func(func(_ context.Context, _ string) ([]float32, error) {
		return nil, errors.New("backend down")
	})

	db, err := New(2, WithEmbedder(embedder))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.AddDocument(ctx, "", Document{Content: "text"})
	require.ErrorContains(t, err, "backend down")
	assert.Equal(t, 0, db.Count(""))
}
