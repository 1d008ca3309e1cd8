package vectordb

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// DefaultSearchLimit is the number of results returned when no limit
// is set.
const DefaultSearchLimit = 10

// SearchOptions controls a similarity search.
type SearchOptions struct {
	// Namespace to search in. Defaults to DefaultNamespace.
	Namespace string
	// Limit bounds the number of results. Defaults to DefaultSearchLimit.
	Limit int
	// MinScore drops results scoring below it. Defaults to 0.
	MinScore float32
	// Filter, when set, keeps only documents whose metadata satisfies
	// the predicate.
	Filter func(metadata map[string]any) bool
	// IncludeVectors copies stored embeddings into the results.
	IncludeVectors bool
}

// Search scores every vector in a namespace against the query and
// returns the best matches in descending score order. Ties keep
// insertion order. Searching a namespace that does not exist returns
// an empty result set, but a query vector of the wrong length fails
// with *ErrDimensionMismatch.
func (db *DB) Search(ctx context.Context, vector []float32, optFns ...func(o *SearchOptions)) ([]SearchResult, error) {
	start := time.Now()

	opts := SearchOptions{
		Namespace: DefaultNamespace,
		Limit:     DefaultSearchLimit,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Namespace == "" {
		opts.Namespace = DefaultNamespace
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultSearchLimit
	}

	results, err := db.search(vector, &opts)
	db.metrics.RecordSearch(opts.Limit, time.Since(start), err)
	db.logger.LogSearch(ctx, opts.Namespace, opts.Limit, len(results), err)
	return results, err
}

func (db *DB) search(vector []float32, opts *SearchOptions) ([]SearchResult, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if len(vector) != db.config.Dimensions {
		return nil, &ErrDimensionMismatch{Expected: db.config.Dimensions, Actual: len(vector)}
	}

	c, ok := db.collections[opts.Namespace]
	if !ok {
		return []SearchResult{}, nil
	}

	results := make([]SearchResult, 0, min(opts.Limit, c.len()))
	for _, id := range c.order {
		score := db.scorer(vector, c.vectors[id])
		if score < opts.MinScore {
			continue
		}
		doc := c.docs[id]
		if opts.Filter != nil && !opts.Filter(doc.Metadata) {
			continue
		}
		results = append(results, SearchResult{
			Document: copyDocument(doc, opts.IncludeVectors),
			Score:    score,
		})
	}

	// Candidates were gathered in insertion order, so the stable sort
	// resolves equal scores to the earlier inserted document.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

// SearchByText embeds the query text with the configured Embedder and
// searches with the resulting vector. Without an embedder it fails
// with ErrNoEmbedder.
func (db *DB) SearchByText(ctx context.Context, text string, optFns ...func(o *SearchOptions)) ([]SearchResult, error) {
	if db.embedder == nil {
		return nil, ErrNoEmbedder
	}
	vector, err := db.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query text: %w", err)
	}
	return db.Search(ctx, vector, optFns...)
}
