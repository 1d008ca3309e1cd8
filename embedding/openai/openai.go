// Package openai implements the embedding.Embedder capability against
// the OpenAI embeddings API (or any OpenAI-compatible endpoint).
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pagelens/vectordb/embedding"
)

// Config holds configuration for the OpenAI embedder.
type Config struct {
	// APIKey is required.
	APIKey string

	// BaseURL overrides the API endpoint. Leave empty for the OpenAI
	// API; set it for compatible self-hosted servers.
	BaseURL string

	// Model is the embedding model. Defaults to text-embedding-3-small.
	Model openai.EmbeddingModel

	// Dimensions requests reduced-dimension output when > 0. It must
	// match the dimensionality of the consuming vector store.
	Dimensions int
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("openai: api key is required")
	}
	return nil
}

// Embedder calls the OpenAI embeddings API.
type Embedder struct {
	client     openai.Client
	model      openai.EmbeddingModel
	dimensions int
}

var _ embedding.Embedder = (*Embedder)(nil)

// New creates an Embedder from the given configuration.
func New(cfg Config) (*Embedder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	model := cfg.Model
	if model == "" {
		model = openai.EmbeddingModelTextEmbedding3Small
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Embedder{
		client:     openai.NewClient(opts...),
		model:      model,
		dimensions: cfg.Dimensions,
	}, nil
}

// Embed implements embedding.Embedder.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	params := openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
		Model: e.model,
	}
	if e.dimensions > 0 {
		params.Dimensions = openai.Int(int64(e.dimensions))
	}

	resp, err := e.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai: embedding request: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("openai: empty embedding response")
	}

	src := resp.Data[0].Embedding
	vec := make([]float32, len(src))
	for i, v := range src {
		vec[i] = float32(v)
	}
	return vec, nil
}
