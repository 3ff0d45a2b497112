// Package embeddings turns text into vectors for semantic search over
// flowchart narratives.
package embeddings

import "context"

// Embedder generates text embeddings.
type Embedder interface {
	// Embed generates embeddings for one or more texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the name of the embedding model.
	Name() string
}
