package embedding

import "context"

// EmbeddingProvider turns text into a unit-length vector suitable for
// cosine distance queries in pgvector.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
