// Package embedding adapts the external text-embedding service.
// The engine only depends on the Embedder interface; tests substitute fakes.
package embedding

import "context"

// Embedder maps text onto fixed-length numeric vectors. Dimensionality is
// constant per deployment; participant and pod vectors must match.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	// EmbedBatch embeds all texts in one round trip. The result is
	// positionally aligned with the input; batching never reorders.
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}
