// Package embedder provides the text embedding capability used to turn query
// texts into vectors.
package embedder

import "context"

// Embedder generates text embeddings.
type Embedder interface {
	Model() string
	Dimensions() int
	EmbedText(ctx context.Context, text string) ([]float32, error)
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
