package embedding

import (
	"context"

	"github.com/pkg/errors"
)

// StaticEmbedder serves embeddings from a fixed lookup table. It is meant for
// tests and offline runs where no embedding service is available.
type StaticEmbedder struct {
	vectors map[string][]float32
}

// NewStaticEmbedder creates an embedder over the given text-to-vector table.
func NewStaticEmbedder(vectors map[string][]float32) *StaticEmbedder {
	return &StaticEmbedder{vectors: vectors}
}

// Embed looks up each text in the table and fails on the first miss.
func (e *StaticEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, ok := e.vectors[text]
		if !ok {
			return nil, errors.Errorf("no embedding for text %q", text)
		}
		out[i] = vec
	}
	return out, nil
}
