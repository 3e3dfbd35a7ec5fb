package extractive

import (
	"context"
	"testing"

	"github.com/hybridsum/hybridsum/pkg/summarizer/embedding"
)

const topicText = "A cat sleeps on a mat. A cat naps on a rug. Stock markets fell today."

// sentenceVectors keys match the preprocessed (lowercased) sentences of
// topicText. The two cat sentences are nearly parallel, the stocks sentence
// is orthogonal.
func sentenceVectors() map[string][]float32 {
	return map[string][]float32{
		"a cat sleeps on a mat.":    {1, 0, 0},
		"a cat naps on a rug.":      {0.96, 0.28, 0},
		"stock markets fell today.": {0, 0, 1},
	}
}

func TestEmbeddingSummarizerMMRPicksDistinctTopics(t *testing.T) {
	embedder := embedding.NewStaticEmbedder(sentenceVectors())
	s := NewEmbeddingSummarizer(nil, embedder, DefaultEmbeddingConfig())

	result, err := s.Summarize(context.Background(), topicText, 2)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if result.Method != MethodEmbedding {
		t.Errorf("Method = %q, want %q", result.Method, MethodEmbedding)
	}
	want := []string{"a cat sleeps on a mat.", "stock markets fell today."}
	if len(result.Sentences) != 2 || result.Sentences[0] != want[0] || result.Sentences[1] != want[1] {
		t.Errorf("selected %v, want %v", result.Sentences, want)
	}
}

func TestEmbeddingSummarizerCentralityKeepsDuplicates(t *testing.T) {
	embedder := embedding.NewStaticEmbedder(sentenceVectors())
	s := NewEmbeddingSummarizer(nil, embedder, EmbeddingConfig{UseMMR: false, Lambda: 0.5})

	result, err := s.Summarize(context.Background(), topicText, 2)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	want := []string{"a cat sleeps on a mat.", "a cat naps on a rug."}
	if len(result.Sentences) != 2 || result.Sentences[0] != want[0] || result.Sentences[1] != want[1] {
		t.Errorf("selected %v, want %v", result.Sentences, want)
	}
}

func TestEmbeddingSummarizerShortDocumentSkipsEmbedding(t *testing.T) {
	// An empty table fails on any lookup, so a successful call proves the
	// fast path never reached the embedder.
	embedder := embedding.NewStaticEmbedder(map[string][]float32{})
	s := NewEmbeddingSummarizer(nil, embedder, DefaultEmbeddingConfig())

	result, err := s.Summarize(context.Background(), "Only one solid sentence lives here.", 3)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if result.NumSentences != 1 {
		t.Errorf("NumSentences = %d, want 1", result.NumSentences)
	}
}

func TestEmbeddingSummarizerPropagatesEmbedderError(t *testing.T) {
	embedder := embedding.NewStaticEmbedder(map[string][]float32{})
	s := NewEmbeddingSummarizer(nil, embedder, DefaultEmbeddingConfig())

	if _, err := s.Summarize(context.Background(), topicText, 1); err == nil {
		t.Error("expected error when the embedder fails")
	}
}
