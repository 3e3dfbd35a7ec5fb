package summarizer

import (
	"context"
)

// ExtractiveResult represents the output of an extractive summarization pass
type ExtractiveResult struct {
	Summary      string          `json:"summary"`
	Sentences    []string        `json:"sentences"`
	NumSentences int             `json:"num_sentences"`
	Method       string          `json:"method"`
	Scores       map[int]float64 `json:"scores,omitempty"`
}

// AbstractiveResult represents the output of an abstractive generation pass
type AbstractiveResult struct {
	Summary     string `json:"summary"`
	Model       string `json:"model"`
	InputTokens int    `json:"input_tokens,omitempty"`
}

// HybridResult represents a combined extractive/abstractive summary
type HybridResult struct {
	Summary           string         `json:"summary"`
	Method            string         `json:"method"`
	Strategy          string         `json:"combination_strategy"`
	ExtractiveWeight  float64        `json:"extractive_weight"`
	AbstractiveWeight float64        `json:"abstractive_weight"`
	Details           *HybridDetails `json:"details,omitempty"`
}

// HybridDetails carries the per-pass sub-results behind a hybrid summary
type HybridDetails struct {
	Extractive   *ExtractiveResult  `json:"extractive_result,omitempty"`
	Abstractive  *AbstractiveResult `json:"abstractive_result,omitempty"`
	NoveltyRatio float64            `json:"novelty_ratio"`
}

// Extractive selects representative sentences from a document
type Extractive interface {
	Summarize(ctx context.Context, text string, numSentences int) (*ExtractiveResult, error)
	Method() string
}

// Abstractive rewrites text as a bounded-length summary
type Abstractive interface {
	GenerateSummary(ctx context.Context, text string, maxLength, minLength int) (*AbstractiveResult, error)
	Model() string
}

// Embedder converts texts into dense vectors, one per input, in input order
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
