package evaluation

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/hybridsum/hybridsum/pkg/summarizer"
	"github.com/hybridsum/hybridsum/pkg/summarizer/embedding"
)

// EmbeddingScorer measures semantic overlap through greedy token matching
// over embedding vectors: precision matches each prediction token to its
// closest reference token, recall runs the other direction. Scoring failures
// are masked with zero scores rather than propagated.
type EmbeddingScorer struct {
	embedder summarizer.Embedder
	rouge    *RougeScorer
	logger   *logrus.Logger
}

// NewEmbeddingScorer creates a scorer around an embedder
func NewEmbeddingScorer(embedder summarizer.Embedder) *EmbeddingScorer {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &EmbeddingScorer{
		embedder: embedder,
		rouge:    NewRougeScorer(false),
		logger:   logger,
	}
}

// Evaluate averages per-pair scores across the corpus. Any embedding failure
// zeroes the whole result.
func (s *EmbeddingScorer) Evaluate(ctx context.Context, predictions, references []string) *Score {
	sum := Score{}
	for i := range predictions {
		pair, err := s.scorePair(ctx, predictions[i], references[i])
		if err != nil {
			s.logger.WithError(err).Warn("Embedding score failed, returning zero scores")
			return &Score{}
		}
		sum.Precision += pair.Precision
		sum.Recall += pair.Recall
		sum.F1 += pair.F1
	}

	n := float64(len(predictions))
	return &Score{
		Precision: sum.Precision / n,
		Recall:    sum.Recall / n,
		F1:        sum.F1 / n,
	}
}

// scorePair embeds the tokens of both texts in one call and greedily matches
// each token to its nearest counterpart.
func (s *EmbeddingScorer) scorePair(ctx context.Context, pred, ref string) (Score, error) {
	predTokens := s.rouge.tokenize(pred)
	refTokens := s.rouge.tokenize(ref)
	if len(predTokens) == 0 || len(refTokens) == 0 {
		return Score{}, nil
	}

	vectors, err := s.embedder.Embed(ctx, append(append([]string{}, predTokens...), refTokens...))
	if err != nil {
		return Score{}, err
	}
	predVecs := vectors[:len(predTokens)]
	refVecs := vectors[len(predTokens):]

	precision := greedyMatch(predVecs, refVecs)
	recall := greedyMatch(refVecs, predVecs)
	return Score{
		Precision: precision,
		Recall:    recall,
		F1:        f1Score(precision, recall),
	}, nil
}

// greedyMatch averages, over the from side, each vector's best cosine
// similarity on the to side.
func greedyMatch(from, to [][]float32) float64 {
	total := 0.0
	for _, f := range from {
		best := 0.0
		for _, t := range to {
			if sim := embedding.CosineSimilarity(f, t); sim > best {
				best = sim
			}
		}
		total += best
	}
	return total / float64(len(from))
}
