package extractive

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/hybridsum/hybridsum/pkg/summarizer"
	"github.com/hybridsum/hybridsum/pkg/summarizer/embedding"
	"github.com/hybridsum/hybridsum/pkg/summarizer/textproc"
)

// EmbeddingConfig controls embedding-based sentence selection.
type EmbeddingConfig struct {
	// UseMMR selects diversity-aware MMR picking; false means plain
	// centrality (top-k row sums).
	UseMMR bool
	// Lambda weights the MMR redundancy penalty.
	Lambda float64
}

// DefaultEmbeddingConfig returns the diversity-aware defaults.
func DefaultEmbeddingConfig() EmbeddingConfig {
	return EmbeddingConfig{
		UseMMR: true,
		Lambda: 0.5,
	}
}

// EmbeddingSummarizer scores sentences by their mean embedding similarity to
// the rest of the document and selects either by MMR or by centrality. It
// implements the summarizer.Extractive interface.
type EmbeddingSummarizer struct {
	proc     *textproc.Processor
	embedder summarizer.Embedder
	selector *Selector
	logger   *logrus.Logger
}

// NewEmbeddingSummarizer creates an embedding summarizer. A nil processor
// gets the default sentence bounds.
func NewEmbeddingSummarizer(proc *textproc.Processor, embedder summarizer.Embedder, cfg EmbeddingConfig) *EmbeddingSummarizer {
	if proc == nil {
		proc = textproc.NewProcessor(textproc.DefaultConfig())
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &EmbeddingSummarizer{
		proc:     proc,
		embedder: embedder,
		selector: NewSelector(cfg.UseMMR, cfg.Lambda),
		logger:   logger,
	}
}

// Method returns the method tag recorded on results
func (s *EmbeddingSummarizer) Method() string {
	return MethodEmbedding
}

// Summarize embeds every sentence and selects numSentences of them in
// document order. Short documents return whole before any embedding call is
// made.
func (s *EmbeddingSummarizer) Summarize(ctx context.Context, text string, numSentences int) (*summarizer.ExtractiveResult, error) {
	timer := prometheus.NewTimer(summaryDuration.WithLabelValues(MethodEmbedding))
	defer timer.ObserveDuration()
	summaryRuns.WithLabelValues(MethodEmbedding).Inc()

	if numSentences <= 0 {
		numSentences = DefaultNumSentences
	}

	sentences, err := s.proc.PreprocessForSummarization(text)
	if err != nil {
		return nil, errors.Wrap(err, "preprocessing text")
	}
	if len(sentences) == 0 {
		return emptyResult(MethodEmbedding), nil
	}
	if len(sentences) <= numSentences {
		return fullResult(MethodEmbedding, sentences), nil
	}

	vectors, err := s.embedder.Embed(ctx, sentences)
	if err != nil {
		return nil, errors.Wrap(err, "embedding sentences")
	}

	sim := embedding.PairwiseSimilarity(vectors)
	scores := make(map[int]float64, len(sim))
	for i, row := range sim {
		mean := 0.0
		for _, v := range row {
			mean += v
		}
		scores[i] = mean / float64(len(row))
	}

	top := s.selector.Select(sim, numSentences)

	s.logger.WithFields(logrus.Fields{
		"sentences": len(sentences),
		"selected":  len(top),
		"mmr":       s.selector.useMMR,
	}).Debug("Embedding summary selected")

	return buildResult(MethodEmbedding, sentences, scores, top), nil
}
