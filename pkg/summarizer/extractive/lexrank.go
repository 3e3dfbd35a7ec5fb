package extractive

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/hybridsum/hybridsum/pkg/summarizer"
	"github.com/hybridsum/hybridsum/pkg/summarizer/rank"
	"github.com/hybridsum/hybridsum/pkg/summarizer/textproc"
)

// LexRankSummarizer ranks sentences as the stationary distribution of a
// thresholded similarity chain. It implements the summarizer.Extractive
// interface.
type LexRankSummarizer struct {
	proc   *textproc.Processor
	ranker *rank.LexRank
	logger *logrus.Logger
}

// NewLexRankSummarizer creates a LexRank summarizer. A nil processor gets
// the default sentence bounds.
func NewLexRankSummarizer(proc *textproc.Processor, cfg rank.LexRankConfig) *LexRankSummarizer {
	if proc == nil {
		proc = textproc.NewProcessor(textproc.DefaultConfig())
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &LexRankSummarizer{
		proc:   proc,
		ranker: rank.NewLexRank(cfg),
		logger: logger,
	}
}

// Method returns the method tag recorded on results
func (s *LexRankSummarizer) Method() string {
	return MethodLexRank
}

// Summarize extracts the numSentences highest-stationary-probability
// sentences in document order. Edge cases match TextRank: an empty document
// yields an empty result, a short one is returned whole.
func (s *LexRankSummarizer) Summarize(_ context.Context, text string, numSentences int) (*summarizer.ExtractiveResult, error) {
	timer := prometheus.NewTimer(summaryDuration.WithLabelValues(MethodLexRank))
	defer timer.ObserveDuration()
	summaryRuns.WithLabelValues(MethodLexRank).Inc()

	if numSentences <= 0 {
		numSentences = DefaultNumSentences
	}

	sentences, err := s.proc.PreprocessForSummarization(text)
	if err != nil {
		return nil, errors.Wrap(err, "preprocessing text")
	}
	if len(sentences) == 0 {
		return emptyResult(MethodLexRank), nil
	}
	if len(sentences) <= numSentences {
		return fullResult(MethodLexRank, sentences), nil
	}

	tokens := make([][]string, len(sentences))
	for i, sent := range sentences {
		toks, err := s.proc.TokenizeWords(sent, true)
		if err != nil {
			return nil, errors.Wrap(err, "tokenizing sentence")
		}
		tokens[i] = toks
	}

	graph := rank.NewBuilder(rank.CountCosine).Build(tokens)
	matrix := s.ranker.TransitionMatrix(graph)
	scores := s.ranker.Rank(matrix)
	top := topIndices(scores, numSentences)

	s.logger.WithFields(logrus.Fields{
		"sentences": len(sentences),
		"edges":     graph.Edges(),
		"selected":  len(top),
	}).Debug("LexRank summary selected")

	return buildResult(MethodLexRank, sentences, scores, top), nil
}
