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

// TextRankSummarizer ranks sentences by damped power iteration over a
// Jaccard-similarity graph. It implements the summarizer.Extractive
// interface.
type TextRankSummarizer struct {
	proc   *textproc.Processor
	ranker *rank.TextRank
	logger *logrus.Logger
}

// NewTextRankSummarizer creates a TextRank summarizer. A nil processor gets
// the default sentence bounds.
func NewTextRankSummarizer(proc *textproc.Processor, cfg rank.Config) *TextRankSummarizer {
	if proc == nil {
		proc = textproc.NewProcessor(textproc.DefaultConfig())
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &TextRankSummarizer{
		proc:   proc,
		ranker: rank.NewTextRank(cfg),
		logger: logger,
	}
}

// Method returns the method tag recorded on results
func (s *TextRankSummarizer) Method() string {
	return MethodTextRank
}

// Summarize extracts the numSentences most central sentences in document
// order. A document with no usable sentences yields an empty result, and a
// document already within the requested length is returned whole.
func (s *TextRankSummarizer) Summarize(_ context.Context, text string, numSentences int) (*summarizer.ExtractiveResult, error) {
	timer := prometheus.NewTimer(summaryDuration.WithLabelValues(MethodTextRank))
	defer timer.ObserveDuration()
	summaryRuns.WithLabelValues(MethodTextRank).Inc()

	if numSentences <= 0 {
		numSentences = DefaultNumSentences
	}

	sentences, err := s.proc.PreprocessForSummarization(text)
	if err != nil {
		return nil, errors.Wrap(err, "preprocessing text")
	}
	if len(sentences) == 0 {
		return emptyResult(MethodTextRank), nil
	}
	if len(sentences) <= numSentences {
		return fullResult(MethodTextRank, sentences), nil
	}

	tokens := make([][]string, len(sentences))
	for i, sent := range sentences {
		toks, err := s.proc.TokenizeWords(sent, true)
		if err != nil {
			return nil, errors.Wrap(err, "tokenizing sentence")
		}
		tokens[i] = toks
	}

	graph := rank.NewBuilder(rank.Jaccard).Build(tokens)
	scores := s.ranker.Rank(graph)
	top := topIndices(scores, numSentences)

	s.logger.WithFields(logrus.Fields{
		"sentences": len(sentences),
		"edges":     graph.Edges(),
		"selected":  len(top),
	}).Debug("TextRank summary selected")

	return buildResult(MethodTextRank, sentences, scores, top), nil
}
