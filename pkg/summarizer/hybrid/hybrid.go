package hybrid

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/hybridsum/hybridsum/pkg/summarizer"
)

var abstractiveFailures = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "summarizer_hybrid_abstractive_failures_total",
		Help: "Abstractive passes that failed and were masked by the extractive result",
	},
)

func init() {
	prometheus.MustRegister(abstractiveFailures)
}

// Config controls one hybrid summarizer instance.
type Config struct {
	Strategy     string
	Weights      Weights
	NumSentences int
	MaxLength    int
	MinLength    int
}

// DefaultConfig returns the weighted-combination defaults.
func DefaultConfig() Config {
	return Config{
		Strategy:     StrategyWeighted,
		Weights:      DefaultWeights(),
		NumSentences: 3,
		MaxLength:    150,
		MinLength:    30,
	}
}

// Summarizer runs an extractive and an abstractive pass over the same text
// and merges the results through a Combiner.
type Summarizer struct {
	extractive  summarizer.Extractive
	abstractive summarizer.Abstractive
	combiner    *Combiner
	cfg         Config
	logger      *logrus.Logger
}

// New creates a hybrid summarizer. The strategy name is validated up front;
// the abstractive generator may be nil for extractive-only operation.
func New(extractive summarizer.Extractive, abstractive summarizer.Abstractive, cfg Config) (*Summarizer, error) {
	strategy, err := ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	cfg.Strategy = strategy

	if cfg.Weights == (Weights{}) {
		cfg.Weights = DefaultWeights()
	}
	if cfg.NumSentences <= 0 {
		cfg.NumSentences = 3
	}
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = 150
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = 30
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Summarizer{
		extractive:  extractive,
		abstractive: abstractive,
		combiner:    NewCombiner(abstractive),
		cfg:         cfg,
		logger:      logger,
	}, nil
}

// Strategy returns the validated combination strategy
func (s *Summarizer) Strategy() string {
	return s.cfg.Strategy
}

// Summarize produces a hybrid summary. The extractive pass is required and
// its errors propagate; an abstractive failure is logged and masked so the
// extractive result still comes through.
func (s *Summarizer) Summarize(ctx context.Context, text string) (*summarizer.HybridResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("input text is empty")
	}

	extRes, err := s.extractive.Summarize(ctx, text, s.cfg.NumSentences)
	if err != nil {
		return nil, errors.Wrap(err, "extractive pass")
	}

	var absRes *summarizer.AbstractiveResult
	if s.abstractive != nil {
		absRes, err = s.abstractive.GenerateSummary(ctx, text, s.cfg.MaxLength, s.cfg.MinLength)
		if err != nil {
			abstractiveFailures.Inc()
			s.logger.WithError(err).Warn("Abstractive pass failed, continuing with extractive result")
			absRes = nil
		}
	}

	return s.combiner.Combine(ctx, extRes, absRes, s.cfg.Strategy, s.cfg.Weights), nil
}
