// Package hybrid composes extractive and abstractive summaries under a
// configurable combination strategy.
package hybrid

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/sirupsen/logrus"

	"github.com/hybridsum/hybridsum/pkg/summarizer"
)

// FailureSummary is returned when neither pass produced any text. Callers
// get this sentinel instead of an error.
const FailureSummary = "Unable to generate summary."

// MethodHybrid tags combined results
const MethodHybrid = "hybrid"

// Combination strategies
const (
	StrategyWeighted = "weighted_combination"
	StrategyPipeline = "pipeline"
	StrategyEnsemble = "ensemble"
)

// Bounds for the secondary generation made by the pipeline strategy.
const (
	pipelineMaxLength = 150
	pipelineMinLength = 30
)

// ErrUnknownStrategy reports a strategy name outside the supported set.
var ErrUnknownStrategy = errors.New("unknown combination strategy")

var (
	combinationRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarizer_hybrid_combinations_total",
			Help: "Total hybrid combinations by strategy",
		},
		[]string{"strategy"},
	)
	pipelineFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "summarizer_hybrid_pipeline_fallbacks_total",
			Help: "Pipeline combinations that fell back to the raw extractive text",
		},
	)
)

func init() {
	prometheus.MustRegister(combinationRuns)
	prometheus.MustRegister(pipelineFallbacks)
}

// ParseStrategy validates a strategy name, mapping the empty string to the
// weighted default. Unknown names fail fast.
func ParseStrategy(s string) (string, error) {
	switch s {
	case "":
		return StrategyWeighted, nil
	case StrategyWeighted, StrategyPipeline, StrategyEnsemble:
		return s, nil
	default:
		return "", errors.Wrapf(ErrUnknownStrategy, "%q", s)
	}
}

// Weights carry the configured extractive/abstractive balance. They are
// recorded on results as metadata and never applied numerically to the text.
type Weights struct {
	Extractive  float64 `json:"extractive_weight"`
	Abstractive float64 `json:"abstractive_weight"`
}

// DefaultWeights returns the standard 0.4/0.6 balance.
func DefaultWeights() Weights {
	return Weights{
		Extractive:  0.4,
		Abstractive: 0.6,
	}
}

// Combiner merges the two summarization passes. The generator is only
// consulted by the pipeline strategy; it may be nil, in which case pipeline
// degrades to the raw extractive text.
type Combiner struct {
	generator summarizer.Abstractive
	logger    *logrus.Logger
}

// NewCombiner creates a combiner around an optional secondary generator
func NewCombiner(generator summarizer.Abstractive) *Combiner {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Combiner{
		generator: generator,
		logger:    logger,
	}
}

// Combine builds the final summary from two optional pass results. It never
// returns an error: missing inputs yield the sentinel failure text, and a
// failed secondary generation under the pipeline strategy falls back to the
// raw extractive text.
func (c *Combiner) Combine(ctx context.Context, ext *summarizer.ExtractiveResult, abs *summarizer.AbstractiveResult, strategy string, weights Weights) *summarizer.HybridResult {
	combinationRuns.WithLabelValues(strategy).Inc()

	extText, absText := "", ""
	if ext != nil {
		extText = strings.TrimSpace(ext.Summary)
	}
	if abs != nil {
		absText = strings.TrimSpace(abs.Summary)
	}

	var summary string
	switch strategy {
	case StrategyPipeline:
		summary = c.combinePipeline(ctx, extText, absText)
	default:
		// weighted_combination and ensemble share the concatenation
		// behavior; ensemble only records a different strategy name.
		summary = combineTexts(extText, absText)
	}

	return &summarizer.HybridResult{
		Summary:           summary,
		Method:            MethodHybrid,
		Strategy:          strategy,
		ExtractiveWeight:  weights.Extractive,
		AbstractiveWeight: weights.Abstractive,
		Details: &summarizer.HybridDetails{
			Extractive:   ext,
			Abstractive:  abs,
			NoveltyRatio: noveltyRatio(extText, absText),
		},
	}
}

// combineTexts concatenates whatever is present, extractive first.
func combineTexts(extText, absText string) string {
	switch {
	case extText != "" && absText != "":
		return extText + " " + absText
	case extText != "":
		return extText
	case absText != "":
		return absText
	default:
		return FailureSummary
	}
}

// combinePipeline condenses the extractive text through a second generation
// pass. Generation failures are logged and masked by the raw extractive
// text, never propagated.
func (c *Combiner) combinePipeline(ctx context.Context, extText, absText string) string {
	if extText == "" {
		if absText != "" {
			return absText
		}
		return FailureSummary
	}
	if c.generator == nil {
		pipelineFallbacks.Inc()
		c.logger.Warn("Pipeline strategy without a generator, returning extractive text")
		return extText
	}

	res, err := c.generator.GenerateSummary(ctx, extText, pipelineMaxLength, pipelineMinLength)
	if err != nil {
		pipelineFallbacks.Inc()
		c.logger.WithError(err).Warn("Pipeline generation failed, returning extractive text")
		return extText
	}
	return res.Summary
}

// noveltyRatio measures how much of the abstractive text is absent from the
// extractive text, as inserted characters over inserted plus shared.
func noveltyRatio(extText, absText string) float64 {
	if absText == "" {
		return 0
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(extText, absText, false)

	var inserted, equal int
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			inserted += len(d.Text)
		case diffmatchpatch.DiffEqual:
			equal += len(d.Text)
		}
	}
	if inserted+equal == 0 {
		return 0
	}
	return float64(inserted) / float64(inserted+equal)
}
