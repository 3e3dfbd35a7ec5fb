// Package evaluation scores predicted summaries against references with
// ROUGE, BLEU and embedding-based metrics, and aggregates batches into
// summary statistics.
package evaluation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/hybridsum/hybridsum/pkg/summarizer"
)

// Metric names accepted by the evaluator. Requesting any rouge variant
// computes all three, since they share tokenization.
const (
	MetricRouge1    = "rouge-1"
	MetricRouge2    = "rouge-2"
	MetricRougeL    = "rouge-l"
	MetricBleu      = "bleu"
	MetricEmbedding = "embedding"
)

// DefaultBatchSize bounds chunk size in batch evaluation.
const DefaultBatchSize = 32

var (
	evaluationRuns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "summarizer_evaluation_runs_total",
			Help: "Total evaluation calls, counting each batch chunk once",
		},
	)
	evaluationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summarizer_evaluation_duration_seconds",
			Help:    "Time spent scoring prediction/reference sets",
			Buckets: prometheus.DefBuckets,
		},
	)
	evaluationSamples = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "summarizer_evaluation_samples_total",
			Help: "Total prediction/reference pairs scored",
		},
	)
)

func init() {
	prometheus.MustRegister(evaluationRuns)
	prometheus.MustRegister(evaluationDuration)
	prometheus.MustRegister(evaluationSamples)
}

// AvailableMetrics lists every metric name the evaluator understands.
func AvailableMetrics() []string {
	return []string{MetricRouge1, MetricRouge2, MetricRougeL, MetricBleu, MetricEmbedding}
}

// Result is one evaluation over a prediction/reference set.
type Result struct {
	Rouge     map[string]Score `json:"rouge,omitempty"`
	Bleu      *BleuScore       `json:"bleu,omitempty"`
	Embedding *Score           `json:"embedding,omitempty"`
	Overall   float64          `json:"overall_score"`
	Metadata  *ResultMetadata  `json:"metadata,omitempty"`
}

// ResultMetadata records what one evaluation covered.
type ResultMetadata struct {
	NumSamples int      `json:"num_samples"`
	Metrics    []string `json:"metrics_computed"`
	Timestamp  string   `json:"evaluation_timestamp"`
}

// scalars extracts the f1-like value per computed metric; these feed the
// overall score and batch statistics.
func (r *Result) scalars() map[string]float64 {
	s := make(map[string]float64)
	for name, score := range r.Rouge {
		s[name] = score.F1
	}
	if r.Bleu != nil {
		s[MetricBleu] = r.Bleu.Bleu
	}
	if r.Embedding != nil {
		s[MetricEmbedding] = r.Embedding.F1
	}
	return s
}

// BatchResults aggregates chunked evaluation into per-metric statistics.
// The shape is the same whether one chunk ran or many.
type BatchResults struct {
	Metrics  map[string]MetricStats `json:"metrics"`
	Overall  float64                `json:"overall_score"`
	Metadata BatchMetadata          `json:"metadata"`
}

// BatchMetadata identifies one batch evaluation run.
type BatchMetadata struct {
	RunID      string `json:"run_id"`
	NumSamples int    `json:"num_samples"`
	NumBatches int    `json:"num_batches"`
	Timestamp  string `json:"evaluation_timestamp"`
}

// Config controls batch evaluation.
type Config struct {
	BatchSize int
}

// Evaluator dispatches to the individual metric scorers and folds their
// results together.
type Evaluator struct {
	cfg    Config
	rouge  *RougeScorer
	bleu   *BleuScorer
	embed  *EmbeddingScorer
	logger *logrus.Logger
}

// NewEvaluator creates an evaluator. The embedder is optional: without one
// the embedding metric is unavailable and absent from the defaults.
func NewEvaluator(embedder summarizer.Embedder, cfg Config) *Evaluator {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}

	var embed *EmbeddingScorer
	if embedder != nil {
		embed = NewEmbeddingScorer(embedder)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Evaluator{
		cfg:    cfg,
		rouge:  NewRougeScorer(true),
		bleu:   NewBleuScorer(),
		embed:  embed,
		logger: logger,
	}
}

// defaultMetrics returns the lexical metrics, plus the embedding metric when
// an embedder was supplied.
func (e *Evaluator) defaultMetrics() []string {
	m := []string{MetricRouge1, MetricRouge2, MetricRougeL, MetricBleu}
	if e.embed != nil {
		m = append(m, MetricEmbedding)
	}
	return m
}

// resolveMetrics validates the requested names and expands them to the
// canonical computation list. Unknown names fail fast.
func (e *Evaluator) resolveMetrics(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return e.defaultMetrics(), nil
	}

	wantRouge, wantBleu, wantEmbed := false, false, false
	for _, m := range requested {
		switch {
		case m == MetricRouge1 || m == MetricRouge2 || m == MetricRougeL:
			wantRouge = true
		case m == MetricBleu:
			wantBleu = true
		case m == MetricEmbedding:
			if e.embed == nil {
				return nil, errors.Errorf("metric %q requires an embedder", MetricEmbedding)
			}
			wantEmbed = true
		default:
			return nil, errors.Wrapf(ErrUnknownMetric, "%q", m)
		}
	}

	var resolved []string
	if wantRouge {
		resolved = append(resolved, MetricRouge1, MetricRouge2, MetricRougeL)
	}
	if wantBleu {
		resolved = append(resolved, MetricBleu)
	}
	if wantEmbed {
		resolved = append(resolved, MetricEmbedding)
	}
	return resolved, nil
}

// Evaluate scores predictions against references with the requested metrics
// (nil means defaults). The overall score is the mean of every computed
// f1-like value.
func (e *Evaluator) Evaluate(ctx context.Context, predictions, references []string, metrics []string) (*Result, error) {
	timer := prometheus.NewTimer(evaluationDuration)
	defer timer.ObserveDuration()

	if err := validateInputs(predictions, references); err != nil {
		return nil, err
	}
	resolved, err := e.resolveMetrics(metrics)
	if err != nil {
		return nil, err
	}

	evaluationRuns.Inc()
	evaluationSamples.Add(float64(len(predictions)))

	result := &Result{
		Metadata: &ResultMetadata{
			NumSamples: len(predictions),
			Metrics:    resolved,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
		},
	}
	for _, m := range resolved {
		switch m {
		case MetricRouge1, MetricRouge2, MetricRougeL:
			if result.Rouge == nil {
				result.Rouge = e.rouge.Evaluate(predictions, references)
			}
		case MetricBleu:
			result.Bleu = e.bleu.Evaluate(predictions, references)
		case MetricEmbedding:
			result.Embedding = e.embed.Evaluate(ctx, predictions, references)
		}
	}
	result.Overall = overallScore(result.scalars())

	e.logger.WithFields(logrus.Fields{
		"samples": len(predictions),
		"metrics": strings.Join(resolved, ","),
		"overall": result.Overall,
	}).Debug("Evaluation completed")

	return result, nil
}

// EvaluateBatch splits the input into fixed-size chunks, scores them
// concurrently and folds the per-chunk scalars into mean/std/min/max per
// metric. The overall score is recomputed from the combined means.
func (e *Evaluator) EvaluateBatch(ctx context.Context, predictions, references []string, metrics []string) (*BatchResults, error) {
	if err := validateInputs(predictions, references); err != nil {
		return nil, err
	}
	resolved, err := e.resolveMetrics(metrics)
	if err != nil {
		return nil, err
	}

	type span struct{ start, end int }
	var chunks []span
	for i := 0; i < len(predictions); i += e.cfg.BatchSize {
		end := i + e.cfg.BatchSize
		if end > len(predictions) {
			end = len(predictions)
		}
		chunks = append(chunks, span{start: i, end: end})
	}

	results := make([]*Result, len(chunks))
	errCh := make(chan error, len(chunks))
	var wg sync.WaitGroup

	for ci, c := range chunks {
		wg.Add(1)
		go func(ci int, c span) {
			defer wg.Done()

			r, err := e.Evaluate(ctx, predictions[c.start:c.end], references[c.start:c.end], resolved)
			if err != nil {
				errCh <- errors.Wrapf(err, "evaluating batch %d", ci)
				return
			}
			results[ci] = r
		}(ci, c)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}

	combined := make(map[string]*runningStat)
	for _, r := range results {
		for name, v := range r.scalars() {
			rs := combined[name]
			if rs == nil {
				rs = &runningStat{}
				combined[name] = rs
			}
			rs.add(v)
		}
	}

	metricStats := make(map[string]MetricStats, len(combined))
	means := make(map[string]float64, len(combined))
	for name, rs := range combined {
		metricStats[name] = rs.stats()
		means[name] = rs.mean()
	}

	e.logger.WithFields(logrus.Fields{
		"samples": len(predictions),
		"batches": len(chunks),
	}).Info("Batch evaluation completed")

	return &BatchResults{
		Metrics: metricStats,
		Overall: overallScore(means),
		Metadata: BatchMetadata{
			RunID:      uuid.New().String(),
			NumSamples: len(predictions),
			NumBatches: len(chunks),
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

func overallScore(scalars map[string]float64) float64 {
	if len(scalars) == 0 {
		return 0
	}
	vals := make([]float64, 0, len(scalars))
	for _, v := range scalars {
		vals = append(vals, v)
	}
	return stat.Mean(vals, nil)
}
