package rank

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LexRankConfig extends the shared parameters with the adjacency threshold.
type LexRankConfig struct {
	Config
	SimilarityThreshold float64
}

// DefaultLexRankConfig returns the standard LexRank parameters.
func DefaultLexRankConfig() LexRankConfig {
	return LexRankConfig{
		Config:              DefaultConfig(),
		SimilarityThreshold: 0.1,
	}
}

// LexRank scores sentences as the stationary distribution of a thresholded
// sentence-similarity Markov chain. Unlike TextRank it walks a binarized
// adjacency, not the raw similarity weights.
type LexRank struct {
	cfg    LexRankConfig
	logger *logrus.Logger
}

// NewLexRank creates a LexRank scorer
func NewLexRank(cfg LexRankConfig) *LexRank {
	cfg.Config = cfg.Config.withDefaults()
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = 0.1
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &LexRank{
		cfg:    cfg,
		logger: logger,
	}
}

// TransitionMatrix gates the graph at the similarity threshold (edges at or
// above the threshold count 1, the diagonal stays 0) and normalizes each row
// by its sum. Rows without any retained edge become uniform so the chain has
// no rank sinks. Returns nil for an empty graph.
func (l *LexRank) TransitionMatrix(g *Graph) *mat.Dense {
	n := g.Nodes()
	if n == 0 {
		return nil
	}

	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		rowSum := 0.0
		for j := 0; j < n; j++ {
			if i != j && g.Weight(i, j) >= l.cfg.SimilarityThreshold {
				m.Set(i, j, 1)
				rowSum++
			}
		}
		if rowSum == 0 {
			uniform := 1.0 / float64(n)
			for j := 0; j < n; j++ {
				m.Set(i, j, uniform)
			}
		} else {
			for j := 0; j < n; j++ {
				m.Set(i, j, m.At(i, j)/rowSum)
			}
		}
	}
	return m
}

// Rank runs damped power iteration scores = (1-d)/n + d * Mᵀ * scores from a
// uniform start until the largest per-component change drops below the
// tolerance or the iteration limit is reached.
func (l *LexRank) Rank(m *mat.Dense) map[int]float64 {
	if m == nil {
		return map[int]float64{}
	}
	n, _ := m.Dims()
	if n == 0 {
		return map[int]float64{}
	}

	cur := make([]float64, n)
	for i := range cur {
		cur[i] = 1.0 / float64(n)
	}
	base := (1 - l.cfg.Damping) / float64(n)

	for iter := 0; iter < l.cfg.MaxIterations; iter++ {
		var product mat.VecDense
		product.MulVec(m.T(), mat.NewVecDense(n, cur))

		next := make([]float64, n)
		for i := 0; i < n; i++ {
			next[i] = base + l.cfg.Damping*product.AtVec(i)
		}

		converged := floats.Distance(cur, next, math.Inf(1)) < l.cfg.Tolerance
		cur = next
		if converged {
			l.logger.WithFields(logrus.Fields{
				"iterations": iter + 1,
				"nodes":      n,
			}).Debug("LexRank converged")
			break
		}
	}

	scores := make(map[int]float64, n)
	for i, s := range cur {
		scores[i] = s
	}
	return scores
}
