package rank

import (
	"math"

	"github.com/sirupsen/logrus"
)

// Config holds the shared power-iteration parameters.
type Config struct {
	Damping       float64
	MaxIterations int
	Tolerance     float64
}

// DefaultConfig returns the standard ranking parameters.
func DefaultConfig() Config {
	return Config{
		Damping:       0.85,
		MaxIterations: 100,
		Tolerance:     1e-6,
	}
}

func (c Config) withDefaults() Config {
	if c.Damping <= 0 || c.Damping >= 1 {
		c.Damping = 0.85
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = 100
	}
	if c.Tolerance <= 0 {
		c.Tolerance = 1e-6
	}
	return c
}

// TextRank scores sentences by damped power iteration over the raw
// similarity weights of a sentence graph
type TextRank struct {
	cfg    Config
	logger *logrus.Logger
}

// NewTextRank creates a TextRank scorer
func NewTextRank(cfg Config) *TextRank {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &TextRank{
		cfg:    cfg.withDefaults(),
		logger: logger,
	}
}

// Rank returns an importance score per node index. Scores start at 1.0 and
// follow score(v) = (1-d) + d * Σ w(u,v) * score(u) / degree(u), where
// degree is the weighted degree of u. Iteration stops once the largest
// per-node change drops below the tolerance; running out of iterations is
// not an error. An empty graph yields an empty map.
func (t *TextRank) Rank(g *Graph) map[int]float64 {
	n := g.Nodes()
	scores := make(map[int]float64, n)
	if n == 0 {
		return scores
	}

	for i := 0; i < n; i++ {
		scores[i] = 1.0
	}

	degrees := make([]float64, n)
	for i := 0; i < n; i++ {
		degrees[i] = g.Degree(i)
	}

	for iter := 0; iter < t.cfg.MaxIterations; iter++ {
		next := make(map[int]float64, n)
		maxDelta := 0.0

		for v := 0; v < n; v++ {
			sum := 0.0
			for u := 0; u < n; u++ {
				w := g.Weight(u, v)
				if w == 0 || degrees[u] == 0 {
					continue
				}
				sum += w * scores[u] / degrees[u]
			}
			next[v] = (1 - t.cfg.Damping) + t.cfg.Damping*sum
			if delta := math.Abs(next[v] - scores[v]); delta > maxDelta {
				maxDelta = delta
			}
		}

		scores = next
		if maxDelta < t.cfg.Tolerance {
			t.logger.WithFields(logrus.Fields{
				"iterations": iter + 1,
				"nodes":      n,
			}).Debug("TextRank converged")
			return scores
		}
	}

	t.logger.WithField("nodes", n).Debug("TextRank stopped at iteration limit")
	return scores
}
