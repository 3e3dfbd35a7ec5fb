package rank

import (
	"math"

	mapset "github.com/deckarep/golang-set/v2"
)

// PairSimilarity scores two tokenized sentences in [0, 1].
type PairSimilarity func(a, b []string) float64

// Graph is an undirected weighted graph over sentence indices. Weights are
// symmetric, the diagonal is zero, and absent edges hold weight zero.
type Graph struct {
	weights [][]float64
	edges   int
}

// NewGraph creates an edgeless graph over n nodes.
func NewGraph(n int) *Graph {
	weights := make([][]float64, n)
	for i := range weights {
		weights[i] = make([]float64, n)
	}
	return &Graph{weights: weights}
}

// Nodes returns the number of nodes.
func (g *Graph) Nodes() int {
	return len(g.weights)
}

// Edges returns the number of stored edges.
func (g *Graph) Edges() int {
	return g.edges
}

// Weight returns the edge weight between i and j, zero when absent.
func (g *Graph) Weight(i, j int) float64 {
	return g.weights[i][j]
}

// Degree returns the sum of edge weights incident to node i.
func (g *Graph) Degree(i int) float64 {
	sum := 0.0
	for _, w := range g.weights[i] {
		sum += w
	}
	return sum
}

func (g *Graph) setEdge(i, j int, w float64) {
	g.weights[i][j] = w
	g.weights[j][i] = w
	g.edges++
}

// Builder constructs similarity graphs from tokenized sentences
type Builder struct {
	sim PairSimilarity
}

// NewBuilder creates a graph builder using the given similarity function
func NewBuilder(sim PairSimilarity) *Builder {
	return &Builder{sim: sim}
}

// Build scores every unordered sentence pair and keeps edges with positive
// similarity. A graph with zero edges is a valid result, not an error.
func (b *Builder) Build(tokens [][]string) *Graph {
	g := NewGraph(len(tokens))
	for i := 0; i < len(tokens); i++ {
		for j := i + 1; j < len(tokens); j++ {
			if w := b.sim(tokens[i], tokens[j]); w > 0 {
				g.setEdge(i, j, w)
			}
		}
	}
	return g
}

// Jaccard returns the token-set overlap |A∩B| / |A∪B|, zero when either
// sentence has no tokens.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := mapset.NewSet[string](a...)
	setB := mapset.NewSet[string](b...)
	union := setA.Union(setB).Cardinality()
	if union == 0 {
		return 0
	}
	inter := setA.Intersect(setB).Cardinality()
	return float64(inter) / float64(union)
}

// CountCosine returns the cosine similarity of the two sentences' word-count
// vectors over their union vocabulary, zero when either vector has zero norm.
func CountCosine(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	countsA := make(map[string]float64, len(a))
	for _, w := range a {
		countsA[w]++
	}
	countsB := make(map[string]float64, len(b))
	for _, w := range b {
		countsB[w]++
	}

	var dot, normA, normB float64
	for _, c := range countsA {
		normA += c * c
	}
	for _, c := range countsB {
		normB += c * c
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	for w, c := range countsA {
		dot += c * countsB[w]
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
