package embedding

import (
	"math"
)

// CosineSimilarity returns the cosine of the angle between two vectors.
// Mismatched lengths and zero-magnitude vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// PairwiseSimilarity builds the symmetric cosine matrix for a vector set.
func PairwiseSimilarity(vectors [][]float32) [][]float64 {
	n := len(vectors)
	s := make([][]float64, n)
	for i := range s {
		s[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sim := CosineSimilarity(vectors[i], vectors[j])
			s[i][j] = sim
			s[j][i] = sim
		}
	}
	return s
}
