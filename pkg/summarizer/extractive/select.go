package extractive

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Selector picks k sentence indices from a pairwise similarity matrix,
// either greedily trading importance against redundancy (MMR) or by plain
// centrality. Returned indices are always in original sentence order.
type Selector struct {
	useMMR bool
	lambda float64
}

// NewSelector creates a selector. lambda weights the redundancy penalty in
// MMR mode; non-positive values fall back to 0.5.
func NewSelector(useMMR bool, lambda float64) *Selector {
	if lambda <= 0 {
		lambda = 0.5
	}
	return &Selector{
		useMMR: useMMR,
		lambda: lambda,
	}
}

// Select returns up to k indices into the similarity matrix. When the input
// already fits, every index is returned unchanged.
func (s *Selector) Select(sim [][]float64, k int) []int {
	n := len(sim)
	if n == 0 || k <= 0 {
		return nil
	}
	if n <= k {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}

	if s.useMMR {
		return s.selectMMR(sim, k)
	}
	return s.selectCentrality(sim, k)
}

// selectMMR picks the most important sentence first, then repeatedly takes
// the candidate maximizing importance(i) - lambda * max similarity to any
// already-selected sentence. Importance is the row mean of the similarity
// matrix.
func (s *Selector) selectMMR(sim [][]float64, k int) []int {
	n := len(sim)
	importance := make([]float64, n)
	for i, row := range sim {
		importance[i] = floats.Sum(row) / float64(n)
	}

	first := 0
	for i := 1; i < n; i++ {
		if importance[i] > importance[first] {
			first = i
		}
	}

	selected := []int{first}
	chosen := make([]bool, n)
	chosen[first] = true

	for len(selected) < k {
		bestIdx := -1
		bestScore := -1.0

		for i := 0; i < n; i++ {
			if chosen[i] {
				continue
			}
			maxSim := sim[i][selected[0]]
			for _, j := range selected[1:] {
				if sim[i][j] > maxSim {
					maxSim = sim[i][j]
				}
			}
			if score := importance[i] - s.lambda*maxSim; score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx == -1 {
			break
		}
		chosen[bestIdx] = true
		selected = append(selected, bestIdx)
	}

	sort.Ints(selected)
	return selected
}

// selectCentrality takes the top k sentences by raw row-sum similarity with
// no redundancy penalty.
func (s *Selector) selectCentrality(sim [][]float64, k int) []int {
	n := len(sim)
	sums := make([]float64, n)
	for i, row := range sim {
		sums[i] = floats.Sum(row)
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return sums[idx[a]] > sums[idx[b]]
	})

	top := append([]int(nil), idx[:k]...)
	sort.Ints(top)
	return top
}
