package extractive

import (
	"reflect"
	"testing"
)

// Two near-duplicate sentences (cosine 0.96) and one unrelated sentence.
func nearDuplicateMatrix() [][]float64 {
	return [][]float64{
		{1, 0.96, 0},
		{0.96, 1, 0},
		{0, 0, 1},
	}
}

func TestSelectIdentityWhenInputFits(t *testing.T) {
	s := NewSelector(true, 0.5)
	sim := nearDuplicateMatrix()

	for _, k := range []int{3, 5} {
		got := s.Select(sim, k)
		if !reflect.DeepEqual(got, []int{0, 1, 2}) {
			t.Errorf("Select(k=%d) = %v, want [0 1 2]", k, got)
		}
	}
}

func TestSelectMMRPenalizesRedundancy(t *testing.T) {
	mmr := NewSelector(true, 0.5)

	got := mmr.Select(nearDuplicateMatrix(), 2)
	if !reflect.DeepEqual(got, []int{0, 2}) {
		t.Errorf("MMR selection = %v, want [0 2]", got)
	}
}

func TestSelectCentralityIgnoresRedundancy(t *testing.T) {
	central := NewSelector(false, 0.5)

	got := central.Select(nearDuplicateMatrix(), 2)
	if !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("centrality selection = %v, want [0 1]", got)
	}
}

func TestSelectMMRFirstPickIsMostImportant(t *testing.T) {
	// Row means are 0.6333, 0.9 and 0.6, so index 1 dominates.
	sim := [][]float64{
		{1, 0.9, 0},
		{0.9, 1, 0.8},
		{0, 0.8, 1},
	}

	s := NewSelector(true, 0.5)
	got := s.Select(sim, 1)
	if !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("Select(k=1) = %v, want [1]", got)
	}
}

func TestSelectReturnsIncreasingIndices(t *testing.T) {
	// Index 3 is picked first for importance, then index 0; the output must
	// still come back in document order.
	sim := [][]float64{
		{1, 0, 0, 0.1},
		{0, 1, 0, 0.1},
		{0, 0, 1, 0.1},
		{0.1, 0.1, 0.1, 1},
	}

	s := NewSelector(true, 0.5)
	got := s.Select(sim, 2)
	if !reflect.DeepEqual(got, []int{0, 3}) {
		t.Errorf("Select(k=2) = %v, want [0 3]", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Errorf("indices not strictly increasing: %v", got)
		}
	}
}

func TestSelectEmptyMatrix(t *testing.T) {
	s := NewSelector(true, 0.5)
	if got := s.Select(nil, 3); got != nil {
		t.Errorf("Select(nil) = %v, want nil", got)
	}
}
