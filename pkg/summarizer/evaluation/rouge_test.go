package evaluation

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRougeIdenticalTexts(t *testing.T) {
	s := NewRougeScorer(true)

	scores := s.Evaluate([]string{"the quick brown fox jumps"}, []string{"the quick brown fox jumps"})
	for _, name := range []string{MetricRouge1, MetricRouge2, MetricRougeL} {
		sc := scores[name]
		if !almostEqual(sc.Precision, 1) || !almostEqual(sc.Recall, 1) || !almostEqual(sc.F1, 1) {
			t.Errorf("%s = %+v, want all 1.0", name, sc)
		}
	}
}

func TestRougeDisjointTexts(t *testing.T) {
	s := NewRougeScorer(true)

	scores := s.Evaluate([]string{"alpha beta gamma"}, []string{"delta epsilon zeta"})
	for _, name := range []string{MetricRouge1, MetricRouge2, MetricRougeL} {
		if sc := scores[name]; !almostEqual(sc.F1, 0) {
			t.Errorf("%s F1 = %v, want 0", name, sc.F1)
		}
	}
}

func TestRougePartialOverlap(t *testing.T) {
	s := NewRougeScorer(true)

	scores := s.Evaluate([]string{"the cat sat"}, []string{"the cat ran"})

	twoThirds := 2.0 / 3.0
	if sc := scores[MetricRouge1]; !almostEqual(sc.Precision, twoThirds) || !almostEqual(sc.Recall, twoThirds) || !almostEqual(sc.F1, twoThirds) {
		t.Errorf("rouge-1 = %+v, want 2/3 across", sc)
	}
	if sc := scores[MetricRouge2]; !almostEqual(sc.F1, 0.5) {
		t.Errorf("rouge-2 F1 = %v, want 0.5", sc.F1)
	}
	if sc := scores[MetricRougeL]; !almostEqual(sc.F1, twoThirds) {
		t.Errorf("rouge-l F1 = %v, want 2/3", sc.F1)
	}
}

func TestRougePrecisionRecallDirection(t *testing.T) {
	s := NewRougeScorer(true)

	// Short prediction against a long reference: precision stays perfect,
	// recall drops.
	scores := s.Evaluate([]string{"the cat"}, []string{"the cat sat on mat"})

	sc := scores[MetricRouge1]
	if !almostEqual(sc.Precision, 1.0) {
		t.Errorf("precision = %v, want 1.0", sc.Precision)
	}
	if !almostEqual(sc.Recall, 0.4) {
		t.Errorf("recall = %v, want 0.4", sc.Recall)
	}
}

func TestRougeStemming(t *testing.T) {
	pred := []string{"the cats run"}
	ref := []string{"the cat run"}

	stemmed := NewRougeScorer(true).Evaluate(pred, ref)
	if sc := stemmed[MetricRouge1]; !almostEqual(sc.F1, 1.0) {
		t.Errorf("stemmed rouge-1 F1 = %v, want 1.0", sc.F1)
	}

	raw := NewRougeScorer(false).Evaluate(pred, ref)
	if sc := raw[MetricRouge1]; !almostEqual(sc.F1, 2.0/3.0) {
		t.Errorf("unstemmed rouge-1 F1 = %v, want 2/3", sc.F1)
	}
}

func TestRougeAveragesAcrossPairs(t *testing.T) {
	s := NewRougeScorer(true)

	scores := s.Evaluate(
		[]string{"alpha beta gamma", "alpha beta gamma"},
		[]string{"alpha beta gamma", "delta epsilon zeta"},
	)
	if sc := scores[MetricRouge1]; !almostEqual(sc.F1, 0.5) {
		t.Errorf("averaged rouge-1 F1 = %v, want 0.5", sc.F1)
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "cats", want: "cat"},
		{in: "classes", want: "class"},
		{in: "run", want: "run"},
		{in: "gas", want: "gas"},
		{in: "jumps", want: "jump"},
	}
	for _, tt := range tests {
		if got := stem(tt.in); got != tt.want {
			t.Errorf("stem(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
