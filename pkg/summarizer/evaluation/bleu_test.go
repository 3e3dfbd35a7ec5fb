package evaluation

import (
	"math"
	"testing"
)

func TestBleuPerfectMatch(t *testing.T) {
	s := NewBleuScorer()

	score := s.Evaluate([]string{"the quick brown fox jumps"}, []string{"the quick brown fox jumps"})
	if !almostEqual(score.Bleu, 1.0) {
		t.Errorf("Bleu = %v, want 1.0", score.Bleu)
	}
	for n, p := range score.Precisions {
		if !almostEqual(p, 1.0) {
			t.Errorf("precision[%d] = %v, want 1.0", n, p)
		}
	}
	if !almostEqual(score.BrevityPenalty, 1.0) {
		t.Errorf("BrevityPenalty = %v, want 1.0", score.BrevityPenalty)
	}
	if score.HypLen != 5 || score.RefLen != 5 {
		t.Errorf("lengths = %d/%d, want 5/5", score.HypLen, score.RefLen)
	}
	if !almostEqual(score.Ratio, 1.0) {
		t.Errorf("Ratio = %v, want 1.0", score.Ratio)
	}
}

func TestBleuDisjointTexts(t *testing.T) {
	s := NewBleuScorer()

	score := s.Evaluate([]string{"alpha beta gamma delta"}, []string{"epsilon zeta eta theta"})
	if !almostEqual(score.Bleu, 0) {
		t.Errorf("Bleu = %v, want 0", score.Bleu)
	}
	for n, p := range score.Precisions {
		if !almostEqual(p, 0) {
			t.Errorf("precision[%d] = %v, want 0", n, p)
		}
	}
}

func TestBleuBrevityPenalty(t *testing.T) {
	s := NewBleuScorer()

	// A perfect prefix of a longer reference: every n-gram precision is 1,
	// so the score equals the brevity penalty exp(1 - 6/4).
	score := s.Evaluate([]string{"the quick brown fox"}, []string{"the quick brown fox jumps over"})

	wantBP := math.Exp(1 - 6.0/4.0)
	if !almostEqual(score.BrevityPenalty, wantBP) {
		t.Errorf("BrevityPenalty = %v, want %v", score.BrevityPenalty, wantBP)
	}
	if !almostEqual(score.Bleu, wantBP) {
		t.Errorf("Bleu = %v, want %v", score.Bleu, wantBP)
	}
	if !almostEqual(score.Ratio, 4.0/6.0) {
		t.Errorf("Ratio = %v, want 2/3", score.Ratio)
	}
}

func TestBleuZeroWithoutFourgrams(t *testing.T) {
	s := NewBleuScorer()

	// No smoothing: a three-token pair has no 4-grams, so the geometric
	// mean collapses to zero even for an exact match.
	score := s.Evaluate([]string{"the cat sat"}, []string{"the cat sat"})
	if !almostEqual(score.Bleu, 0) {
		t.Errorf("Bleu = %v, want 0", score.Bleu)
	}
	if !almostEqual(score.Precisions[0], 1.0) {
		t.Errorf("precision[0] = %v, want 1.0", score.Precisions[0])
	}
}

func TestBleuCorpusLevelPooling(t *testing.T) {
	s := NewBleuScorer()

	// Matches and totals pool across the corpus before division, so two
	// half-matching pairs give the same unigram precision as one.
	score := s.Evaluate(
		[]string{"alpha beta", "gamma delta"},
		[]string{"alpha zeta", "gamma eta"},
	)
	if !almostEqual(score.Precisions[0], 0.5) {
		t.Errorf("precision[0] = %v, want 0.5", score.Precisions[0])
	}
}
