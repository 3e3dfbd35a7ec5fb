package evaluation

import "math"

// bleuMaxOrder is the highest n-gram order scored.
const bleuMaxOrder = 4

// BleuScore carries the corpus-level BLEU result with its components.
type BleuScore struct {
	Bleu           float64   `json:"bleu"`
	Precisions     []float64 `json:"precisions"`
	BrevityPenalty float64   `json:"bp"`
	Ratio          float64   `json:"ratio"`
	HypLen         int       `json:"hyp_len"`
	RefLen         int       `json:"ref_len"`
}

// BleuScorer computes corpus-level BLEU with up to 4-gram precision and no
// smoothing: any empty precision order zeroes the score.
type BleuScorer struct {
	rouge *RougeScorer
}

// NewBleuScorer creates a BLEU scorer
func NewBleuScorer() *BleuScorer {
	// BLEU reuses the shared tokenization without stemming.
	return &BleuScorer{rouge: NewRougeScorer(false)}
}

// Evaluate scores the whole corpus at once: n-gram matches and totals are
// summed across pairs before the precision ratio is taken. Inputs are
// assumed validated.
func (s *BleuScorer) Evaluate(predictions, references []string) *BleuScore {
	matches := make([]int, bleuMaxOrder)
	totals := make([]int, bleuMaxOrder)
	hypLen, refLen := 0, 0

	for i := range predictions {
		pred := s.rouge.tokenize(predictions[i])
		ref := s.rouge.tokenize(references[i])
		hypLen += len(pred)
		refLen += len(ref)

		for n := 1; n <= bleuMaxOrder; n++ {
			predCounts := countNgrams(pred, n)
			refCounts := countNgrams(ref, n)
			for gram, c := range predCounts {
				totals[n-1] += c
				if rc, ok := refCounts[gram]; ok {
					if c < rc {
						matches[n-1] += c
					} else {
						matches[n-1] += rc
					}
				}
			}
		}
	}

	precisions := make([]float64, bleuMaxOrder)
	logSum := 0.0
	zeroOrder := false
	for n := 0; n < bleuMaxOrder; n++ {
		if totals[n] > 0 {
			precisions[n] = float64(matches[n]) / float64(totals[n])
		}
		if precisions[n] == 0 {
			zeroOrder = true
			continue
		}
		logSum += math.Log(precisions[n])
	}

	bp := 0.0
	if hypLen > 0 {
		if hypLen >= refLen {
			bp = 1.0
		} else {
			bp = math.Exp(1 - float64(refLen)/float64(hypLen))
		}
	}

	bleu := 0.0
	if !zeroOrder {
		bleu = bp * math.Exp(logSum/float64(bleuMaxOrder))
	}

	ratio := 0.0
	if refLen > 0 {
		ratio = float64(hypLen) / float64(refLen)
	}

	return &BleuScore{
		Bleu:           bleu,
		Precisions:     precisions,
		BrevityPenalty: bp,
		Ratio:          ratio,
		HypLen:         hypLen,
		RefLen:         refLen,
	}
}
