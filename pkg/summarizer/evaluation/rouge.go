package evaluation

import (
	"strings"
	"unicode"
)

// Score holds one precision/recall/f1 triple.
type Score struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// RougeScorer computes ROUGE-1, ROUGE-2 and ROUGE-L. All three are produced
// together since they share tokenization.
type RougeScorer struct {
	useStemmer bool
}

// NewRougeScorer creates a ROUGE scorer, optionally stemming tokens before
// matching.
func NewRougeScorer(useStemmer bool) *RougeScorer {
	return &RougeScorer{useStemmer: useStemmer}
}

// Evaluate averages per-pair ROUGE scores across the corpus. Inputs are
// assumed validated (equal length, non-empty).
func (s *RougeScorer) Evaluate(predictions, references []string) map[string]Score {
	sums := map[string]*Score{
		MetricRouge1: {},
		MetricRouge2: {},
		MetricRougeL: {},
	}

	for i := range predictions {
		for name, score := range s.scorePair(predictions[i], references[i]) {
			sums[name].Precision += score.Precision
			sums[name].Recall += score.Recall
			sums[name].F1 += score.F1
		}
	}

	n := float64(len(predictions))
	out := make(map[string]Score, len(sums))
	for name, sum := range sums {
		out[name] = Score{
			Precision: sum.Precision / n,
			Recall:    sum.Recall / n,
			F1:        sum.F1 / n,
		}
	}
	return out
}

func (s *RougeScorer) scorePair(pred, ref string) map[string]Score {
	predTokens := s.tokenize(pred)
	refTokens := s.tokenize(ref)

	return map[string]Score{
		MetricRouge1: ngramScore(predTokens, refTokens, 1),
		MetricRouge2: ngramScore(predTokens, refTokens, 2),
		MetricRougeL: lcsScore(predTokens, refTokens),
	}
}

// tokenize lowercases and splits on non-alphanumeric runs. Tokens longer
// than three characters are stemmed when stemming is enabled.
func (s *RougeScorer) tokenize(text string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if !s.useStemmer {
		return tokens
	}
	for i, tok := range tokens {
		if len(tok) > 3 {
			tokens[i] = stem(tok)
		}
	}
	return tokens
}

// stem strips plural suffixes. It intentionally stays far lighter than a
// full Porter stemmer; summary vocabularies rarely need more.
func stem(word string) string {
	if len(word) > 4 && strings.HasSuffix(word, "es") {
		return word[:len(word)-2]
	}
	if len(word) > 3 && strings.HasSuffix(word, "s") {
		return word[:len(word)-1]
	}
	return word
}

// ngramScore computes clipped n-gram overlap precision/recall.
func ngramScore(pred, ref []string, n int) Score {
	predCounts := countNgrams(pred, n)
	refCounts := countNgrams(ref, n)

	overlap := 0
	totalPred := 0
	for gram, c := range predCounts {
		totalPred += c
		if rc, ok := refCounts[gram]; ok {
			if c < rc {
				overlap += c
			} else {
				overlap += rc
			}
		}
	}
	totalRef := 0
	for _, c := range refCounts {
		totalRef += c
	}

	var precision, recall float64
	if totalPred > 0 {
		precision = float64(overlap) / float64(totalPred)
	}
	if totalRef > 0 {
		recall = float64(overlap) / float64(totalRef)
	}
	return Score{
		Precision: precision,
		Recall:    recall,
		F1:        f1Score(precision, recall),
	}
}

func countNgrams(tokens []string, n int) map[string]int {
	counts := make(map[string]int)
	for i := 0; i+n <= len(tokens); i++ {
		counts[strings.Join(tokens[i:i+n], " ")]++
	}
	return counts
}

// lcsScore computes ROUGE-L from the longest common token subsequence.
func lcsScore(pred, ref []string) Score {
	lcs := lcsLength(pred, ref)

	var precision, recall float64
	if len(pred) > 0 {
		precision = float64(lcs) / float64(len(pred))
	}
	if len(ref) > 0 {
		recall = float64(lcs) / float64(len(ref))
	}
	return Score{
		Precision: precision,
		Recall:    recall,
		F1:        f1Score(precision, recall),
	}
}

func lcsLength(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func f1Score(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}
