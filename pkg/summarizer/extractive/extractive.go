// Package extractive selects representative sentences from a document using
// graph ranking (TextRank, LexRank) or embedding-based diversity selection.
package extractive

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hybridsum/hybridsum/pkg/summarizer"
)

// Method tags recorded on extractive results
const (
	MethodTextRank  = "textrank"
	MethodLexRank   = "lexrank"
	MethodEmbedding = "embedding"
)

// ErrUnknownMethod reports a method name outside the supported set.
var ErrUnknownMethod = errors.New("unknown summarization method")

// DefaultNumSentences is the summary length used when the caller passes a
// non-positive sentence count.
const DefaultNumSentences = 3

var (
	summaryRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarizer_extractive_runs_total",
			Help: "Total number of extractive summarization runs by method",
		},
		[]string{"method"},
	)
	summaryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "summarizer_extractive_duration_seconds",
			Help:    "Time spent producing extractive summaries by method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(summaryRuns)
	prometheus.MustRegister(summaryDuration)
}

// topIndices returns the k highest-scoring indices in original sentence
// order. Ties go to the earlier sentence, which also makes a uniformly
// scored (edgeless) graph degrade to "first k sentences."
func topIndices(scores map[int]float64, k int) []int {
	idx := make([]int, 0, len(scores))
	for i := range scores {
		idx = append(idx, i)
	}
	sort.Slice(idx, func(a, b int) bool {
		if scores[idx[a]] == scores[idx[b]] {
			return idx[a] < idx[b]
		}
		return scores[idx[a]] > scores[idx[b]]
	})

	if k > len(idx) {
		k = len(idx)
	}
	top := append([]int(nil), idx[:k]...)
	sort.Ints(top)
	return top
}

func emptyResult(method string) *summarizer.ExtractiveResult {
	return &summarizer.ExtractiveResult{
		Summary:   "",
		Sentences: []string{},
		Method:    method,
		Scores:    map[int]float64{},
	}
}

// fullResult covers the fast path where the document already fits the
// requested length. Every sentence keeps the initial rank value.
func fullResult(method string, sentences []string) *summarizer.ExtractiveResult {
	scores := make(map[int]float64, len(sentences))
	for i := range sentences {
		scores[i] = 1.0
	}
	return &summarizer.ExtractiveResult{
		Summary:      strings.Join(sentences, " "),
		Sentences:    sentences,
		NumSentences: len(sentences),
		Method:       method,
		Scores:       scores,
	}
}

func buildResult(method string, sentences []string, scores map[int]float64, top []int) *summarizer.ExtractiveResult {
	selected := make([]string, len(top))
	selectedScores := make(map[int]float64, len(top))
	for i, idx := range top {
		selected[i] = sentences[idx]
		selectedScores[idx] = scores[idx]
	}
	return &summarizer.ExtractiveResult{
		Summary:      strings.Join(selected, " "),
		Sentences:    selected,
		NumSentences: len(selected),
		Method:       method,
		Scores:       selectedScores,
	}
}
