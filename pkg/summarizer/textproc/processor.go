package textproc

import (
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// minSplitLength rejects fragments the sentence segmenter produces from
// abbreviations and stray punctuation.
const minSplitLength = 10

// Config bounds the sentences kept for summarization.
type Config struct {
	MinSentenceLength int
	MaxSentenceLength int
}

// DefaultConfig returns the standard sentence bounds.
func DefaultConfig() Config {
	return Config{
		MinSentenceLength: 10,
		MaxSentenceLength: 200,
	}
}

// CleanOptions selects which character classes CleanText strips.
type CleanOptions struct {
	RemovePunctuation bool
	RemoveNumbers     bool
}

// Processor normalizes raw text and splits it into sentences and word tokens
type Processor struct {
	cfg    Config
	logger *logrus.Logger
}

// NewProcessor creates a text processor with the given sentence bounds
func NewProcessor(cfg Config) *Processor {
	if cfg.MinSentenceLength <= 0 {
		cfg.MinSentenceLength = 10
	}
	if cfg.MaxSentenceLength <= 0 {
		cfg.MaxSentenceLength = 200
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Processor{
		cfg:    cfg,
		logger: logger,
	}
}

// CleanText lowercases the input, optionally strips punctuation and digits,
// and collapses whitespace runs into single spaces.
func (p *Processor) CleanText(text string, opts CleanOptions) string {
	text = strings.ToLower(text)

	if opts.RemovePunctuation {
		text = strings.Map(func(r rune) rune {
			if unicode.IsPunct(r) || unicode.IsSymbol(r) {
				return -1
			}
			return r
		}, text)
	}
	if opts.RemoveNumbers {
		text = strings.Map(func(r rune) rune {
			if unicode.IsDigit(r) {
				return -1
			}
			return r
		}, text)
	}

	return strings.Join(strings.Fields(text), " ")
}

// SplitSentences segments text into sentences, dropping fragments shorter
// than the minimum split length.
func (p *Processor) SplitSentences(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text, prose.WithExtraction(false), prose.WithTagging(false))
	if err != nil {
		return nil, errors.Wrap(err, "segmenting text")
	}

	var sentences []string
	for _, sent := range doc.Sentences() {
		s := strings.TrimSpace(sent.Text)
		if len(s) > minSplitLength {
			sentences = append(sentences, s)
		}
	}
	return sentences, nil
}

// PreprocessForSummarization splits the text into sentences, normalizes each
// one (keeping punctuation and numbers, which carry sentence structure), and
// returns the sentences inside the configured length bounds. Segmentation
// runs before cleaning: the splitter relies on capitalization cues that
// lowercasing would destroy.
func (p *Processor) PreprocessForSummarization(text string) ([]string, error) {
	sentences, err := p.SplitSentences(text)
	if err != nil {
		return nil, err
	}

	filtered := make([]string, 0, len(sentences))
	for _, s := range sentences {
		cleaned := p.CleanText(s, CleanOptions{})
		if len(cleaned) >= p.cfg.MinSentenceLength && len(cleaned) <= p.cfg.MaxSentenceLength {
			filtered = append(filtered, cleaned)
		}
	}

	p.logger.WithFields(logrus.Fields{
		"input_length": len(text),
		"sentences":    len(filtered),
	}).Debug("Preprocessed text for summarization")

	return filtered, nil
}

// TokenizeWords lowercases and tokenizes the text. With removeStopwords set
// it also drops stop words and tokens of two characters or fewer.
func (p *Processor) TokenizeWords(text string, removeStopwords bool) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithTagging(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, errors.Wrap(err, "tokenizing text")
	}

	var tokens []string
	for _, tok := range doc.Tokens() {
		word := strings.ToLower(tok.Text)
		if removeStopwords && (stopWords.Contains(word) || len(word) <= 2) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens, nil
}
