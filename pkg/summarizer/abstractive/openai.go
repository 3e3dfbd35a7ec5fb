// Package abstractive generates rewritten summaries through OpenAI-compatible
// chat-completion endpoints.
package abstractive

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/pkoukk/tiktoken-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/hybridsum/hybridsum/pkg/summarizer"
	"github.com/hybridsum/hybridsum/prompts"
)

const (
	defaultMaxLength      = 150
	defaultMinLength      = 30
	defaultMaxInputTokens = 2048
	defaultTemperature    = 0.3

	encodingName = "cl100k_base"
)

var (
	generationRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarizer_abstractive_requests_total",
			Help: "Total abstractive generation requests by model",
		},
		[]string{"model"},
	)
	generationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summarizer_abstractive_duration_seconds",
			Help:    "Time spent on abstractive generation calls",
			Buckets: prometheus.DefBuckets,
		},
	)
	inputTruncations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "summarizer_abstractive_truncations_total",
			Help: "Number of inputs truncated to the token budget",
		},
	)
)

func init() {
	prometheus.MustRegister(generationRequests)
	prometheus.MustRegister(generationDuration)
	prometheus.MustRegister(inputTruncations)
}

// Config controls the generation model and its input budget.
type Config struct {
	Model          string
	MaxInputTokens int
	Temperature    float32
}

// OpenAIGenerator produces abstractive summaries via chat completion. It
// implements the summarizer.Abstractive interface.
type OpenAIGenerator struct {
	client  *openai.Client
	cfg     Config
	encoder *tiktoken.Tiktoken
	logger  *logrus.Logger
}

// NewOpenAIGenerator creates a generator for the given client and config.
// Zero config fields are filled with defaults. When the token encoder cannot
// be loaded, inputs are sent untruncated.
func NewOpenAIGenerator(client *openai.Client, cfg Config) *OpenAIGenerator {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.MaxInputTokens <= 0 {
		cfg.MaxInputTokens = defaultMaxInputTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	encoder, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		logger.WithError(err).Warn("Token encoder unavailable, skipping input truncation")
		encoder = nil
	}

	return &OpenAIGenerator{
		client:  client,
		cfg:     cfg,
		encoder: encoder,
		logger:  logger,
	}
}

// Model returns the configured generation model name
func (g *OpenAIGenerator) Model() string {
	return g.cfg.Model
}

// GenerateSummary rewrites text as a summary of minLength to maxLength
// words. Empty input is an error; non-positive bounds fall back to the
// 150/30 defaults. Inputs beyond the token budget are truncated before the
// request.
func (g *OpenAIGenerator) GenerateSummary(ctx context.Context, text string, maxLength, minLength int) (*summarizer.AbstractiveResult, error) {
	timer := prometheus.NewTimer(generationDuration)
	defer timer.ObserveDuration()

	if strings.TrimSpace(text) == "" {
		return nil, errors.New("input text is empty")
	}
	if maxLength <= 0 {
		maxLength = defaultMaxLength
	}
	if minLength <= 0 {
		minLength = defaultMinLength
	}

	text, inputTokens := g.truncate(text)
	generationRequests.WithLabelValues(g.cfg.Model).Inc()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		Temperature: g.cfg.Temperature,
		MaxTokens:   2 * maxLength,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: prompts.SummarySystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompts.SummarizePrompt(text, maxLength, minLength),
			},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating chat completion")
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no completion choices returned")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	g.logger.WithFields(logrus.Fields{
		"model":        g.cfg.Model,
		"input_tokens": inputTokens,
		"summary_len":  len(summary),
	}).Debug("Generated abstractive summary")

	return &summarizer.AbstractiveResult{
		Summary:     summary,
		Model:       g.cfg.Model,
		InputTokens: inputTokens,
	}, nil
}

// truncate clips the text to the configured token budget and reports the
// token count actually sent. Without an encoder the text passes through
// with a zero count.
func (g *OpenAIGenerator) truncate(text string) (string, int) {
	if g.encoder == nil {
		return text, 0
	}

	tokens := g.encoder.Encode(text, nil, nil)
	if len(tokens) <= g.cfg.MaxInputTokens {
		return text, len(tokens)
	}

	inputTruncations.Inc()
	g.logger.WithFields(logrus.Fields{
		"tokens": len(tokens),
		"budget": g.cfg.MaxInputTokens,
	}).Debug("Truncating input to token budget")

	return g.encoder.Decode(tokens[:g.cfg.MaxInputTokens]), g.cfg.MaxInputTokens
}
