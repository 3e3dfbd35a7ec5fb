package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hybridsum/hybridsum/pkg/summarizer"
	"github.com/hybridsum/hybridsum/pkg/summarizer/abstractive"
	"github.com/hybridsum/hybridsum/pkg/summarizer/dataset"
	"github.com/hybridsum/hybridsum/pkg/summarizer/embedding"
	"github.com/hybridsum/hybridsum/pkg/summarizer/evaluation"
	"github.com/hybridsum/hybridsum/pkg/summarizer/extractive"
	"github.com/hybridsum/hybridsum/pkg/summarizer/hybrid"
	"github.com/hybridsum/hybridsum/pkg/summarizer/rank"
	"github.com/hybridsum/hybridsum/pkg/summarizer/report"
	"github.com/hybridsum/hybridsum/pkg/summarizer/textproc"
	"github.com/hybridsum/hybridsum/services"
)

var (
	text         = flag.String("text", "", "Text to summarize")
	inputFile    = flag.String("input", "", "Path to a document to summarize (txt, md, html, pdf)")
	dataFile     = flag.String("data", "", "Path to a dataset file (json, jsonl, csv, txt)")
	evaluate     = flag.Bool("evaluate", false, "Evaluate generated summaries against dataset references")
	outputFile   = flag.String("output", "", "Output file path; empty writes to stdout")
	format       = flag.String("format", "txt", "Output format (txt, json, html)")
	method       = flag.String("method", "textrank", "Summarization method (textrank, lexrank, embedding, hybrid)")
	strategy     = flag.String("strategy", "", "Hybrid combination strategy (weighted_combination, pipeline, ensemble)")
	provider     = flag.String("provider", "", "Generation provider for hybrid (openai, deepseek, openrouter, ollama); overrides GENERATION_PROVIDER")
	model        = flag.String("model", "", "Generation model; overrides SUMMARIZER_MODEL")
	numSentences = flag.Int("num-sentences", 5, "Number of sentences to extract")
	maxLength    = flag.Int("max-length", 150, "Maximum abstractive summary length in words")
	minLength    = flag.Int("min-length", 30, "Minimum abstractive summary length in words")
	metricNames  = flag.String("metrics", "", "Comma-separated evaluation metrics (default: rouge and bleu, plus embedding when OPENAI_API_KEY is set)")
	batchSize    = flag.Int("batch-size", 32, "Evaluation batch size")
	logLevel     = flag.String("log-level", "info", "Logging level (debug, info, warn, error)")
	envFile      = flag.String("env", ".env", "Path to environment file")
)

// summarizeFunc runs one document through the configured method.
type summarizeFunc func(ctx context.Context, text string) (string, interface{}, error)

func main() {
	flag.Parse()

	// Configure logging
	logger := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatalf("Invalid log level: %v", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if err := godotenv.Load(*envFile); err != nil {
		logger.Debugf("No env file loaded from %s: %v", *envFile, err)
	}
	if *provider != "" {
		os.Setenv("GENERATION_PROVIDER", *provider)
	}
	if *model != "" {
		os.Setenv("SUMMARIZER_MODEL", *model)
	}

	if *text == "" && *inputFile == "" && *dataFile == "" {
		logger.Fatal("One of -text, -input or -data must be specified")
	}

	writer, err := report.NewWriter(*outputFile, *format)
	if err != nil {
		logger.Fatalf("Invalid output format: %v", err)
	}

	summarize, err := buildSummarizer(*method)
	if err != nil {
		logger.Fatalf("Invalid method: %v", err)
	}

	ctx := context.Background()
	rep := report.NewReport("Summarization Report")

	switch {
	case *text != "":
		runSingle(ctx, logger, rep, summarize, "text", *text)

	case *inputFile != "":
		content, err := dataset.ReadDocument(*inputFile)
		if err != nil {
			logger.Fatalf("Failed to read document: %v", err)
		}
		runSingle(ctx, logger, rep, summarize, *inputFile, content)

	default:
		runDataset(ctx, logger, rep, summarize)
	}

	if err := writer.Write(rep); err != nil {
		logger.Fatalf("Failed to write report: %v", err)
	}
	if *outputFile != "" && *outputFile != "-" {
		logger.Infof("Report saved to %s", *outputFile)
	}
}

func runSingle(ctx context.Context, logger *logrus.Logger, rep *report.Report, summarize summarizeFunc, source, content string) {
	summary, result, err := summarize(ctx, content)
	if err != nil {
		logger.Fatalf("Summarization failed: %v", err)
	}
	rep.AddSummary(source, *method, summary, result)
}

func runDataset(ctx context.Context, logger *logrus.Logger, rep *report.Report, summarize summarizeFunc) {
	samples, err := dataset.LoadDataset(*dataFile)
	if err != nil {
		logger.Fatalf("Failed to load dataset: %v", err)
	}
	if len(samples) == 0 {
		logger.Fatal("Dataset contains no samples")
	}

	logger.Infof("Summarizing %d samples...", len(samples))

	var predictions, references []string
	for i, sample := range samples {
		summary, result, err := summarize(ctx, sample.Text)
		if err != nil {
			logger.Errorf("Failed to summarize sample %d: %v", i, err)
			continue
		}
		rep.AddSummary(fmt.Sprintf("sample %d", i), *method, summary, result)
		if sample.Summary != "" {
			predictions = append(predictions, summary)
			references = append(references, sample.Summary)
		}
	}

	if !*evaluate {
		return
	}
	if len(references) == 0 {
		logger.Fatal("Evaluation requested but no dataset samples carry reference summaries")
	}

	var requested []string
	for _, name := range strings.Split(*metricNames, ",") {
		if name = strings.TrimSpace(name); name != "" {
			requested = append(requested, name)
		}
	}

	var embedder summarizer.Embedder
	if os.Getenv("OPENAI_API_KEY") != "" {
		embedder = embedding.NewOpenAIEmbedder(services.DefaultOpenAIClient(), services.DefaultEmbeddingModel())
	}

	evaluator := evaluation.NewEvaluator(embedder, evaluation.Config{BatchSize: *batchSize})
	results, err := evaluator.EvaluateBatch(ctx, predictions, references, requested)
	if err != nil {
		logger.Fatalf("Evaluation failed: %v", err)
	}

	logger.Infof("Evaluated %d prediction/reference pairs, overall score %.4f",
		results.Metadata.NumSamples, results.Overall)
	rep.SetEvaluation(results)
}

func buildSummarizer(name string) (summarizeFunc, error) {
	proc := textproc.NewProcessor(textproc.DefaultConfig())

	var ext summarizer.Extractive
	switch name {
	case extractive.MethodTextRank, hybrid.MethodHybrid:
		ext = extractive.NewTextRankSummarizer(proc, rank.DefaultConfig())
	case extractive.MethodLexRank:
		ext = extractive.NewLexRankSummarizer(proc, rank.DefaultLexRankConfig())
	case extractive.MethodEmbedding:
		embedder := embedding.NewOpenAIEmbedder(services.DefaultOpenAIClient(), services.DefaultEmbeddingModel())
		ext = extractive.NewEmbeddingSummarizer(proc, embedder, extractive.DefaultEmbeddingConfig())
	default:
		return nil, errors.Wrapf(extractive.ErrUnknownMethod, "%q", name)
	}

	if name != hybrid.MethodHybrid {
		return func(ctx context.Context, text string) (string, interface{}, error) {
			result, err := ext.Summarize(ctx, text, *numSentences)
			if err != nil {
				return "", nil, err
			}
			return result.Summary, result, nil
		}, nil
	}

	client, model := services.GenerationClient()
	generator := abstractive.NewOpenAIGenerator(client, abstractive.Config{Model: model})
	summ, err := hybrid.New(ext, generator, hybrid.Config{
		Strategy:     *strategy,
		NumSentences: *numSentences,
		MaxLength:    *maxLength,
		MinLength:    *minLength,
	})
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, text string) (string, interface{}, error) {
		result, err := summ.Summarize(ctx, text)
		if err != nil {
			return "", nil, err
		}
		return result.Summary, result, nil
	}, nil
}
