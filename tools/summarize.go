package tools

import (
	"context"
	"fmt"
	"io"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"

	"github.com/hybridsum/hybridsum/pkg/summarizer"
	"github.com/hybridsum/hybridsum/pkg/summarizer/abstractive"
	"github.com/hybridsum/hybridsum/pkg/summarizer/dataset"
	"github.com/hybridsum/hybridsum/pkg/summarizer/embedding"
	"github.com/hybridsum/hybridsum/pkg/summarizer/extractive"
	"github.com/hybridsum/hybridsum/pkg/summarizer/hybrid"
	"github.com/hybridsum/hybridsum/pkg/summarizer/metrics"
	"github.com/hybridsum/hybridsum/pkg/summarizer/rank"
	"github.com/hybridsum/hybridsum/pkg/summarizer/textproc"
	"github.com/hybridsum/hybridsum/services"
	"github.com/hybridsum/hybridsum/util"
)

func RegisterSummarizeTool(s *server.MCPServer) {
	textTool := mcp.NewTool("summarize_text",
		mcp.WithDescription("Summarizes a block of text. Extractive methods (textrank, lexrank, embedding) select the most central sentences; the hybrid method additionally rewrites them with a language model."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The text to summarize")),
		mcp.WithString("method", mcp.Description("Summarization method: textrank (default), lexrank, embedding, or hybrid")),
		mcp.WithNumber("num_sentences", mcp.Description("Number of sentences to extract (default 3)")),
		mcp.WithNumber("max_length", mcp.Description("Maximum abstractive summary length in words, hybrid only (default 150)")),
		mcp.WithNumber("min_length", mcp.Description("Minimum abstractive summary length in words, hybrid only (default 30)")),
		mcp.WithString("strategy", mcp.Description("Hybrid combination strategy: weighted_combination (default), pipeline, or ensemble")),
	)
	s.AddTool(textTool, util.ErrorGuard(summarizeTextHandler))

	urlTool := mcp.NewTool("summarize_url",
		mcp.WithDescription("Fetches a web page, converts it to readable text and summarizes it. Accepts the same method options as summarize_text."),
		mcp.WithString("url", mcp.Required(), mcp.Description("The complete HTTP/HTTPS URL to summarize")),
		mcp.WithString("method", mcp.Description("Summarization method: textrank (default), lexrank, embedding, or hybrid")),
		mcp.WithNumber("num_sentences", mcp.Description("Number of sentences to extract (default 3)")),
		mcp.WithNumber("max_length", mcp.Description("Maximum abstractive summary length in words, hybrid only (default 150)")),
		mcp.WithNumber("min_length", mcp.Description("Minimum abstractive summary length in words, hybrid only (default 30)")),
		mcp.WithString("strategy", mcp.Description("Hybrid combination strategy: weighted_combination (default), pipeline, or ensemble")),
	)
	s.AddTool(urlTool, util.ErrorGuard(summarizeURLHandler))

	fileTool := mcp.NewTool("summarize_file",
		mcp.WithDescription("Reads a local document (txt, md, html, pdf) and summarizes it. Accepts the same method options as summarize_text."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the document to summarize")),
		mcp.WithString("method", mcp.Description("Summarization method: textrank (default), lexrank, embedding, or hybrid")),
		mcp.WithNumber("num_sentences", mcp.Description("Number of sentences to extract (default 3)")),
		mcp.WithNumber("max_length", mcp.Description("Maximum abstractive summary length in words, hybrid only (default 150)")),
		mcp.WithNumber("min_length", mcp.Description("Minimum abstractive summary length in words, hybrid only (default 30)")),
		mcp.WithString("strategy", mcp.Description("Hybrid combination strategy: weighted_combination (default), pipeline, or ensemble")),
	)
	s.AddTool(fileTool, util.ErrorGuard(summarizeFileHandler))
}

type summarizeOptions struct {
	method       string
	numSentences int
	maxLength    int
	minLength    int
	strategy     string
}

func optionsFromArguments(arguments map[string]interface{}) summarizeOptions {
	defaults := hybrid.DefaultConfig()
	opts := summarizeOptions{
		method:       extractive.MethodTextRank,
		numSentences: defaults.NumSentences,
		maxLength:    defaults.MaxLength,
		minLength:    defaults.MinLength,
	}
	if v, ok := arguments["method"].(string); ok && v != "" {
		opts.method = strings.ToLower(v)
	}
	if v, ok := arguments["num_sentences"].(float64); ok && v > 0 {
		opts.numSentences = int(v)
	}
	if v, ok := arguments["max_length"].(float64); ok && v > 0 {
		opts.maxLength = int(v)
	}
	if v, ok := arguments["min_length"].(float64); ok && v > 0 {
		opts.minLength = int(v)
	}
	if v, ok := arguments["strategy"].(string); ok {
		opts.strategy = v
	}
	return opts
}

func buildExtractive(opts summarizeOptions) (summarizer.Extractive, error) {
	proc := textproc.NewProcessor(textproc.DefaultConfig())

	switch opts.method {
	case extractive.MethodTextRank, hybrid.MethodHybrid:
		return extractive.NewTextRankSummarizer(proc, rank.DefaultConfig()), nil
	case extractive.MethodLexRank:
		return extractive.NewLexRankSummarizer(proc, rank.DefaultLexRankConfig()), nil
	case extractive.MethodEmbedding:
		embedder := embedding.NewOpenAIEmbedder(services.DefaultOpenAIClient(), services.DefaultEmbeddingModel())
		return extractive.NewEmbeddingSummarizer(proc, embedder, extractive.DefaultEmbeddingConfig()), nil
	default:
		return nil, errors.Wrapf(extractive.ErrUnknownMethod, "%q", opts.method)
	}
}

func runSummarize(ctx context.Context, source, text string, opts summarizeOptions) (*mcp.CallToolResult, error) {
	ext, err := buildExtractive(opts)
	if err != nil {
		return nil, err
	}

	if opts.method != hybrid.MethodHybrid {
		result, err := ext.Summarize(ctx, text, opts.numSentences)
		if err != nil {
			return nil, fmt.Errorf("summarization failed: %v", err)
		}
		return mcp.NewToolResultText(formatExtractive(source, result)), nil
	}

	client, model := services.GenerationClient()
	generator := abstractive.NewOpenAIGenerator(client, abstractive.Config{Model: model})

	summ, err := hybrid.New(ext, generator, hybrid.Config{
		Strategy:     opts.strategy,
		NumSentences: opts.numSentences,
		MaxLength:    opts.maxLength,
		MinLength:    opts.minLength,
	})
	if err != nil {
		return nil, err
	}

	result, err := summ.Summarize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("summarization failed: %v", err)
	}
	return mcp.NewToolResultText(formatHybrid(source, result)), nil
}

func formatExtractive(source string, result *summarizer.ExtractiveResult) string {
	var sb strings.Builder
	if source != "" {
		fmt.Fprintf(&sb, "Source: %s\n", source)
	}
	fmt.Fprintf(&sb, "Method: %s\nSentences: %d\n\n%s\n", result.Method, result.NumSentences, result.Summary)
	return sb.String()
}

func formatHybrid(source string, result *summarizer.HybridResult) string {
	var sb strings.Builder
	if source != "" {
		fmt.Fprintf(&sb, "Source: %s\n", source)
	}
	fmt.Fprintf(&sb, "Method: %s\nStrategy: %s\n", result.Method, result.Strategy)
	if result.Details != nil {
		fmt.Fprintf(&sb, "Novelty ratio: %.2f\n", result.Details.NoveltyRatio)
	}
	fmt.Fprintf(&sb, "\n%s\n", result.Summary)
	return sb.String()
}

func summarizeTextHandler(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	metrics.ToolRequests.WithLabelValues("summarize_text").Inc()

	text, ok := arguments["text"].(string)
	if !ok || strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("text must be a non-empty string"), nil
	}
	return runSummarize(context.Background(), "", text, optionsFromArguments(arguments))
}

func summarizeURLHandler(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	metrics.ToolRequests.WithLabelValues("summarize_url").Inc()

	url, ok := arguments["url"].(string)
	if !ok {
		return mcp.NewToolResultError("url must be a string"), nil
	}

	resp, err := services.DefaultHttpClient().Get(url)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch URL: %s", err)), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read response body: %s", err)), nil
	}

	// Markdown strips the markup while keeping the running text
	content, err := htmltomarkdown.ConvertString(string(body))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to convert HTML to Markdown: %v", err)), nil
	}

	return runSummarize(context.Background(), url, content, optionsFromArguments(arguments))
}

func summarizeFileHandler(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	metrics.ToolRequests.WithLabelValues("summarize_file").Inc()

	path, ok := arguments["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path must be a non-empty string"), nil
	}

	text, err := dataset.ReadDocument(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read document: %v", err)), nil
	}

	return runSummarize(context.Background(), path, text, optionsFromArguments(arguments))
}
