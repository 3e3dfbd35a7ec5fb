package tools

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tidwall/gjson"

	"github.com/hybridsum/hybridsum/pkg/summarizer"
	"github.com/hybridsum/hybridsum/pkg/summarizer/embedding"
	"github.com/hybridsum/hybridsum/pkg/summarizer/evaluation"
	"github.com/hybridsum/hybridsum/pkg/summarizer/metrics"
	"github.com/hybridsum/hybridsum/services"
	"github.com/hybridsum/hybridsum/util"
)

func RegisterEvaluateTool(s *server.MCPServer) {
	tool := mcp.NewTool("evaluate_summaries",
		mcp.WithDescription("Scores predicted summaries against reference summaries with ROUGE, BLEU and embedding metrics, reporting per-metric statistics over the whole set."),
		mcp.WithString("predictions", mcp.Required(), mcp.Description("JSON array of predicted summaries")),
		mcp.WithString("references", mcp.Required(), mcp.Description("JSON array of reference summaries, same length and order as predictions")),
		mcp.WithString("metrics", mcp.Description("Metrics to compute, as a JSON array or comma-separated list (default: rouge-1, rouge-2, rouge-l, bleu, plus embedding when OPENAI_API_KEY is set)")),
		mcp.WithNumber("batch_size", mcp.Description("Samples scored per batch (default 32)")),
	)

	s.AddTool(tool, util.ErrorGuard(util.AdaptLegacyHandler(evaluateHandler)))
}

// maybeEmbedder returns an OpenAI embedder when credentials are present, nil
// otherwise so the evaluator stays lexical-only.
func maybeEmbedder() summarizer.Embedder {
	if os.Getenv("OPENAI_API_KEY") == "" {
		return nil
	}
	return embedding.NewOpenAIEmbedder(services.DefaultOpenAIClient(), services.DefaultEmbeddingModel())
}

func parseStringArray(raw string) ([]string, error) {
	parsed := gjson.Parse(raw)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("expected a JSON array, got: %.40s", raw)
	}
	var out []string
	for _, item := range parsed.Array() {
		out = append(out, item.String())
	}
	return out, nil
}

func parseMetricsArgument(raw string) []string {
	if raw == "" {
		return nil
	}
	if parsed := gjson.Parse(raw); parsed.IsArray() {
		var out []string
		for _, item := range parsed.Array() {
			out = append(out, item.String())
		}
		return out
	}
	var out []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func evaluateHandler(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	metrics.ToolRequests.WithLabelValues("evaluate_summaries").Inc()

	predJSON, ok := arguments["predictions"].(string)
	if !ok {
		return mcp.NewToolResultError("predictions must be a string containing a JSON array"), nil
	}
	refJSON, ok := arguments["references"].(string)
	if !ok {
		return mcp.NewToolResultError("references must be a string containing a JSON array"), nil
	}

	predictions, err := parseStringArray(predJSON)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid predictions: %v", err)), nil
	}
	references, err := parseStringArray(refJSON)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid references: %v", err)), nil
	}

	var requested []string
	if raw, ok := arguments["metrics"].(string); ok {
		requested = parseMetricsArgument(raw)
	}

	cfg := evaluation.Config{}
	if v, ok := arguments["batch_size"].(float64); ok && v > 0 {
		cfg.BatchSize = int(v)
	}

	evaluator := evaluation.NewEvaluator(maybeEmbedder(), cfg)
	results, err := evaluator.EvaluateBatch(context.Background(), predictions, references, requested)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %v", err)
	}

	return mcp.NewToolResultText(formatBatchResults(results)), nil
}

func formatBatchResults(results *evaluation.BatchResults) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Evaluation run %s: %d samples in %d batches\n\n",
		results.Metadata.RunID, results.Metadata.NumSamples, results.Metadata.NumBatches)
	for _, name := range evaluation.AvailableMetrics() {
		stats, ok := results.Metrics[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%-10s mean %.4f  std %.4f  min %.4f  max %.4f\n",
			name, stats.Mean, stats.Std, stats.Min, stats.Max)
	}
	fmt.Fprintf(&sb, "\nOverall score: %.4f\n", results.Overall)
	return sb.String()
}
