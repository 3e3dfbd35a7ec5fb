package tools

import (
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hybridsum/hybridsum/pkg/summarizer/evaluation"
	"github.com/hybridsum/hybridsum/pkg/summarizer/extractive"
	"github.com/hybridsum/hybridsum/pkg/summarizer/hybrid"
	"github.com/hybridsum/hybridsum/pkg/summarizer/metrics"
	"github.com/hybridsum/hybridsum/util"
)

func RegisterInfoTool(s *server.MCPServer) {
	tool := mcp.NewTool("summarizer_info",
		mcp.WithDescription("Lists the available summarization methods, hybrid combination strategies, evaluation metrics and the configured generation provider."),
	)

	s.AddTool(tool, util.ErrorGuard(infoHandler))
}

func infoHandler(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	metrics.ToolRequests.WithLabelValues("summarizer_info").Inc()

	var sb strings.Builder

	sb.WriteString("Summarization methods:\n")
	methods := []struct {
		name string
		desc string
	}{
		{extractive.MethodTextRank, "graph ranking over token-overlap similarity"},
		{extractive.MethodLexRank, "power iteration over thresholded cosine similarity"},
		{extractive.MethodEmbedding, "dense-vector centrality with optional MMR selection"},
		{hybrid.MethodHybrid, "extractive pass combined with abstractive rewriting"},
	}
	for _, m := range methods {
		fmt.Fprintf(&sb, "- %s: %s\n", m.name, m.desc)
	}

	sb.WriteString("\nHybrid combination strategies:\n")
	for _, s := range []string{hybrid.StrategyWeighted, hybrid.StrategyPipeline, hybrid.StrategyEnsemble} {
		fmt.Fprintf(&sb, "- %s\n", s)
	}

	sb.WriteString("\nEvaluation metrics:\n")
	for _, m := range evaluation.AvailableMetrics() {
		fmt.Fprintf(&sb, "- %s\n", m)
	}

	provider := os.Getenv("GENERATION_PROVIDER")
	if provider == "" {
		provider = "openai"
	}
	model := os.Getenv("SUMMARIZER_MODEL")
	if model == "" {
		model = "(provider default)"
	}
	fmt.Fprintf(&sb, "\nGeneration provider: %s\nGeneration model: %s\n", provider, model)

	if os.Getenv("OPENAI_API_KEY") != "" {
		sb.WriteString("Embeddings: enabled\n")
	} else {
		sb.WriteString("Embeddings: disabled (OPENAI_API_KEY not set)\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}
