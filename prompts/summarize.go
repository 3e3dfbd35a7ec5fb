package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// SummarySystemPrompt frames the generation model as a summarizer. Kept
// deliberately terse so it works across OpenAI-compatible providers.
const SummarySystemPrompt = "You are an expert text summarizer. " +
	"Write concise, faithful summaries that preserve the key facts of the source text. " +
	"Do not add information that is not in the source. Respond with the summary only."

// SummarizePrompt renders the user prompt for one summarization request.
// Bounds are expressed in words since chat models have no token-level length
// control.
func SummarizePrompt(text string, maxWords, minWords int) string {
	return fmt.Sprintf("Summarize the following text in %d to %d words:\n\n%s", minWords, maxWords, text)
}

func RegisterSummarizePrompts(s *server.MCPServer) {
	tool := mcp.NewPrompt("summarize",
		mcp.WithPromptDescription("Summarize a block of text"),
		mcp.WithArgument("text", mcp.ArgumentDescription("The text to summarize")),
	)
	s.AddPrompt(tool, summarizeHandler)
}

func summarizeHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	text := request.Params.Arguments["text"]

	return &mcp.GetPromptResult{
		Description: "Summarize the provided text",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: SummarizePrompt(text, 150, 30),
				},
			},
		},
	}, nil
}
