package util

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// LegacyToolHandlerFunc is the map-arguments handler form used before
// handlers took a context and request.
type LegacyToolHandlerFunc func(arguments map[string]interface{}) (*mcp.CallToolResult, error)

// ErrorGuard wraps a tool handler, request-based or map-based, so panics and
// returned errors surface as tool error results instead of killing the
// server.
func ErrorGuard(handler interface{}) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		defer func() {
			if r := recover(); r != nil {
				result = mcp.NewToolResultError(fmt.Sprintf("panic in tool handler: %v\n%s", r, debug.Stack()))
				err = nil
			}
		}()

		switch h := handler.(type) {
		case server.ToolHandlerFunc:
			result, err = h(ctx, request)
		case func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error):
			result, err = h(ctx, request)
		case LegacyToolHandlerFunc:
			result, err = h(request.Params.Arguments)
		case func(arguments map[string]interface{}) (*mcp.CallToolResult, error):
			result, err = h(request.Params.Arguments)
		default:
			return mcp.NewToolResultError(fmt.Sprintf("unsupported tool handler type %T", handler)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return result, nil
	}
}

// AdaptLegacyHandler converts a map-arguments handler to the request form.
func AdaptLegacyHandler(handler LegacyToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handler(request.Params.Arguments)
	}
}
