package util

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func requestWithArguments(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return text.Text
}

func TestErrorGuardPassesThroughResult(t *testing.T) {
	guarded := ErrorGuard(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	})

	result, err := guarded(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resultText(t, result); got != "ok" {
		t.Errorf("result text = %q, want ok", got)
	}
}

func TestErrorGuardConvertsError(t *testing.T) {
	guarded := ErrorGuard(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, errors.New("backend unavailable")
	})

	result, err := guarded(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("error should be converted, got: %v", err)
	}
	if !strings.Contains(resultText(t, result), "backend unavailable") {
		t.Error("error message not carried into tool result")
	}
}

func TestErrorGuardRecoversPanic(t *testing.T) {
	guarded := ErrorGuard(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		panic("boom")
	})

	result, err := guarded(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("panic should be converted, got error: %v", err)
	}
	if !strings.Contains(resultText(t, result), "boom") {
		t.Error("panic message not carried into tool result")
	}
}

func TestErrorGuardLegacyHandler(t *testing.T) {
	guarded := ErrorGuard(func(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
		name, _ := arguments["name"].(string)
		return mcp.NewToolResultText("hello " + name), nil
	})

	request := requestWithArguments(map[string]interface{}{"name": "world"})
	result, err := guarded(context.Background(), request)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resultText(t, result); got != "hello world" {
		t.Errorf("result text = %q", got)
	}
}

func TestErrorGuardRejectsUnknownHandlerType(t *testing.T) {
	guarded := ErrorGuard(42)

	result, err := guarded(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resultText(t, result), "unsupported tool handler") {
		t.Error("expected unsupported handler message")
	}
}

func TestAdaptLegacyHandler(t *testing.T) {
	adapted := AdaptLegacyHandler(func(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
		value, _ := arguments["key"].(string)
		return mcp.NewToolResultText(value), nil
	})

	request := requestWithArguments(map[string]interface{}{"key": "value"})
	result, err := adapted(context.Background(), request)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resultText(t, result); got != "value" {
		t.Errorf("result text = %q, want value", got)
	}
}
