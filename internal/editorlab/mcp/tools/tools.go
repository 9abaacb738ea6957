package tools

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aisa-it/editorlab/internal/editorlab/comparison"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/exporter"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/host"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Deps - общие зависимости инструментов.
type Deps struct {
	Registry *host.Registry
	Exporter *exporter.Exporter
	Table    *comparison.Table
}

// ToolHandler определяет сигнатуру функции-обработчика MCP инструмента.
type ToolHandler func(ctx context.Context, deps *Deps, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// Tool представляет MCP инструмент с его обработчиком.
type Tool struct {
	Tool    mcp.Tool
	Handler ToolHandler
}

// WrapTool подставляет зависимости в обработчик.
func WrapTool(deps *Deps, handler ToolHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if deps == nil || deps.Registry == nil {
			return nil, errors.New("tool dependencies not provided")
		}
		return handler(ctx, deps, request)
	}
}

func serverTools(deps *Deps, tools []Tool) []server.ServerTool {
	var result []server.ServerTool
	for _, t := range tools {
		result = append(result, server.ServerTool{
			Tool:    t.Tool,
			Handler: WrapTool(deps, t.Handler),
		})
	}
	return result
}

// rawJSON принимает аргумент-JSON как строку или как уже разобранный объект.
func rawJSON(v any) ([]byte, bool) {
	switch v := v.(type) {
	case nil:
		return nil, false
	case string:
		return []byte(v), v != ""
	case json.RawMessage:
		return v, len(v) > 0
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	return data, true
}
