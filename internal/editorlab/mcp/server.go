package mcp

import (
	"context"
	"log/slog"

	"github.com/aisa-it/editorlab/internal/editorlab/mcp/tools"
	"github.com/labstack/echo/v4"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// mcpInstructions содержит описание MCP сервера для LLM-моделей.
const mcpInstructions = `MCP сервер лаборатории редакторов форматированного текста

## Модель документа
Канонический документ - список блоков:
- paragraph и heading (level 1..6) содержат children - фрагменты текста
- bulleted-list и numbered-list содержат items, у каждого пункта свои children
Фрагмент: {"text": "...", "bold": true, "italic": true, "underline": true, "color": "#ff0000"}

## Снимки редакторов
- quill - Quill Delta {"ops":[...]}
- slate - массив элементов Slate
- lexical - состояние редактора {"root":{"children":[...]}}
- document - канонический документ

## HTML экспорт
Отметки вкладываются в порядке color > u > em > strong, заголовки по умолчанию выводятся как h2.
`

// NewMCPServer создаёт MCP сервер поверх общих зависимостей сервиса.
func NewMCPServer(deps *tools.Deps, version string) echo.HandlerFunc {
	hooks := &server.Hooks{}
	hooks.AddOnError(ErrorLoggerHook)

	srv := server.NewMCPServer(
		"editorlab-mcp",
		version,
		server.WithInstructions(mcpInstructions),
		server.WithHooks(hooks),
	)
	srv.AddTools(tools.GetEditorsTools(deps)...)
	srv.AddTools(tools.GetFormatTools(deps)...)
	srv.AddTools(tools.GetComparisonTools(deps)...)

	httpServer := server.NewStreamableHTTPServer(srv, server.WithStateLess(true))
	return func(c echo.Context) error {
		httpServer.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}

func ErrorLoggerHook(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
	slog.Error("MCP Error", "id", id, "method", method, "message", message, "err", err)
}
