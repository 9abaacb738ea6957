package logger

import (
	"errors"
	"log/slog"

	"github.com/aisa-it/editorlab/internal/editorlab/apierrors"
	stack_error "github.com/aisa-it/editorlab/internal/editorlab/stack-error"
	"github.com/mark3labs/mcp-go/mcp"
)

// Error превращает ошибку в результат инструмента. Ошибки каталога отдаются модели как есть,
// остальные логируются и скрываются за "internal error".
func Error(err error, hints ...string) *mcp.CallToolResult {
	var customErr apierrors.DefinedError
	if errors.As(err, &customErr) {
		return customErr.MCPError(hints...)
	}
	slog.Error("MCP internal error", "caller", stack_error.Caller(1), "err", err)
	return mcp.NewToolResultError("internal error")
}
