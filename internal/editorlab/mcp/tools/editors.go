// Пакет tools содержит MCP инструменты: список редакторов, экспорт и форматирование документов,
// таблицу сравнения.
package tools

import (
	"bytes"
	"context"
	"strings"

	"github.com/aisa-it/editorlab/internal/editorlab/apierrors"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/exporter"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/host"
	"github.com/aisa-it/editorlab/internal/editorlab/mcp/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var editorsTools = []Tool{
	{
		mcp.NewTool(
			"list_editors",
			mcp.WithDescription("Список поддерживаемых редакторов и форматов их снимков"),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
		),
		listEditors,
	},
	{
		mcp.NewTool(
			"export_document",
			mcp.WithDescription("Экспорт снимка редактора в HTML или Markdown"),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithString("editor",
				mcp.Required(),
				mcp.Description("Вид редактора: quill, slate, lexical или document"),
				mcp.Enum(string(host.KindQuill), string(host.KindSlate), string(host.KindLexical), string(host.KindDocument)),
			),
			mcp.WithString("snapshot",
				mcp.Required(),
				mcp.Description("Снимок редактора в его собственном JSON формате (Quill Delta, массив узлов Slate, состояние Lexical или канонический документ)"),
			),
			mcp.WithString("format",
				mcp.Description("Формат результата, по умолчанию html"),
				mcp.Enum("html", "markdown"),
			),
		),
		exportDocument,
	},
}

func GetEditorsTools(deps *Deps) []server.ServerTool {
	return serverTools(deps, editorsTools)
}

type editorInfo struct {
	Kind  host.Kind   `json:"kind"`
	Title string      `json:"title"`
	Route string      `json:"route,omitempty"`
	Links []host.Link `json:"links,omitempty"`
}

func listEditors(_ context.Context, deps *Deps, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var res []editorInfo
	for _, b := range deps.Registry.List() {
		res = append(res, editorInfo{Kind: b.Kind, Title: b.Title, Route: b.Route, Links: b.Links})
	}
	return mcp.NewToolResultJSON(map[string]any{"editors": res})
}

type exportResult struct {
	Format string `json:"format"`
	Result string `json:"result"`
	Raw    string `json:"raw,omitempty"`
	Blocks int    `json:"blocks"`
}

func exportDocument(_ context.Context, deps *Deps, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := request.RequireString("editor")
	if err != nil {
		return mcp.NewToolResultError("editor обязателен"), nil
	}
	snapshot, ok := rawJSON(request.GetArguments()["snapshot"])
	if !ok {
		return mcp.NewToolResultError("snapshot обязателен"), nil
	}
	format := request.GetString("format", "html")

	binding, err := deps.Registry.Get(host.Kind(kind))
	if err != nil {
		return logger.Error(apierrors.ErrUnknownEditor.WithFormattedMessage(kind),
			"Доступные редакторы: "+strings.Join(deps.Registry.Kinds(), ", ")), nil
	}
	doc, err := binding.Decode(bytes.NewReader(snapshot))
	if err != nil {
		return logger.Error(apierrors.ErrSnapshotInvalid.WithFormattedMessage(err.Error())), nil
	}

	res := exportResult{Format: format, Blocks: len(doc.Blocks)}
	switch format {
	case "html":
		res.Result = deps.Exporter.HTML(doc)
		res.Raw = exporter.DisplayText(res.Result)
	case "markdown":
		md, err := exporter.MarkdownString(doc)
		if err != nil {
			return logger.Error(err), nil
		}
		res.Result = md
	default:
		return logger.Error(apierrors.ErrUnsupportedFormat.WithFormattedMessage(format), "Поддерживаются html и markdown"), nil
	}
	return mcp.NewToolResultJSON(res)
}
