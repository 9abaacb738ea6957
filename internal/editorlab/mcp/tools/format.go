package tools

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aisa-it/editorlab/internal/editorlab/apierrors"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/host"
	"github.com/aisa-it/editorlab/internal/editorlab/mcp/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

const (
	actionSelect       = "select"
	actionSetMark      = "set_mark"
	actionSetBlockType = "set_block_type"
)

var formatTools = []Tool{
	{
		mcp.NewTool(
			"format_document",
			mcp.WithDescription(`Применение операций панели инструментов к каноническому документу.
Операции выполняются по порядку: select выбирает блок (block), пункт списка (item) и фрагмент (leaf),
set_mark переключает отметку name (bold, italic, underline, color) со значением value,
set_block_type меняет тип выделенного блока на name (paragraph, heading, heading-N, bulleted-list, numbered-list).
Без select выделен первый блок целиком.`),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithObject("document",
				mcp.Required(),
				mcp.Description(`Канонический документ {"blocks":[{"type":"paragraph","children":[{"text":"..."}]}]}`),
			),
			mcp.WithArray("operations",
				mcp.Required(),
				mcp.Description("Список операций"),
				mcp.Items(map[string]any{
					"type": "object",
					"properties": map[string]any{
						"action": map[string]any{"type": "string", "enum": []string{actionSelect, actionSetMark, actionSetBlockType}},
						"block":  map[string]any{"type": "integer", "description": "Индекс блока"},
						"item":   map[string]any{"type": "integer", "description": "Индекс пункта списка, без него выделен весь блок"},
						"leaf":   map[string]any{"type": "integer", "description": "Индекс фрагмента, без него выделены все фрагменты"},
						"name":   map[string]any{"type": "string", "description": "Отметка или тип блока"},
						"value":  map[string]any{"description": "true/false для отметок, строка цвета для color"},
					},
					"required": []string{"action"},
				}),
			),
		),
		formatDocument,
	},
}

func GetFormatTools(deps *Deps) []server.ServerTool {
	return serverTools(deps, formatTools)
}

// Operation - один шаг format_document.
type Operation struct {
	Action string `mapstructure:"action"`
	Block  int    `mapstructure:"block"`
	Item   *int   `mapstructure:"item"`
	Leaf   *int   `mapstructure:"leaf"`
	Name   string `mapstructure:"name"`
	Value  any    `mapstructure:"value"`
}

func (op Operation) selection() host.Selection {
	sel := host.BlockSelection(op.Block)
	if op.Item != nil {
		sel.Item = *op.Item
	}
	if op.Leaf != nil {
		sel.Leaf = *op.Leaf
	}
	return sel
}

// DecodeOperations разбирает аргумент operations. Неизвестные ключи считаются ошибкой.
func DecodeOperations(raw any) ([]Operation, error) {
	var ops []Operation
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &ops,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}
	return ops, nil
}

// ApplyOperations выполняет операции над редактором по порядку и останавливается на первой ошибке.
func ApplyOperations(m *host.Memory, ops []Operation) error {
	for i, op := range ops {
		var err error
		switch op.Action {
		case actionSelect:
			err = m.Select(op.selection())
		case actionSetMark:
			err = m.SetMark(op.Name, op.Value)
		case actionSetBlockType:
			err = m.SetBlockType(op.Name)
		default:
			err = fmt.Errorf("unknown action %q", op.Action)
		}
		if err != nil {
			return fmt.Errorf("operation %d (%s): %w", i, op.Action, err)
		}
	}
	return nil
}

type formatResult struct {
	Document *edtypes.Document `json:"document"`
	HTML     string            `json:"html"`
}

func formatDocument(_ context.Context, deps *Deps, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	raw, ok := rawJSON(args["document"])
	if !ok {
		return mcp.NewToolResultError("document обязателен"), nil
	}
	doc, err := deps.Registry.Decode(host.KindDocument, bytes.NewReader(raw))
	if err != nil {
		return logger.Error(apierrors.ErrSnapshotInvalid.WithFormattedMessage(err.Error())), nil
	}

	if args["operations"] == nil {
		return mcp.NewToolResultError("operations обязателен"), nil
	}
	ops, err := DecodeOperations(args["operations"])
	if err != nil {
		return logger.Error(apierrors.ErrValidation.WithFormattedMessage(err.Error())), nil
	}

	m := host.NewMemory(doc)
	if err := ApplyOperations(m, ops); err != nil {
		return logger.Error(apierrors.ErrEditorOperation.WithFormattedMessage(err.Error()),
			"Индексы блоков, пунктов и фрагментов считаются с нуля"), nil
	}

	res := m.Snapshot()
	return mcp.NewToolResultJSON(formatResult{Document: res, HTML: deps.Exporter.HTML(res)})
}
