package lexical

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
)

// Parse читает состояние Lexical. Допускается как объект {"root": ...}, так и строка с этим JSON,
// в которой его отдает editorState.toJSON() после JSON.stringify.
func Parse(r io.Reader) (*edtypes.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data)
}

func ParseBytes(data []byte) (*edtypes.Document, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil, err
		}
		data = []byte(inner)
	}

	var state LexicalState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.Root.Type != "" && state.Root.Type != "root" {
		return nil, fmt.Errorf("lexical: unexpected root node type %q", state.Root.Type)
	}

	doc := &edtypes.Document{Blocks: make([]edtypes.Block, 0, len(state.Root.Children))}
	for _, node := range state.Root.Children {
		doc.Blocks = append(doc.Blocks, parseNode(node))
	}
	return doc, nil
}

func parseNode(node LexicalNode) edtypes.Block {
	switch node.Type {
	case "paragraph":
		return edtypes.Paragraph{Content: parseInline(node.Children)}
	case "heading":
		level, _ := strconv.Atoi(strings.TrimPrefix(node.Tag, "h"))
		return edtypes.Heading{Level: level, Content: parseInline(node.Children)}
	case "list":
		items := parseItems(node.Children)
		if node.ListType == "number" {
			return edtypes.NumberedList{Items: items}
		}
		return edtypes.BulletedList{Items: items}
	default:
		slog.Warn("Unknown lexical node type", "type", node.Type)
		return edtypes.UnknownBlock{Type: node.Type}
	}
}

// parseItems собирает пункты списка. Вложенные списки Lexical хранит в отдельном listitem, их пункты
// поднимаются на уровень родительского списка.
func parseItems(children []LexicalNode) []edtypes.ListItem {
	items := make([]edtypes.ListItem, 0, len(children))
	for _, child := range children {
		if child.Type != "listitem" {
			slog.Warn("Skip non listitem node inside list", "type", child.Type)
			continue
		}
		nested := false
		for _, c := range child.Children {
			if c.Type == "list" {
				nested = true
				items = append(items, parseItems(c.Children)...)
			}
		}
		if nested {
			continue
		}
		items = append(items, edtypes.ListItem{Content: parseInline(child.Children)})
	}
	return items
}

func parseInline(children []LexicalNode) []edtypes.Text {
	res := make([]edtypes.Text, 0, len(children))
	var walk func(nodes []LexicalNode)
	walk = func(nodes []LexicalNode) {
		for _, n := range nodes {
			switch n.Type {
			case "text":
				res = append(res, parseText(n))
			case "linebreak":
				res = append(res, edtypes.Text{Content: "\n"})
			case "tab":
				res = append(res, edtypes.Text{Content: "\t"})
			case "link", "autolink", "mark":
				walk(n.Children)
			default:
				slog.Warn("Skip unknown lexical inline node", "type", n.Type)
			}
		}
	}
	walk(children)

	if len(res) == 0 {
		res = append(res, edtypes.Text{})
	}
	return res
}

func parseText(n LexicalNode) edtypes.Text {
	t := edtypes.Text{}
	if n.Text != nil {
		t.Content = *n.Text
	}
	format := formatBits(n.Format)
	t.Strong = format&FormatBold != 0
	t.Italic = format&FormatItalic != 0
	t.Underlined = format&FormatUnderline != 0
	if n.Style != nil {
		t.Color = edtypes.NewColor(styleValue(*n.Style, "color"))
	}
	return t
}

// formatBits возвращает битовую маску текста. У элементов format - строка выравнивания.
func formatBits(v any) int {
	if f, ok := v.(float64); ok {
		return int(f)
	}
	return 0
}

// styleValue достает значение свойства из inline css вида "color: #ff0000; font-size: 15px".
func styleValue(style, key string) string {
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(k), key) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
