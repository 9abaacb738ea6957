package slate

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
)

// Parse читает снимок Slate: массив узлов верхнего уровня или объект с полем children.
func Parse(r io.Reader) (*edtypes.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data)
}

func ParseBytes(data []byte) (*edtypes.Document, error) {
	var nodes []SlateNode
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var root SlateNode
		if err := json.Unmarshal(trimmed, &root); err != nil {
			return nil, err
		}
		nodes = root.Children
	} else if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, err
	}

	doc := &edtypes.Document{Blocks: make([]edtypes.Block, 0, len(nodes))}
	for _, node := range nodes {
		doc.Blocks = append(doc.Blocks, parseNode(node))
	}
	return doc, nil
}

// parseNode переводит элемент верхнего уровня в блок документа.
func parseNode(node SlateNode) edtypes.Block {
	if node.IsLeaf() {
		return edtypes.Paragraph{Content: []edtypes.Text{parseLeaf(node)}}
	}

	switch node.Type {
	case typeParagraph:
		return edtypes.Paragraph{Content: parseLeaves(node.Children)}
	case typeHeading:
		return edtypes.Heading{Level: node.Level, Content: parseLeaves(node.Children)}
	case typeBulletedList:
		return edtypes.BulletedList{Items: parseItems(node.Children)}
	case typeNumberedList:
		return edtypes.NumberedList{Items: parseItems(node.Children)}
	}

	if level, ok := headingAliases[node.Type]; ok {
		return edtypes.Heading{Level: level, Content: parseLeaves(node.Children)}
	}

	// list-item вне списка не выводится, как и любой неизвестный блок

	slog.Warn("Unknown slate node type", "type", node.Type)
	return edtypes.UnknownBlock{Type: node.Type}
}

// parseItems собирает пункты списка. В список попадают только дети list-item: листы, лежащие прямо
// в списке (так их оставляет смена типа блока без обертки), пропускаются.
func parseItems(children []SlateNode) []edtypes.ListItem {
	items := make([]edtypes.ListItem, 0, len(children))
	for _, child := range children {
		if child.IsLeaf() || child.Type != typeListItem {
			slog.Warn("Skip non list-item node inside list", "type", child.Type)
			continue
		}
		items = append(items, edtypes.ListItem{Content: parseLeaves(child.Children)})
	}
	return items
}

// parseLeaves собирает листы, раскрывая вложенные inline-элементы (например, ссылки).
func parseLeaves(children []SlateNode) []edtypes.Text {
	res := make([]edtypes.Text, 0, len(children))
	var walk func(nodes []SlateNode)
	walk = func(nodes []SlateNode) {
		for _, n := range nodes {
			if n.IsLeaf() {
				res = append(res, parseLeaf(n))
				continue
			}
			walk(n.Children)
		}
	}
	walk(children)

	if len(res) == 0 {
		res = append(res, edtypes.Text{})
	}
	return res
}

func parseLeaf(n SlateNode) edtypes.Text {
	return edtypes.Text{
		Content:    *n.Text,
		Strong:     n.Bold,
		Italic:     n.Italic,
		Underlined: n.Underline,
		Color:      edtypes.NewColor(n.Color),
	}
}
