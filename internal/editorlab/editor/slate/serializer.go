package slate

import (
	"encoding/json"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
)

// Serialize возвращает снимок Slate (массив узлов) для начального значения редактора.
// Неизвестные блоки пропускаются.
func Serialize(doc *edtypes.Document) ([]byte, error) {
	nodes := make([]SlateNode, 0)
	if doc != nil {
		for _, block := range doc.Blocks {
			if node, ok := serializeBlock(block); ok {
				nodes = append(nodes, node)
			}
		}
	}
	return json.Marshal(nodes)
}

func serializeBlock(block edtypes.Block) (SlateNode, bool) {
	switch b := block.(type) {
	case edtypes.Paragraph:
		return SlateNode{Type: typeParagraph, Children: serializeLeaves(b.Content)}, true
	case edtypes.Heading:
		return SlateNode{Type: typeHeading, Level: b.Level, Children: serializeLeaves(b.Content)}, true
	case edtypes.BulletedList:
		return SlateNode{Type: typeBulletedList, Children: serializeItems(b.Items)}, true
	case edtypes.NumberedList:
		return SlateNode{Type: typeNumberedList, Children: serializeItems(b.Items)}, true
	}
	return SlateNode{}, false
}

func serializeItems(items []edtypes.ListItem) []SlateNode {
	res := make([]SlateNode, 0, len(items))
	for _, item := range items {
		res = append(res, SlateNode{Type: typeListItem, Children: serializeLeaves(item.Content)})
	}
	return res
}

// Slate требует хотя бы один лист в каждом элементе.
func serializeLeaves(texts []edtypes.Text) []SlateNode {
	if len(texts) == 0 {
		texts = []edtypes.Text{{}}
	}
	res := make([]SlateNode, 0, len(texts))
	for _, t := range texts {
		content := t.Content
		node := SlateNode{
			Text:      &content,
			Bold:      t.Strong,
			Italic:    t.Italic,
			Underline: t.Underlined,
		}
		if t.Color != nil {
			node.Color = string(*t.Color)
		}
		res = append(res, node)
	}
	return res
}
