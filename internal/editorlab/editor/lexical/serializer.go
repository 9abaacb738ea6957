package lexical

import (
	"encoding/json"
	"strconv"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
)

// Serialize возвращает состояние Lexical, пригодное для editor.parseEditorState().
func Serialize(doc *edtypes.Document) ([]byte, error) {
	root := newElement("root")
	root.Children = make([]LexicalNode, 0)
	if doc != nil {
		for _, block := range doc.Blocks {
			if node, ok := serializeBlock(block); ok {
				root.Children = append(root.Children, node)
			}
		}
	}
	return json.Marshal(LexicalState{Root: root})
}

func serializeBlock(block edtypes.Block) (LexicalNode, bool) {
	switch b := block.(type) {
	case edtypes.Paragraph:
		node := newElement("paragraph")
		node.Children = serializeTexts(b.Content)
		return node, true
	case edtypes.Heading:
		node := newElement("heading")
		node.Tag = "h" + strconv.Itoa(b.HeadingLevel())
		node.Children = serializeTexts(b.Content)
		return node, true
	case edtypes.BulletedList:
		return serializeList("bullet", "ul", b.Items), true
	case edtypes.NumberedList:
		return serializeList("number", "ol", b.Items), true
	}
	return LexicalNode{}, false
}

func serializeList(listType, tag string, items []edtypes.ListItem) LexicalNode {
	node := newElement("list")
	node.ListType = listType
	node.Tag = tag
	node.Start = 1
	node.Children = make([]LexicalNode, 0, len(items))
	for i, item := range items {
		li := newElement("listitem")
		li.Value = i + 1
		li.Children = serializeTexts(item.Content)
		node.Children = append(node.Children, li)
	}
	return node
}

func serializeTexts(texts []edtypes.Text) []LexicalNode {
	res := make([]LexicalNode, 0, len(texts))
	for _, t := range texts {
		if t.Content == "" {
			continue
		}
		if t.Content == "\n" {
			res = append(res, LexicalNode{Type: "linebreak", Version: 1})
			continue
		}
		format := 0
		if t.Strong {
			format |= FormatBold
		}
		if t.Italic {
			format |= FormatItalic
		}
		if t.Underlined {
			format |= FormatUnderline
		}
		style := ""
		if t.Color != nil && *t.Color != "" {
			style = "color: " + string(*t.Color) + ";"
		}
		content := t.Content
		detail := 0
		res = append(res, LexicalNode{
			Type:    "text",
			Version: 1,
			Text:    &content,
			Detail:  &detail,
			Format:  format,
			Mode:    "normal",
			Style:   &style,
		})
	}
	return res
}

func newElement(typ string) LexicalNode {
	dir := "ltr"
	indent := 0
	return LexicalNode{
		Type:      typ,
		Version:   1,
		Direction: &dir,
		Format:    "",
		Indent:    &indent,
	}
}
