// Пакет markdown разбирает CommonMark текст в модель документа с помощью goldmark.
// Поддерживаются абзацы, заголовки, списки и выделение; остальные блоки сохраняются как неизвестные.
package markdown

import (
	"io"
	"log/slog"
	"strings"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var md = goldmark.New()

func Parse(r io.Reader) (*edtypes.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(src), nil
}

func ParseBytes(src []byte) *edtypes.Document {
	root := md.Parser().Parse(text.NewReader(src))

	doc := &edtypes.Document{Blocks: make([]edtypes.Block, 0)}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		doc.Blocks = append(doc.Blocks, parseBlock(n, src))
	}
	return doc
}

func parseBlock(n ast.Node, src []byte) edtypes.Block {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return edtypes.Paragraph{Content: parseInline(node, src)}
	case *ast.Heading:
		return edtypes.Heading{Level: node.Level, Content: parseInline(node, src)}
	case *ast.List:
		items := parseItems(node, src)
		if node.IsOrdered() {
			return edtypes.NumberedList{Items: items}
		}
		return edtypes.BulletedList{Items: items}
	}
	slog.Debug("Skip unsupported markdown block", "kind", n.Kind().String())
	return edtypes.UnknownBlock{Type: n.Kind().String()}
}

// parseItems собирает пункты списка; пункты вложенных списков поднимаются на уровень родителя.
func parseItems(list *ast.List, src []byte) []edtypes.ListItem {
	items := make([]edtypes.ListItem, 0, list.ChildCount())
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		var content []edtypes.Text
		var nested []edtypes.ListItem
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				nested = append(nested, parseItems(sub, src)...)
				continue
			}
			if len(content) > 0 {
				content = append(content, edtypes.Text{Content: " "})
			}
			content = append(content, collect(c, src, edtypes.Text{})...)
		}
		if len(content) == 0 {
			content = []edtypes.Text{{}}
		}
		items = append(items, edtypes.ListItem{Content: content})
		items = append(items, nested...)
	}
	return items
}

func parseInline(n ast.Node, src []byte) []edtypes.Text {
	res := collect(n, src, edtypes.Text{})
	if len(res) == 0 {
		res = []edtypes.Text{{}}
	}
	return mergeAdjacent(res)
}

func collect(n ast.Node, src []byte, marks edtypes.Text) []edtypes.Text {
	var res []edtypes.Text
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			t := marks
			t.Content = string(util.UnescapePunctuations(node.Segment.Value(src)))
			if node.SoftLineBreak() {
				t.Content += " "
			}
			if node.HardLineBreak() {
				t.Content += "\n"
			}
			res = append(res, t)
		case *ast.String:
			t := marks
			t.Content = string(node.Value)
			res = append(res, t)
		case *ast.CodeSpan:
			t := marks
			t.Content = codeSpanText(node, src)
			res = append(res, t)
		case *ast.Emphasis:
			m := marks
			if node.Level >= 2 {
				m.Strong = true
			} else {
				m.Italic = true
			}
			res = append(res, collect(node, src, m)...)
		case *ast.RawHTML:
			// <u> and </u> toggle underline for the following siblings
			raw := strings.ToLower(rawHTML(node, src))
			switch raw {
			case "<u>":
				marks.Underlined = true
			case "</u>":
				marks.Underlined = false
			}
		default:
			res = append(res, collect(c, src, marks)...)
		}
	}
	return mergeAdjacent(res)
}

func codeSpanText(n *ast.CodeSpan, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
		}
	}
	return sb.String()
}

func rawHTML(n *ast.RawHTML, src []byte) string {
	var sb strings.Builder
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}

// mergeAdjacent склеивает соседние фрагменты с одинаковыми отметками: goldmark дробит текст на
// экранированных символах.
func mergeAdjacent(texts []edtypes.Text) []edtypes.Text {
	if len(texts) < 2 {
		return texts
	}
	res := texts[:1]
	for _, t := range texts[1:] {
		last := &res[len(res)-1]
		if sameMarks(*last, t) {
			last.Content += t.Content
			continue
		}
		res = append(res, t)
	}
	return res
}

func sameMarks(a, b edtypes.Text) bool {
	if a.Strong != b.Strong || a.Italic != b.Italic || a.Underlined != b.Underlined {
		return false
	}
	if a.Color == nil || b.Color == nil {
		return a.Color == nil && b.Color == nil
	}
	return *a.Color == *b.Color
}
