package exporter

import (
	"bytes"
	"io"
	"strings"
	"unicode"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
	md "github.com/nao1215/markdown"
)

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
)

// Markdown записывает документ в формате CommonMark. Подчеркивание выводится тегом <u>, цвет не
// переносится. Заголовки сохраняют свой уровень.
func Markdown(w io.Writer, doc *edtypes.Document) error {
	if doc == nil {
		return nil
	}
	m := md.NewMarkdown(w)
	for i, block := range doc.Blocks {
		if i > 0 {
			m.PlainText("")
		}
		switch b := block.(type) {
		case edtypes.Paragraph:
			m.PlainText(markdownLine(b.Content))
		case edtypes.Heading:
			text := markdownLine(b.Content)
			switch b.HeadingLevel() {
			case 1:
				m.H1(text)
			case 2:
				m.H2(text)
			case 3:
				m.H3(text)
			case 4:
				m.H4(text)
			case 5:
				m.H5(text)
			default:
				m.H6(text)
			}
		case edtypes.BulletedList:
			m.BulletList(markdownItems(b.Items)...)
		case edtypes.NumberedList:
			m.OrderedList(markdownItems(b.Items)...)
		}
	}
	return m.Build()
}

// MarkdownString - вариант Markdown, возвращающий строку.
func MarkdownString(doc *edtypes.Document) (string, error) {
	var buf bytes.Buffer
	if err := Markdown(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func markdownItems(items []edtypes.ListItem) []string {
	res := make([]string, 0, len(items))
	for _, item := range items {
		res = append(res, markdownLine(item.Content))
	}
	return res
}

func markdownLine(texts []edtypes.Text) string {
	var sb strings.Builder
	for _, t := range texts {
		sb.WriteString(markdownLeaf(t))
	}
	return strings.ReplaceAll(sb.String(), "\n", " ")
}

// Emphasis markers must hug the text, so surrounding spaces stay outside the wrappers.
func markdownLeaf(t edtypes.Text) string {
	core := strings.TrimFunc(t.Content, unicode.IsSpace)
	if core == "" {
		return t.Content
	}
	start := strings.Index(t.Content, core)
	lead, trail := t.Content[:start], t.Content[start+len(core):]

	s := mdEscaper.Replace(core)
	if t.Strong {
		s = md.Bold(s)
	}
	if t.Italic {
		s = md.Italic(s)
	}
	if t.Underlined {
		s = "<u>" + s + "</u>"
	}
	return lead + s + trail
}
