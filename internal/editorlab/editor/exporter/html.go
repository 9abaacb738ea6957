// Преобразование документа в HTML.
//
// Порядок вложенности отметок фиксирован: <strong> внутри, затем <em>, <u> и снаружи
// <span style="color: X">. Текст по умолчанию не экранируется, все заголовки выводятся как <h2>.
package exporter

import (
	"html"
	"strconv"
	"strings"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
)

// EmptyPlaceholder показывается вместо пустого результата экспорта.
const EmptyPlaceholder = "<empty>"

type Option func(*Exporter)

// WithEscaping включает экранирование текста фрагментов и значений цвета.
func WithEscaping() Option {
	return func(e *Exporter) { e.escape = true }
}

// WithHeadingLevels выводит заголовки с их собственным уровнем (<h1>..<h6>) вместо <h2>.
func WithHeadingLevels() Option {
	return func(e *Exporter) { e.headingLevels = true }
}

type Exporter struct {
	escape        bool
	headingLevels bool
}

func New(opts ...Option) *Exporter {
	e := &Exporter{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExporter = New()

// HTML сериализует документ настройками по умолчанию.
func HTML(doc *edtypes.Document) string {
	return defaultExporter.HTML(doc)
}

// DisplayText возвращает EmptyPlaceholder для пустого результата экспорта.
func DisplayText(s string) string {
	if s == "" {
		return EmptyPlaceholder
	}
	return s
}

func (e *Exporter) HTML(doc *edtypes.Document) string {
	if doc == nil {
		return ""
	}
	var sb strings.Builder
	for _, block := range doc.Blocks {
		e.writeBlock(&sb, block)
	}
	return sb.String()
}

func (e *Exporter) writeBlock(sb *strings.Builder, block edtypes.Block) {
	switch b := block.(type) {
	case edtypes.Paragraph:
		sb.WriteString("<p>")
		e.writeTexts(sb, b.Content)
		sb.WriteString("</p>")
	case edtypes.Heading:
		tag := "h2"
		if e.headingLevels {
			tag = "h" + strconv.Itoa(b.HeadingLevel())
		}
		sb.WriteString("<" + tag + ">")
		e.writeTexts(sb, b.Content)
		sb.WriteString("</" + tag + ">")
	case edtypes.BulletedList:
		e.writeList(sb, "ul", b.Items)
	case edtypes.NumberedList:
		e.writeList(sb, "ol", b.Items)
	default:
		// unknown blocks contribute nothing
	}
}

func (e *Exporter) writeList(sb *strings.Builder, tag string, items []edtypes.ListItem) {
	sb.WriteString("<" + tag + ">")
	for _, item := range items {
		sb.WriteString("<li>")
		e.writeTexts(sb, item.Content)
		sb.WriteString("</li>")
	}
	sb.WriteString("</" + tag + ">")
}

func (e *Exporter) writeTexts(sb *strings.Builder, texts []edtypes.Text) {
	for _, t := range texts {
		sb.WriteString(e.Leaf(t))
	}
}

// Leaf возвращает HTML одного текстового фрагмента с обертками отметок.
func (e *Exporter) Leaf(t edtypes.Text) string {
	s := t.Content
	if e.escape {
		s = html.EscapeString(s)
	}
	if t.Strong {
		s = "<strong>" + s + "</strong>"
	}
	if t.Italic {
		s = "<em>" + s + "</em>"
	}
	if t.Underlined {
		s = "<u>" + s + "</u>"
	}
	if t.Color != nil && *t.Color != "" {
		c := string(*t.Color)
		if e.escape {
			c = html.EscapeString(c)
		}
		s = `<span style="color: ` + c + `">` + s + "</span>"
	}
	return s
}
