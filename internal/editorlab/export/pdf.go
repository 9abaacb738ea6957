// Пакет для экспорта документа редактора в PDF формат.
//
// Основные возможности:
//   - Абзацы, заголовки и списки документа.
//   - Стилизация текста (жирный, курсив, подчеркнутый) и цвет фрагментов.
//   - Встроенные шрифты PDF, текст переводится в кодировку cp1252.
package export

import (
	"fmt"
	"io"
	"log/slog"

	"codeberg.org/go-pdf/fpdf"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
)

const (
	fontFamily   = "Helvetica"
	textSize     = 12.0
	listIndent   = 8.0
	markerOffset = 5.0
)

var headingSizes = map[int]float64{1: 24, 2: 20, 3: 16, 4: 14, 5: 13, 6: 12}

type PDFOption func(*pdfWriter)

// WithTitle задает заголовок документа в метаданных PDF.
func WithTitle(title string) PDFOption {
	return func(w *pdfWriter) { w.title = title }
}

func withoutCompression() PDFOption {
	return func(w *pdfWriter) { w.compress = false }
}

type pdfWriter struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	title    string
	compress bool

	defaultMargins Margins
}

type Margins struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (m *Margins) GetMargins(pdf fpdf.Pdf) {
	m.Left, m.Top, m.Right, m.Bottom = pdf.GetMargins()
}

// DocumentToFPDF записывает документ в out в формате PDF.
func DocumentToFPDF(doc *edtypes.Document, out io.Writer, opts ...PDFOption) error {
	pdf := fpdf.New("P", "mm", "A4", "") // 210*297 mm

	w := pdfWriter{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		compress: true,
	}
	for _, opt := range opts {
		opt(&w)
	}

	pdf.SetCompression(w.compress)
	if w.title != "" {
		pdf.SetTitle(w.title, true)
	}
	pdf.SetCreator("editorlab", true)
	w.defaultMargins.GetMargins(w.pdf)

	pdf.AddPage()
	if doc != nil {
		w.writeDocument(doc)
	}

	return pdf.Output(out)
}

func (w *pdfWriter) writeDocument(doc *edtypes.Document) {
	for _, block := range doc.Blocks {
		switch b := block.(type) {
		case edtypes.Paragraph:
			w.writeTexts(b.Content, textSize, false)
			w.pdf.Ln(-1)
		case edtypes.Heading:
			w.pdf.Ln(2)
			w.writeTexts(b.Content, headingSizes[b.HeadingLevel()], true)
			w.pdf.Ln(-1)
			w.pdf.Ln(2)
		case edtypes.BulletedList:
			w.writeList(b.Items, false)
		case edtypes.NumberedList:
			w.writeList(b.Items, true)
		default:
			slog.Debug("Skip unsupported block in pdf", "type", block)
		}
		w.resetMargins()
	}
}

func (w *pdfWriter) writeList(items []edtypes.ListItem, numbered bool) {
	left := w.defaultMargins.Left + listIndent
	for i, item := range items {
		w.pdf.SetX(left)
		w.pdf.SetFont(fontFamily, "", textSize)
		w.pdf.SetTextColor(0, 0, 0)
		if numbered {
			w.write(fmt.Sprintf("%d.", i+1))
		} else {
			w.write("•")
		}
		w.pdf.SetLeftMargin(left + markerOffset)
		w.pdf.SetX(left + markerOffset)
		w.writeTexts(item.Content, textSize, false)
		w.pdf.Ln(-1)
		w.pdf.SetLeftMargin(w.defaultMargins.Left)
	}
}

func (w *pdfWriter) writeTexts(texts []edtypes.Text, size float64, bold bool) {
	for _, t := range texts {
		w.prepareText(t, size, bold)
		w.write(t.Content)
	}
}

func (w *pdfWriter) prepareText(t edtypes.Text, size float64, bold bool) {
	styleStr := ""
	if t.Strong || bold {
		styleStr += "B"
	}
	if t.Italic {
		styleStr += "I"
	}
	if t.Underlined {
		styleStr += "U"
	}
	w.pdf.SetFont(fontFamily, styleStr, size)

	w.pdf.SetTextColor(0, 0, 0)
	if t.Color != nil {
		if c, err := t.Color.RGBA(); err == nil {
			w.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
		}
	}
}

func (w *pdfWriter) write(text string) {
	_, s := w.pdf.GetFontSize()
	w.pdf.Write(s+0.1, w.tr(text))
}

func (w *pdfWriter) resetMargins() {
	w.pdf.SetMargins(w.defaultMargins.Left, w.defaultMargins.Top, w.defaultMargins.Right)
}
