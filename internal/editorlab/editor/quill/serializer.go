package quill

import (
	"encoding/json"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
)

// Serialize возвращает Delta документа для quill.setContents().
func Serialize(doc *edtypes.Document) ([]byte, error) {
	return json.Marshal(ToDelta(doc))
}

func ToDelta(doc *edtypes.Document) Delta {
	delta := Delta{Ops: make([]Op, 0)}
	if doc == nil {
		return delta
	}
	for _, block := range doc.Blocks {
		switch b := block.(type) {
		case edtypes.Paragraph:
			delta.appendLine(b.Content, nil)
		case edtypes.Heading:
			delta.appendLine(b.Content, &Attributes{Header: b.HeadingLevel()})
		case edtypes.BulletedList:
			for _, item := range b.Items {
				delta.appendLine(item.Content, &Attributes{List: "bullet"})
			}
		case edtypes.NumberedList:
			for _, item := range b.Items {
				delta.appendLine(item.Content, &Attributes{List: "ordered"})
			}
		}
	}
	return delta
}

func (d *Delta) appendLine(texts []edtypes.Text, lineAttrs *Attributes) {
	for _, t := range texts {
		if t.Content == "" {
			continue
		}
		op := Op{Insert: mustString(t.Content)}
		if t.HasMarks() {
			op.Attributes = &Attributes{Bold: t.Strong, Italic: t.Italic, Underline: t.Underlined}
			if t.Color != nil {
				op.Attributes.Color = string(*t.Color)
			}
		}
		d.Ops = append(d.Ops, op)
	}
	d.Ops = append(d.Ops, Op{Insert: mustString("\n"), Attributes: lineAttrs})
}

func mustString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
