package quill

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
)

var ErrNotDocument = errors.New("quill: delta contains retain or delete operations")

// Parse читает Delta документа: объект {"ops": [...]} или массив операций.
func Parse(r io.Reader) (*edtypes.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data)
}

func ParseBytes(data []byte) (*edtypes.Document, error) {
	var delta Delta
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &delta.Ops); err != nil {
			return nil, err
		}
	} else if err := json.Unmarshal(data, &delta); err != nil {
		return nil, err
	}
	return FromDelta(delta)
}

type lineBuilder struct {
	doc  *edtypes.Document
	line []edtypes.Text
}

// FromDelta собирает документ из Delta. Подряд идущие строки списка одного вида объединяются в
// один блок списка.
func FromDelta(delta Delta) (*edtypes.Document, error) {
	b := lineBuilder{doc: &edtypes.Document{Blocks: make([]edtypes.Block, 0)}}

	for _, op := range delta.Ops {
		if len(op.Insert) == 0 {
			return nil, ErrNotDocument
		}

		var text string
		if err := json.Unmarshal(op.Insert, &text); err != nil {
			// embeds: divider, image, video
			slog.Warn("Skip quill embed", "insert", string(op.Insert))
			continue
		}

		attrs := Attributes{}
		if op.Attributes != nil {
			attrs = *op.Attributes
		}

		parts := strings.Split(text, "\n")
		for i, part := range parts {
			if part != "" {
				b.line = append(b.line, edtypes.Text{
					Content:    part,
					Strong:     attrs.Bold,
					Italic:     attrs.Italic,
					Underlined: attrs.Underline,
					Color:      edtypes.NewColor(attrs.Color),
				})
			}
			if i < len(parts)-1 {
				b.endLine(attrs)
			}
		}
	}

	// Quill всегда завершает документ переводом строки, но снимок может быть обрезан.
	if len(b.line) > 0 {
		b.endLine(Attributes{})
	}

	return b.doc, nil
}

func (b *lineBuilder) endLine(attrs Attributes) {
	content := b.line
	if len(content) == 0 {
		content = []edtypes.Text{{}}
	}
	b.line = nil

	switch {
	case attrs.Header > 0:
		b.doc.Blocks = append(b.doc.Blocks, edtypes.Heading{Level: attrs.Header, Content: content})
	case attrs.List != "":
		item := edtypes.ListItem{Content: content}
		numbered := attrs.List == "ordered"
		if n := len(b.doc.Blocks); n > 0 {
			switch last := b.doc.Blocks[n-1].(type) {
			case edtypes.NumberedList:
				if numbered {
					last.Items = append(last.Items, item)
					b.doc.Blocks[n-1] = last
					return
				}
			case edtypes.BulletedList:
				if !numbered {
					last.Items = append(last.Items, item)
					b.doc.Blocks[n-1] = last
					return
				}
			}
		}
		if numbered {
			b.doc.Blocks = append(b.doc.Blocks, edtypes.NumberedList{Items: []edtypes.ListItem{item}})
		} else {
			b.doc.Blocks = append(b.doc.Blocks, edtypes.BulletedList{Items: []edtypes.ListItem{item}})
		}
	default:
		b.doc.Blocks = append(b.doc.Blocks, edtypes.Paragraph{Content: content})
	}
}
