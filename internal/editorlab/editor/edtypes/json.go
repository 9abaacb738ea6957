package edtypes

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Каноническое JSON представление документа:
//
//	{"blocks":[{"type":"paragraph","children":[{"text":"hi","bold":true}]},
//	           {"type":"bulleted-list","items":[{"children":[{"text":"a"}]}]}]}
type documentJSON struct {
	Blocks []blockJSON `json:"blocks"`
}

type blockJSON struct {
	Type     string     `json:"type"`
	Level    int        `json:"level,omitempty"`
	Children []textJSON `json:"children,omitempty"`
	Items    []itemJSON `json:"items,omitempty"`
}

type itemJSON struct {
	Children []textJSON `json:"children"`
}

type textJSON struct {
	Text      string `json:"text"`
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
	Color     string `json:"color,omitempty"`
}

func (d Document) MarshalJSON() ([]byte, error) {
	res := documentJSON{Blocks: make([]blockJSON, 0, len(d.Blocks))}
	for _, b := range d.Blocks {
		bj := blockJSON{Type: string(b.BlockType())}
		switch b := b.(type) {
		case Paragraph:
			bj.Children = textsToJSON(b.Content)
		case Heading:
			bj.Level = b.Level
			bj.Children = textsToJSON(b.Content)
		case BulletedList:
			bj.Items = itemsToJSON(b.Items)
		case NumberedList:
			bj.Items = itemsToJSON(b.Items)
		}
		res.Blocks = append(res.Blocks, bj)
	}
	return json.Marshal(res)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.Blocks = make([]Block, 0, len(raw.Blocks))
	for _, bj := range raw.Blocks {
		switch BlockType(bj.Type) {
		case ParagraphType:
			d.Blocks = append(d.Blocks, Paragraph{Content: textsFromJSON(bj.Children)})
		case HeadingType:
			d.Blocks = append(d.Blocks, Heading{Level: bj.Level, Content: textsFromJSON(bj.Children)})
		case BulletedListType:
			d.Blocks = append(d.Blocks, BulletedList{Items: itemsFromJSON(bj.Items)})
		case NumberedListType:
			d.Blocks = append(d.Blocks, NumberedList{Items: itemsFromJSON(bj.Items)})
		default:
			d.Blocks = append(d.Blocks, UnknownBlock{Type: bj.Type})
		}
	}
	return nil
}

// Value реализует интерфейс driver.Valuer для сохранения Document в JSON колонке.
func (d Document) Value() (driver.Value, error) {
	b, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan реализует интерфейс sql.Scanner для чтения Document из JSON колонки.
func (d *Document) Scan(value interface{}) error {
	if value == nil {
		*d = Document{Blocks: make([]Block, 0)}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSON value:", value))
	}

	return d.UnmarshalJSON(bytes)
}

// GormDataType указывает GORM тип колонки.
func (Document) GormDataType() string {
	return "json"
}

func textsToJSON(texts []Text) []textJSON {
	res := make([]textJSON, 0, len(texts))
	for _, t := range texts {
		tj := textJSON{
			Text:      t.Content,
			Bold:      t.Strong,
			Italic:    t.Italic,
			Underline: t.Underlined,
		}
		if t.Color != nil {
			tj.Color = string(*t.Color)
		}
		res = append(res, tj)
	}
	return res
}

func textsFromJSON(texts []textJSON) []Text {
	res := make([]Text, 0, len(texts))
	for _, tj := range texts {
		res = append(res, Text{
			Content:    tj.Text,
			Strong:     tj.Bold,
			Italic:     tj.Italic,
			Underlined: tj.Underline,
			Color:      NewColor(tj.Color),
		})
	}
	return res
}

func itemsToJSON(items []ListItem) []itemJSON {
	res := make([]itemJSON, 0, len(items))
	for _, item := range items {
		res = append(res, itemJSON{Children: textsToJSON(item.Content)})
	}
	return res
}

func itemsFromJSON(items []itemJSON) []ListItem {
	res := make([]ListItem, 0, len(items))
	for _, ij := range items {
		res = append(res, ListItem{Content: textsFromJSON(ij.Children)})
	}
	return res
}
