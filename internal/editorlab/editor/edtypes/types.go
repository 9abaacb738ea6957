// Модель документа, общая для всех редакторов: упорядоченная последовательность блоков,
// внутри блоков текстовые фрагменты с независимыми отметками форматирования.
package edtypes

import (
	"errors"
	"fmt"
)

// SeedText - текст первого абзаца нового документа.
const SeedText = "Start writing..."

type BlockType string

const (
	ParagraphType    BlockType = "paragraph"
	HeadingType      BlockType = "heading"
	BulletedListType BlockType = "bulleted-list"
	NumberedListType BlockType = "numbered-list"
)

var (
	ErrEmptyDocument = errors.New("document has no blocks")
	ErrEmptyBlock    = errors.New("block has no text leaves")
)

type Document struct {
	Blocks []Block
}

// Block - закрытый вариант блока. Реализуется только типами этого пакета.
type Block interface {
	BlockType() BlockType
	isBlock()
}

type Paragraph struct {
	Content []Text
}

// Heading хранит уровень, заданный редактором (1..6). Ноль означает уровень по умолчанию.
type Heading struct {
	Level   int
	Content []Text
}

type BulletedList struct {
	Items []ListItem
}

type NumberedList struct {
	Items []ListItem
}

type ListItem struct {
	Content []Text
}

// UnknownBlock сохраняет позицию блока, тип которого декодер не распознал.
type UnknownBlock struct {
	Type string
}

type Text struct {
	Content string

	Strong     bool
	Italic     bool
	Underlined bool

	Color *Color
}

func (Paragraph) BlockType() BlockType    { return ParagraphType }
func (Heading) BlockType() BlockType      { return HeadingType }
func (BulletedList) BlockType() BlockType { return BulletedListType }
func (NumberedList) BlockType() BlockType { return NumberedListType }
func (u UnknownBlock) BlockType() BlockType {
	return BlockType(u.Type)
}

func (Paragraph) isBlock()    {}
func (Heading) isBlock()      {}
func (BulletedList) isBlock() {}
func (NumberedList) isBlock() {}
func (UnknownBlock) isBlock() {}

// NewDocument создает документ с одним абзацем, содержащим SeedText.
func NewDocument() *Document {
	return &Document{Blocks: []Block{
		Paragraph{Content: []Text{{Content: SeedText}}},
	}}
}

// HeadingLevel возвращает уровень заголовка в диапазоне 1..6, подставляя 2 для неизвестных значений.
func (h Heading) HeadingLevel() int {
	if h.Level < 1 || h.Level > 6 {
		return 2
	}
	return h.Level
}

// HasMarks сообщает, установлена ли у фрагмента хотя бы одна отметка.
func (t Text) HasMarks() bool {
	return t.Strong || t.Italic || t.Underlined || (t.Color != nil && *t.Color != "")
}

// Leaves возвращает текстовые фрагменты блока. Для списков фрагменты всех пунктов идут подряд.
func Leaves(b Block) []Text {
	switch b := b.(type) {
	case Paragraph:
		return b.Content
	case Heading:
		return b.Content
	case BulletedList:
		return itemLeaves(b.Items)
	case NumberedList:
		return itemLeaves(b.Items)
	}
	return nil
}

func itemLeaves(items []ListItem) []Text {
	var res []Text
	for _, item := range items {
		res = append(res, item.Content...)
	}
	return res
}

// Items возвращает пункты списка и признак того, что блок является списком.
func Items(b Block) ([]ListItem, bool) {
	switch b := b.(type) {
	case BulletedList:
		return b.Items, true
	case NumberedList:
		return b.Items, true
	}
	return nil, false
}

// Validate проверяет инварианты живого документа: документ не пуст, у каждого абзаца, заголовка и
// пункта списка есть хотя бы один фрагмент.
func (d *Document) Validate() error {
	if d == nil || len(d.Blocks) == 0 {
		return ErrEmptyDocument
	}
	for i, b := range d.Blocks {
		switch b := b.(type) {
		case Paragraph:
			if len(b.Content) == 0 {
				return fmt.Errorf("block %d: %w", i, ErrEmptyBlock)
			}
		case Heading:
			if len(b.Content) == 0 {
				return fmt.Errorf("block %d: %w", i, ErrEmptyBlock)
			}
		case BulletedList, NumberedList:
			items, _ := Items(b)
			if len(items) == 0 {
				return fmt.Errorf("block %d: list has no items", i)
			}
			for j, item := range items {
				if len(item.Content) == 0 {
					return fmt.Errorf("block %d item %d: %w", i, j, ErrEmptyBlock)
				}
			}
		}
	}
	return nil
}

// Clone возвращает глубокую копию документа. Копия не разделяет срезы и цвета с исходным документом.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	res := &Document{Blocks: make([]Block, len(d.Blocks))}
	for i, b := range d.Blocks {
		res.Blocks[i] = CloneBlock(b)
	}
	return res
}

func CloneBlock(b Block) Block {
	switch b := b.(type) {
	case Paragraph:
		return Paragraph{Content: cloneTexts(b.Content)}
	case Heading:
		return Heading{Level: b.Level, Content: cloneTexts(b.Content)}
	case BulletedList:
		return BulletedList{Items: cloneItems(b.Items)}
	case NumberedList:
		return NumberedList{Items: cloneItems(b.Items)}
	}
	return b
}

func cloneItems(items []ListItem) []ListItem {
	if items == nil {
		return nil
	}
	res := make([]ListItem, len(items))
	for i, item := range items {
		res[i] = ListItem{Content: cloneTexts(item.Content)}
	}
	return res
}

func cloneTexts(texts []Text) []Text {
	if texts == nil {
		return nil
	}
	res := make([]Text, len(texts))
	for i, t := range texts {
		res[i] = t
		if t.Color != nil {
			c := *t.Color
			res[i].Color = &c
		}
	}
	return res
}
