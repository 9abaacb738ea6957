package host

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
)

const (
	MarkBold      = "bold"
	MarkItalic    = "italic"
	MarkUnderline = "underline"
	MarkColor     = "color"
)

var (
	ErrUnknownMark      = errors.New("unknown mark")
	ErrUnknownBlockType = errors.New("unknown block type")
	ErrBadMarkValue     = errors.New("bad mark value")
	ErrBadSelection     = errors.New("selection out of document")
	ErrUnsupportedBlock = errors.New("selected block can not be edited")
)

// Selection адресует блок, пункт списка и фрагмент. Отрицательные Item и Leaf означают
// "весь блок" и "все фрагменты".
type Selection struct {
	Block int `json:"block"`
	Item  int `json:"item"`
	Leaf  int `json:"leaf"`
}

// BlockSelection выделяет блок целиком.
func BlockSelection(block int) Selection {
	return Selection{Block: block, Item: -1, Leaf: -1}
}

// Memory - эталонная реализация Host над документом в памяти. Управляет только возможностями
// панели инструментов: выделением, отметками и типом блока. Не безопасна для конкурентного
// использования, у документа один владелец.
type Memory struct {
	doc       *edtypes.Document
	sel       Selection
	listeners []func(*edtypes.Document)
}

var _ Host = (*Memory)(nil)

// NewMemory создает редактор с копией initial. Пустой документ заменяется начальным абзацем.
func NewMemory(initial *edtypes.Document) *Memory {
	doc := initial.Clone()
	if doc == nil || len(doc.Blocks) == 0 {
		doc = edtypes.NewDocument()
	}
	return &Memory{doc: doc, sel: BlockSelection(0)}
}

func (m *Memory) Snapshot() *edtypes.Document {
	return m.doc.Clone()
}

func (m *Memory) Selection() Selection {
	return m.sel
}

func (m *Memory) OnChange(f func(*edtypes.Document)) {
	m.listeners = append(m.listeners, f)
}

// Select устанавливает выделение, проверяя, что оно указывает внутрь документа.
func (m *Memory) Select(sel Selection) error {
	if sel.Block < 0 || sel.Block >= len(m.doc.Blocks) {
		return fmt.Errorf("%w: block %d", ErrBadSelection, sel.Block)
	}
	block := m.doc.Blocks[sel.Block]
	items, isList := edtypes.Items(block)
	if sel.Item >= 0 {
		if !isList || sel.Item >= len(items) {
			return fmt.Errorf("%w: item %d", ErrBadSelection, sel.Item)
		}
	}
	if sel.Leaf >= 0 {
		var leaves []edtypes.Text
		switch {
		case sel.Item >= 0:
			leaves = items[sel.Item].Content
		case isList:
			return fmt.Errorf("%w: leaf without item in list", ErrBadSelection)
		default:
			leaves = edtypes.Leaves(block)
		}
		if sel.Leaf >= len(leaves) {
			return fmt.Errorf("%w: leaf %d", ErrBadSelection, sel.Leaf)
		}
	}
	m.sel = sel
	return nil
}

// SetMark меняет отметку у выделенных фрагментов. Для bold, italic и underline value - bool или
// nil (переключить по первому фрагменту). Для color value - любая строка CSS цвета,
// она выводится как есть. "" или nil снимает цвет.
func (m *Memory) SetMark(name string, value any) error {
	var apply func(t *edtypes.Text)

	switch name {
	case MarkBold, MarkItalic, MarkUnderline:
		on, err := m.boolMark(name, value)
		if err != nil {
			return err
		}
		apply = func(t *edtypes.Text) { *markField(t, name) = on }
	case MarkColor:
		var c *edtypes.Color
		switch v := value.(type) {
		case nil:
		case string:
			c = edtypes.NewColor(v)
		default:
			return fmt.Errorf("%w: color must be a string", ErrBadMarkValue)
		}
		apply = func(t *edtypes.Text) {
			if c == nil {
				t.Color = nil
				return
			}
			cc := *c
			t.Color = &cc
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMark, name)
	}

	if err := m.eachSelectedLeaf(apply); err != nil {
		return err
	}
	m.commit()
	return nil
}

func (m *Memory) boolMark(name string, value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case nil:
		first := true
		on := false
		err := m.eachSelectedLeaf(func(t *edtypes.Text) {
			if first {
				on = !*markField(t, name)
				first = false
			}
		})
		return on, err
	}
	return false, fmt.Errorf("%w: %s expects bool", ErrBadMarkValue, name)
}

func markField(t *edtypes.Text, name string) *bool {
	switch name {
	case MarkBold:
		return &t.Strong
	case MarkItalic:
		return &t.Italic
	default:
		return &t.Underlined
	}
}

// eachSelectedLeaf вызывает f для каждого выделенного фрагмента и записывает блок обратно.
func (m *Memory) eachSelectedLeaf(f func(t *edtypes.Text)) error {
	each := func(texts []edtypes.Text) {
		for i := range texts {
			if m.sel.Leaf < 0 || m.sel.Leaf == i {
				f(&texts[i])
			}
		}
	}
	eachItem := func(items []edtypes.ListItem) {
		for i := range items {
			if m.sel.Item < 0 || m.sel.Item == i {
				each(items[i].Content)
			}
		}
	}

	switch b := m.doc.Blocks[m.sel.Block].(type) {
	case edtypes.Paragraph:
		each(b.Content)
	case edtypes.Heading:
		each(b.Content)
	case edtypes.BulletedList:
		eachItem(b.Items)
	case edtypes.NumberedList:
		eachItem(b.Items)
	default:
		return ErrUnsupportedBlock
	}
	return nil
}

// SetBlockType меняет тип выделенного блока. Из списка в абзац или заголовок превращается
// выделенный пункт (или каждый пункт, если выделен весь список).
func (m *Memory) SetBlockType(name string) error {
	target, level, err := parseBlockType(name)
	if err != nil {
		return err
	}

	block := m.doc.Blocks[m.sel.Block]
	var replacement []edtypes.Block

	switch b := block.(type) {
	case edtypes.Paragraph, edtypes.Heading:
		content := edtypes.Leaves(b)
		replacement = []edtypes.Block{makeBlock(target, level, []edtypes.ListItem{{Content: content}})}
	case edtypes.BulletedList, edtypes.NumberedList:
		items, _ := edtypes.Items(b)
		if target == edtypes.BulletedListType || target == edtypes.NumberedListType {
			replacement = []edtypes.Block{makeBlock(target, level, items)}
			break
		}
		replacement = m.splitList(b, items, target, level)
	default:
		return ErrUnsupportedBlock
	}

	blocks := make([]edtypes.Block, 0, len(m.doc.Blocks)+len(replacement))
	blocks = append(blocks, m.doc.Blocks[:m.sel.Block]...)
	blocks = append(blocks, replacement...)
	blocks = append(blocks, m.doc.Blocks[m.sel.Block+1:]...)
	m.doc.Blocks = blocks

	m.sel = m.selectionAfter(block, target)
	m.commit()
	return nil
}

func (m *Memory) splitList(list edtypes.Block, items []edtypes.ListItem, target edtypes.BlockType, level int) []edtypes.Block {
	if m.sel.Item < 0 {
		res := make([]edtypes.Block, 0, len(items))
		for _, item := range items {
			res = append(res, makeBlock(target, level, []edtypes.ListItem{item}))
		}
		return res
	}

	var res []edtypes.Block
	if before := items[:m.sel.Item]; len(before) > 0 {
		res = append(res, makeBlock(list.BlockType(), 0, before))
	}
	res = append(res, makeBlock(target, level, []edtypes.ListItem{items[m.sel.Item]}))
	if after := items[m.sel.Item+1:]; len(after) > 0 {
		res = append(res, makeBlock(list.BlockType(), 0, after))
	}
	return res
}

// selectionAfter переносит выделение на преобразованный блок.
func (m *Memory) selectionAfter(old edtypes.Block, target edtypes.BlockType) Selection {
	_, wasList := edtypes.Items(old)
	isList := target == edtypes.BulletedListType || target == edtypes.NumberedListType

	switch {
	case wasList && !isList && m.sel.Item > 0:
		return Selection{Block: m.sel.Block + 1, Item: -1, Leaf: m.sel.Leaf}
	case wasList && !isList:
		return Selection{Block: m.sel.Block, Item: -1, Leaf: m.sel.Leaf}
	case !wasList && isList:
		sel := Selection{Block: m.sel.Block, Item: -1, Leaf: -1}
		if m.sel.Leaf >= 0 {
			sel.Item, sel.Leaf = 0, m.sel.Leaf
		}
		return sel
	}
	return m.sel
}

func makeBlock(t edtypes.BlockType, level int, items []edtypes.ListItem) edtypes.Block {
	switch t {
	case edtypes.ParagraphType:
		return edtypes.Paragraph{Content: joinItems(items)}
	case edtypes.HeadingType:
		return edtypes.Heading{Level: level, Content: joinItems(items)}
	case edtypes.BulletedListType:
		return edtypes.BulletedList{Items: items}
	default:
		return edtypes.NumberedList{Items: items}
	}
}

func joinItems(items []edtypes.ListItem) []edtypes.Text {
	var res []edtypes.Text
	for _, item := range items {
		res = append(res, item.Content...)
	}
	if len(res) == 0 {
		res = []edtypes.Text{{}}
	}
	return res
}

// parseBlockType понимает paragraph, heading, heading-N, hN, bulleted-list и numbered-list.
func parseBlockType(name string) (edtypes.BlockType, int, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch edtypes.BlockType(name) {
	case edtypes.ParagraphType, edtypes.BulletedListType, edtypes.NumberedListType:
		return edtypes.BlockType(name), 0, nil
	case edtypes.HeadingType:
		return edtypes.HeadingType, 2, nil
	}

	levelRaw := ""
	switch {
	case strings.HasPrefix(name, "heading-"):
		levelRaw = strings.TrimPrefix(name, "heading-")
	case len(name) == 2 && name[0] == 'h':
		levelRaw = name[1:]
	}
	if level, err := strconv.Atoi(levelRaw); err == nil && level >= 1 && level <= 6 {
		return edtypes.HeadingType, level, nil
	}
	return "", 0, fmt.Errorf("%w: %s", ErrUnknownBlockType, name)
}

func (m *Memory) commit() {
	if len(m.listeners) == 0 {
		return
	}
	for _, f := range m.listeners {
		f(m.Snapshot())
	}
}
