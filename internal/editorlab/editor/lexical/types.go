// Пакет lexical переводит сериализованное состояние редактора Lexical (editorState.toJSON()) в модель
// документа и обратно.
package lexical

// LexicalState - корень сериализованного состояния редактора.
type LexicalState struct {
	Root LexicalNode `json:"root"`
}

// LexicalNode - универсальный узел Lexical. Набор заполненных полей зависит от типа.
type LexicalNode struct {
	Type     string        `json:"type"`
	Version  int           `json:"version"`
	Children []LexicalNode `json:"children,omitempty"`

	// element
	Direction *string `json:"direction,omitempty"`
	Format    any     `json:"format,omitempty"`
	Indent    *int    `json:"indent,omitempty"`

	// heading
	Tag string `json:"tag,omitempty"`

	// list, listitem
	ListType string `json:"listType,omitempty"`
	Start    int    `json:"start,omitempty"`
	Value    int    `json:"value,omitempty"`

	// text
	Text   *string `json:"text,omitempty"`
	Detail *int    `json:"detail,omitempty"`
	Mode   string  `json:"mode,omitempty"`
	Style  *string `json:"style,omitempty"`
}

// Биты поля format текстового узла.
const (
	FormatBold          = 1 << 0
	FormatItalic        = 1 << 1
	FormatStrikethrough = 1 << 2
	FormatUnderline     = 1 << 3
	FormatCode          = 1 << 4
	FormatSubscript     = 1 << 5
	FormatSuperscript   = 1 << 6
)
