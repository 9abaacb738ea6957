// Пакет slate переводит JSON-снимок редактора Slate (значение editor.children) в модель документа и обратно.
package slate

// SlateNode - элемент или текстовый лист Slate. Лист отличается наличием поля text.
type SlateNode struct {
	Type     string      `json:"type,omitempty"`
	Level    int         `json:"level,omitempty"`
	Children []SlateNode `json:"children,omitempty"`

	Text      *string `json:"text,omitempty"`
	Bold      bool    `json:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty"`
	Underline bool    `json:"underline,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// IsLeaf сообщает, является ли узел текстовым листом.
func (n SlateNode) IsLeaf() bool {
	return n.Text != nil
}

const (
	typeParagraph    = "paragraph"
	typeHeading      = "heading"
	typeBulletedList = "bulleted-list"
	typeNumberedList = "numbered-list"
	typeListItem     = "list-item"
)

var headingAliases = map[string]int{
	"heading-one":   1,
	"heading-two":   2,
	"heading-three": 3,
	"heading-four":  4,
	"heading-five":  5,
	"heading-six":   6,
}
