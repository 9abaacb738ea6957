// Пакет разбирает HTML в модель документа редактора.
// Используется для импорта HTML и для проверки того, что результат экспорта читается обратно.
//
// Основные возможности:
//   - Парсинг HTML-документов из io.Reader.
//   - Абзацы, заголовки h1-h6, маркированные и нумерованные списки.
//   - Отметки текста: жирный, курсив, подчеркнутый и цвет из атрибута style.
//   - Списки Quill, где маркированные пункты лежат внутри <ol> с data-list="bullet".
package editor

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
	"golang.org/x/net/html"
)

func ParseDocument(r io.Reader) (*Document, error) {
	rootNode, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	document := Document{Blocks: make([]Block, 0)}

	body := getBody(rootNode)
	if body == nil {
		return &document, nil
	}

	for el := body.FirstChild; el != nil; el = el.NextSibling {
		switch el.Type {
		case html.TextNode:
			if strings.TrimSpace(el.Data) != "" {
				document.Blocks = append(document.Blocks, Paragraph{Content: []Text{{Content: el.Data}}})
			}
			continue
		case html.ElementNode:
		default:
			continue
		}

		switch el.Data {
		case "p", "div":
			document.Blocks = append(document.Blocks, Paragraph{Content: parseInline(el)})
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level, _ := strconv.Atoi(el.Data[1:])
			document.Blocks = append(document.Blocks, Heading{Level: level, Content: parseInline(el)})
		case "ul", "ol":
			document.Blocks = append(document.Blocks, parseList(el)...)
		case "strong", "b", "em", "i", "u", "span", "a", "font":
			content := make([]Text, 0)
			collectText(el, applyMarks(el, Text{}), &content)
			if len(content) == 0 {
				continue
			}
			document.Blocks = append(document.Blocks, Paragraph{Content: content})
		default:
			slog.Debug("Skip unsupported html block", "tag", el.Data)
			document.Blocks = append(document.Blocks, UnknownBlock{Type: el.Data})
		}
	}

	return &document, nil
}

// parseList возвращает один или несколько списков: в разметке Quill тип пункта задается атрибутом
// data-list, поэтому подряд идущие пункты разного типа делятся на отдельные блоки.
func parseList(root *html.Node) []Block {
	var res []Block
	var items []ListItem
	numbered := root.Data == "ol"
	current := numbered

	flush := func() {
		if len(items) == 0 {
			return
		}
		if current {
			res = append(res, NumberedList{Items: items})
		} else {
			res = append(res, BulletedList{Items: items})
		}
		items = nil
	}

	for li := root.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		itemNumbered := numbered
		switch getAttrValue("data-list", li.Attr) {
		case "bullet", "checked", "unchecked":
			itemNumbered = false
		case "ordered":
			itemNumbered = true
		}
		if itemNumbered != current {
			flush()
			current = itemNumbered
		}
		items = append(items, ListItem{Content: parseInline(li)})
	}
	flush()

	if len(res) == 0 {
		if numbered {
			return []Block{NumberedList{}}
		}
		return []Block{BulletedList{}}
	}
	return res
}

// parseInline собирает текстовые фрагменты элемента. Вложенные абзацы пункта списка склеиваются.
// Пустой элемент дает один пустой фрагмент.
func parseInline(root *html.Node) []Text {
	res := make([]Text, 0)
	collectText(root, Text{}, &res)
	if len(res) == 0 {
		res = append(res, Text{})
	}
	return res
}

func collectText(node *html.Node, marks Text, res *[]Text) {
	for el := node.FirstChild; el != nil; el = el.NextSibling {
		switch el.Type {
		case html.TextNode:
			t := marks
			t.Content = el.Data
			if t.Color != nil {
				c := *t.Color
				t.Color = &c
			}
			*res = append(*res, t)
		case html.ElementNode:
			if el.Data == "br" {
				if el.NextSibling != nil {
					*res = append(*res, Text{Content: "\n"})
				}
				continue
			}
			if el.Data == "ul" || el.Data == "ol" {
				// nested lists are flattened into the item text
				collectText(el, marks, res)
				continue
			}
			collectText(el, applyMarks(el, marks), res)
		}
	}
}

func applyMarks(el *html.Node, marks Text) Text {
	switch el.Data {
	case "strong", "b":
		marks.Strong = true
	case "em", "i":
		marks.Italic = true
	case "u":
		marks.Underlined = true
	case "font":
		if c := getAttrValue("color", el.Attr); c != "" {
			marks.Color = edtypes.NewColor(c)
		}
	}
	parseTextStyles(el, &marks)
	return marks
}

func parseTextStyles(node *html.Node, text *Text) {
	for _, style := range parseStyles(strings.Split(getAttrValue("style", node.Attr), ";")) {
		if style.Val == "" || style.Val == "inherit" {
			continue
		}
		switch style.Key {
		case "color":
			text.Color = edtypes.NewColor(style.Val)
		case "font-weight":
			if style.Val == "bold" || style.Val == "700" {
				text.Strong = true
			}
		case "font-style":
			if style.Val == "italic" {
				text.Italic = true
			}
		case "text-decoration", "text-decoration-line":
			if strings.Contains(style.Val, "underline") {
				text.Underlined = true
			}
		}
	}
}

func getBody(rootNode *html.Node) *html.Node {
	return findElementByTagName(rootNode, "body")
}

func findElementByTagName(rootNode *html.Node, tagName string) *html.Node {
	if rootNode.Type == html.ElementNode && rootNode.Data == tagName {
		return rootNode
	}
	for el := rootNode.FirstChild; el != nil; el = el.NextSibling {
		if found := findElementByTagName(el, tagName); found != nil {
			return found
		}
	}
	return nil
}

func getAttrValue(key string, attrs []html.Attribute) string {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func parseStyles(rawStyles []string) []html.Attribute {
	res := make([]html.Attribute, 0, len(rawStyles))
	for _, styleRaw := range rawStyles {
		key, val, ok := strings.Cut(styleRaw, ":")
		if !ok {
			continue
		}
		res = append(res, html.Attribute{
			Key: strings.ToLower(strings.TrimSpace(key)),
			Val: strings.TrimSpace(val),
		})
	}
	return res
}
