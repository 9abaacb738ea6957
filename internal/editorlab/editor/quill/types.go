// Пакет quill переводит Delta редактора Quill (quill.getContents()) в модель документа и обратно.
//
// Delta - плоский список вставок. Атрибуты строки (header, list) хранятся на символе перевода
// строки, которым строка заканчивается; inline-атрибуты (bold, italic, underline, color) на тексте.
package quill

import "encoding/json"

type Delta struct {
	Ops []Op `json:"ops"`
}

type Op struct {
	// Insert - строка или объект встраиваемого элемента (divider, image).
	Insert     json.RawMessage `json:"insert,omitempty"`
	Attributes *Attributes     `json:"attributes,omitempty"`
}

type Attributes struct {
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
	Color     string `json:"color,omitempty"`

	Header int    `json:"header,omitempty"`
	List   string `json:"list,omitempty"`
}
