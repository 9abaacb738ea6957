package editor

import (
	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
)

// Реэкспорт типов из edtypes
type (
	Document     = edtypes.Document
	Block        = edtypes.Block
	Paragraph    = edtypes.Paragraph
	Heading      = edtypes.Heading
	BulletedList = edtypes.BulletedList
	NumberedList = edtypes.NumberedList
	ListItem     = edtypes.ListItem
	UnknownBlock = edtypes.UnknownBlock
	Text         = edtypes.Text
	Color        = edtypes.Color
)

// Реэкспорт функций
var (
	NewDocument = edtypes.NewDocument
	ParseColor  = edtypes.ParseColor
)
