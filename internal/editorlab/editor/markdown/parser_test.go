package markdown

import (
	"strings"
	"testing"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/exporter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := "# Title\n\nplain **bold** and *it* `code` end\n\n- a\n- b\n  1. nested\n\n1. one\n\n> quote\n"

	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 5)

	assert.Equal(t, edtypes.Heading{Level: 1, Content: []edtypes.Text{{Content: "Title"}}}, doc.Blocks[0])
	assert.Equal(t, edtypes.Paragraph{Content: []edtypes.Text{
		{Content: "plain "},
		{Content: "bold", Strong: true},
		{Content: " and "},
		{Content: "it", Italic: true},
		{Content: " code end"},
	}}, doc.Blocks[1])

	list := doc.Blocks[2].(edtypes.BulletedList)
	require.Len(t, list.Items, 3)
	assert.Equal(t, "nested", list.Items[2].Content[0].Content)

	assert.IsType(t, edtypes.NumberedList{}, doc.Blocks[3])
	assert.Equal(t, edtypes.UnknownBlock{Type: "Blockquote"}, doc.Blocks[4])
}

func TestMarkdownRoundTrip(t *testing.T) {
	doc := &edtypes.Document{Blocks: []edtypes.Block{
		edtypes.Heading{Level: 1, Content: []edtypes.Text{{Content: "Title", Strong: true}}},
		edtypes.Paragraph{Content: []edtypes.Text{
			{Content: "plain "},
			{Content: "bold", Strong: true},
			{Content: " and "},
			{Content: "under", Underlined: true},
			{Content: " x*y_z"},
		}},
		edtypes.BulletedList{Items: []edtypes.ListItem{{Content: []edtypes.Text{{Content: "a"}}}, {Content: []edtypes.Text{{Content: "b"}}}}},
		edtypes.NumberedList{Items: []edtypes.ListItem{{Content: []edtypes.Text{{Content: "one", Italic: true}}}}},
	}}

	out, err := exporter.MarkdownString(doc)
	require.NoError(t, err)
	assert.Contains(t, out, "**bold**")
	assert.Contains(t, out, "<u>under</u>")
	assert.Contains(t, out, `x\*y\_z`)

	parsed := ParseBytes([]byte(out))
	assert.Equal(t, doc, parsed)
}

func TestParseEmpty(t *testing.T) {
	doc := ParseBytes(nil)
	assert.Empty(t, doc.Blocks)
}
