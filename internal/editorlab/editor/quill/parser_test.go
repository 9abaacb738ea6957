package quill

import (
	"strings"
	"testing"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/exporter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := `{"ops":[
		{"insert":"Title","attributes":{"bold":true}},
		{"insert":"\n","attributes":{"header":1}},
		{"insert":"plain "},
		{"insert":"x","attributes":{"underline":true,"color":"#ff0000"}},
		{"insert":"\na"},
		{"insert":"\n","attributes":{"list":"bullet"}},
		{"insert":"b"},
		{"insert":"\n","attributes":{"list":"checked"}},
		{"insert":"one"},
		{"insert":"\n","attributes":{"list":"ordered"}},
		{"insert":{"divider":true}},
		{"insert":"\n\n"}
	]}`

	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 6)

	assert.Equal(t, edtypes.Heading{Level: 1, Content: []edtypes.Text{{Content: "Title", Strong: true}}}, doc.Blocks[0])
	assert.Equal(t, edtypes.Paragraph{Content: []edtypes.Text{
		{Content: "plain "},
		{Content: "x", Underlined: true, Color: edtypes.NewColor("#ff0000")},
	}}, doc.Blocks[1])
	assert.Len(t, doc.Blocks[2].(edtypes.BulletedList).Items, 2)
	assert.Len(t, doc.Blocks[3].(edtypes.NumberedList).Items, 1)
	assert.Equal(t, edtypes.Paragraph{Content: []edtypes.Text{{}}}, doc.Blocks[4])
	assert.Equal(t, edtypes.Paragraph{Content: []edtypes.Text{{}}}, doc.Blocks[5])

	assert.Equal(t,
		`<h2><strong>Title</strong></h2><p>plain <span style="color: #ff0000"><u>x</u></span></p>`+
			`<ul><li>a</li><li>b</li></ul><ol><li>one</li></ol><p></p><p></p>`,
		exporter.HTML(doc))
}

func TestParseOpsArrayAndTrailingText(t *testing.T) {
	doc, err := ParseBytes([]byte(`[{"insert":"no newline"}]`))
	require.NoError(t, err)
	assert.Equal(t, []edtypes.Block{edtypes.Paragraph{Content: []edtypes.Text{{Content: "no newline"}}}}, doc.Blocks)
}

func TestParseErrors(t *testing.T) {
	_, err := ParseBytes([]byte(`{"ops":[{"retain":3}]}`))
	assert.ErrorIs(t, err, ErrNotDocument)

	_, err = ParseBytes([]byte(`{"ops":`))
	assert.Error(t, err)
}

func TestSerializeRoundTrip(t *testing.T) {
	doc := &edtypes.Document{Blocks: []edtypes.Block{
		edtypes.Heading{Level: 2, Content: []edtypes.Text{{Content: "T", Italic: true}}},
		edtypes.Paragraph{Content: []edtypes.Text{{Content: "a "}, {Content: "b", Strong: true, Color: edtypes.NewColor("#00f")}}},
		edtypes.BulletedList{Items: []edtypes.ListItem{{Content: []edtypes.Text{{Content: "1"}}}, {Content: []edtypes.Text{{Content: "2"}}}}},
		edtypes.NumberedList{Items: []edtypes.ListItem{{Content: []edtypes.Text{{Content: "3"}}}}},
		edtypes.Paragraph{Content: []edtypes.Text{{}}},
	}}

	data, err := Serialize(doc)
	require.NoError(t, err)

	parsed, err := ParseBytes(data)
	require.NoError(t, err)
	assert.Equal(t, doc, parsed)
}

func TestSerializeSeed(t *testing.T) {
	data, err := Serialize(edtypes.NewDocument())
	require.NoError(t, err)
	assert.JSONEq(t, `{"ops":[{"insert":"Start writing..."},{"insert":"\n"}]}`, string(data))
}
