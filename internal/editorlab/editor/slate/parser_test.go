package slate

import (
	"strings"
	"testing"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/exporter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := `[
		{"type":"heading","children":[{"text":"Title","bold":true}]},
		{"type":"paragraph","children":[
			{"text":"plain "},
			{"text":"x","underline":true,"italic":true,"color":"#ff0000"},
			{"type":"link","url":"https://slatejs.org","children":[{"text":" link"}]}
		]},
		{"type":"bulleted-list","children":[
			{"type":"list-item","children":[{"text":"a"}]},
			{"type":"list-item","children":[{"text":"b"}]}
		]},
		{"type":"numbered-list","children":[{"text":"toggled"}]},
		{"type":"block-quote","children":[{"text":"q"}]},
		{"type":"heading-one","children":[{"text":"H1"}]}
	]`

	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 6)

	assert.Equal(t, edtypes.Heading{Content: []edtypes.Text{{Content: "Title", Strong: true}}}, doc.Blocks[0])

	p := doc.Blocks[1].(edtypes.Paragraph)
	require.Len(t, p.Content, 3)
	assert.Equal(t, " link", p.Content[2].Content)

	assert.Len(t, doc.Blocks[2].(edtypes.BulletedList).Items, 2)
	assert.Empty(t, doc.Blocks[3].(edtypes.NumberedList).Items)
	assert.Equal(t, edtypes.UnknownBlock{Type: "block-quote"}, doc.Blocks[4])
	assert.Equal(t, 1, doc.Blocks[5].(edtypes.Heading).Level)

	assert.Equal(t,
		`<h2><strong>Title</strong></h2><p>plain <span style="color: #ff0000"><u><em>x</em></u></span> link</p>`+
			`<ul><li>a</li><li>b</li></ul><ol></ol><h2>H1</h2>`,
		exporter.HTML(doc))
}

func TestParseListItemsOnly(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"листы прямо в списке не выводятся",
			`[{"type":"bulleted-list","children":[{"text":"toggled"}]}]`,
			"<ul></ul>",
		},
		{
			"list-item на верхнем уровне пропускается",
			`[{"type":"list-item","children":[{"text":"bare"}]}]`,
			"",
		},
		{
			"смешанный список",
			`[{"type":"numbered-list","children":[
				{"text":"loose"},
				{"type":"list-item","children":[{"text":"a"}]},
				{"type":"paragraph","children":[{"text":"p"}]}
			]}]`,
			"<ol><li>a</li></ol>",
		},
		{
			"объект с полем children",
			`{"children":[
				{"type":"list-item","children":[{"text":"a"}]},
				{"type":"paragraph","children":[{"text":"p"}]}
			]}`,
			"<p>p</p>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseBytes([]byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, exporter.HTML(doc))
		})
	}

	doc, err := ParseBytes([]byte(`[{"type":"list-item","children":[{"text":"bare"}]}]`))
	require.NoError(t, err)
	assert.Equal(t, []edtypes.Block{edtypes.UnknownBlock{Type: "list-item"}}, doc.Blocks)
}

func TestParseInvalid(t *testing.T) {
	_, err := ParseBytes([]byte(`[{"type":`))
	assert.Error(t, err)

	_, err = ParseBytes([]byte(`{"children": 1}`))
	assert.Error(t, err)
}

func TestSerializeRoundTrip(t *testing.T) {
	doc := &edtypes.Document{Blocks: []edtypes.Block{
		edtypes.Heading{Level: 3, Content: []edtypes.Text{{Content: "T"}}},
		edtypes.Paragraph{Content: []edtypes.Text{{Content: "c", Color: edtypes.NewColor("#00f"), Strong: true}}},
		edtypes.NumberedList{Items: []edtypes.ListItem{{Content: []edtypes.Text{{Content: "1"}}}}},
		edtypes.BulletedList{Items: []edtypes.ListItem{{Content: []edtypes.Text{{Content: ""}}}}},
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
	assert.JSONEq(t, `[{"type":"paragraph","children":[{"text":"Start writing..."}]}]`, string(data))
}
