package lexical

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/exporter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const state = `{"root":{"children":[
	{"children":[{"detail":0,"format":1,"mode":"normal","style":"","text":"Title","type":"text","version":1}],
	 "direction":"ltr","format":"","indent":0,"type":"heading","version":1,"tag":"h1"},
	{"children":[
		{"detail":0,"format":0,"mode":"normal","style":"","text":"plain ","type":"text","version":1},
		{"detail":0,"format":10,"mode":"normal","style":"color: #ff0000;","text":"x","type":"text","version":1},
		{"type":"linebreak","version":1},
		{"children":[{"detail":0,"format":4,"mode":"normal","style":"","text":"link","type":"text","version":1}],
		 "type":"link","url":"https://lexical.dev","version":1}
	 ],"direction":"ltr","format":"center","indent":0,"type":"paragraph","version":1},
	{"children":[
		{"children":[{"text":"a","type":"text","format":0,"version":1}],"type":"listitem","value":1,"version":1},
		{"children":[{"text":"b","type":"text","format":0,"version":1}],"type":"listitem","value":2,"version":1},
		{"children":[{"children":[
			{"children":[{"text":"nested","type":"text","format":0,"version":1}],"type":"listitem","value":1,"version":1}
		],"type":"list","listType":"bullet","version":1}],"type":"listitem","value":3,"version":1}
	 ],"listType":"bullet","start":1,"tag":"ul","type":"list","version":1},
	{"children":[{"children":[],"type":"listitem","value":1,"version":1}],"listType":"number","start":1,"tag":"ol","type":"list","version":1},
	{"children":[{"text":"q","type":"text","format":0,"version":1}],"type":"quote","version":1}
],"direction":"ltr","format":"","indent":0,"type":"root","version":1}}`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(state))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 5)

	h := doc.Blocks[0].(edtypes.Heading)
	assert.Equal(t, 1, h.Level)
	assert.True(t, h.Content[0].Strong)

	p := doc.Blocks[1].(edtypes.Paragraph)
	require.Len(t, p.Content, 4)
	assert.Equal(t, edtypes.Text{Content: "x", Italic: true, Underlined: true, Color: edtypes.NewColor("#ff0000")}, p.Content[1])
	assert.Equal(t, "\n", p.Content[2].Content)
	assert.Equal(t, edtypes.Text{Content: "link"}, p.Content[3])

	list := doc.Blocks[2].(edtypes.BulletedList)
	require.Len(t, list.Items, 3)
	assert.Equal(t, "nested", list.Items[2].Content[0].Content)

	assert.Equal(t, []edtypes.ListItem{{Content: []edtypes.Text{{}}}}, doc.Blocks[3].(edtypes.NumberedList).Items)
	assert.Equal(t, edtypes.UnknownBlock{Type: "quote"}, doc.Blocks[4])

	assert.Equal(t,
		`<h2><strong>Title</strong></h2><p>plain <span style="color: #ff0000"><u><em>x</em></u></span>`+"\n"+`link</p>`+
			`<ul><li>a</li><li>b</li><li>nested</li></ul><ol><li></li></ol>`,
		exporter.HTML(doc))
}

func TestParseStringifiedState(t *testing.T) {
	quoted, err := json.Marshal(state)
	require.NoError(t, err)

	doc, err := ParseBytes(quoted)
	require.NoError(t, err)
	assert.Len(t, doc.Blocks, 5)
}

func TestParseErrors(t *testing.T) {
	_, err := ParseBytes([]byte(`{"root":{"type":"paragraph"}}`))
	assert.Error(t, err)

	_, err = ParseBytes([]byte(`{"root":`))
	assert.Error(t, err)
}

func TestSerializeRoundTrip(t *testing.T) {
	doc := &edtypes.Document{Blocks: []edtypes.Block{
		edtypes.Heading{Level: 3, Content: []edtypes.Text{{Content: "T", Underlined: true}}},
		edtypes.Paragraph{Content: []edtypes.Text{{Content: "c", Color: edtypes.NewColor("#00f"), Strong: true, Italic: true}}},
		edtypes.NumberedList{Items: []edtypes.ListItem{{Content: []edtypes.Text{{Content: "1"}}}, {Content: []edtypes.Text{{Content: "2"}}}}},
		edtypes.BulletedList{Items: []edtypes.ListItem{{Content: []edtypes.Text{{}}}}},
	}}

	data, err := Serialize(doc)
	require.NoError(t, err)

	parsed, err := ParseBytes(data)
	require.NoError(t, err)
	assert.Equal(t, doc, parsed)
}

func TestStyleValue(t *testing.T) {
	assert.Equal(t, "#ff0000", styleValue("font-size: 15px; COLOR: #ff0000;", "color"))
	assert.Equal(t, "", styleValue("background-color: red", "color"))
}
