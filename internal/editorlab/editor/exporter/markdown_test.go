package exporter

import (
	"testing"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name string
		doc  *edtypes.Document
		want string
	}{
		{"nil", nil, ""},
		{"empty", &edtypes.Document{}, ""},
		{
			"heading keeps level",
			&edtypes.Document{Blocks: []edtypes.Block{
				edtypes.Heading{Level: 1, Content: []edtypes.Text{{Content: "Title", Strong: true}}},
				edtypes.Heading{Level: 3, Content: []edtypes.Text{{Content: "Sub"}}},
			}},
			"# **Title**\n\n### Sub",
		},
		{
			"escaping and spaces outside markers",
			&edtypes.Document{Blocks: []edtypes.Block{
				edtypes.Paragraph{Content: []edtypes.Text{{Content: "a*b "}, {Content: " bold ", Strong: true}, {Content: "x", Italic: true, Underlined: true}}},
			}},
			"a\\*b  **bold** <u>*x*</u>",
		},
		{
			"lists",
			&edtypes.Document{Blocks: []edtypes.Block{
				edtypes.BulletedList{Items: []edtypes.ListItem{{Content: []edtypes.Text{{Content: "a"}}}, {Content: []edtypes.Text{{Content: "b"}}}}},
				edtypes.NumberedList{Items: []edtypes.ListItem{{Content: []edtypes.Text{{Content: "x", Color: edtypes.NewColor("#ff0000")}}}}},
			}},
			"- a\n- b\n\n1. x",
		},
		{
			"unknown blocks are skipped",
			&edtypes.Document{Blocks: []edtypes.Block{edtypes.UnknownBlock{Type: "table"}}},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarkdownString(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
