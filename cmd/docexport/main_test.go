package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		input string
		want  string
	}{
		{
			name:  "slate в html",
			args:  []string{"-from", "slate", "-to", "html"},
			input: `[{"type":"heading-one","children":[{"text":"Title","bold":true}]}]`,
			want:  "<h2><strong>Title</strong></h2>",
		},
		{
			name:  "уровни заголовков",
			args:  []string{"-from", "slate", "-to", "html", "-heading-levels"},
			input: `[{"type":"heading-one","children":[{"text":"Title"}]}]`,
			want:  "<h1>Title</h1>",
		},
		{
			name:  "экранирование",
			args:  []string{"-from", "document", "-escape"},
			input: `{"blocks":[{"type":"paragraph","children":[{"text":"a<b"}]}]}`,
			want:  "<p>a&lt;b</p>",
		},
		{
			name:  "без экранирования",
			args:  []string{"-from", "document"},
			input: `{"blocks":[{"type":"paragraph","children":[{"text":"a<b"}]}]}`,
			want:  "<p>a<b</p>",
		},
		{
			name:  "пустой документ",
			args:  []string{"-from", "document", "-display"},
			input: `{"blocks":[]}`,
			want:  "<empty>",
		},
		{
			name:  "html в json",
			args:  []string{"-from", "html", "-to", "json"},
			input: `<ul><li>a</li></ul>`,
			want:  `{"blocks":[{"type":"bulleted-list","items":[{"children":[{"text":"a"}]}]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, run(tt.args, strings.NewReader(tt.input), &out))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRunToEditorSnapshot(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-from", "markdown", "-to", "quill"}, strings.NewReader("**hi**\n"), &out))
	assert.Contains(t, out.String(), `"ops"`)
	assert.Contains(t, out.String(), `"bold":true`)
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "doc.json")
	out := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(in, []byte(`{"blocks":[{"type":"paragraph","children":[{"text":"x"}]}]}`), 0o644))

	require.NoError(t, run([]string{"-in", in, "-to", "pdf", "-out", out}, nil, nil))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		input string
	}{
		{"неизвестный вход", []string{"-from", "tiptap"}, "{}"},
		{"неизвестный выход", []string{"-to", "docx"}, `{"blocks":[]}`},
		{"document не является выходом редактора", []string{"-to", "document"}, `{"blocks":[]}`},
		{"битый снимок", []string{"-from", "lexical"}, "{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Error(t, run(tt.args, strings.NewReader(tt.input), &out))
		})
	}
}
