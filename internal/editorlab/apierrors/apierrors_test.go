package apierrors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodesAreUnique(t *testing.T) {
	seen := make(map[int]string)
	for _, e := range All {
		if prev, ok := seen[e.Code]; ok {
			t.Errorf("code %d used by %q and %q", e.Code, prev, e.Err)
		}
		seen[e.Code] = e.Err
		assert.NotEmpty(t, http.StatusText(e.StatusCode), e.Err)
	}
}

func TestWithFormattedMessage(t *testing.T) {
	e := ErrUnknownEditor.WithFormattedMessage("tiptap")
	assert.Equal(t, "unknown editor tiptap", e.Error())
	assert.Equal(t, "Редактор tiptap не поддерживается", e.RuErr)

	assert.Equal(t, "editor snapshot is invalid", ErrSnapshotInvalid.WithFormattedMessage().Err)
	assert.Equal(t, "unknown editor", ErrUnknownEditor.WithFormattedMessage().Err)
}

func TestJSON(t *testing.T) {
	b, err := json.Marshal(ErrExportNotFound)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":2001,"error":"export not found","ru_error":"Экспорт не найден"}`, string(b))
}

func TestMCPError(t *testing.T) {
	res := ErrUnknownEditor.WithFormattedMessage("tiptap").MCPError("available: lexical, quill, slate")
	require.NotNil(t, res)
	assert.True(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "1001: unknown editor tiptap\navailable: lexical, quill, slate", text.Text)
}
