package host

import (
	"strings"
	"testing"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/exporter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	_, err := NewRegistry(DefaultBindings()[0], DefaultBindings()[0])
	assert.ErrorIs(t, err, ErrDuplicateKind)

	_, err = NewRegistry(Binding{Kind: "broken"})
	assert.Error(t, err)

	r, err := NewRegistry()
	require.NoError(t, err)
	assert.Empty(t, r.List())
}

func TestDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	kinds := make([]Kind, 0)
	for _, b := range r.List() {
		kinds = append(kinds, b.Kind)
	}
	assert.Equal(t, []Kind{KindQuill, KindSlate, KindLexical, KindDocument}, kinds)
	assert.Len(t, r.Views(), 3)
	assert.Equal(t, []string{"document", "lexical", "quill", "slate"}, r.Kinds())

	_, err := r.Get("tiptap")
	assert.ErrorIs(t, err, ErrUnknownKind)

	b, err := r.Get("Quill")
	require.NoError(t, err)
	assert.Equal(t, KindQuill, b.Kind)
}

func TestInitialSnapshotsDecodeToSeed(t *testing.T) {
	r := NewDefaultRegistry()
	for _, b := range r.List() {
		t.Run(string(b.Kind), func(t *testing.T) {
			data, err := r.Initial(b.Kind)
			require.NoError(t, err)

			doc, err := r.Decode(b.Kind, strings.NewReader(string(data)))
			require.NoError(t, err)
			assert.Equal(t, edtypes.NewDocument(), doc)
			assert.Equal(t, "<p>Start writing...</p>", exporter.HTML(doc))
		})
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	_, err := NewDefaultRegistry().Decode("tiptap", strings.NewReader("{}"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}
