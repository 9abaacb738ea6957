package host

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/lexical"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/quill"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/slate"
)

// DefaultBindings возвращает привязки трех редакторов и канонического JSON документа.
func DefaultBindings() []Binding {
	return []Binding{
		{
			Kind:  KindQuill,
			Title: "React-Quill",
			Route: "/quill/",
			Links: []Link{
				{Title: "npm", URL: "https://www.npmjs.com/package/react-quill"},
				{Title: "Website", URL: "https://quilljs.com/"},
				{Title: "GitHub", URL: "https://github.com/slab/quill"},
			},
			Decode: quill.Parse,
			Encode: quill.Serialize,
		},
		{
			Kind:  KindSlate,
			Title: "Slate",
			Route: "/slate/",
			Links: []Link{
				{Title: "npm", URL: "https://www.npmjs.com/package/slate"},
				{Title: "Website", URL: "https://docs.slatejs.org/"},
				{Title: "GitHub", URL: "https://github.com/ianstormtaylor/slate"},
			},
			Decode: slate.Parse,
			Encode: slate.Serialize,
		},
		{
			Kind:  KindLexical,
			Title: "Lexical",
			Route: "/lexical/",
			Links: []Link{
				{Title: "npm", URL: "https://www.npmjs.com/package/lexical"},
				{Title: "Website", URL: "https://lexical.dev/"},
				{Title: "GitHub", URL: "https://github.com/facebook/lexical"},
			},
			Decode: lexical.Parse,
			Encode: lexical.Serialize,
		},
		{
			Kind:   KindDocument,
			Title:  "Document JSON",
			Decode: decodeDocument,
			Encode: encodeDocument,
		},
	}
}

// NewDefaultRegistry - реестр из DefaultBindings.
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultBindings()...)
	if err != nil {
		panic(err)
	}
	return r
}

func decodeDocument(r io.Reader) (*edtypes.Document, error) {
	var doc edtypes.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func encodeDocument(doc *edtypes.Document) ([]byte, error) {
	if doc == nil {
		doc = &edtypes.Document{}
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
