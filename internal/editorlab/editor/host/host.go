// Пакет host описывает редактор, которому принадлежит живой документ, и привязки конкретных
// редакторов (Quill, Slate, Lexical) к модели документа.
//
// Привязки не регистрируются при загрузке пакета: реестр собирается явно через NewRegistry и
// передается сервису, MCP серверу и утилитам.
package host

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
)

// Host - редактор, владеющий документом. Выделение и история правок остаются внутри реализации.
type Host interface {
	// Snapshot возвращает неизменяемую копию текущего документа.
	Snapshot() *edtypes.Document
	// SetMark переключает отметку на текущем выделении.
	SetMark(name string, value any) error
	// SetBlockType меняет тип текущего блока.
	SetBlockType(name string) error
	// OnChange подписывает f на каждое зафиксированное изменение.
	OnChange(f func(*edtypes.Document))
}

type Kind string

const (
	KindQuill    Kind = "quill"
	KindSlate    Kind = "slate"
	KindLexical  Kind = "lexical"
	KindDocument Kind = "document"
)

type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Binding связывает вид редактора с декодером его снимка и кодировщиком начального значения.
type Binding struct {
	Kind  Kind   `json:"kind"`
	Title string `json:"title"`
	// Route - путь страницы редактора. Пустой у привязок без страницы.
	Route string `json:"route,omitempty"`
	Links []Link `json:"links,omitempty"`

	Decode func(io.Reader) (*edtypes.Document, error) `json:"-"`
	Encode func(*edtypes.Document) ([]byte, error)    `json:"-"`
}

var (
	ErrUnknownKind   = errors.New("unknown editor kind")
	ErrDuplicateKind = errors.New("duplicate editor kind")
)

type Registry struct {
	bindings map[Kind]Binding
	order    []Kind
}

// NewRegistry собирает реестр в порядке переданных привязок.
func NewRegistry(bindings ...Binding) (*Registry, error) {
	r := &Registry{bindings: make(map[Kind]Binding, len(bindings))}
	for _, b := range bindings {
		if b.Kind == "" || b.Decode == nil || b.Encode == nil {
			return nil, fmt.Errorf("incomplete binding %q", b.Kind)
		}
		if _, ok := r.bindings[b.Kind]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKind, b.Kind)
		}
		r.bindings[b.Kind] = b
		r.order = append(r.order, b.Kind)
	}
	return r, nil
}

func (r *Registry) Get(kind Kind) (Binding, error) {
	b, ok := r.bindings[Kind(strings.ToLower(string(kind)))]
	if !ok {
		return Binding{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return b, nil
}

// List возвращает привязки в порядке регистрации.
func (r *Registry) List() []Binding {
	res := make([]Binding, 0, len(r.order))
	for _, k := range r.order {
		res = append(res, r.bindings[k])
	}
	return res
}

// Views возвращает привязки, у которых есть страница.
func (r *Registry) Views() []Binding {
	var res []Binding
	for _, b := range r.List() {
		if b.Route != "" {
			res = append(res, b)
		}
	}
	return res
}

// Kinds возвращает отсортированные имена видов, используется в сообщениях об ошибках.
func (r *Registry) Kinds() []string {
	res := make([]string, 0, len(r.order))
	for _, k := range r.order {
		res = append(res, string(k))
	}
	sort.Strings(res)
	return res
}

// Decode разбирает снимок редактора kind.
func (r *Registry) Decode(kind Kind, src io.Reader) (*edtypes.Document, error) {
	b, err := r.Get(kind)
	if err != nil {
		return nil, err
	}
	return b.Decode(src)
}

// Initial возвращает начальный снимок редактора kind для нового документа.
func (r *Registry) Initial(kind Kind) ([]byte, error) {
	b, err := r.Get(kind)
	if err != nil {
		return nil, err
	}
	return b.Encode(edtypes.NewDocument())
}
