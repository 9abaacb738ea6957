// Страницы редакторов и таблица сравнения.
//
// Шаблоны и статика встроены в бинарник, ответы сжимаются минификатором.
package editorlab

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"net/http"

	"github.com/aisa-it/editorlab/internal/editorlab/comparison"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/exporter"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/host"
	"github.com/labstack/echo/v4"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

const warningBanner = `⚠️ Some of the packages need to click on "Save as HTML" to work!`

//go:embed views/templates/*.html
var viewTemplates embed.FS

//go:embed views/static
var viewStatic embed.FS

type editorAssets struct {
	Styles  []string
	Scripts []string
}

// Библиотеки, которые страница подключает классическим скриптом. Остальные редакторы грузятся
// ES модулями из своего скрипта.
var cdnAssets = map[host.Kind]editorAssets{
	host.KindQuill: {
		Styles:  []string{"https://cdn.jsdelivr.net/npm/quill@2.0.3/dist/quill.snow.css"},
		Scripts: []string{"https://cdn.jsdelivr.net/npm/quill@2.0.3/dist/quill.js"},
	},
}

type pageData struct {
	Title  string
	Active string
	Nav    []host.Binding
	Banner string
	Styles []string
}

type editorPage struct {
	pageData
	Binding     host.Binding
	Placeholder string
	Scripts     []string
}

type comparisonPage struct {
	pageData
	Table *comparison.Table
}

// ViewRenderer - echo.Renderer поверх html/template с минификацией результата.
type ViewRenderer struct {
	templates *template.Template
	minifier  *minify.M
}

func NewViewRenderer() (*ViewRenderer, error) {
	t, err := template.New("views").
		Funcs(template.FuncMap{
			"stars":       comparison.Stars,
			"ratingColor": comparison.RatingColor,
		}).
		ParseFS(viewTemplates, "views/templates/*.html")
	if err != nil {
		return nil, err
	}

	minifier := minify.New()
	minifier.AddFunc("text/html", html.Minify)

	return &ViewRenderer{templates: t, minifier: minifier}, nil
}

func (vr *ViewRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	var buf bytes.Buffer
	if err := vr.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	return vr.minifier.Minify("text/html", w, &buf)
}

func (s *Services) AddViewServices(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/comparison/")
	})
	e.GET("/comparison/", s.comparisonView)

	for _, b := range s.registry.Views() {
		e.GET(b.Route, s.editorView(b))
	}

	e.StaticFS("/static", echo.MustSubFS(viewStatic, "views/static"))
}

func (s *Services) page(title, active string) pageData {
	return pageData{
		Title:  title,
		Active: active,
		Nav:    s.registry.Views(),
		Banner: warningBanner,
	}
}

func (s *Services) comparisonView(c echo.Context) error {
	return c.Render(http.StatusOK, "comparison.html", comparisonPage{
		pageData: s.page(s.table.Title, "/comparison/"),
		Table:    s.table,
	})
}

func (s *Services) editorView(b host.Binding) echo.HandlerFunc {
	assets := cdnAssets[b.Kind]
	return func(c echo.Context) error {
		p := s.page(b.Title, b.Route)
		p.Styles = assets.Styles
		return c.Render(http.StatusOK, "editor.html", editorPage{
			pageData:    p,
			Binding:     b,
			Placeholder: exporter.EmptyPlaceholder,
			Scripts:     assets.Scripts,
		})
	}
}
