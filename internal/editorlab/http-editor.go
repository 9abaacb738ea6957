package editorlab

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aisa-it/editorlab/internal/editorlab/apierrors"
	"github.com/aisa-it/editorlab/internal/editorlab/dao"
	"github.com/aisa-it/editorlab/internal/editorlab/editor"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/exporter"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/host"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/markdown"
	"github.com/aisa-it/editorlab/internal/editorlab/export"
	policy "github.com/aisa-it/editorlab/internal/editorlab/redactor-policy"
	stack_error "github.com/aisa-it/editorlab/internal/editorlab/stack-error"
	"github.com/aisa-it/editorlab/internal/editorlab/utils"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const exportIDHeader = "X-Export-Id"

func (s *Services) AddEditorServices(g *echo.Group) {
	g.GET("editors/", s.getEditorList)
	g.GET("editors/:editor/initial/", s.getEditorInitial)

	limiter := s.exportLimiter()
	g.POST("export/:editor/", s.exportDocument, limiter...)
	g.POST("import/:source/", s.importDocument, limiter...)

	g.GET("ws/live/:editor/", s.liveExport)
}

func (s *Services) getEditorList(c echo.Context) error {
	return c.JSON(http.StatusOK, s.registry.List())
}

func (s *Services) getEditorInitial(c echo.Context) error {
	editorKind := c.Param("editor")
	data, err := s.registry.Initial(host.Kind(editorKind))
	if err != nil {
		return EErrorDefined(c, apierrors.ErrUnknownEditor.WithFormattedMessage(editorKind))
	}
	return c.JSONBlob(http.StatusOK, data)
}

// exportDocument разбирает снимок редактора из тела запроса, сохраняет результат в историю и
// отдает его в запрошенном формате.
func (s *Services) exportDocument(c echo.Context) error {
	var req ExportRequest
	if err := bindRequest(c, &req); err != nil {
		return EError(c, err)
	}
	if req.Format == "" {
		req.Format = FormatHTML
	}

	binding, err := s.registry.Get(host.Kind(req.Editor))
	if err != nil {
		return EErrorDefined(c, apierrors.ErrUnknownEditor.WithFormattedMessage(req.Editor))
	}

	doc, err := readSnapshot(c, binding)
	if err != nil {
		return EError(c, err)
	}

	html := s.exporter.HTML(doc)

	var payload []byte
	var mdText string
	switch req.Format {
	case FormatMarkdown:
		mdText, err = exporter.MarkdownString(doc)
		payload = []byte(mdText)
	case FormatPDF:
		var buf bytes.Buffer
		err = export.DocumentToFPDF(doc, &buf, export.WithTitle(req.Title))
		payload = buf.Bytes()
	case FormatJSON:
		payload, err = doc.MarshalJSON()
	default:
		payload = []byte(html)
	}
	if err != nil {
		return EError(c, stack_error.TrackErrorStack(err).AddContext("format", req.Format))
	}

	rec := &dao.ExportRecord{
		Editor:   string(binding.Kind),
		Format:   string(req.Format),
		Document: *doc,
		HTML:     html,
		Preview:  utils.Preview(html),
		Bytes:    len(payload),
	}
	if err := dao.CreateExport(c.Request().Context(), s.db, rec); err != nil {
		return EError(c, stack_error.TrackErrorStack(err).AddContext("editor", binding.Kind))
	}
	s.metrics.ObserveExport(rec.Editor, rec.Format, rec.Bytes)

	id := rec.ID.String()
	c.Response().Header().Set(exportIDHeader, id)
	switch req.Format {
	case FormatMarkdown:
		return c.JSON(http.StatusOK, ExportMarkdownResponse{ID: id, Markdown: mdText})
	case FormatPDF:
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+id+`.pdf"`)
		return c.Blob(http.StatusOK, exportFormats[FormatPDF], payload)
	case FormatJSON:
		return c.JSONBlob(http.StatusOK, payload)
	}
	return c.JSON(http.StatusOK, ExportHTMLResponse{
		ID:     id,
		HTML:   s.publicHTML(html),
		Raw:    exporter.DisplayText(html),
		Blocks: len(doc.Blocks),
	})
}

// importDocument переводит HTML или Markdown в документ. С параметром editor отдает начальный
// снимок этого редактора.
func (s *Services) importDocument(c echo.Context) error {
	var req ImportRequest
	if err := bindRequest(c, &req); err != nil {
		if !isImportSource(c.Param("source")) {
			return EErrorDefined(c, apierrors.ErrUnsupportedSource.WithFormattedMessage(c.Param("source")))
		}
		return EError(c, err)
	}

	body, err := readBody(c)
	if err != nil {
		return EError(c, err)
	}

	var doc *edtypes.Document
	switch req.Source {
	case "markdown":
		doc = markdown.ParseBytes(body)
	default:
		doc, err = editor.ParseDocument(bytes.NewReader(body))
		if err != nil {
			return EErrorDefined(c, apierrors.ErrSnapshotInvalid.WithFormattedMessage(err.Error()))
		}
	}

	if req.Editor != "" {
		binding, err := s.registry.Get(host.Kind(req.Editor))
		if err != nil {
			return EErrorDefined(c, apierrors.ErrUnknownEditor.WithFormattedMessage(req.Editor))
		}
		data, err := binding.Encode(doc)
		if err != nil {
			return EError(c, stack_error.TrackErrorStack(err).AddContext("editor", binding.Kind))
		}
		return c.JSONBlob(http.StatusOK, data)
	}

	return c.JSON(http.StatusOK, ImportResponse{Document: doc, HTML: s.publicHTML(s.exporter.HTML(doc))})
}

func (s *Services) liveExport(c echo.Context) error {
	editorKind := c.Param("editor")
	if _, err := s.registry.Get(host.Kind(editorKind)); err != nil {
		return EErrorDefined(c, apierrors.ErrUnknownEditor.WithFormattedMessage(editorKind))
	}
	if err := s.live.Handle(host.Kind(strings.ToLower(editorKind)), c.Response(), c.Request()); err != nil {
		return EErrorDefined(c, apierrors.ErrLiveSessionsClosed)
	}
	return nil
}

// exportLimiter ограничивает частоту экспорта и импорта по адресу клиента.
func (s *Services) exportLimiter() []echo.MiddlewareFunc {
	if s.cfg.ExportRateLimit <= 0 {
		return nil
	}
	return []echo.MiddlewareFunc{middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(s.cfg.ExportRateLimit),
			Burst:     max(s.cfg.ExportRateBurst, 1),
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			slog.Debug("Export rate limit exceeded", "ip", identifier)
			return EErrorDefined(c, apierrors.ErrTooManyRequests)
		},
	})}
}

// readSnapshot читает тело запроса и разбирает его декодером привязки.
func readSnapshot(c echo.Context, binding host.Binding) (*edtypes.Document, error) {
	body, err := readBody(c)
	if err != nil {
		return nil, err
	}
	doc, err := binding.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, apierrors.ErrSnapshotInvalid.WithFormattedMessage(err.Error())
	}
	return doc, nil
}

func readBody(c echo.Context) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		if errors.Is(err, echo.ErrStatusRequestEntityTooLarge) {
			return nil, apierrors.ErrEntityToLarge
		}
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, apierrors.ErrEmptySnapshot
	}
	return body, nil
}

// publicHTML - разметка для поля html ответа. При PREVIEW_SANITIZE проходит через политику
// экспортера, поле raw всегда содержит исходный результат.
func (s *Services) publicHTML(html string) string {
	if s.cfg.PreviewSanitize {
		return policy.Sanitize(html)
	}
	return html
}

func isImportSource(source string) bool {
	return source == "html" || source == "markdown"
}
