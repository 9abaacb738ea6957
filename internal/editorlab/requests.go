// Структуры запросов API и их привязка к параметрам пути и строки запроса.
package editorlab

import (
	"github.com/aisa-it/editorlab/internal/editorlab/apierrors"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
	"github.com/labstack/echo/v4"
)

type ExportFormat string

const (
	FormatHTML     ExportFormat = "html"
	FormatMarkdown ExportFormat = "markdown"
	FormatPDF      ExportFormat = "pdf"
	FormatJSON     ExportFormat = "json"
)

// exportFormats - поддерживаемые форматы и их content type.
var exportFormats = map[ExportFormat]string{
	FormatHTML:     echo.MIMEApplicationJSON,
	FormatMarkdown: echo.MIMEApplicationJSON,
	FormatPDF:      "application/pdf",
	FormatJSON:     echo.MIMEApplicationJSON,
}

type ExportRequest struct {
	Editor string       `param:"editor" validate:"required"`
	Format ExportFormat `query:"format" validate:"omitempty,format"`
	Title  string       `query:"title" validate:"max=200"`
}

type ImportRequest struct {
	Source string `param:"source" validate:"required,oneof=html markdown"`
	Editor string `query:"editor" validate:"omitempty,oneof=quill slate lexical document"`
}

type HistoryRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

type ExportHTMLResponse struct {
	ID     string `json:"id"`
	HTML   string `json:"html"`
	Raw    string `json:"raw"`
	Blocks int    `json:"blocks"`
}

type ExportMarkdownResponse struct {
	ID       string `json:"id"`
	Markdown string `json:"markdown"`
}

type ImportResponse struct {
	Document *edtypes.Document `json:"document"`
	HTML     string            `json:"html"`
}

// bindRequest заполняет req из параметров пути и строки запроса. Тело не читается: в нем лежит
// снимок редактора.
func bindRequest(c echo.Context, req any) error {
	b := &echo.DefaultBinder{}
	if err := b.BindPathParams(c, req); err != nil {
		return apierrors.ErrValidation.WithFormattedMessage(err.Error())
	}
	if err := b.BindQueryParams(c, req); err != nil {
		return apierrors.ErrValidation.WithFormattedMessage(err.Error())
	}
	return c.Validate(req)
}
