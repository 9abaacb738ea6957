// Пакет содержит определения ошибок API сервиса. Каждая ошибка имеет код, статус HTTP и описание на
// двух языках, что позволяет клиенту показывать понятное сообщение.
//
// Основные возможности:
//   - Каталог ошибок с кодами, сгруппированными по разделам.
//   - Форматирование сообщений с аргументами.
package apierrors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

type DefinedError struct {
	Code       int    `json:"code"`
	StatusCode int    `json:"-"`
	Err        string `json:"error"`
	RuErr      string `json:"ru_error,omitempty"`
}

func (e DefinedError) Error() string {
	return e.Err
}

var (
	// 1*** - editor errors
	ErrUnknownEditor      = DefinedError{Code: 1001, StatusCode: http.StatusNotFound, Err: "unknown editor %s", RuErr: "Редактор %s не поддерживается"}
	ErrSnapshotInvalid    = DefinedError{Code: 1002, StatusCode: http.StatusBadRequest, Err: "editor snapshot is invalid: %s", RuErr: "Некорректный снимок документа: %s"}
	ErrUnsupportedFormat  = DefinedError{Code: 1003, StatusCode: http.StatusBadRequest, Err: "unsupported export format %s", RuErr: "Формат экспорта %s не поддерживается"}
	ErrUnsupportedSource  = DefinedError{Code: 1004, StatusCode: http.StatusBadRequest, Err: "unsupported import source %s", RuErr: "Импорт из %s не поддерживается"}
	ErrEmptySnapshot      = DefinedError{Code: 1005, StatusCode: http.StatusBadRequest, Err: "request body is empty", RuErr: "Пустое тело запроса"}
	ErrEditorOperation    = DefinedError{Code: 1006, StatusCode: http.StatusUnprocessableEntity, Err: "editor operation failed: %s", RuErr: "Не удалось выполнить операцию редактора: %s"}
	ErrExportFailed       = DefinedError{Code: 1007, StatusCode: http.StatusInternalServerError, Err: "export failed", RuErr: "Не удалось выполнить экспорт"}
	ErrLiveSessionsClosed = DefinedError{Code: 1008, StatusCode: http.StatusServiceUnavailable, Err: "live preview is shutting down", RuErr: "Живой предпросмотр недоступен"}

	// 2*** - history errors
	ErrExportNotFound = DefinedError{Code: 2001, StatusCode: http.StatusNotFound, Err: "export not found", RuErr: "Экспорт не найден"}
	ErrBadExportID    = DefinedError{Code: 2002, StatusCode: http.StatusBadRequest, Err: "invalid export id", RuErr: "Некорректный идентификатор экспорта"}

	// 5*** - common errors
	ErrGeneric          = DefinedError{Code: 5000, StatusCode: http.StatusBadRequest, Err: "Something went wrong. Please try again later or contact the support team.", RuErr: "Что-то пошло не так. Повторите попытку позже или обратитесь в службу поддержки"}
	ErrNotFound         = DefinedError{Code: 5001, StatusCode: http.StatusNotFound, Err: "not found", RuErr: "Не найдено"}
	ErrValidation       = DefinedError{Code: 5002, StatusCode: http.StatusBadRequest, Err: "request validation failed: %s", RuErr: "Ошибка проверки запроса: %s"}
	ErrUnauthorized     = DefinedError{Code: 5003, StatusCode: http.StatusUnauthorized, Err: "invalid token", RuErr: "Неверный токен"}
	ErrMethodNotAllowed = DefinedError{Code: 5004, StatusCode: http.StatusMethodNotAllowed, Err: "method not allowed", RuErr: "Метод не поддерживается"}
	ErrEntityToLarge    = DefinedError{Code: 5010, StatusCode: http.StatusRequestEntityTooLarge, Err: "size exceeds the allowed limit", RuErr: "Размер документа превышает допустимый."}
	ErrTooManyRequests  = DefinedError{Code: 5011, StatusCode: http.StatusTooManyRequests, Err: "too many requests", RuErr: "Слишком много запросов"}
)

// All - перечень ошибок каталога, используется при генерации документации.
var All = []DefinedError{
	ErrUnknownEditor, ErrSnapshotInvalid, ErrUnsupportedFormat, ErrUnsupportedSource, ErrEmptySnapshot,
	ErrEditorOperation, ErrExportFailed, ErrLiveSessionsClosed,
	ErrExportNotFound, ErrBadExportID,
	ErrGeneric, ErrNotFound, ErrValidation, ErrUnauthorized, ErrMethodNotAllowed, ErrEntityToLarge, ErrTooManyRequests,
}

func (e DefinedError) WithFormattedMessage(args ...interface{}) DefinedError {
	if len(args) > 0 {
		e.Err = fmt.Sprintf(e.Err, args...)
		e.RuErr = fmt.Sprintf(e.RuErr, args...)
	} else {
		e.Err = strings.Replace(e.Err, " %s", "", -1)
		e.RuErr = strings.Replace(e.RuErr, " %s", "", -1)
		e.Err = strings.Replace(e.Err, ": %s", "", -1)
		e.RuErr = strings.Replace(e.RuErr, ": %s", "", -1)
	}
	return e
}

// MCPError возвращает ошибку в виде результата MCP инструмента. Подсказки добавляются отдельными строками.
func (e DefinedError) MCPError(hints ...string) *mcp.CallToolResult {
	msg := fmt.Sprintf("%d: %s", e.Code, e.Err)
	for _, h := range hints {
		msg += "\n" + h
	}
	return mcp.NewToolResultError(msg)
}
