// Ответы API с ошибками. Все ошибки уходят клиенту в формате каталога apierrors, внутренние
// подробности остаются в логе.
package editorlab

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aisa-it/editorlab/internal/editorlab/apierrors"
	stack_error "github.com/aisa-it/editorlab/internal/editorlab/stack-error"
	"github.com/labstack/echo/v4"
)

// EError отдает ошибку каталога как есть, остальные логирует и заменяет на ErrGeneric.
func EError(c echo.Context, err error) error {
	var definedErr apierrors.DefinedError
	if errors.As(err, &definedErr) {
		return EErrorDefined(c, definedErr)
	}

	var trackerErr *stack_error.TrackerError
	if errors.As(err, &trackerErr) {
		stack_error.Log(c, err)
	} else {
		logAPIError(c, err, http.StatusBadRequest)
	}
	return EErrorDefined(c, apierrors.ErrGeneric)
}

// EErrorMsgStatus отдает ErrGeneric со статусом status и текстом err. 404 не логируется.
func EErrorMsgStatus(c echo.Context, err error, status int) error {
	if status == http.StatusRequestEntityTooLarge {
		return EErrorDefined(c, apierrors.ErrEntityToLarge)
	}

	er := apierrors.ErrGeneric
	er.StatusCode = status
	if status != http.StatusNotFound || err == nil {
		logAPIError(c, err, status)
	}
	if err != nil {
		er.Err = err.Error()
	}
	return EErrorDefined(c, er)
}

// EErrorDefined отдает ошибку каталога. Если статус не задан, используется 400 Bad Request.
func EErrorDefined(c echo.Context, err apierrors.DefinedError) error {
	if http.StatusText(err.StatusCode) == "" {
		err.StatusCode = http.StatusBadRequest
	}
	return c.JSON(err.StatusCode, err)
}

func logAPIError(c echo.Context, err error, status int) {
	attrs := []any{
		"method", c.Request().Method,
		"url", c.Request().URL,
		slog.Int("status", status),
		slog.String("caller", stack_error.Caller(2)),
	}
	if editor := c.Param("editor"); editor != "" {
		attrs = append(attrs, "editor", editor)
	}
	if err == nil {
		slog.Error("Unknown API error", attrs...)
		return
	}
	slog.Error("API error", append(attrs, "err", err)...)
}
