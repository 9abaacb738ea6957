// Пакет накапливает цепочку мест, через которые прошла ошибка, и выводит ее в лог одним событием.
//
// Обработчик оборачивает ошибку хранилища или экспортера через TrackErrorStack, добавляет контекст
// (редактор, формат, идентификатор) и возвращает ее наверх. Запись в лог делает слой API.
package stack_error

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/labstack/echo/v4"
)

type TrackerError struct {
	cause error
	// file:line в порядке оборачивания
	trace []string
	// ключи контекста в порядке добавления, первое значение ключа сохраняется
	keys   []string
	values map[string]any
}

// TrackErrorStack оборачивает err и запоминает место вызова. Повторная обертка дополняет
// существующую цепочку и возвращает ту же ошибку.
func TrackErrorStack(err error) *TrackerError {
	var te *TrackerError
	if !errors.As(err, &te) {
		te = &TrackerError{cause: err, values: make(map[string]any)}
	}
	te.trace = append(te.trace, Caller(1))
	return te
}

func (te *TrackerError) AddContext(k string, v any) *TrackerError {
	if _, ok := te.values[k]; !ok {
		te.keys = append(te.keys, k)
		te.values[k] = v
	}
	return te
}

func (te *TrackerError) Value(k string) (any, bool) {
	v, ok := te.values[k]
	return v, ok
}

func (te *TrackerError) Trace() []string {
	return te.trace
}

func (te *TrackerError) Error() string {
	if te.cause != nil {
		return te.cause.Error()
	}
	return "TrackerError"
}

func (te *TrackerError) Unwrap() error {
	return te.cause
}

func (te *TrackerError) attrs() []any {
	res := make([]any, 0, len(te.keys)+1)
	for _, k := range te.keys {
		res = append(res, slog.Any(k, te.values[k]))
	}
	return append(res, slog.Any("trace", te.trace))
}

// Log пишет ошибку одним событием: контекст, цепочка вызовов и данные запроса, если он есть.
func Log(c echo.Context, err error) {
	var attrs []any
	var te *TrackerError
	if errors.As(err, &te) {
		attrs = te.attrs()
	}
	if c != nil {
		attrs = append(attrs,
			slog.String("method", c.Request().Method),
			slog.String("url", c.Request().URL.String()))
	}
	slog.With(attrs...).Error("stack error", "err", err)
}

// Caller возвращает file:line места вызова. Caller(0) - строка, где вызван сам Caller, Caller(1) -
// место вызова текущей функции.
func Caller(skip int) string {
	_, path, no, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(path), no)
}
