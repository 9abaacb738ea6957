package gormlogger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newTestLogger(buf *bytes.Buffer, slow time.Duration) *GormLogger {
	h := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewGormLogger(slog.New(h), slow, true)
}

func TestTrace(t *testing.T) {
	sql := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("error", func(t *testing.T) {
		var buf bytes.Buffer
		newTestLogger(&buf, 0).Trace(context.Background(), time.Now(), sql, errors.New("boom"))
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "err=boom")
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		var buf bytes.Buffer
		newTestLogger(&buf, 0).Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
		assert.Contains(t, buf.String(), "level=DEBUG")
	})

	t.Run("slow", func(t *testing.T) {
		var buf bytes.Buffer
		newTestLogger(&buf, time.Nanosecond).Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "SLOW SQL")
	})
}

func TestParamsFilter(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, 0)
	_, params := l.ParamsFilter(context.Background(), "SELECT ?", 1)
	assert.Nil(t, params)

	l.ParameterizedQueries = false
	_, params = l.ParamsFilter(context.Background(), "SELECT ?", 1)
	assert.Equal(t, []interface{}{1}, params)
}
