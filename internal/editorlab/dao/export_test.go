package dao

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), true)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func testDocument() edtypes.Document {
	return edtypes.Document{Blocks: []edtypes.Block{
		edtypes.Heading{Level: 2, Content: []edtypes.Text{{Content: "Title", Strong: true}}},
		edtypes.BulletedList{Items: []edtypes.ListItem{{Content: []edtypes.Text{{Content: "a"}}}}},
	}}
}

func TestCreateAndGetExport(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rec := &ExportRecord{Editor: "slate", Format: "html", Document: testDocument(), HTML: "<h2><strong>Title</strong></h2>", Preview: "Title", Bytes: 30}
	require.NoError(t, CreateExport(ctx, db, rec))
	require.False(t, rec.ID.IsNil())

	got, err := GetExport(ctx, db, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "slate", got.Editor)
	assert.Equal(t, rec.HTML, got.HTML)
	require.Len(t, got.Document.Blocks, 2)
	assert.Equal(t, edtypes.HeadingType, got.Document.Blocks[0].BlockType())

	_, err = GetExport(ctx, db, GenUUID())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestListExports(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		rec := &ExportRecord{Editor: "quill", Format: "html", Document: testDocument(), CreatedAt: base.Add(time.Duration(i) * time.Minute), Preview: fmt.Sprint(i)}
		require.NoError(t, CreateExport(ctx, db, rec))
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, DefaultHistoryLimit},
		{"explicit", 5, 5},
		{"over max", 1000, DefaultHistoryLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ListExports(ctx, db, tt.limit)
			require.NoError(t, err)
			assert.Len(t, res, tt.want)
			assert.Equal(t, "24", res[0].Preview)
		})
	}
}

func TestDeleteExportsBefore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, CreateExport(ctx, db, &ExportRecord{Editor: "lexical", Format: "pdf", Document: testDocument(), CreatedAt: time.Now().Add(-2 * time.Hour)}))
	require.NoError(t, CreateExport(ctx, db, &ExportRecord{Editor: "lexical", Format: "pdf", Document: testDocument()}))

	n, err := DeleteExportsBefore(ctx, db, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	res, err := ListExports(ctx, db, 10)
	require.NoError(t, err)
	assert.Len(t, res, 1)
}
