package dao

import (
	"context"
	"time"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// ExportRecord - результат одного экспорта документа.
type ExportRecord struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	Editor   string           `json:"editor" gorm:"index"`
	Format   string           `json:"format"`
	Document edtypes.Document `json:"document"`
	HTML     string           `json:"html"`
	Preview  string           `json:"preview"`
	Bytes    int              `json:"bytes"`
}

func (ExportRecord) TableName() string { return "export_records" }

func (r *ExportRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID.IsNil() {
		r.ID, err = uuid.NewV4()
	}
	return
}

func CreateExport(ctx context.Context, db *gorm.DB, rec *ExportRecord) error {
	return db.WithContext(ctx).Create(rec).Error
}

// ListExports возвращает последние записи, новые первыми.
func ListExports(ctx context.Context, db *gorm.DB, limit int) ([]ExportRecord, error) {
	if limit <= 0 || limit > MaxHistoryLimit {
		limit = DefaultHistoryLimit
	}
	var res []ExportRecord
	err := db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&res).Error
	return res, err
}

// GetExport возвращает gorm.ErrRecordNotFound, если записи нет.
func GetExport(ctx context.Context, db *gorm.DB, id uuid.UUID) (*ExportRecord, error) {
	var rec ExportRecord
	if err := db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// DeleteExportsBefore удаляет записи старше t и возвращает их количество.
func DeleteExportsBefore(ctx context.Context, db *gorm.DB, t time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("created_at < ?", t).Delete(&ExportRecord{})
	return res.RowsAffected, res.Error
}
