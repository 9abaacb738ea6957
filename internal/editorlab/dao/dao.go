// DAO (Data Access Object) - хранение истории экспортов.
//
// Основные возможности:
//   - Открытие базы sqlite с логированием запросов через slog.
//   - Создание, выборка и очистка записей об экспортах.
package dao

import (
	"log/slog"
	"time"

	"github.com/aisa-it/editorlab/internal/editorlab/gormlogger"
	"github.com/glebarez/sqlite"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Models - модели, которые мигрируются при старте.
var Models = []any{&ExportRecord{}}

// Open подключается к sqlite по dsn и мигрирует модели.
func Open(dsn string, paramQueries bool) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.NewGormLogger(slog.Default(), time.Second, paramQueries),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// in-memory база живет, пока открыто хотя бы одно соединение
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxIdleTime(0)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.AutoMigrate(Models...); err != nil {
		return nil, err
	}
	return db, nil
}

func GenUUID() uuid.UUID {
	u2, _ := uuid.NewV4()
	return u2
}
