package editorlab

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aisa-it/editorlab/internal/editorlab/apierrors"
	"github.com/aisa-it/editorlab/internal/editorlab/cronmanager"
	"github.com/aisa-it/editorlab/internal/editorlab/dao"
	stack_error "github.com/aisa-it/editorlab/internal/editorlab/stack-error"
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func (s *Services) AddHistoryServices(g *echo.Group) {
	g.GET("exports/", s.getExportList)
	g.GET("exports/:id/", s.getExport)
}

func (s *Services) getExportList(c echo.Context) error {
	var req HistoryRequest
	if err := bindRequest(c, &req); err != nil {
		return EError(c, err)
	}
	if req.Limit == 0 {
		req.Limit = dao.DefaultHistoryLimit
	}

	records, err := dao.ListExports(c.Request().Context(), s.db, req.Limit)
	if err != nil {
		return EError(c, stack_error.TrackErrorStack(err))
	}
	return c.JSON(http.StatusOK, records)
}

func (s *Services) getExport(c echo.Context) error {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		return EErrorDefined(c, apierrors.ErrBadExportID)
	}

	rec, err := dao.GetExport(c.Request().Context(), s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EErrorDefined(c, apierrors.ErrExportNotFound)
		}
		return EError(c, stack_error.TrackErrorStack(err).AddContext("id", id))
	}
	return c.JSON(http.StatusOK, rec)
}

// historyCleanup удаляет записи старше retention. Запускается по расписанию.
func historyCleanup(db *gorm.DB, retention time.Duration) cronmanager.CronJobFunc {
	return func(ctx context.Context) error {
		n, err := dao.DeleteExportsBefore(ctx, db, time.Now().Add(-retention))
		if err != nil {
			return err
		}
		if n > 0 {
			slog.Info("Export history cleaned", "deleted", n)
		}
		return nil
	}
}
