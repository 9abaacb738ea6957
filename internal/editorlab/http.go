// Пакет editorlab - веб-сервис лаборатории редакторов форматированного текста: страницы трех
// редакторов и таблицы сравнения, API экспорта и импорта документов, живой предпросмотр, история
// экспортов и MCP инструменты.
//
// Основные возможности:
//   - Экспорт снимков Quill, Slate и Lexical в HTML, Markdown, PDF и канонический JSON.
//   - Импорт HTML и Markdown в документ и в начальный снимок редактора.
//   - Живой предпросмотр через вебсокет.
//   - История экспортов с очисткой по расписанию.
package editorlab

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aisa-it/editorlab/internal/editorlab/apierrors"
	"github.com/aisa-it/editorlab/internal/editorlab/comparison"
	"github.com/aisa-it/editorlab/internal/editorlab/config"
	"github.com/aisa-it/editorlab/internal/editorlab/cronmanager"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/exporter"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/host"
	"github.com/aisa-it/editorlab/internal/editorlab/live"
	"github.com/aisa-it/editorlab/internal/editorlab/mcp"
	"github.com/aisa-it/editorlab/internal/editorlab/mcp/tools"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

type Services struct {
	db       *gorm.DB
	cfg      *config.Config
	registry *host.Registry
	exporter *exporter.Exporter
	metrics  *Metrics
	live     *live.Service
	table    *comparison.Table
	version  string
}

// ServerHeader middleware adds a `Server` header to the response.
func ServerHeader(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderServer, "EditorLab")
		return next(c)
	}
}

// NewServices собирает зависимости сервиса. Экспортер настраивается флагами конфигурации.
func NewServices(db *gorm.DB, cfg *config.Config, registry *host.Registry, version string) (*Services, error) {
	metrics, err := NewMetrics()
	if err != nil {
		return nil, err
	}
	table, err := comparison.Load()
	if err != nil {
		return nil, err
	}

	exp := exporter.New(ExporterOptions(cfg)...)
	liveService := live.NewService(registry, exp, cfg.BodyLimitBytes, metrics.LiveSessions,
		live.WithOriginPatterns(websocketOrigins(cfg)...))
	return &Services{
		db:       db,
		cfg:      cfg,
		registry: registry,
		exporter: exp,
		metrics:  metrics,
		live:     liveService,
		table:    table,
		version:  version,
	}, nil
}

// ExporterOptions переводит флаги EXPORT_* в опции экспортера.
func ExporterOptions(cfg *config.Config) []exporter.Option {
	var opts []exporter.Option
	if cfg.ExportEscapeText {
		opts = append(opts, exporter.WithEscaping())
	}
	if cfg.ExportHeadingLevels {
		opts = append(opts, exporter.WithHeadingLevels())
	}
	return opts
}

// Echo создает HTTP сервер со всеми маршрутами.
func (s *Services) Echo() (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler

	renderer, err := NewViewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	// Global middlewares
	e.Use(ServerHeader)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/api/_health/"
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, "err", v.Error)
			}
			slog.Debug("Request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  s.corsOrigins(),
		ExposeHeaders: []string{exportIDHeader},
	}))
	e.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Limit: s.cfg.BodyLimit,
	}))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level:     5,
		MinLength: 2048,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/api/ws/live/:editor/" ||
				strings.HasPrefix(c.Request().URL.Path, "/api/mcp")
		},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsNamespace,
		Registerer: s.metrics.Registry,
	}))
	e.Pre(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/api/mcp") ||
				strings.HasPrefix(path, "/static/")
		},
	}))

	e.Validator = NewRequestValidator()

	apiGroup := e.Group("/api/")
	s.AddEditorServices(apiGroup)
	s.AddHistoryServices(apiGroup)

	// Version endpoint
	apiGroup.GET("version/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"version":        s.version,
			"editors":        s.registry.Kinds(),
			"mcp":            s.cfg.MCPEnabled,
			"escape_text":    s.cfg.ExportEscapeText,
			"heading_levels": s.cfg.ExportHeadingLevels,
		})
	})

	// Health endpoint
	apiGroup.GET("_health/", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if s.cfg.MCPEnabled {
		mcpHandler := mcp.NewMCPServer(&tools.Deps{
			Registry: s.registry,
			Exporter: s.exporter,
			Table:    s.table,
		}, s.version)
		e.Any("/api/mcp", mcpHandler, s.mcpAuth)
	}

	s.AddViewServices(e)

	return e, nil
}

// websocketOrigins возвращает хосты WEB_URL и CORS_ORIGINS для проверки Origin у вебсокета.
// Без настроек подключаться можно только со страниц самого сервиса.
func websocketOrigins(cfg *config.Config) []string {
	var hosts []string
	if cfg.WebURL != nil && cfg.WebURL.Host != "" {
		hosts = append(hosts, cfg.WebURL.Host)
	}
	for _, origin := range cfg.CORSOrigins {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			hosts = append(hosts, u.Host)
			continue
		}
		hosts = append(hosts, origin)
	}
	return hosts
}

func (s *Services) corsOrigins() []string {
	if len(s.cfg.CORSOrigins) == 0 {
		return []string{"*"}
	}
	return s.cfg.CORSOrigins
}

// mcpAuth проверяет Bearer токен, если задан MCP_TOKEN.
func (s *Services) mcpAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.cfg.MCPToken == "" {
			return next(c)
		}
		token, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
		if !ok || token != s.cfg.MCPToken {
			return EErrorDefined(c, apierrors.ErrUnauthorized)
		}
		return next(c)
	}
}

func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var definedErr apierrors.DefinedError
	if errors.As(err, &definedErr) {
		EErrorDefined(c, definedErr)
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound:
			EErrorDefined(c, apierrors.ErrNotFound)
		case http.StatusMethodNotAllowed:
			EErrorDefined(c, apierrors.ErrMethodNotAllowed)
		case http.StatusRequestEntityTooLarge:
			EErrorDefined(c, apierrors.ErrEntityToLarge)
		default:
			EErrorMsgStatus(c, he, he.Code)
		}
		return
	}

	slog.Error("Unhandled error in endpoint", "url", c.Request().URL, "err", err)
	EErrorMsgStatus(c, nil, http.StatusInternalServerError)
}

// Server запускает сервис и сервер метрик и блокируется до отмены ctx. После отмены оба сервера
// останавливаются, задачи планировщика дожидаются завершения, вебсокеты закрываются.
func Server(ctx context.Context, db *gorm.DB, cfg *config.Config, registry *host.Registry, version string) error {
	if !cfg.ExportEscapeText {
		slog.Warn("Export text escaping disabled, editor text is written to HTML as is")
	}

	s, err := NewServices(db, cfg, registry, version)
	if err != nil {
		return err
	}

	e, err := s.Echo()
	if err != nil {
		return err
	}

	cronManager := cronmanager.NewCronManager(cronmanager.JobRegistry{
		"history_cleanup": cronmanager.Job{
			Func:     historyCleanup(db, cfg.HistoryRetention),
			Schedule: cfg.HistoryCleanupSpec,
		},
	})
	if err := cronManager.LoadJobs(); err != nil {
		return err
	}
	cronManager.Start()

	// Prometheus metrics
	metrics := echo.New()
	metrics.HideBanner = true
	metrics.HidePort = true
	metrics.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: s.metrics.Registry,
	}))

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		slog.Info("Start server", "addr", cfg.ListenAddr, "version", version)
		if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		if err := metrics.Start(cfg.MetricsAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down gracefully, press Ctrl+C again to force")

		s.live.CloseAll()
		cronManager.Stop()

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(e.Shutdown(sctx), metrics.Shutdown(sctx))
	})

	return eg.Wait()
}
