// Управление конфигурацией сервиса из переменных окружения.
// Содержит структуру Config для хранения параметров и функцию ReadConfig для их загрузки.
//
// Основные возможности:
//   - Загрузка конфигурации из переменных окружения с использованием тегов struct.
//   - Значения по умолчанию из тега default.
//   - Преобразование типов данных (string, int, bool, time.Duration).
//   - Маскировка секретных значений (tokens) в логах.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/labstack/gommon/bytes"
	"github.com/robfig/cron/v3"
)

type Config struct {
	ListenAddr  string `env:"LISTEN_ADDR" default:":8080"`
	MetricsAddr string `env:"METRICS_ADDR" default:":2112"`

	DatabaseDSN string `env:"DATABASE_DSN" default:"file::memory:?cache=shared"`

	WebURLRaw string `env:"WEB_URL"`
	WebURL    *url.URL

	BodyLimit      string `env:"BODY_LIMIT" default:"2M"`
	BodyLimitBytes int64
	CORSOrigins    []string `env:"CORS_ORIGINS"`

	HistoryRetention   time.Duration `env:"HISTORY_RETENTION" default:"1h"`
	HistoryCleanupSpec string        `env:"HISTORY_CLEANUP_SPEC" default:"@every 1m"`

	ExportEscapeText    bool `env:"EXPORT_ESCAPE_TEXT"`
	ExportHeadingLevels bool `env:"EXPORT_HEADING_LEVELS"`
	PreviewSanitize     bool `env:"PREVIEW_SANITIZE"`

	// Запросов в секунду с одного адреса на экспорт и импорт, 0 - без ограничения.
	ExportRateLimit int `env:"EXPORT_RATE_LIMIT"`
	ExportRateBurst int `env:"EXPORT_RATE_BURST" default:"10"`

	MCPEnabled bool   `env:"MCP_ENABLED" default:"true"`
	MCPToken   string `env:"MCP_TOKEN"`
}

// ReadConfig загружает конфигурацию из переменных окружения. Ошибка возвращается, если значение не
// удалось разобрать или оно не проходит проверку.
func ReadConfig() (*Config, error) {
	config := &Config{}

	if err := envConfig("env", config); err != nil {
		return nil, err
	}

	if config.WebURLRaw != "" {
		u, err := url.Parse(config.WebURLRaw)
		if err != nil {
			return nil, fmt.Errorf("WEB_URL incorrect: %w", err)
		}
		config.WebURL = u
	}

	limit, err := bytes.Parse(config.BodyLimit)
	if err != nil || limit <= 0 {
		return nil, fmt.Errorf("BODY_LIMIT incorrect: %q", config.BodyLimit)
	}
	config.BodyLimitBytes = limit

	if config.HistoryRetention <= 0 {
		return nil, fmt.Errorf("HISTORY_RETENTION must be positive, got %s", config.HistoryRetention)
	}

	if config.ExportRateLimit < 0 || config.ExportRateBurst < 0 {
		return nil, fmt.Errorf("EXPORT_RATE_LIMIT and EXPORT_RATE_BURST must not be negative")
	}

	if _, err := cron.ParseStandard(config.HistoryCleanupSpec); err != nil {
		return nil, fmt.Errorf("HISTORY_CLEANUP_SPEC incorrect: %w", err)
	}

	return config, nil
}

// Присваивает полям в переданной структуре значения переменных. Название переменной для каждого поля
// лежит в теге key, значение по умолчанию в теге default.
func envConfig(key string, s interface{}) error {
	v := reflect.ValueOf(s).Elem()
	typeParam := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := typeParam.Field(i)
		fEnvTag := field.Tag.Get(key)
		if fEnvTag == "" {
			continue
		}

		raw, source := field.Tag.Get("default"), "DEFAULT"
		if val, ok := lookupEnv(fEnvTag); ok {
			raw, source = val, "ENVIRONMENT"
		}
		if raw == "" {
			continue
		}

		slog.Info("Set config value",
			slog.String("key", typeParam.Name()+"."+field.Name),
			slog.String("value", maskSecret(field.Name, raw)),
			slog.String("source", source),
		)

		if err := setField(v.Field(i), raw); err != nil {
			return fmt.Errorf("%s: %w", fEnvTag, err)
		}
	}
	return nil
}

func setField(f reflect.Value, raw string) error {
	switch f.Interface().(type) {
	case string:
		f.SetString(raw)
	case int:
		n, err := parseInt(raw)
		if err != nil {
			return err
		}
		f.SetInt(int64(n))
	case bool:
		b, err := parseBool(raw)
		if err != nil {
			return err
		}
		f.SetBool(b)
	case time.Duration:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		f.SetInt(int64(d))
	case []string:
		var list []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				list = append(list, part)
			}
		}
		f.Set(reflect.ValueOf(list))
	default:
		return fmt.Errorf("unsupported field type %s", f.Type())
	}
	return nil
}

// Secure tokens in log
func maskSecret(name, value string) string {
	lower := strings.ToLower(name)
	if !strings.Contains(lower, "pass") && !strings.Contains(lower, "secret") && !strings.Contains(lower, "token") {
		return value
	}
	runes := []rune(value)
	if len(runes) <= 2 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
}
