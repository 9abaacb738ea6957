// Основной пакет сервиса editorlab. Читает конфигурацию, открывает базу истории экспортов и
// запускает веб-сервер до получения SIGINT или SIGTERM.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aisa-it/editorlab/internal/editorlab"
	"github.com/aisa-it/editorlab/internal/editorlab/config"
	"github.com/aisa-it/editorlab/internal/editorlab/dao"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/host"
)

var version string = "DEV"

func main() {
	printVersion := flag.Bool("version", false, "Print version and exit")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	paramQueries := flag.Bool("paramQueries", true, "Mask queries params in log")
	flag.Parse()

	if *printVersion {
		fmt.Println(version)
		return
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "bad log level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceErrorKey,
	})))

	slog.Info("EditorLab start", "version", version)

	cfg, err := config.ReadConfig()
	if err != nil {
		slog.Error("Read config", "err", err)
		os.Exit(1)
	}

	db, err := dao.Open(cfg.DatabaseDSN, *paramQueries)
	if err != nil {
		slog.Error("Fail init DB connection", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := editorlab.Server(ctx, db, cfg, host.NewDefaultRegistry(), version); err != nil {
		slog.Error("Server fail", "err", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

// replaceErrorKey сводит ключи error и err к одному имени.
func replaceErrorKey(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == "error" {
		a.Key = "err"
	}
	return a
}
