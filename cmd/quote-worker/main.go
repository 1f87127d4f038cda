package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/BearBump/LogiCalc/config"
	"github.com/BearBump/LogiCalc/internal/bootstrap"
	"github.com/BearBump/LogiCalc/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig(os.Getenv("configPath"))
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}
	cfg = bootstrap.WithDefaults(cfg)

	zl, err := logger.Install(cfg.LogiCalc.AppEnv, cfg.LogiCalc.LogLevel, "quote-worker")
	if err != nil {
		panic(fmt.Sprintf("ошибка настройки логгера, %v", err))
	}
	defer func() { _ = zl.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = RunQuoteWorker(ctx, cfg, defaultWorkerFactories(), workerHTTPOpts{
		httpAddr:    cfg.LogiCalc.WorkerHTTPAddr,
		swaggerPath: os.Getenv("swaggerPath"),
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("quote-worker stopped", "error", err.Error())
		panic(err)
	}
}
