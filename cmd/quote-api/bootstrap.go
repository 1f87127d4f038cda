package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BearBump/LogiCalc/config"
	quotesapi "github.com/BearBump/LogiCalc/internal/api/quotes_api"
	"github.com/BearBump/LogiCalc/internal/bootstrap"
	"github.com/BearBump/LogiCalc/internal/broker/kafka"
	"github.com/BearBump/LogiCalc/internal/cache"
	"github.com/BearBump/LogiCalc/internal/cache/rediscache"
	"github.com/BearBump/LogiCalc/internal/integrations/geocoding"
	"github.com/BearBump/LogiCalc/internal/logger"
	"github.com/BearBump/LogiCalc/internal/services/quotes"
)

type quoteAPIApp struct {
	ctx      context.Context
	cancel   context.CancelFunc
	opts     quoteAPIOpts
	api      *quotesapi.QuotesAPI
	history  bootstrap.History
	producer *kafka.Producer
	redis    *rediscache.RedisCache
	flushLog func() error
}

func mustBootstrapQuoteAPI() *quoteAPIApp {
	cfgPath := os.Getenv("configPath")
	if cfgPath == "" {
		panic("configPath env var is required")
	}
	swaggerPath := os.Getenv("swaggerPath")
	if swaggerPath == "" {
		panic("swaggerPath env var is required")
	}

	loaded, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}
	cfg := bootstrap.WithDefaults(loaded)

	zl, err := logger.Install(cfg.LogiCalc.AppEnv, cfg.LogiCalc.LogLevel, "quote-api")
	if err != nil {
		panic(fmt.Sprintf("ошибка настройки логгера, %v", err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	history, err := bootstrap.OpenHistoryWithRetry(ctx, cfg, 60*time.Second)
	if err != nil {
		cancel()
		panic(err)
	}

	app := &quoteAPIApp{ctx: ctx, cancel: cancel, history: history, flushLog: zl.Sync}

	// Redis необязателен: без него нет кэшей и общего лимита геокодера.
	var (
		providerCache cache.BytesCache
		geoLimits     geocoding.MinuteLimiter
	)
	if cfg.Redis.Host != "" {
		app.redis = rediscache.New(cfg.Redis.Addr())
		if err := app.redis.Ping(ctx); err != nil {
			slog.Warn("redis is not reachable, caches will miss", "addr", cfg.Redis.Addr(), "error", err.Error())
		}
		providerCache = app.redis
		geoLimits = rediscache.NewRateLimiter(cfg.Redis.Addr())
	}

	geocoder, err := bootstrap.NewGeocoder(cfg, providerCache, geoLimits)
	if err != nil {
		app.Close()
		panic(err)
	}
	router, err := bootstrap.NewRouter(cfg, providerCache)
	if err != nil {
		app.Close()
		panic(err)
	}

	svc := quotes.New(bootstrap.NewCalculator(cfg, geocoder, router), history)
	if app.redis != nil {
		svc.WithCache(app.redis, bootstrap.QuoteCacheTTL(cfg.LogiCalc))
	}
	if cfg.Kafka.Host != "" {
		app.producer = kafka.NewProducer([]string{cfg.Kafka.Addr()})
		svc.WithEvents(app.producer, cfg.Kafka.QuoteRequestedTopicName, cfg.Kafka.QuoteCalculatedTopicName)
	}

	app.api = quotesapi.New(svc)
	app.opts = quoteAPIOpts{
		grpcAddr:    cfg.LogiCalc.GRPCAddr,
		httpAddr:    cfg.LogiCalc.HTTPAddr,
		swaggerPath: swaggerPath,
	}
	return app
}

func (a *quoteAPIApp) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.producer != nil {
		_ = a.producer.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.history != nil {
		a.history.Close()
	}
	if a.flushLog != nil {
		_ = a.flushLog()
	}
}

func (a *quoteAPIApp) Run() error {
	return runQuoteAPI(a.ctx, a.opts, a.api, a.history.Ping)
}
