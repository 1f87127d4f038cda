package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/BearBump/LogiCalc/config"
	"github.com/BearBump/LogiCalc/internal/bootstrap"
	"github.com/BearBump/LogiCalc/internal/broker/kafka"
	"github.com/BearBump/LogiCalc/internal/cache"
	"github.com/BearBump/LogiCalc/internal/cache/rediscache"
	"github.com/BearBump/LogiCalc/internal/integrations/geocoding"
	"github.com/BearBump/LogiCalc/internal/services/processor"
	"github.com/BearBump/LogiCalc/internal/services/quotes"
)

type workerFactories struct {
	newHistory  func(ctx context.Context, cfg *config.Config) (repo quotes.Repository, closeFn func(), err error)
	newProducer func(cfg *config.Config) (quotes.Producer, func())
	newConsumer func(cfg *config.Config) (processor.Consumer, func())
	// кэш и лимитер могут быть nil: воркер работает и без Redis
	newRedis func(cfg *config.Config) (cache.BytesCache, geocoding.MinuteLimiter, func())
}

func defaultWorkerFactories() workerFactories {
	return workerFactories{
		newHistory: func(ctx context.Context, cfg *config.Config) (quotes.Repository, func(), error) {
			h, err := bootstrap.OpenHistoryWithRetry(ctx, cfg, 60*time.Second)
			if err != nil {
				return nil, nil, err
			}
			return h, h.Close, nil
		},
		newProducer: func(cfg *config.Config) (quotes.Producer, func()) {
			p := kafka.NewProducer([]string{cfg.Kafka.Addr()})
			return p, func() { _ = p.Close() }
		},
		newConsumer: func(cfg *config.Config) (processor.Consumer, func()) {
			c := kafka.NewConsumer([]string{cfg.Kafka.Addr()}, cfg.Kafka.QuoteRequestedTopicName, cfg.LogiCalc.KafkaConsumerGroup)
			return c, func() { _ = c.Close() }
		},
		newRedis: func(cfg *config.Config) (cache.BytesCache, geocoding.MinuteLimiter, func()) {
			if cfg.Redis.Host == "" {
				return nil, nil, func() {}
			}
			rc := rediscache.New(cfg.Redis.Addr())
			return rc, rediscache.NewRateLimiter(cfg.Redis.Addr()), func() { _ = rc.Close() }
		},
	}
}

func RunQuoteWorker(ctx context.Context, cfg *config.Config, f workerFactories, httpOpts workerHTTPOpts) error {
	cfg = bootstrap.WithDefaults(cfg)

	repo, closeFn, err := f.newHistory(ctx, cfg)
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}

	providerCache, limiter, closeRedis := f.newRedis(cfg)
	defer closeRedis()

	geocoder, err := bootstrap.NewGeocoder(cfg, providerCache, limiter)
	if err != nil {
		return err
	}
	router, err := bootstrap.NewRouter(cfg, providerCache)
	if err != nil {
		return err
	}

	producer, closeProducer := f.newProducer(cfg)
	defer closeProducer()
	consumer, closeConsumer := f.newConsumer(cfg)
	defer closeConsumer()

	svc := quotes.New(bootstrap.NewCalculator(cfg, geocoder, router), repo).
		WithEvents(producer, cfg.Kafka.QuoteRequestedTopicName, cfg.Kafka.QuoteCalculatedTopicName)
	proc := processor.New(consumer, svc)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	httpErr := make(chan error, 1)
	if httpOpts.httpAddr != "" {
		httpOpts.processor = proc
		httpOpts.cfg = cfg
		go func() {
			httpErr <- runWorkerHTTPServer(ctx, httpOpts)
		}()
	}

	slog.Info("quote worker started",
		"topic", cfg.Kafka.QuoteRequestedTopicName, "group", cfg.LogiCalc.KafkaConsumerGroup,
		"geocoder", cfg.LogiCalc.Geocoder, "router", cfg.LogiCalc.Router)

	runErr := make(chan error, 1)
	go func() {
		runErr <- proc.Run(ctx)
	}()

	select {
	case err = <-runErr:
	case err = <-httpErr:
	}
	// при остановке по сигналу наружу отдаём причину отмены, а не ошибку одного из серверов
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
