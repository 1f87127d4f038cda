package bootstrap

import (
	"time"

	"github.com/BearBump/LogiCalc/config"
)

const (
	DefaultGRPCAddr        = ":50051"
	DefaultHTTPAddr        = ":8080"
	DefaultWorkerHTTPAddr  = ":8082"
	DefaultConsumerGroup   = "quote-worker"
	DefaultRequestedTopic  = "quote.requested"
	DefaultCalculatedTopic = "quote.calculated"

	DefaultHistoryDriver = "postgres"
	DefaultSQLitePath    = "logicalc.db"
	DefaultGeocoder      = "nominatim"
	DefaultRouter        = "osrm"
	DefaultOSRMProfile   = "driving"

	defaultGeocodeCacheTTL  = 24 * time.Hour
	defaultRouteCacheTTL    = time.Hour
	defaultQuoteCacheTTL    = 10 * time.Minute
	defaultRateLimitPerMin  = 60
	defaultProviderTimeout  = 10 * time.Second
	defaultGeocodeDelayMsec = 700
)

// WithDefaults возвращает копию конфига с заполненными пустыми полями.
func WithDefaults(in *config.Config) *config.Config {
	cfg := *in
	c := &cfg.LogiCalc

	if c.GRPCAddr == "" {
		c.GRPCAddr = DefaultGRPCAddr
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = DefaultHTTPAddr
	}
	if c.WorkerHTTPAddr == "" {
		c.WorkerHTTPAddr = DefaultWorkerHTTPAddr
	}
	if c.KafkaConsumerGroup == "" {
		c.KafkaConsumerGroup = DefaultConsumerGroup
	}
	if c.HistoryDriver == "" {
		c.HistoryDriver = DefaultHistoryDriver
	}
	if c.SQLitePath == "" {
		c.SQLitePath = DefaultSQLitePath
	}
	if c.Geocoder == "" {
		c.Geocoder = DefaultGeocoder
	}
	if c.Router == "" {
		c.Router = DefaultRouter
	}
	if c.OSRMProfile == "" {
		c.OSRMProfile = DefaultOSRMProfile
	}
	// 0 — значение по умолчанию, отрицательное отключает паузу, кэш или лимит
	if c.GeocodeDelayMs == 0 {
		c.GeocodeDelayMs = defaultGeocodeDelayMsec
	}
	if c.GeocodeCacheTTLSeconds == 0 {
		c.GeocodeCacheTTLSeconds = int(defaultGeocodeCacheTTL / time.Second)
	}
	if c.RouteCacheTTLSeconds == 0 {
		c.RouteCacheTTLSeconds = int(defaultRouteCacheTTL / time.Second)
	}
	if c.QuoteCacheTTLSeconds == 0 {
		c.QuoteCacheTTLSeconds = int(defaultQuoteCacheTTL / time.Second)
	}
	if c.GeocodeRateLimitPerMinute == 0 {
		c.GeocodeRateLimitPerMinute = defaultRateLimitPerMin
	}
	if c.ProviderTimeoutSeconds <= 0 {
		c.ProviderTimeoutSeconds = int(defaultProviderTimeout / time.Second)
	}

	if cfg.Kafka.QuoteRequestedTopicName == "" {
		cfg.Kafka.QuoteRequestedTopicName = DefaultRequestedTopic
	}
	if cfg.Kafka.QuoteCalculatedTopicName == "" {
		cfg.Kafka.QuoteCalculatedTopicName = DefaultCalculatedTopic
	}
	return &cfg
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func GeocodeDelay(c config.LogiCalcConfig) time.Duration {
	if c.GeocodeDelayMs < 0 {
		return 0
	}
	return time.Duration(c.GeocodeDelayMs) * time.Millisecond
}

func QuoteCacheTTL(c config.LogiCalcConfig) time.Duration {
	return seconds(c.QuoteCacheTTLSeconds)
}
