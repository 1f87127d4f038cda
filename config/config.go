package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Redis    RedisConfig    `yaml:"redis"`
	LogiCalc LogiCalcConfig `yaml:"logicalc"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.Username, d.Password, d.Host, d.Port, d.DBName, sslMode)
}

type KafkaConfig struct {
	Host                     string `yaml:"host"`
	Port                     int    `yaml:"port"`
	QuoteRequestedTopicName  string `yaml:"quote_requested_topic_name"`
	QuoteCalculatedTopicName string `yaml:"quote_calculated_topic_name"`
}

func (k KafkaConfig) Addr() string {
	return fmt.Sprintf("%s:%d", k.Host, k.Port)
}

type RedisConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogiCalcConfig struct {
	AppEnv   string `yaml:"app_env"`
	LogLevel string `yaml:"log_level"`

	GRPCAddr           string `yaml:"grpc_addr"`
	HTTPAddr           string `yaml:"http_addr"`
	WorkerHTTPAddr     string `yaml:"worker_http_addr"`
	KafkaConsumerGroup string `yaml:"kafka_consumer_group"`

	// "postgres" | "sqlite"
	HistoryDriver string `yaml:"history_driver"`
	SQLitePath    string `yaml:"sqlite_path"`

	// "nominatim" | "fake"
	Geocoder              string `yaml:"geocoder"`
	NominatimBaseURL      string `yaml:"nominatim_base_url"`
	NominatimUserAgent    string `yaml:"nominatim_user_agent"`
	NominatimCountryCodes string `yaml:"nominatim_country_codes"`

	// "osrm" | "fake"
	Router      string `yaml:"router"`
	OSRMBaseURL string `yaml:"osrm_base_url"`
	OSRMProfile string `yaml:"osrm_profile"`

	MapBaseURL string `yaml:"map_base_url"`

	// 0 — значение по умолчанию, отрицательное отключает паузу, кэш или лимит
	GeocodeDelayMs            int `yaml:"geocode_delay_ms"`
	GeocodeCacheTTLSeconds    int `yaml:"geocode_cache_ttl_seconds"`
	RouteCacheTTLSeconds      int `yaml:"route_cache_ttl_seconds"`
	QuoteCacheTTLSeconds      int `yaml:"quote_cache_ttl_seconds"`
	GeocodeRateLimitPerMinute int `yaml:"geocode_rate_limit_per_minute"`
	ProviderTimeoutSeconds    int `yaml:"provider_timeout_seconds"`
}

func LoadConfig(filename string) (*Config, error) {
	// .env не обязателен; переменные окружения, заданные явно, не перезаписываются.
	_ = godotenv.Load()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return &config, nil
}
