package logger

import (
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// New собирает zap-логгер: JSON для прод-окружений, консольный вывод для development.
func New(appEnv, level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, errors.Wrapf(err, "parse log level %q", level)
		}
		lvl = parsed
	}

	var cfg zap.Config
	switch strings.ToLower(appEnv) {
	case "development", "dev", "local":
		cfg = zap.NewDevelopmentConfig()
	default:
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	z, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build zap logger")
	}
	return z, nil
}

// Install делает zap-бэкенд логгером по умолчанию для slog.
// Вызывающий отвечает за Sync() у возвращённого логгера.
func Install(appEnv, level, name string) (*zap.Logger, error) {
	z, err := New(appEnv, level)
	if err != nil {
		return nil, err
	}
	l := slog.New(zapslog.NewHandler(z.Core()))
	if name != "" {
		l = l.With("service", name)
	}
	slog.SetDefault(l)
	return z, nil
}
