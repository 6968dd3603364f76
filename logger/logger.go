// Package logger builds the zap loggers used by the cascade tools.
//
// Library packages never log through a global: they receive a
// *zap.Logger at construction and fall back to a no-op logger.
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the verbosity and output format.
type Config struct {
	Level  string `koanf:"level"`  // none, debug, info, warn, error
	Format string `koanf:"format"` // console or json
}

// New returns a logger writing warnings and errors to stderr and
// lower levels to stdout, as configured.
func New(conf Config) (*zap.Logger, error) {
	return newWithWriters(conf, os.Stdout, os.Stderr)
}

func newWithWriters(conf Config, low, high io.Writer) (*zap.Logger, error) {
	if conf.Level == "" || conf.Level == "none" {
		return zap.NewNop(), nil
	}
	level, err := zapcore.ParseLevel(conf.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Level, err)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	switch conf.Format {
	case "", "console":
		encoder = zapcore.NewConsoleEncoder(ec)
	case "json":
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		return nil, fmt.Errorf("invalid log format %q", conf.Format)
	}

	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= level && lvl >= zapcore.WarnLevel
	})
	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= level && lvl < zapcore.WarnLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(low)), lowPriority),
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(high)), highPriority),
	)
	return zap.New(core), nil
}

// OrNop returns log, or a no-op logger when log is nil.
func OrNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
