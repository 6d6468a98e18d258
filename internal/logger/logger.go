// Package logger builds the zap loggers used by the command line programs.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Encodings accepted by New.
const (
	EncodingJSON    = "json"
	EncodingConsole = "console"
)

// New returns a production logger writing to stderr at the given level
// ("debug", "info", "warn", "error"). An empty level means info.
func New(level, encoding string) (*zap.Logger, error) {
	config, err := Config(level, encoding)
	if err != nil {
		return nil, err
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// Config is the zap configuration New builds from.
func Config(level, encoding string) (zap.Config, error) {
	zapLevel := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return zap.Config{}, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		zapLevel = parsed
	}

	switch encoding {
	case "":
		encoding = EncodingJSON
	case EncodingJSON, EncodingConsole:
	default:
		return zap.Config{}, fmt.Errorf("invalid log encoding %q", encoding)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	if encoding == EncodingConsole {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	return zap.Config{
		Level:       zap.NewAtomicLevelAt(zapLevel),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}, nil
}
