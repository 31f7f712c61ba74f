// Package logutil builds the zap loggers used by the command line tools.
package logutil

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogLevel is the level used when no level is configured.
var DefaultLogLevel = zapcore.InfoLevel

// DefaultZapLoggerConfig returns a JSON production config writing to stderr.
// Sampling is off so every state transition is logged.
func DefaultZapLoggerConfig() zap.Config {
	return zap.Config{
		Level: zap.NewAtomicLevelAt(DefaultLogLevel),

		Development: false,
		Sampling:    nil,

		Encoding: "json",

		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},

		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
}

// NewLogger builds a logger at level. When file is non-empty log entries
// are appended to it instead of stderr.
func NewLogger(level, file string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logutil: %w", err)
	}

	lcfg := DefaultZapLoggerConfig()
	lcfg.Level = zap.NewAtomicLevelAt(lvl)
	if file != "" {
		lcfg.OutputPaths = []string{file}
	}
	return lcfg.Build()
}
