package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps LOG_LEVEL values, including the Python-style names the
// deployment stack sets, to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "warning":
		return zapcore.WarnLevel, nil
	case "critical":
		return zapcore.FatalLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return l, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	return l, nil
}

// NewLogger builds the process logger. Debug mode uses zap's development
// console output; otherwise JSON at the configured level.
func NewLogger(c *Config) (*zap.Logger, error) {
	if c.DebugMode {
		return zap.NewDevelopment()
	}

	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
