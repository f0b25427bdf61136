// FILE: louis-log/compat/fasthttp.go
// Package compat adapts the louis-log logger to third-party logging
// interfaces.
package compat

import (
	"fmt"
	"strings"

	louislog "github.com/Bilbo1Gaming/louis-log"
)

// FastHTTPAdapter wraps a louislog.Logger to implement fasthttp's Logger
// interface.
type FastHTTPAdapter struct {
	logger        *louislog.Logger
	defaultLevel  louislog.LogLevel
	levelDetector func(string) louislog.LogLevel
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(logger *louislog.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		logger:        logger,
		defaultLevel:  louislog.LevelInfo,
		levelDetector: DetectLogLevel,
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the default log level for Printf calls
func WithDefaultLevel(level louislog.LogLevel) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to detect log level from message content
func WithLevelDetector(detector func(string) louislog.LogLevel) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	level := a.defaultLevel
	if a.levelDetector != nil {
		level = a.levelDetector(msg)
	}

	switch level {
	case louislog.LevelDebug:
		a.logger.Debug(msg)
	case louislog.LevelWarn:
		a.logger.Warn(msg)
	case louislog.LevelError:
		a.logger.Error(msg)
	case louislog.LevelFatal:
		a.logger.Fatal(msg)
	default:
		a.logger.Info(msg)
	}
}

// DetectLogLevel attempts to detect log level from message content
func DetectLogLevel(msg string) louislog.LogLevel {
	msgLower := strings.ToLower(msg)

	if strings.Contains(msgLower, "fatal") ||
		strings.Contains(msgLower, "panic") {
		return louislog.LevelFatal
	}

	if strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") {
		return louislog.LevelError
	}

	if strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "deprecated") {
		return louislog.LevelWarn
	}

	if strings.Contains(msgLower, "debug") ||
		strings.Contains(msgLower, "trace") {
		return louislog.LevelDebug
	}

	return louislog.LevelInfo
}
