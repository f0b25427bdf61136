// FILE: louis-log/default.go
package louislog

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Package-level default logger. Init replaces it; the zero default logs
// with the built-in configuration.
var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

// Init initializes or replaces the package-level logger with the given
// configuration. A previously installed logger is shut down first.
func Init(cfg *Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}

	defaultMu.Lock()
	old := defaultLogger
	defaultLogger = l
	defaultMu.Unlock()

	if old != nil {
		return old.Shutdown("reconfigured")
	}
	return nil
}

// std returns the package-level logger, creating the default one lazily.
func std() *Logger {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()
	if l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		// Defaults always validate
		defaultLogger, _ = New(nil)
	}
	return defaultLogger
}

// Shutdown drains the package-level logger.
func Shutdown(reason string, timeout ...time.Duration) error {
	return std().Shutdown(reason, timeout...)
}

// Fatal logs a message at fatal level
func Fatal(message string, data ...any) {
	std().Fatal(message, data...)
}

// Error logs a message at error level
func Error(message string, data ...any) {
	std().Error(message, data...)
}

// Warn logs a message at warning level
func Warn(message string, data ...any) {
	std().Warn(message, data...)
}

// Success logs a message at success level
func Success(message string, data ...any) {
	std().Success(message, data...)
}

// Info logs a message at info level
func Info(message string, data ...any) {
	std().Info(message, data...)
}

// Debug logs a message at debug level
func Debug(message string, data ...any) {
	std().Debug(message, data...)
}

// InstallShutdownHook routes interrupt and termination signals into the
// logger's drain-and-flush routine so buffered records survive a normal
// termination. The returned stop function uninstalls the hook. The host
// stays in charge of actually exiting the process.
func (l *Logger) InstallShutdownHook(signals ...os.Signal) (stop func()) {
	if len(signals) == 0 {
		signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, signals...)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-ch:
			_ = l.Shutdown("signal: " + sig.String())
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
		})
	}
}
