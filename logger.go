// FILE: louis-log/logger.go
package louislog

import (
	"io"
	"sync"
	"time"
)

// Logger is the public facade of the pipeline. It owns the merged
// configuration, dispatches each record to the console and both sinks, and
// coordinates graceful shutdown. A Logger is safe for concurrent use.
type Logger struct {
	cfg   *Config
	state State

	formatter *formatter
	console   *consoleSink
	files     *fileSink
	hook      *webhookSink

	heartbeatStop chan struct{}
	heartbeatDone chan struct{}
	heartbeatOnce sync.Once
}

// dependencies are the replaceable collaborators of a Logger. Zero values
// select the production implementations.
type dependencies struct {
	dates     DateFormatter
	decorator Decorator
	appender  Appender
	transport Transport
	console   io.Writer
}

// New creates a Logger from the given configuration. A nil configuration
// selects the defaults. A configuration that violates the batch invariant
// or names an unsupported provider is rejected outright; the logger cannot
// operate safely under a contradictory configuration.
func New(cfg *Config) (*Logger, error) {
	return newLogger(cfg, dependencies{})
}

func newLogger(cfg *Config, deps dependencies) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()

	showIgnore, err := parseIgnoreLevels(cfg.Show.IgnoreLevels)
	if err != nil {
		return nil, err
	}
	storageIgnore, err := parseIgnoreLevels(cfg.Storage.IgnoreLevels)
	if err != nil {
		return nil, err
	}

	l := &Logger{
		cfg:           cfg,
		heartbeatStop: make(chan struct{}),
		heartbeatDone: make(chan struct{}),
	}
	l.state.Lifecycle.Store(stateActive)

	l.formatter = newFormatter(cfg.Show, deps.dates)
	l.console = newConsoleSink(cfg.Show, showIgnore, deps.console, deps.decorator, l.internalLog)
	l.files = newFileSink(cfg.Storage, storageIgnore, deps.appender, l.report, &l.state)
	l.hook = newWebhookSink(cfg.Webhook, cfg.MainProcess, cfg.SubProcess, deps.transport, l.report, &l.state)

	if cfg.Heartbeat.Enabled {
		go l.runHeartbeat(time.Duration(cfg.Heartbeat.IntervalS) * time.Second)
	} else {
		close(l.heartbeatDone)
	}

	return l, nil
}

// GetConfig returns a copy of the immutable configuration.
func (l *Logger) GetConfig() *Config {
	return l.cfg.Clone()
}

// Fatal logs a message at fatal level. It reports, it does not terminate;
// the process-exit decision belongs to the host.
func (l *Logger) Fatal(message string, data ...any) {
	l.dispatch(LevelFatal, message, firstData(data))
}

// Error logs a message at error level.
func (l *Logger) Error(message string, data ...any) {
	l.dispatch(LevelError, message, firstData(data))
}

// Warn logs a message at warning level.
func (l *Logger) Warn(message string, data ...any) {
	l.dispatch(LevelWarn, message, firstData(data))
}

// Success logs a message at success level.
func (l *Logger) Success(message string, data ...any) {
	l.dispatch(LevelSuccess, message, firstData(data))
}

// Info logs a message at info level.
func (l *Logger) Info(message string, data ...any) {
	l.dispatch(LevelInfo, message, firstData(data))
}

// Debug logs a message at debug level.
func (l *Logger) Debug(message string, data ...any) {
	l.dispatch(LevelDebug, message, firstData(data))
}

// firstData collapses the optional data arguments to the record's single
// data value.
func firstData(data []any) any {
	switch len(data) {
	case 0:
		return nil
	case 1:
		return data[0]
	default:
		return data
	}
}

// Shutdown drains both sinks and stops the logger. New records are refused
// the moment draining begins; buffered records are flushed synchronously,
// bounded by the timeout (default 5s). Shutdown is idempotent: repeated
// calls return nil without flushing again.
func (l *Logger) Shutdown(reason string, timeout ...time.Duration) error {
	if !l.state.Lifecycle.CompareAndSwap(stateActive, stateDraining) {
		return nil
	}

	l.stopHeartbeat()

	effectiveTimeout := defaultShutdownTimeout
	if len(timeout) > 0 {
		effectiveTimeout = timeout[0]
	}

	if reason != "" {
		rec := l.buildRecord(LevelInfo, "shutting down: "+reason, nil)
		rendered, _ := l.formatter.render(rec)
		l.console.submit(LevelInfo, rendered.TextLine)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		l.files.forceDrain(time.Now())
		l.hook.forceFlush()
	}()

	var drainErr error
	select {
	case <-done:
	case <-time.After(effectiveTimeout):
		drainErr = fmtErrorf("shutdown drain did not complete within %v", effectiveTimeout)
	}

	l.state.Lifecycle.Store(stateStopped)
	return drainErr
}

// stopHeartbeat signals the heartbeat goroutine and waits for it to exit.
func (l *Logger) stopHeartbeat() {
	l.heartbeatOnce.Do(func() {
		close(l.heartbeatStop)
	})
	<-l.heartbeatDone
}
