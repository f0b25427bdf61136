// FILE: louis-log/record.go
package louislog

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// buildRecord stamps a new record with the configured process tags.
func (l *Logger) buildRecord(level LogLevel, message string, data any) LogRecord {
	return LogRecord{
		Timestamp:   time.Now(),
		Level:       level,
		MainProcess: l.cfg.MainProcess,
		SubProcess:  l.cfg.SubProcess,
		Message:     message,
		Data:        data,
	}
}

// dispatch renders a record once and forwards it to the console and both
// sinks, each independently filtered. Records arriving after draining has
// begun are refused.
func (l *Logger) dispatch(level LogLevel, message string, data any) {
	if l.state.Lifecycle.Load() != stateActive {
		return
	}

	rec := l.buildRecord(level, message, data)
	rendered, diags := l.formatter.render(rec)

	l.console.submit(level, rendered.TextLine)
	l.files.submit(rec.Timestamp, rendered, level)
	l.hook.submit(rec.Timestamp, level, message, rendered.DataString, rendered.FormattedDate)

	l.state.Dispatched.Add(1)

	// Recovered serialization problems surface as their own error
	// records. Their data is nil, so they cannot cascade.
	for _, diag := range diags {
		l.report(LevelError, diag, false)
	}
}

// report routes an internal diagnostic record to the console and, unless
// confined, the file sink. Internal reports never enter the webhook sink,
// so a delivery failure can never amplify itself.
func (l *Logger) report(level LogLevel, message string, consoleOnly bool) {
	rec := l.buildRecord(level, message, nil)
	rendered, _ := l.formatter.render(rec)

	l.console.submit(level, rendered.TextLine)

	// During draining, sink failures stay on the console.
	if consoleOnly || l.state.Lifecycle.Load() != stateActive {
		return
	}
	l.files.submit(rec.Timestamp, rendered, level)
}

// internalLog writes logger self-diagnostics to stderr, if enabled.
func (l *Logger) internalLog(format string, args ...any) {
	if !l.cfg.InternalErrorsToStderr {
		return
	}

	if !strings.HasPrefix(format, "louislog: ") {
		format = "louislog: " + format
	}

	fmt.Fprintf(os.Stderr, format, args...)
}
