// FILE: louis-log/heartbeat.go
package louislog

import (
	"time"
)

// runHeartbeat periodically emits a pipeline statistics record through the
// regular dispatch path. It exits when shutdown begins.
func (l *Logger) runHeartbeat(interval time.Duration) {
	defer close(l.heartbeatDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.emitHeartbeat()
		case <-l.heartbeatStop:
			return
		}
	}
}

// emitHeartbeat logs one INFO record carrying the pipeline counters.
func (l *Logger) emitHeartbeat() {
	sequence := l.state.HeartbeatSequence.Add(1)

	l.dispatch(LevelInfo, "heartbeat", map[string]any{
		"sequence":           sequence,
		"dispatched":         l.state.Dispatched.Load(),
		"file_flushes":       l.state.FileFlushes.Load(),
		"file_write_errors":  l.state.FileWriteErrors.Load(),
		"webhook_posts":      l.state.WebhookPosts.Load(),
		"webhook_failures":   l.state.WebhookFailures.Load(),
		"webhook_suppressed": l.state.WebhookSuppressed.Load(),
		"overflow_drops":     l.state.OverflowDrops.Load(),
	})
}
