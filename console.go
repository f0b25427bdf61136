// FILE: louis-log/console.go
package louislog

import (
	"io"
	"os"
	"sync"
)

// Decorator applies terminal decoration to a rendered line. The core has
// no dependency on any specific color scheme beyond this interface.
type Decorator interface {
	Decorate(level LogLevel, text string) string
}

// ansiDecorator colors whole lines by level with ANSI escapes.
type ansiDecorator struct {
	disableColors bool
}

func (d ansiDecorator) Decorate(level LogLevel, text string) string {
	if d.disableColors {
		return text
	}
	return level.color() + text + "\033[0m"
}

// consoleSink writes decorated record lines to standard output. Partial
// console failures never propagate; they only surface through the
// internal stderr diagnostics channel.
type consoleSink struct {
	mu        sync.Mutex
	w         io.Writer
	enabled   bool
	ignore    ignoreSet
	decorator Decorator
	onError   func(format string, args ...any)
}

func newConsoleSink(show ShowConfig, ignore ignoreSet, w io.Writer, decorator Decorator, onError func(string, ...any)) *consoleSink {
	if w == nil {
		w = os.Stdout
	}
	if decorator == nil {
		decorator = ansiDecorator{}
	}
	return &consoleSink{
		w:         w,
		enabled:   show.Console,
		ignore:    ignore,
		decorator: decorator,
		onError:   onError,
	}
}

// submit prints one line per record, colorized by level.
func (s *consoleSink) submit(level LogLevel, textLine string) {
	if !s.enabled || s.ignore.contains(level) {
		return
	}

	line := s.decorator.Decorate(level, textLine) + "\n"

	s.mu.Lock()
	_, err := io.WriteString(s.w, line)
	s.mu.Unlock()
	if err != nil && s.onError != nil {
		s.onError("console write failed: %v\n", err)
	}
}
