// FILE: louis-log/type.go
package louislog

import (
	"time"
)

// LogRecord is one logged event. Records are immutable once built; only
// their rendered forms are persisted.
type LogRecord struct {
	Timestamp   time.Time
	Level       LogLevel
	MainProcess string
	SubProcess  string
	Message     string
	Data        any
}

// RenderedRecord holds the sink-ready forms of a record. It is transient,
// handed to the console and both sinks and then discarded.
type RenderedRecord struct {
	TextLine      string
	JSONLine      string
	DataString    string
	FormattedDate string
}

// splitBy is the date granularity used to bucket log files.
type splitBy int

const (
	splitNone splitBy = iota
	splitYear
	splitMonth
	splitDay
	splitHour
	splitMinute
	splitSecond
)

// strategy selects between per-record and accumulated file writes.
type strategy int

const (
	strategySingle strategy = iota
	strategyBatch
)

// ignoreSet is a level membership filter.
type ignoreSet map[LogLevel]struct{}

func (s ignoreSet) contains(level LogLevel) bool {
	_, ok := s[level]
	return ok
}

// reportFunc routes an internal diagnostic record back into the pipeline.
// consoleOnly confines the report to stdout, used when the file sink itself
// is the failing component.
type reportFunc func(level LogLevel, message string, consoleOnly bool)
