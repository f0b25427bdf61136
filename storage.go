// FILE: storage.go
package louislog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// bucketPaths derives the directory and file-stem a record's timestamp maps
// to under the configured split granularity. It is a pure function of its
// inputs; records in the same bucket share one pair of files.
func bucketPaths(base string, ts time.Time, split splitBy) (dir string, stem string, err error) {
	year := fmt.Sprintf("%04d", ts.Year())
	month := fmt.Sprintf("%02d", int(ts.Month()))
	day := fmt.Sprintf("%02d", ts.Day())
	hour := fmt.Sprintf("%02d", ts.Hour())
	minute := fmt.Sprintf("%02d", ts.Minute())
	second := fmt.Sprintf("%02d", ts.Second())

	switch split {
	case splitNone:
		return base, "logs.", nil
	case splitYear:
		return base, year + ".", nil
	case splitMonth:
		return filepath.Join(base, year), month + ".", nil
	case splitDay:
		return filepath.Join(base, year, month), day + ".", nil
	case splitHour:
		return filepath.Join(base, year, month, day), hour + ".", nil
	case splitMinute:
		return filepath.Join(base, year, month, day, hour), minute + ".", nil
	case splitSecond:
		return filepath.Join(base, year, month, day, hour, minute), second + ".", nil
	default:
		// Deterministic fallback: unknown granularity degrades to the
		// unsplit bucket, the caller reports the error.
		return base, "logs.", fmtErrorf("unknown split granularity %d", int(split))
	}
}

// Appender is the file-append primitive: append bytes to a path, creating
// parent directories when absent. Creating an existing directory is not an
// error.
type Appender interface {
	Append(path string, data []byte) error
}

// osAppender appends through the local filesystem.
type osAppender struct{}

func (osAppender) Append(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmtErrorf("failed to create log directory '%s': %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmtErrorf("failed to open log file '%s': %w", path, err)
	}
	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil {
		return fmtErrorf("failed to append to log file '%s': %w", path, werr)
	}
	if cerr != nil {
		return fmtErrorf("failed to close log file '%s': %w", path, cerr)
	}
	return nil
}

// bufferedRecord is one rendered record awaiting a batched flush.
type bufferedRecord struct {
	text string
	json string
}

// fileSink buffers rendered records and flushes them to date-bucketed
// files. Buffer mutation and the drain decision form one critical section
// per buffer, so a race between reaching the batch size and draining can
// neither duplicate nor drop records.
type fileSink struct {
	mu sync.Mutex

	base      string
	writeText bool
	writeJSON bool
	split     splitBy
	splitErr  error // Unrecognized split_by, guarded by mu, reported once
	strat     strategy
	batchSize int
	ignore    ignoreSet

	appender Appender
	report   reportFunc
	state    *State

	buf []bufferedRecord
}

func newFileSink(cfg StorageConfig, ignore ignoreSet, appender Appender, report reportFunc, state *State) *fileSink {
	if appender == nil {
		appender = osAppender{}
	}
	split, splitErr := parseSplitBy(cfg.SplitBy)
	strat, _ := parseStrategy(cfg.Strategy) // Validated at construction
	return &fileSink{
		base:      cfg.Path,
		writeText: cfg.Text,
		writeJSON: cfg.JSON,
		split:     split,
		splitErr:  splitErr,
		strat:     strat,
		batchSize: int(cfg.BatchSize),
		ignore:    ignore,
		appender:  appender,
		report:    report,
		state:     state,
	}
}

// submit accepts one rendered record for storage. With the single strategy
// the record is written immediately; with the batch strategy it is buffered
// and the buffer drained once it reaches the batch size.
func (s *fileSink) submit(ts time.Time, r RenderedRecord, level LogLevel) {
	if s.ignore.contains(level) {
		return
	}
	if !s.writeText && !s.writeJSON {
		return
	}
	// Check-and-clear shares the buffer's lock so concurrent submits
	// cannot double-report. The report itself runs after the unlock; it
	// re-enters submit and must find both the lock free and the error
	// already cleared.
	s.mu.Lock()
	splitErr := s.splitErr
	s.splitErr = nil
	s.mu.Unlock()
	if splitErr != nil {
		// Storage continues against the fallback bucket.
		s.report(LevelError, splitErr.Error(), false)
	}

	if s.strat == strategySingle {
		s.writeBucket(ts, r.TextLine+"\n", r.JSONLine+"\n")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = append(s.buf, bufferedRecord{text: r.TextLine, json: r.JSONLine})
	if len(s.buf) >= s.batchSize {
		s.drainLocked(ts)
	}
}

// forceDrain flushes any buffered records regardless of buffer length. It
// is the shutdown path and runs synchronously.
func (s *fileSink) forceDrain(ts time.Time) {
	if s.strat != strategyBatch {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.buf) == 0 {
		return
	}
	s.drainLocked(ts)
}

// drainLocked concatenates the buffered lines in FIFO order and appends one
// write per enabled format, bucketed by the draining call's timestamp. The
// buffer is cleared in the same critical section as the write; an ungraceful
// kill between the two can lose at most this one pending batch.
func (s *fileSink) drainLocked(ts time.Time) {
	texts := make([]string, 0, len(s.buf))
	jsons := make([]string, 0, len(s.buf))
	for _, r := range s.buf {
		texts = append(texts, r.text)
		jsons = append(jsons, r.json)
	}
	s.buf = s.buf[:0]

	s.writeBucket(ts, strings.Join(texts, "\n")+"\n", strings.Join(jsons, "\n")+"\n")
	s.state.FileFlushes.Add(1)
}

// writeBucket appends the text and JSON payloads as two independent
// operations. Partial success is tolerated and reported, never escalated.
func (s *fileSink) writeBucket(ts time.Time, textPayload, jsonPayload string) {
	dir, stem, err := bucketPaths(s.base, ts, s.split)
	if err != nil {
		dirFallback, stemFallback, _ := bucketPaths(s.base, ts, splitNone)
		dir, stem = dirFallback, stemFallback
	}

	if s.writeText {
		path := filepath.Join(dir, stem+"txt.log")
		if err := s.appender.Append(path, []byte(textPayload)); err != nil {
			s.state.FileWriteErrors.Add(1)
			s.report(LevelError, fmt.Sprintf("text log append failed for '%s': %v", path, err), true)
		}
	}
	if s.writeJSON {
		path := filepath.Join(dir, stem+"json.log")
		if err := s.appender.Append(path, []byte(jsonPayload)); err != nil {
			s.state.FileWriteErrors.Add(1)
			s.report(LevelError, fmt.Sprintf("json log append failed for '%s': %v", path, err), true)
		}
	}
}
