// FILE: louis-log/storage_test.go
package louislog

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBucketPaths verifies path derivation is a pure function of its inputs
func TestBucketPaths(t *testing.T) {
	ts := time.Date(2024, 6, 20, 9, 5, 7, 0, time.UTC)

	tests := []struct {
		split    splitBy
		wantDir  string
		wantStem string
	}{
		{splitNone, "base", "logs."},
		{splitYear, "base", "2024."},
		{splitMonth, filepath.Join("base", "2024"), "06."},
		{splitDay, filepath.Join("base", "2024", "06"), "20."},
		{splitHour, filepath.Join("base", "2024", "06", "20"), "09."},
		{splitMinute, filepath.Join("base", "2024", "06", "20", "09"), "05."},
		{splitSecond, filepath.Join("base", "2024", "06", "20", "09", "05"), "07."},
	}

	for _, tt := range tests {
		dir, stem, err := bucketPaths("base", ts, tt.split)
		require.NoError(t, err)
		assert.Equal(t, tt.wantDir, dir)
		assert.Equal(t, tt.wantStem, stem)

		// Same inputs, same outputs
		dir2, stem2, err2 := bucketPaths("base", ts, tt.split)
		require.NoError(t, err2)
		assert.Equal(t, dir, dir2)
		assert.Equal(t, stem, stem2)
	}
}

// TestBucketPathsUnknownSplit falls back to the unsplit bucket with an error
func TestBucketPathsUnknownSplit(t *testing.T) {
	dir, stem, err := bucketPaths("base", time.Now(), splitBy(99))
	assert.Error(t, err)
	assert.Equal(t, "base", dir)
	assert.Equal(t, "logs.", stem)
}

// noopReport swallows sink diagnostics in tests that don't inspect them
func noopReport(LogLevel, string, bool) {}

// collectReport records sink diagnostics for assertions
type collectReport struct {
	mu      sync.Mutex
	entries []string
}

func (c *collectReport) report(level LogLevel, message string, consoleOnly bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, level.String()+" "+message)
}

// failingAppender fails every append whose path has the given suffix
type failingAppender struct {
	failSuffix string
	inner      Appender
}

func (a failingAppender) Append(path string, data []byte) error {
	if strings.HasSuffix(path, a.failSuffix) {
		return fmtErrorf("append refused for '%s'", path)
	}
	return a.inner.Append(path, data)
}

func testStorageConfig(dir string) StorageConfig {
	return StorageConfig{
		Path:     dir,
		Text:     true,
		JSON:     true,
		SplitBy:  "none",
		Strategy: "single",
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

func renderedN(n int) RenderedRecord {
	return RenderedRecord{
		TextLine: "text " + string(rune('a'+n)),
		JSONLine: `{"n":"` + string(rune('a'+n)) + `"}`,
	}
}

// TestFileSinkSingleStrategy performs one write per enabled format per record
func TestFileSinkSingleStrategy(t *testing.T) {
	tmpDir := t.TempDir()
	var state State
	sink := newFileSink(testStorageConfig(tmpDir), ignoreSet{}, nil, noopReport, &state)

	for i := 0; i < 3; i++ {
		sink.submit(time.Now(), renderedN(i), LevelInfo)
	}

	textLines := readLines(t, filepath.Join(tmpDir, "logs.txt.log"))
	jsonLines := readLines(t, filepath.Join(tmpDir, "logs.json.log"))
	assert.Equal(t, []string{"text a", "text b", "text c"}, textLines)
	assert.Len(t, jsonLines, 3)
	assert.Equal(t, uint64(0), state.FileFlushes.Load())
}

// TestFileSinkBatchStrategy drains exactly once the buffer reaches the batch size
func TestFileSinkBatchStrategy(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := testStorageConfig(tmpDir)
	cfg.Strategy = "batch"
	cfg.BatchSize = 6

	var state State
	sink := newFileSink(cfg, ignoreSet{}, nil, noopReport, &state)

	for i := 0; i < 6; i++ {
		sink.submit(time.Now(), renderedN(i), LevelInfo)
	}

	assert.Equal(t, uint64(1), state.FileFlushes.Load())

	textLines := readLines(t, filepath.Join(tmpDir, "logs.txt.log"))
	assert.Equal(t, []string{"text a", "text b", "text c", "text d", "text e", "text f"}, textLines)

	jsonLines := readLines(t, filepath.Join(tmpDir, "logs.json.log"))
	assert.Len(t, jsonLines, 6)
}

// TestFileSinkBatchRemainder keeps a partial batch buffered until forced
func TestFileSinkBatchRemainder(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := testStorageConfig(tmpDir)
	cfg.Strategy = "batch"
	cfg.BatchSize = 4

	var state State
	sink := newFileSink(cfg, ignoreSet{}, nil, noopReport, &state)

	for i := 0; i < 6; i++ {
		sink.submit(time.Now(), renderedN(i), LevelInfo)
	}

	// One full batch flushed, two records still pending
	assert.Equal(t, uint64(1), state.FileFlushes.Load())
	assert.Equal(t, []string{"text a", "text b", "text c", "text d"},
		readLines(t, filepath.Join(tmpDir, "logs.txt.log")))

	sink.forceDrain(time.Now())
	assert.Equal(t, uint64(2), state.FileFlushes.Load())
	assert.Equal(t, []string{"text a", "text b", "text c", "text d", "text e", "text f"},
		readLines(t, filepath.Join(tmpDir, "logs.txt.log")))

	// Nothing left, another force is a no-op
	sink.forceDrain(time.Now())
	assert.Equal(t, uint64(2), state.FileFlushes.Load())
}

// TestFileSinkIgnoreLevels drops ignored levels before buffering
func TestFileSinkIgnoreLevels(t *testing.T) {
	tmpDir := t.TempDir()
	var state State
	ignore := ignoreSet{LevelDebug: {}}
	sink := newFileSink(testStorageConfig(tmpDir), ignore, nil, noopReport, &state)

	sink.submit(time.Now(), renderedN(0), LevelDebug)
	sink.submit(time.Now(), renderedN(1), LevelInfo)

	assert.Equal(t, []string{"text b"}, readLines(t, filepath.Join(tmpDir, "logs.txt.log")))
}

// TestFileSinkDisabledFormats is a no-op when neither format is enabled
func TestFileSinkDisabledFormats(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := testStorageConfig(tmpDir)
	cfg.Text = false
	cfg.JSON = false

	var state State
	sink := newFileSink(cfg, ignoreSet{}, nil, noopReport, &state)
	sink.submit(time.Now(), renderedN(0), LevelInfo)

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestFileSinkPartialFailure tolerates one format failing while the other succeeds
func TestFileSinkPartialFailure(t *testing.T) {
	tmpDir := t.TempDir()
	var state State
	var reports collectReport
	sink := newFileSink(testStorageConfig(tmpDir), ignoreSet{},
		failingAppender{failSuffix: "json.log", inner: osAppender{}}, reports.report, &state)

	sink.submit(time.Now(), renderedN(0), LevelInfo)

	// Text write survived
	assert.Equal(t, []string{"text a"}, readLines(t, filepath.Join(tmpDir, "logs.txt.log")))

	// JSON failure was reported, not escalated
	assert.Equal(t, uint64(1), state.FileWriteErrors.Load())
	require.Len(t, reports.entries, 1)
	assert.Contains(t, reports.entries[0], "json log append failed")
}

// TestFileSinkUnknownSplitFallback stores against the unsplit bucket and reports once
func TestFileSinkUnknownSplitFallback(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := testStorageConfig(tmpDir)
	cfg.SplitBy = "fortnight"

	var state State
	var reports collectReport
	sink := newFileSink(cfg, ignoreSet{}, nil, reports.report, &state)

	sink.submit(time.Now(), renderedN(0), LevelInfo)
	sink.submit(time.Now(), renderedN(1), LevelInfo)

	assert.Equal(t, []string{"text a", "text b"}, readLines(t, filepath.Join(tmpDir, "logs.txt.log")))
	require.Len(t, reports.entries, 1)
	assert.Contains(t, reports.entries[0], "invalid split_by")
}

// TestFileSinkConcurrentSubmits exercises the submit path from many
// goroutines at once, including the one-shot split_by report
func TestFileSinkConcurrentSubmits(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := testStorageConfig(tmpDir)
	cfg.SplitBy = "fortnight"
	cfg.Strategy = "batch"
	cfg.BatchSize = 4

	var state State
	var reports collectReport
	sink := newFileSink(cfg, ignoreSet{}, nil, reports.report, &state)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sink.submit(time.Now(), renderedN(n%6), LevelInfo)
		}(i)
	}
	wg.Wait()
	sink.forceDrain(time.Now())

	// The bad split value surfaces exactly once regardless of contention
	require.Len(t, reports.entries, 1)
	assert.Contains(t, reports.entries[0], "invalid split_by")

	// No record was lost to the contention
	assert.Len(t, readLines(t, filepath.Join(tmpDir, "logs.txt.log")), 8)
}

// TestFileSinkDayBucket writes into the date-derived directory tree
func TestFileSinkDayBucket(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := testStorageConfig(tmpDir)
	cfg.SplitBy = "day"

	var state State
	sink := newFileSink(cfg, ignoreSet{}, nil, noopReport, &state)

	ts := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	sink.submit(ts, renderedN(0), LevelInfo)

	assert.Equal(t, []string{"text a"},
		readLines(t, filepath.Join(tmpDir, "2024", "06", "20.txt.log")))
	assert.FileExists(t, filepath.Join(tmpDir, "2024", "06", "20.json.log"))
}
