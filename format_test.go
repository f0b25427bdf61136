// FILE: louis-log/format_test.go
package louislog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTimestamp = time.Date(2024, 6, 20, 10, 30, 45, 0, time.UTC)

func testRecord(level LogLevel, message string, data any) LogRecord {
	return LogRecord{
		Timestamp:   testTimestamp,
		Level:       level,
		MainProcess: "app",
		SubProcess:  "core",
		Message:     message,
		Data:        data,
	}
}

// TestRenderTextSegments verifies segment ordering and conditional inclusion
func TestRenderTextSegments(t *testing.T) {
	tests := []struct {
		name string
		show ShowConfig
		want string
	}{
		{
			name: "all segments",
			show: ShowConfig{MainProcess: true, SubProcess: true, Date: true, DateFormat: "2006-01-02", Level: true},
			want: "[2024-06-20] <app.core> [INFO] hello",
		},
		{
			name: "no date",
			show: ShowConfig{MainProcess: true, SubProcess: true, DateFormat: "2006-01-02", Level: true},
			want: "<app.core> [INFO] hello",
		},
		{
			name: "main process only",
			show: ShowConfig{MainProcess: true, DateFormat: "2006-01-02", Level: true},
			want: "<app> [INFO] hello",
		},
		{
			name: "sub process only",
			show: ShowConfig{SubProcess: true, DateFormat: "2006-01-02", Level: true},
			want: "<core> [INFO] hello",
		},
		{
			name: "message only",
			show: ShowConfig{DateFormat: "2006-01-02"},
			want: "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFormatter(tt.show, nil)
			rendered, diags := f.render(testRecord(LevelInfo, "hello", nil))
			assert.Empty(t, diags)
			assert.Equal(t, tt.want, rendered.TextLine)
		})
	}
}

// TestRenderDataBlock appends the data string below the message
func TestRenderDataBlock(t *testing.T) {
	f := newFormatter(ShowConfig{DateFormat: "2006-01-02", Level: true}, nil)

	rendered, diags := f.render(testRecord(LevelWarn, "payload", map[string]any{"a": 1}))
	require.Empty(t, diags)
	assert.Equal(t, "[WARN] payload\nLog Data:\n{\n    \"a\": 1\n}", rendered.TextLine)
}

// TestRenderJSONLine verifies the fixed JSON-lines schema
func TestRenderJSONLine(t *testing.T) {
	f := newFormatter(ShowConfig{Date: true, DateFormat: "2006-01-02 15:04:05", Level: true, MainProcess: true, SubProcess: true}, nil)

	rendered, diags := f.render(testRecord(LevelError, "broken", map[string]any{"a": 1}))
	require.Empty(t, diags)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(rendered.JSONLine), &decoded))

	assert.Equal(t, "2024-06-20T10:30:45.000Z", decoded["date"])
	assert.Equal(t, "2024-06-20 10:30:45", decoded["formattedDate"])
	assert.Equal(t, "app", decoded["mainProcess"])
	assert.Equal(t, "core", decoded["subProcess"])
	assert.Equal(t, "ERROR", decoded["logLevel"])
	assert.Equal(t, "broken", decoded["logMessage"])
	assert.Equal(t, "{\n    \"a\": 1\n}", decoded["logData"])
}

// TestStringifyData covers the value conversion rules
func TestStringifyData(t *testing.T) {
	tests := []struct {
		name      string
		data      any
		want      string
		wantDiags int
	}{
		{name: "nil", data: nil, want: ""},
		{name: "string", data: "plain", want: "plain"},
		{name: "int", data: 42, want: "42"},
		{name: "float", data: 2.5, want: "2.5"},
		{name: "bool", data: true, want: "true"},
		{name: "error", data: assert.AnError, want: assert.AnError.Error()},
		{name: "map", data: map[string]any{"a": 1}, want: "{\n    \"a\": 1\n}"},
		{name: "slice", data: []int{1, 2}, want: "[\n    1,\n    2\n]"},
		{name: "func is a datatype error", data: func() {}, want: datatypeErrorText, wantDiags: 1},
		{name: "chan is a datatype error", data: make(chan int), want: datatypeErrorText, wantDiags: 1},
		{name: "unserializable degrades to empty", data: map[string]any{"x": func() {}}, want: "", wantDiags: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := stringifyData(tt.data)
			assert.Equal(t, tt.want, got)
			assert.Len(t, diags, tt.wantDiags)
		})
	}
}

// TestRenderDeterminism ensures identical inputs produce identical output
func TestRenderDeterminism(t *testing.T) {
	f := newFormatter(DefaultConfig().Show, nil)
	rec := testRecord(LevelInfo, "same", map[string]any{"b": 2, "a": 1})

	first, _ := f.render(rec)
	second, _ := f.render(rec)
	assert.Equal(t, first, second)
}
