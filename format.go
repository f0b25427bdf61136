// FILE: louis-log/format.go
package louislog

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DateFormatter renders a timestamp with a layout pattern. The core never
// depends on a specific formatting library; the default uses Go layouts.
type DateFormatter interface {
	Format(t time.Time, pattern string) string
}

// goDateFormatter formats timestamps through the standard time layouts.
type goDateFormatter struct{}

func (goDateFormatter) Format(t time.Time, pattern string) string {
	return t.Format(pattern)
}

// jsonRecord is the fixed JSON-lines schema. logData carries the string
// form of the record data so the schema stays stable even when data
// serialization fails.
type jsonRecord struct {
	Date          string `json:"date"`
	FormattedDate string `json:"formattedDate"`
	MainProcess   string `json:"mainProcess"`
	SubProcess    string `json:"subProcess"`
	LogLevel      string `json:"logLevel"`
	LogMessage    string `json:"logMessage"`
	LogData       string `json:"logData"`
}

// formatter renders log records into their text and JSON forms. Settings
// are resolved once at construction and never change afterwards.
type formatter struct {
	showMain  bool
	showSub   bool
	showDate  bool
	showLevel bool
	pattern   string
	dates     DateFormatter
}

func newFormatter(show ShowConfig, dates DateFormatter) *formatter {
	if dates == nil {
		dates = goDateFormatter{}
	}
	return &formatter{
		showMain:  show.MainProcess,
		showSub:   show.SubProcess,
		showDate:  show.Date,
		showLevel: show.Level,
		pattern:   show.DateFormat,
		dates:     dates,
	}
}

// render derives the sink-ready forms of a record. Diagnostics describe
// recovered serialization problems; the caller reports each one as an
// internal error record. render itself never fails.
func (f *formatter) render(rec LogRecord) (RenderedRecord, []string) {
	formattedDate := f.dates.Format(rec.Timestamp, f.pattern)
	dataString, diags := stringifyData(rec.Data)

	var b strings.Builder
	if f.showDate {
		b.WriteByte('[')
		b.WriteString(formattedDate)
		b.WriteString("] ")
	}
	if f.showMain || f.showSub {
		b.WriteByte('<')
		if f.showMain {
			b.WriteString(rec.MainProcess)
		}
		if f.showMain && f.showSub {
			b.WriteByte('.')
		}
		if f.showSub {
			b.WriteString(rec.SubProcess)
		}
		b.WriteString("> ")
	}
	if f.showLevel {
		b.WriteByte('[')
		b.WriteString(rec.Level.String())
		b.WriteString("] ")
	}
	b.WriteString(rec.Message)
	if dataString != "" {
		b.WriteString("\nLog Data:\n")
		b.WriteString(dataString)
	}

	line, err := json.Marshal(jsonRecord{
		Date:          rec.Timestamp.UTC().Format(isoDateFormat),
		FormattedDate: formattedDate,
		MainProcess:   rec.MainProcess,
		SubProcess:    rec.SubProcess,
		LogLevel:      rec.Level.String(),
		LogMessage:    rec.Message,
		LogData:       dataString,
	})
	if err != nil {
		// All fields are plain strings, failure here means a broken
		// runtime; report it and carry an empty JSON object.
		diags = append(diags, fmt.Sprintf("failed to marshal json record: %v", err))
		line = []byte("{}")
	}

	return RenderedRecord{
		TextLine:      b.String(),
		JSONLine:      string(line),
		DataString:    dataString,
		FormattedDate: formattedDate,
	}, diags
}

// dataDumper renders values whose JSON serialization failed, for the
// diagnostic record only. spew never fails on arbitrary values.
var dataDumper = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// stringifyData converts a record's data value to its canonical string
// form. Primitives use their native rendering, structured values a stable
// four-space-indented JSON document. Failures are recovered locally: the
// returned diagnostics describe them and the data string degrades to empty
// or to the datatype-error literal.
func stringifyData(v any) (string, []string) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.FormatInt(int64(val), 10), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case time.Time:
		return val.Format(time.RFC3339Nano), nil
	case error:
		return val.Error(), nil
	case fmt.Stringer:
		return val.String(), nil
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return datatypeErrorText, []string{
			fmt.Sprintf("datatype error: cannot log value of type %T", v),
		}
	}

	out, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return "", []string{
			fmt.Sprintf("failed to serialize log data of type %T: %v, value: %s",
				v, err, strings.TrimSpace(dataDumper.Sdump(v))),
		}
	}
	return string(out), nil
}
