// FILE: utility.go
package louislog

import (
	"fmt"
	"strings"
)

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "louislog: ") {
		format = "louislog: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// parseSplitBy converts a split granularity name to its constant.
func parseSplitBy(s string) (splitBy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return splitNone, nil
	case "year":
		return splitYear, nil
	case "month":
		return splitMonth, nil
	case "day":
		return splitDay, nil
	case "hour":
		return splitHour, nil
	case "minute":
		return splitMinute, nil
	case "second":
		return splitSecond, nil
	default:
		return splitNone, fmtErrorf("invalid split_by: '%s' (use none, year, month, day, hour, minute, or second)", s)
	}
}

// parseStrategy converts a storage strategy name to its constant.
func parseStrategy(s string) (strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single":
		return strategySingle, nil
	case "batch":
		return strategyBatch, nil
	default:
		return strategySingle, fmtErrorf("invalid strategy: '%s' (use single or batch)", s)
	}
}
