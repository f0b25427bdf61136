// FILE: louis-log/level.go
package louislog

import (
	"strings"
)

// String returns the uppercase name of the level as it appears in rendered
// records.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelSuccess:
		return "SUCCESS"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	case LevelFatalRateLimited:
		return "FATAL_RATE_LIMITED"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to its LogLevel constant.
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "SUCCESS":
		return LevelSuccess, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	case "FATAL":
		return LevelFatal, nil
	case "FATAL_RATE_LIMITED":
		return LevelFatalRateLimited, nil
	default:
		return LevelDebug, fmtErrorf("invalid level: '%s'", level)
	}
}

// color returns the ANSI escape that decorates console lines at this level.
func (l LogLevel) color() string {
	switch l {
	case LevelDebug:
		return "\033[36m" // Cyan
	case LevelInfo:
		return "\033[34m" // Blue
	case LevelSuccess:
		return "\033[32m" // Green
	case LevelWarn:
		return "\033[33m" // Yellow
	case LevelError:
		return "\033[31m" // Red
	case LevelFatal:
		return "\033[91m" // Bright red
	case LevelFatalRateLimited:
		return "\033[35m" // Magenta
	default:
		return "\033[0m"
	}
}

// embedColor returns the decimal accent color for webhook embeds.
func (l LogLevel) embedColor() int {
	switch l {
	case LevelDebug:
		return 9807270 // Grey
	case LevelInfo:
		return 5793266 // Blurple
	case LevelSuccess:
		return 5763719 // Green
	case LevelWarn:
		return 16705372 // Yellow
	case LevelError:
		return 15548997 // Red
	case LevelFatal:
		return 10038562 // Dark red
	case LevelFatalRateLimited:
		return 15418782 // Fuchsia
	default:
		return 0
	}
}

// parseIgnoreLevels resolves configured level names into a membership set.
func parseIgnoreLevels(names []string) (ignoreSet, error) {
	set := make(ignoreSet, len(names))
	for _, name := range names {
		level, err := ParseLevel(name)
		if err != nil {
			return nil, err
		}
		set[level] = struct{}{}
	}
	return set, nil
}
