// FILE: louis-log/constant.go
package louislog

import (
	"time"
)

// LogLevel identifies the severity of a log record. Ordering carries no
// meaning; sinks filter by ignore-set membership, not by threshold.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelSuccess
	LevelWarn
	LevelError
	LevelFatal
	// LevelFatalRateLimited reports webhook delivery problems. Records at
	// this level never re-enter the webhook sink, which breaks the
	// failure-report-failure loop against a rate-limiting endpoint.
	LevelFatalRateLimited
)

// Lifecycle states for the logger facade.
const (
	stateActive int32 = iota
	stateDraining
	stateStopped
)

// Webhook delivery tunables. The batch limit matches the embed cap of a
// single Discord request; a backlog above it is discarded, never sent.
const (
	webhookBatchLimit       = 8
	webhookDescriptionLimit = 4000
	webhookSuccessStatus    = 204
)

// Timers
const (
	defaultShutdownTimeout = 5 * time.Second
	webhookRequestTimeout  = 10 * time.Second
)

// descriptionPlaceholder replaces embed data that exceeds the description
// limit. The full payload is still present in the file and stdout sinks.
const descriptionPlaceholder = "Log data exceeds embed limits, see file or stdout logs for details."

// datatypeErrorText substitutes values no serializer can represent.
const datatypeErrorText = "Datatype error"

// isoDateFormat renders the machine-readable date field of JSON records.
const isoDateFormat = "2006-01-02T15:04:05.000Z07:00"
