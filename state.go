// FILE: state.go
package louislog

import (
	"sync/atomic"
)

// State encapsulates the runtime state of the logger
type State struct {
	// Lifecycle holds stateActive, stateDraining, or stateStopped. The
	// Active to Draining transition is the single shutdown gate.
	Lifecycle atomic.Int32

	// Pipeline counters, surfaced by the heartbeat record
	Dispatched        atomic.Uint64 // Records accepted by dispatch
	FileFlushes       atomic.Uint64 // Batched drains performed
	FileWriteErrors   atomic.Uint64 // Failed file append operations
	WebhookPosts      atomic.Uint64 // Successful webhook deliveries
	WebhookFailures   atomic.Uint64 // Failed or rejected deliveries
	WebhookSuppressed atomic.Uint64 // Embeds dropped by the rate limiter
	OverflowDrops     atomic.Uint64 // Embeds discarded on backlog overflow
	HeartbeatSequence atomic.Uint64 // Heartbeat records emitted
}
