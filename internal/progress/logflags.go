package progress

import (
	"log"
	"sync/atomic"
)

var traceLogEnabled atomic.Bool

// SetTraceLoggingEnabled toggles verbose logging of notification decisions and
// skipped markers for every View in the process.
func SetTraceLoggingEnabled(enabled bool) {
	traceLogEnabled.Store(enabled)
}

func isTraceLoggingEnabled() bool {
	return traceLogEnabled.Load()
}

func tracef(format string, args ...any) {
	if !isTraceLoggingEnabled() {
		return
	}
	log.Printf("progress: "+format, args...)
}
