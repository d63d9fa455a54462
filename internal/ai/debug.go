package ai

import "sync/atomic"

// debugLoggingEnabled gates per-tick AI debug logs, which are too chatty
// to leave to the handler's level check alone.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables AI debug logging.
// Called once from main after the config is parsed.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if AI debug logging is enabled.
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
