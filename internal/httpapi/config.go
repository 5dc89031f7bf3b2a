package httpapi

import "time"

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// Event stream tuning.
var (
	streamBuffer = 64
	pingPeriod   = 30 * time.Second
	writeWait    = 5 * time.Second
)

// SetStreamOptions sets the per-subscriber buffer and the websocket ping
// period. Non-positive values keep the current setting.
func SetStreamOptions(buffer int, ping time.Duration) {
	if buffer > 0 {
		streamBuffer = buffer
	}
	if ping > 0 {
		pingPeriod = ping
	}
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}
