// File: utils/constants.go
package utils

// AvailabilityCachePrefix is the prefix used for Redis availability cache keys.
const AvailabilityCachePrefix = "availability:"

// RequestIDHeader carries the correlation id of a request.
const RequestIDHeader = "X-Request-ID"

// ContextRequestIDKey and ContextLoggerKey are the gin context keys set by the request id middleware.
const (
	ContextRequestIDKey = "requestID"
	ContextLoggerKey    = "logger"
)
