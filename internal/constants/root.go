package constants

import "time"

const (
	AppName            = "otf"
	DefaultKeyringUser = "api-token"
	DefaultConfigDir   = "~/.config/otf"
	DefaultCachePath   = "~/.config/otf/cache.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used for CLI date arguments (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is the absolute timestamp format of enhanced telemetry samples.
	// The offset is always written as +00:00, never Z.
	TimestampFormat = "2006-01-02T15:04:05+00:00"

	// Workout history defaults
	DefaultHistoryDays   = 30
	DefaultMaxDataPoints = 150
	MinValidCalories     = 100

	// UnknownWorkoutID is used when neither the performance summary nor the
	// booking carries a usable identifier.
	UnknownWorkoutID = "unknown"

	// Cache constants
	DefaultCacheTTL       = 24 * time.Hour
	SummaryCacheTTL       = 30 * 24 * time.Hour
	CacheKeySummaryPrefix = "performance-summary:"
	CacheKeyTelemetry     = "telemetry:"

	// HTTP constants
	DefaultHTTPTimeout = 20 * time.Second
	RequestIDHeader    = "x-request-id"
)
