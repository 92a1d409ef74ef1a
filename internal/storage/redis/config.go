package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// HistoryTTL bounds how long completed-turn records are kept.
	// Zero means keep forever.
	HistoryTTL time.Duration

	// UpdateRetries is how many times an optimistic update is retried
	// when another writer commits the same game first
	UpdateRetries int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:           "redis://localhost:6379",
		PoolSize:      10,
		MinIdleConns:  2,
		HistoryTTL:    90 * 24 * time.Hour,
		UpdateRetries: 5,
	}
}
