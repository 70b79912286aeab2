package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// MaxMatches caps the length of each match log list
	MaxMatches int

	// RoomLogTTL expires per-room match logs; the global log has no TTL
	RoomLogTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		MaxMatches:   1000,
		RoomLogTTL:   24 * time.Hour,
	}
}
