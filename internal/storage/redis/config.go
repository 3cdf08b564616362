package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings for different entity types. Entries expire rather
	// than living forever, standing in for the restart eviction the
	// in-memory backend gets for free.
	GameTTL       time.Duration
	SessionTTL    time.Duration
	InvitationTTL time.Duration
	MatchTTL      time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:           "redis://localhost:6379",
		PoolSize:      10,
		MinIdleConns:  2,
		GameTTL:       24 * time.Hour,
		SessionTTL:    24 * time.Hour,
		InvitationTTL: 24 * time.Hour,
		MatchTTL:      24 * time.Hour,
	}
}
