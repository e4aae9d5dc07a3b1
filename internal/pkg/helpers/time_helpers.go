package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string such as "30s" and returns def when
// the string is empty or malformed.
func ParseDuration(durationStr string, def time.Duration) time.Duration {
	if durationStr == "" {
		return def
	}
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// Global logger: this runs before the app logger is configured
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("default", def).Msg("Failed to parse duration string, using default")
		return def
	}
	return duration
}
