package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, falling back to fallback when
// the string does not parse. The bad value is logged, not fatal.
func ParseDuration(durationStr string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("value", durationStr).Dur("fallback", fallback).Msg("Failed to parse duration, using fallback")
		return fallback
	}
	return duration
}
