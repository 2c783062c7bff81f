package helpers

import "time"

// ParseDuration parses a duration string, falling back to def on empty or
// malformed input.
func ParseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
