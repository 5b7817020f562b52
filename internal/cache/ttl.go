package cache

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TTL bounds and defaults.
const (
	// DefaultTTLSeconds is used when the cache is enabled without a TTL (1 hour).
	DefaultTTLSeconds = 3600

	// MinTTLSeconds is the minimum allowed TTL (1 minute).
	MinTTLSeconds = 60

	// MaxTTLSeconds is the maximum allowed TTL (7 days).
	MaxTTLSeconds = 604800

	minutesPerHour = 60
	hoursPerDay    = 24
)

// ErrInvalidTTL is returned for a TTL outside [MinTTLSeconds, MaxTTLSeconds].
var ErrInvalidTTL = fmt.Errorf("TTL must be between %d and %d seconds", MinTTLSeconds, MaxTTLSeconds)

// ParseTTL parses a TTL given as integer seconds ("3600") or as a Go duration
// ("1h", "90m", "1h30m").
func ParseTTL(s string) (int, error) {
	s = strings.TrimSpace(s)

	seconds, err := strconv.Atoi(s)
	if err != nil {
		duration, durErr := time.ParseDuration(s)
		if durErr != nil {
			return 0, fmt.Errorf("invalid TTL format: %w", durErr)
		}
		seconds = int(duration.Seconds())
	}

	if err := ValidateTTL(seconds); err != nil {
		return 0, err
	}
	return seconds, nil
}

// ValidateTTL checks seconds against the allowed range.
func ValidateTTL(seconds int) error {
	if seconds < MinTTLSeconds || seconds > MaxTTLSeconds {
		return fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
	}
	return nil
}

// FormatDuration formats d compactly: "30s", "5m", "2h30m", "3d2h".
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	if d < hoursPerDay*time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % minutesPerHour
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if hours == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd%dh", days, hours)
}
