package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDuration is returned for strings that do not match <n><s|m|h>
var ErrInvalidDuration = errors.New("invalid duration format")

// unitSeconds maps a duration suffix to its length in seconds
var unitSeconds = map[byte]uint64{
	's': 1,
	'm': 60,
	'h': 3600,
}

// ParseDuration parses a compact duration such as "30s", "15m" or "1h"
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidDuration)
	}

	multiplier, ok := unitSeconds[s[len(s)-1]]
	if !ok {
		return 0, fmt.Errorf("%w: %q has no s, m or h unit", ErrInvalidDuration, s)
	}

	digits := s[:len(s)-1]
	if digits == "" {
		return 0, fmt.Errorf("%w: %q has no number", ErrInvalidDuration, s)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidDuration, s)
		}
	}

	value, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidDuration, s, err)
	}

	maxSeconds := uint64(1<<63-1) / uint64(time.Second)
	if value > maxSeconds/multiplier {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidDuration, s)
	}

	return time.Duration(value*multiplier) * time.Second, nil
}

// FormatDuration renders d in the largest unit that divides its whole seconds evenly.
// Sub-second precision is dropped.
func FormatDuration(d time.Duration) string {
	secs := int64(d / time.Second)
	switch {
	case secs%3600 == 0:
		return fmt.Sprintf("%dh", secs/3600)
	case secs%60 == 0:
		return fmt.Sprintf("%dm", secs/60)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// Duration is a time.Duration stored in the config file as "<n><s|m|h>"
type Duration time.Duration

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return FormatDuration(time.Duration(d))
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrInvalidDuration, node.Line, err)
	}

	parsed, err := ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*d = Duration(parsed)
	return nil
}
