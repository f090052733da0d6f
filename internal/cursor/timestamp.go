package cursor

import (
	"fmt"
	"time"
)

// Layouts accepted for watermark values. The store returns naive local
// timestamps ("2024-02-02T10:30:00"); both are read as UTC.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

// ParseTimestamp parses a watermark string.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// IsAfter reports whether candidate is strictly later than current.
func IsAfter(candidate, current string) (bool, error) {
	c, err := ParseTimestamp(candidate)
	if err != nil {
		return false, err
	}
	cur, err := ParseTimestamp(current)
	if err != nil {
		return false, err
	}
	return c.After(cur), nil
}
