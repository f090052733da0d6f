package cursor

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-01T00:00:00", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-02-02T10:30:15", time.Date(2024, 2, 2, 10, 30, 15, 0, time.UTC)},
		{"2024-02-02T10:30:15Z", time.Date(2024, 2, 2, 10, 30, 15, 0, time.UTC)},
		{"2024-02-02T12:30:15+02:00", time.Date(2024, 2, 2, 10, 30, 15, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) failed: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}

func TestIsAfter(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		current   string
		want      bool
	}{
		{"later", "2024-02-02T00:00:00", "2024-01-01T00:00:00", true},
		{"equal", "2024-01-01T00:00:00", "2024-01-01T00:00:00", false},
		{"earlier", "2023-12-31T23:59:59", "2024-01-01T00:00:00", false},
		{"one second later", "2024-01-01T00:00:01", "2024-01-01T00:00:00", true},
		{"mixed layouts", "2024-01-01T00:00:01Z", "2024-01-01T00:00:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsAfter(tt.candidate, tt.current)
			if err != nil {
				t.Fatalf("IsAfter failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsAfter(%q, %q) = %v, want %v", tt.candidate, tt.current, got, tt.want)
			}
		})
	}

	if _, err := IsAfter("bad", "2024-01-01T00:00:00"); err == nil {
		t.Error("expected error for bad candidate")
	}
	if _, err := IsAfter("2024-01-01T00:00:00", "bad"); err == nil {
		t.Error("expected error for bad current value")
	}
}
