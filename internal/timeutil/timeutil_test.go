// ABOUTME: Tests for time utility functions
// ABOUTME: Verifies timestamp parsing, clocks, and period cutoffs

package timeutil

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	want := time.Date(2025, 3, 15, 19, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		ok   bool
		want time.Time
	}{
		{"rfc3339 zulu", "2025-03-15T19:30:00Z", true, want},
		{"minutes only", "2025-03-15T19:30Z", true, want},
		{"rfc3339 offset", "2025-03-15T20:30:00+01:00", true, want},
		{"rfc1123", "Sat, 15 Mar 2025 19:30:00 GMT", true, want},
		{"iso without zone", "2025-03-15 19:30:00", true, want},
		{"padded", "  2025-03-15T19:30:00Z  ", true, want},
		{"blank", "   ", false, time.Time{}},
		{"garbage", "not a date", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.raw)
			if ok != tt.ok {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			if ok && got.Location() != time.UTC {
				t.Errorf("Parse(%q) location = %v, want UTC", tt.raw, got.Location())
			}
		})
	}
}

func TestParsePtr(t *testing.T) {
	if ParsePtr("nope") != nil {
		t.Error("ParsePtr should return nil for garbage")
	}
	if p := ParsePtr("2025-03-15T19:30:00Z"); p == nil || p.Year() != 2025 {
		t.Errorf("ParsePtr returned %v", p)
	}
}

func TestFromUnix(t *testing.T) {
	want := time.Date(2025, 3, 15, 19, 30, 0, 0, time.UTC)

	got, ok := FromUnix(float64(want.Unix()))
	if !ok || !got.Equal(want) {
		t.Errorf("FromUnix(seconds) = %v, %v", got, ok)
	}

	got, ok = FromUnix(float64(want.UnixMilli()))
	if !ok || !got.Equal(want) {
		t.Errorf("FromUnix(millis) = %v, %v", got, ok)
	}

	if _, ok := FromUnix(0); ok {
		t.Error("FromUnix(0) should fail")
	}
}

func TestFixedClock(t *testing.T) {
	pinned := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := Fixed(pinned)
	if !clock().Equal(pinned) {
		t.Errorf("Fixed clock = %v, want %v", clock(), pinned)
	}
}

func TestStartOfToday(t *testing.T) {
	result := StartOfToday()
	now := time.Now()

	if result.Year() != now.Year() || result.Month() != now.Month() || result.Day() != now.Day() {
		t.Errorf("StartOfToday() date mismatch: got %v, expected date %v", result, now)
	}

	if result.Hour() != 0 || result.Minute() != 0 || result.Second() != 0 {
		t.Errorf("StartOfToday() should be midnight, got %v", result)
	}
}

func TestStartOfYesterday(t *testing.T) {
	result := StartOfYesterday()
	expected := StartOfToday().AddDate(0, 0, -1)

	if !result.Equal(expected) {
		t.Errorf("StartOfYesterday() = %v, expected %v", result, expected)
	}
}

func TestStartOfWeek(t *testing.T) {
	result := StartOfWeek()
	if result.Weekday() != time.Sunday {
		t.Errorf("StartOfWeek() should be Sunday, got %v", result.Weekday())
	}
	if result.After(StartOfToday()) {
		t.Errorf("StartOfWeek() %v is after today", result)
	}
}

func TestStartOfMonth(t *testing.T) {
	result := StartOfMonth()
	if result.Day() != 1 || result.Hour() != 0 {
		t.Errorf("StartOfMonth() = %v, expected first day at midnight", result)
	}
}

func TestParsePeriod(t *testing.T) {
	for _, p := range []string{"today", "yesterday", "week", "month"} {
		if _, ok := ParsePeriod(p); !ok {
			t.Errorf("ParsePeriod(%q) should succeed", p)
		}
	}
	if _, ok := ParsePeriod("fortnight"); ok {
		t.Error("ParsePeriod(fortnight) should fail")
	}
}

func TestParseSince(t *testing.T) {
	if got, err := ParseSince("today"); err != nil || !got.Equal(StartOfToday()) {
		t.Errorf("ParseSince(today) = %v, %v", got, err)
	}

	got, err := ParseSince("2024-12-15")
	if err != nil {
		t.Fatalf("ParseSince(date) error: %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.December || got.Day() != 15 {
		t.Errorf("ParseSince(date) = %v", got)
	}

	if _, err := ParseSince("whenever"); err == nil {
		t.Error("ParseSince(whenever) should fail")
	}
}
