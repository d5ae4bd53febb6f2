// ABOUTME: Tests for configuration defaults
// ABOUTME: Verifies constants are properly defined

package config

import (
	"testing"
	"time"
)

func TestDefaultHTTPTimeout(t *testing.T) {
	if DefaultHTTPTimeout != 30*time.Second {
		t.Errorf("expected 30s, got %v", DefaultHTTPTimeout)
	}
}

func TestFreshnessOrdering(t *testing.T) {
	if !(StoreFreshnessSeconds < ScoreboardFreshnessSeconds && ScoreboardFreshnessSeconds < FeedFreshnessSeconds) {
		t.Error("store content should refresh fastest and feeds slowest")
	}
}

func TestDisplayConstants(t *testing.T) {
	if DefaultListLimit <= 0 {
		t.Error("DefaultListLimit should be positive")
	}
	if DisplayIDLength <= 0 {
		t.Error("DisplayIDLength should be positive")
	}
	if DefaultArticleCap < MinPageCap || DefaultArticleCap > MaxPageCap {
		t.Errorf("DefaultArticleCap %d outside [%d, %d]", DefaultArticleCap, MinPageCap, MaxPageCap)
	}
}
