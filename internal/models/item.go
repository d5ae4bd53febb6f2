// ABOUTME: Canonical Article and Event shapes produced by the aggregation pipeline
// ABOUTME: IDs are derived deterministically from link, else title, so dedup keys stay stable

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxIDTitleRunes bounds how much of a title feeds into a title-derived ID.
const MaxIDTitleRunes = 100

// titleNamespace keeps title-derived IDs apart from link-derived ones.
var titleNamespace = uuid.MustParse("6f1f7c3e-5b7a-4c53-9a55-0d8f3d3a9e41")

// Article is a news or blog item ready for display.
type Article struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Link        string     `json:"link,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Snippet     string     `json:"snippet,omitempty"`
	Thumbnail   string     `json:"thumbnail,omitempty"`
	SourceLabel string     `json:"source_label"`
	IsExternal  bool       `json:"is_external"`
}

// Event is a scheduled fixture or broadcast ready for display.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Link        string    `json:"link,omitempty"`
	StartTime   time.Time `json:"start_time"`
	SportType   string    `json:"sport_type,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	SourceLabel string    `json:"source_label"`
	ExternalID  string    `json:"external_id,omitempty"` // upstream identifier, provenance only
}

// DeriveID returns the stable identifier for an item.
// The link wins when present; otherwise the title, truncated to MaxIDTitleRunes, is used.
// Returns "" when both are blank.
func DeriveID(link, title string) string {
	if link = strings.TrimSpace(link); link != "" {
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte(link)).String()
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	runes := []rune(title)
	if len(runes) > MaxIDTitleRunes {
		runes = runes[:MaxIDTitleRunes]
	}
	return uuid.NewSHA1(titleNamespace, []byte(string(runes))).String()
}
