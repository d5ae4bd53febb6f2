// ABOUTME: Internal content store parser mapping typed rows onto Articles and Events
// ABOUTME: Null-coalesces optional columns and normalizes timestamps to UTC

package parse

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harper/matchday/internal/models"
	"github.com/harper/matchday/internal/timeutil"
)

// Link prefixes for store rows that carry a slug but no link.
const (
	ArticlePathPrefix = "/blog/"
	EventPathPrefix   = "/events/"
)

// storeRow is one row from the content store's REST endpoint.
type storeRow struct {
	ID           any     `json:"id"`
	Title        *string `json:"title"`
	Slug         *string `json:"slug"`
	Excerpt      *string `json:"excerpt"`
	Summary      *string `json:"summary"`
	Content      *string `json:"content"`
	ThumbnailURL *string `json:"thumbnail_url"`
	CoverImage   *string `json:"cover_image"`
	PublishedAt  *string `json:"published_at"`
	CreatedAt    *string `json:"created_at"`
	StartTime    *string `json:"start_time"`
	EventDate    *string `json:"event_date"`
	SportType    *string `json:"sport_type"`
	Category     *string `json:"category"`
	Link         *string `json:"link"`
	URL          *string `json:"url"`
}

// StoreArticles maps blog rows onto Articles. Malformed input yields an empty slice.
func StoreArticles(data []byte, label string) []models.Article {
	articles, _ := DecodeStoreArticles(data, label)
	return articles
}

// StoreEvents maps event rows onto Events. Malformed input yields an empty slice.
func StoreEvents(data []byte, label string) []models.Event {
	events, _ := DecodeStoreEvents(data, label)
	return events
}

// DecodeStoreArticles is StoreArticles with ErrMalformed reporting.
func DecodeStoreArticles(data []byte, label string) ([]models.Article, error) {
	rows, err := decodeRows(data)
	articles := make([]models.Article, 0, len(rows))
	if err != nil {
		return articles, err
	}

	for _, row := range rows {
		a := models.Article{
			Title:       row.title(),
			Link:        row.link(ArticlePathPrefix),
			PublishedAt: timeutil.ParsePtr(coalesce(row.PublishedAt, row.CreatedAt)),
			Snippet:     coalesce(row.Excerpt, row.Summary),
			Thumbnail:   coalesce(row.ThumbnailURL, row.CoverImage),
			SourceLabel: label,
		}
		if a.Snippet == "" {
			a.Snippet = snippet(coalesce(row.Content))
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// DecodeStoreEvents is StoreEvents with ErrMalformed reporting.
// Rows without a parseable start time are dropped.
func DecodeStoreEvents(data []byte, label string) ([]models.Event, error) {
	rows, err := decodeRows(data)
	events := make([]models.Event, 0, len(rows))
	if err != nil {
		return events, err
	}

	for _, row := range rows {
		start, ok := timeutil.Parse(coalesce(row.StartTime, row.EventDate))
		if !ok {
			continue
		}
		events = append(events, models.Event{
			ExternalID:  scalar(row.ID),
			Title:       row.title(),
			Link:        row.link(EventPathPrefix),
			StartTime:   start,
			SportType:   coalesce(row.SportType, row.Category),
			Thumbnail:   coalesce(row.ThumbnailURL, row.CoverImage),
			SourceLabel: label,
		})
	}
	return events, nil
}

func decodeRows(data []byte) ([]storeRow, error) {
	var rows []storeRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: store rows: %v", ErrMalformed, err)
	}
	return rows, nil
}

func (r storeRow) title() string {
	if t := coalesce(r.Title); t != "" {
		return t
	}
	return strings.ReplaceAll(coalesce(r.Slug), "-", " ")
}

func (r storeRow) link(prefix string) string {
	if l := coalesce(r.Link, r.URL); l != "" {
		return l
	}
	if slug := coalesce(r.Slug); slug != "" {
		return prefix + slug
	}
	return ""
}

// coalesce returns the first non-blank value.
func coalesce(values ...*string) string {
	for _, v := range values {
		if v != nil {
			if s := strings.TrimSpace(*v); s != "" {
				return s
			}
		}
	}
	return ""
}
