// ABOUTME: Temporal filtering and ordering for events and articles
// ABOUTME: Events keep upcoming items in start order; articles sort newest first with a display cap

package aggregate

import (
	"sort"
	"time"

	"github.com/harper/matchday/internal/models"
)

// DefaultArticleCap is the article display cap when a page sets none.
const DefaultArticleCap = 24

// UpcomingEvents returns the events starting at or after now, sorted by start
// time, then source label, then ID. The input is not modified.
func UpcomingEvents(events []models.Event, now time.Time) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if !e.StartTime.Before(now) {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		if a.SourceLabel != b.SourceLabel {
			return a.SourceLabel < b.SourceLabel
		}
		return a.ID < b.ID
	})
	return out
}

// NewestArticles returns articles sorted by PublishedAt descending, undated
// articles last, ties kept in input order. The input is not modified.
func NewestArticles(articles []models.Article) []models.Article {
	out := make([]models.Article, len(articles))
	copy(out, articles)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].PublishedAt, out[j].PublishedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return out
}

// Cap truncates items to at most n; n <= 0 means no cap.
func Cap[T any](items []T, n int) []T {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}

// PublishedSince keeps articles published at or after cutoff. Undated
// articles are dropped since their age is unknown.
func PublishedSince(articles []models.Article, cutoff time.Time) []models.Article {
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if a.PublishedAt != nil && !a.PublishedAt.Before(cutoff) {
			out = append(out, a)
		}
	}
	return out
}
