// ABOUTME: Static fallback datasets served when every source for a page comes back empty
// ABOUTME: Events are dated relative to now so they survive the upcoming filter

package aggregate

import (
	"time"

	"github.com/harper/matchday/internal/models"
)

// FallbackLabel marks items that came from the static dataset.
const FallbackLabel = "Matchday"

func fallbackArticles(now time.Time) []models.Article {
	at := func(d time.Duration) *time.Time {
		t := now.Add(-d)
		return &t
	}
	return []models.Article{
		{
			Title:       "Welcome to Matchday",
			Link:        "/blog/welcome-to-matchday",
			PublishedAt: at(2 * time.Hour),
			Snippet:     "Live sport, replays and highlights in one place. Fresh stories will appear here as soon as our sources are back.",
		},
		{
			Title:       "How to watch this weekend's fixtures",
			Link:        "/blog/how-to-watch",
			PublishedAt: at(26 * time.Hour),
			Snippet:     "Browse upcoming events, pick a stream and set a reminder before kickoff.",
		},
		{
			Title:       "Streaming quality tips",
			Link:        "/blog/streaming-quality-tips",
			PublishedAt: at(72 * time.Hour),
			Snippet:     "A wired connection and an up to date browser make the biggest difference to stream quality.",
		},
	}
}

func fallbackEvents(now time.Time) []models.Event {
	day := now.Truncate(time.Hour)
	return []models.Event{
		{
			Title:     "Featured match of the day",
			Link:      "/events/featured-match",
			StartTime: day.Add(3 * time.Hour),
			SportType: "Football",
		},
		{
			Title:     "Evening basketball doubleheader",
			Link:      "/events/basketball-doubleheader",
			StartTime: day.Add(9 * time.Hour),
			SportType: "Basketball",
		},
		{
			Title:     "Weekend fight night",
			Link:      "/events/fight-night",
			StartTime: day.Add(3 * 24 * time.Hour),
			SportType: "Boxing",
		},
	}
}
