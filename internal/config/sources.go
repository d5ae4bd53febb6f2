// ABOUTME: Built-in sources and pages used when no config file exists
// ABOUTME: Mirrors the four call sites: home, browse, blog, and events

package config

import "github.com/harper/matchday/internal/models"

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Sources: defaultSources(),
		Pages:   defaultPages(),
	}
	cfg.applyDefaults()
	return cfg
}

func defaultSources() []SourceConfig {
	return []SourceConfig{
		{Kind: "store", Label: "Matchday Blog", Content: "articles",
			Endpoint: "/rest/v1/blogs?select=*&published=eq.true&order=published_at.desc"},
		{Kind: "store", Label: "Matchday Events", Content: "events",
			Endpoint: "/rest/v1/events?select=*&order=start_time.asc"},
		{Kind: "rss", Label: "ESPN", Endpoint: "https://www.espn.com/espn/rss/news"},
		{Kind: "rss", Label: "BBC Sport", Endpoint: "https://feeds.bbci.co.uk/sport/rss.xml"},
		{Kind: "scoreboard", Label: "Premier League",
			Endpoint: "https://site.api.espn.com/apis/site/v2/sports/soccer/eng.1/scoreboard"},
		{Kind: "scoreboard", Label: "NBA",
			Endpoint: "https://site.api.espn.com/apis/site/v2/sports/basketball/nba/scoreboard"},
	}
}

func defaultPages() []models.Page {
	return []models.Page{
		{Name: "home", Content: models.ContentArticles, Cap: 12},
		{Name: "browse", Content: models.ContentEvents, Cap: DefaultEventCap},
		{Name: "blog", Content: models.ContentArticles, Cap: DefaultArticleCap,
			Sources: []string{"Matchday Blog", "ESPN", "BBC Sport"}},
		{Name: "events", Content: models.ContentEvents, Cap: 50},
	}
}
