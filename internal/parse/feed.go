// ABOUTME: RSS/Atom feed parsing using gofeed, falling back to a tolerant block scanner
// ABOUTME: Produces raw Articles (unsanitized titles, plain-text snippets) for the normalizer

package parse

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/harper/matchday/internal/models"
	"github.com/harper/matchday/internal/timeutil"
)

// Feed parses a syndication payload. Malformed input yields an empty slice.
func Feed(data []byte, label string) []models.Article {
	articles, _ := DecodeFeed(data, label)
	return articles
}

// DecodeFeed is Feed that also reports ErrMalformed when neither the feed
// parser nor the block scanner could read the payload. The returned slice is
// never nil.
func DecodeFeed(data []byte, label string) (articles []models.Article, err error) {
	defer func() {
		if r := recover(); r != nil {
			articles = []models.Article{}
			err = fmt.Errorf("%w: feed parser panic: %v", ErrMalformed, r)
		}
	}()

	if len(bytes.TrimSpace(data)) == 0 {
		return []models.Article{}, nil
	}

	feed, parseErr := gofeed.NewParser().Parse(bytes.NewReader(data))
	if parseErr == nil && len(feed.Items) > 0 {
		return fromGofeed(feed, label), nil
	}

	articles, blocks := scanFeed(data, label)
	if parseErr != nil && blocks == 0 {
		return articles, fmt.Errorf("%w: %v", ErrMalformed, parseErr)
	}
	return articles, nil
}

func fromGofeed(feed *gofeed.Feed, label string) []models.Article {
	articles := make([]models.Article, 0, len(feed.Items))

	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		link := strings.TrimSpace(item.Link)
		if link == "" && isURL(item.GUID) {
			link = strings.TrimSpace(item.GUID)
		}
		title := strings.TrimSpace(item.Title)
		if title == "" && link == "" {
			continue
		}

		a := models.Article{
			Title:       title,
			Link:        link,
			SourceLabel: label,
			IsExternal:  true,
		}

		// Use PublishedParsed or fallback to UpdatedParsed
		if item.PublishedParsed != nil {
			t := item.PublishedParsed.UTC()
			a.PublishedAt = &t
		} else if item.UpdatedParsed != nil {
			t := item.UpdatedParsed.UTC()
			a.PublishedAt = &t
		} else {
			a.PublishedAt = timeutil.ParsePtr(item.Published)
		}

		// Prefer Description over Content for the snippet
		if item.Description != "" {
			a.Snippet = snippet(item.Description)
		} else {
			a.Snippet = snippet(item.Content)
		}

		a.Thumbnail = gofeedThumbnail(item)
		articles = append(articles, a)
	}

	return articles
}

func gofeedThumbnail(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" && (enc.Type == "" || strings.HasPrefix(enc.Type, "image/")) {
			return enc.URL
		}
	}
	if media, ok := item.Extensions["media"]; ok {
		for _, name := range []string{"content", "thumbnail"} {
			for _, ext := range media[name] {
				if url := ext.Attrs["url"]; url != "" {
					return url
				}
			}
		}
	}
	return ""
}

func isURL(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func unescape(s string) string {
	return html.UnescapeString(s)
}

// FeedTitle returns the channel title of a feed payload, or "" when the
// payload is not a feed gofeed can read.
func FeedTitle(data []byte) string {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(feed.Title)
}
