// ABOUTME: Feed discovery for adding syndication sources from a site URL
// ABOUTME: Tries the URL as a feed, then HTML alternate links, then common feed paths

package discover

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/harper/matchday/internal/config"
	"github.com/harper/matchday/internal/fetch"
	"github.com/harper/matchday/internal/models"
	"github.com/harper/matchday/internal/parse"
)

// Common feed paths to probe when other discovery methods fail
var commonFeedPaths = []string{
	"/feed.xml",
	"/feed",
	"/rss.xml",
	"/rss",
	"/atom.xml",
	"/index.xml",
	"/feeds/posts/default",
}

// Errors returned by discovery functions
var (
	ErrNoFeedFound = errors.New("no RSS/Atom feed found at URL")
	ErrInvalidURL  = errors.New("invalid URL")
)

// Fetcher retrieves one payload. *fetch.Fetcher satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, d models.SourceDescriptor) (*fetch.Result, error)
}

// DiscoveredFeed represents a feed found during discovery
type DiscoveredFeed struct {
	URL   string // Absolute URL of the feed
	Title string // Channel title, else the HTML link title
	Items int    // Articles readable from the feed right now
}

// Discover finds a syndication feed for inputURL. It tries, in order, the URL
// itself, <link rel="alternate"> elements in its HTML, and common feed paths.
func Discover(ctx context.Context, f Fetcher, inputURL string) (*DiscoveredFeed, error) {
	parsedURL, err := url.Parse(inputURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("%w: missing scheme or host", ErrInvalidURL)
	}

	feed, body, err := tryFeed(ctx, f, inputURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	if feed != nil {
		return feed, nil
	}

	for _, candidate := range extractFeedLinks(body, parsedURL) {
		verified, _, err := tryFeed(ctx, f, candidate.URL)
		if err == nil && verified != nil {
			if verified.Title == "" {
				verified.Title = candidate.Title
			}
			return verified, nil
		}
	}

	probeBase := &url.URL{Scheme: parsedURL.Scheme, Host: parsedURL.Host}
	for _, path := range commonFeedPaths {
		feed, _, err := tryFeed(ctx, f, probeBase.String()+path)
		if err == nil && feed != nil {
			return feed, nil
		}
	}

	return nil, ErrNoFeedFound
}

// tryFeed fetches feedURL and reports whether it parses as a feed. The body is
// returned either way so the caller can look for links in it.
func tryFeed(ctx context.Context, f Fetcher, feedURL string) (*DiscoveredFeed, []byte, error) {
	d := models.SourceDescriptor{
		Kind:           models.KindRSS,
		Endpoint:       feedURL,
		Label:          "discover",
		FetchTimeoutMs: config.DefaultFetchTimeoutMs,
	}

	result, err := f.Fetch(ctx, d)
	if err != nil {
		return nil, nil, err
	}

	articles, err := parse.DecodeFeed(result.Payload, d.Label)
	if err != nil || len(articles) == 0 {
		// Not a feed; the body may still be HTML with feed links.
		return nil, result.Payload, nil
	}

	return &DiscoveredFeed{
		URL:   feedURL,
		Title: parse.FeedTitle(result.Payload),
		Items: len(articles),
	}, result.Payload, nil
}

// extractFeedLinks returns feed URLs from <link rel="alternate"> elements.
func extractFeedLinks(body []byte, baseURL *url.URL) []DiscoveredFeed {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var feeds []DiscoveredFeed
	var findLinks func(*html.Node)
	findLinks = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "link" {
			var rel, linkType, href, title string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "rel":
					rel = attr.Val
				case "type":
					linkType = attr.Val
				case "href":
					href = attr.Val
				case "title":
					title = attr.Val
				}
			}

			if strings.EqualFold(rel, "alternate") && isFeedContentType(linkType) && href != "" {
				if ref, err := url.Parse(href); err == nil {
					feeds = append(feeds, DiscoveredFeed{
						URL:   baseURL.ResolveReference(ref).String(),
						Title: title,
					})
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findLinks(c)
		}
	}

	findLinks(doc)
	return feeds
}

func isFeedContentType(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, "rss") ||
		strings.Contains(contentType, "atom") ||
		strings.Contains(contentType, "xml")
}
